package crm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/crm"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// readLog lee el contenido completo del log del job.
func readLog(t *testing.T, log *crm.JobLog) string {
	t.Helper()
	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	return string(data)
}

// serveJSON responde el mismo cuerpo JSON a toda petición.
func serveJSON(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			require.NoError(t, json.NewEncoder(w).Encode(body))
		}
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// JobLog
// ──────────────────────────────────────────────────────────────────────────────

func TestJobLog_AppendCreaDirectorioYAcumula(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", "crm")
	log := crm.NewJobLog(dir, crm.HeartbeatLogFile)

	require.NoError(t, log.Append("primera"))
	require.NoError(t, log.Append("segunda", "tercera"))

	assert.Equal(t, "primera\nsegunda\ntercera\n", readLog(t, log))
}

// ──────────────────────────────────────────────────────────────────────────────
// Heartbeat
// ──────────────────────────────────────────────────────────────────────────────

func TestHeartbeat_APIResponsiva(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, map[string]string{"status": "ok"})
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.HeartbeatLogFile)
	job := crm.NewHeartbeatJob(crm.NewClient(srv.URL), log, testLogger())

	job.Run(context.Background())

	content := readLog(t, log)
	assert.Contains(t, content, "CRM is alive - CRM endpoint responsive")
	// Timestamp DD/MM/YYYY-HH:MM:SS al inicio de la línea.
	ts := strings.SplitN(content, " ", 2)[0]
	_, err := time.Parse("02/01/2006-15:04:05", ts)
	assert.NoError(t, err, "timestamp con formato inesperado: %q", ts)
}

// La caída del endpoint no aborta el job: la línea se escribe igual con la
// descripción del error.
func TestHeartbeat_APICaida(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, nil)
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.HeartbeatLogFile)
	job := crm.NewHeartbeatJob(crm.NewClient(srv.URL), log, testLogger())

	job.Run(context.Background())

	content := readLog(t, log)
	assert.Contains(t, content, "CRM is alive - CRM endpoint error:")
	assert.Contains(t, content, "status 500")
}

// ──────────────────────────────────────────────────────────────────────────────
// Low stock
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockJob_RegistraProductosActualizados(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, dto.UpdateLowStockResult{
		Success: true,
		Message: "Successfully restocked 1 products",
		UpdatedProducts: []dto.ProductResponse{
			{ID: "p-1", Name: "AirPods Pro", Price: decimal.RequireFromString("249.99"), Stock: 15},
		},
	})
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.LowStockLogFile)
	job := crm.NewLowStockJob(crm.NewClient(srv.URL), log, testLogger())

	job.Run(context.Background())

	content := readLog(t, log)
	assert.Contains(t, content, "Low Stock Update Job:")
	assert.Contains(t, content, "Status: Successfully restocked 1 products")
	assert.Contains(t, content, "Updated Products:")
	assert.Contains(t, content, "- AirPods Pro: Stock updated to 15 (Price: $249.99)")
}

func TestLowStockJob_SinCandidatos(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, dto.UpdateLowStockResult{
		Success:         true,
		Message:         "No products needed restocking",
		UpdatedProducts: []dto.ProductResponse{},
	})
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.LowStockLogFile)
	job := crm.NewLowStockJob(crm.NewClient(srv.URL), log, testLogger())

	job.Run(context.Background())

	content := readLog(t, log)
	assert.Contains(t, content, "No products needed restocking.")
	assert.NotContains(t, content, "Updated Products:")
}

func TestLowStockJob_ErrorDeRed(t *testing.T) {
	srv := serveJSON(t, http.StatusServiceUnavailable, nil)
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.LowStockLogFile)
	job := crm.NewLowStockJob(crm.NewClient(srv.URL), log, testLogger())

	job.Run(context.Background())

	content := readLog(t, log)
	assert.Contains(t, content, "ERROR in low stock update:")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recordatorios de órdenes
// ──────────────────────────────────────────────────────────────────────────────

// Borde inclusivo: una orden exactamente en el corte entra en la ventana.
func TestFilterRecentOrders_CorteInclusivo(t *testing.T) {
	cutoff := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	orders := []dto.OrderResponse{
		{ID: "viejo", OrderDate: cutoff.Add(-time.Second)},
		{ID: "justo", OrderDate: cutoff},
		{ID: "nuevo", OrderDate: cutoff.Add(time.Hour)},
	}

	recent := crm.FilterRecentOrders(orders, cutoff)

	require.Len(t, recent, 2)
	assert.Equal(t, "justo", recent[0].ID)
	assert.Equal(t, "nuevo", recent[1].ID)
}

func TestReminderJob_SoloOrdenesDentroDeLaVentana(t *testing.T) {
	now := time.Now()
	customer := &dto.CustomerResponse{ID: "c-1", Name: "John Doe", Email: "john@example.com"}
	srv := serveJSON(t, http.StatusOK, []dto.OrderResponse{
		{ID: "orden-vieja", Customer: customer, OrderDate: now.AddDate(0, 0, -10),
			TotalAmount: decimal.RequireFromString("100.00")},
		{ID: "orden-reciente", Customer: customer, OrderDate: now.AddDate(0, 0, -3),
			TotalAmount: decimal.RequireFromString("1549.98")},
	})
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.OrderRemindersLogFile)
	job := crm.NewReminderJob(crm.NewClient(srv.URL), log, 7)

	recent, err := job.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, recent, 1, "solo la orden de hace 3 días entra en la ventana de 7")
	assert.Equal(t, "orden-reciente", recent[0].ID)

	content := readLog(t, log)
	assert.Contains(t, content, "Processing 1 orders from last 7 days:")
	assert.Contains(t, content, "Order ID: orden-reciente, Customer: John Doe (john@example.com)")
	assert.Contains(t, content, "Amount: $1549.98")
	assert.NotContains(t, content, "orden-vieja")
}

// El fallo se registra y además se devuelve: el binario decide el exit code.
func TestReminderJob_ErrorSeRegistraYPropaga(t *testing.T) {
	srv := serveJSON(t, http.StatusBadGateway, nil)
	defer srv.Close()

	log := crm.NewJobLog(t.TempDir(), crm.OrderRemindersLogFile)
	job := crm.NewReminderJob(crm.NewClient(srv.URL), log, 7)

	recent, err := job.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, recent)
	assert.Contains(t, readLog(t, log), "ERROR:")
}

// Paginación del cliente: una página corta termina el recorrido.
func TestClientAllOrders_Pagina(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/api/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]dto.OrderResponse{{ID: "o-1"}}))
	}))
	defer srv.Close()

	orders, err := crm.NewClient(srv.URL).AllOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 1, calls, "una página corta no debe pedir la siguiente")
}
