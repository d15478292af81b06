package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// reminderLayout timestamp de las líneas del log de recordatorios.
const reminderLayout = "2006-01-02 15:04:05"

// ReminderJob busca las órdenes dentro de la ventana configurada (filtrado del
// lado del cliente, borde inclusivo: order_date >= ahora - ventana) y deja una
// línea por orden en su log. A diferencia de los jobs periódicos, un fallo se
// registra y además se devuelve para que el binario salga con status distinto
// de cero.
type ReminderJob struct {
	client     *Client
	log        *JobLog
	windowDays int
}

// NewReminderJob construye el job.
func NewReminderJob(client *Client, log *JobLog, windowDays int) *ReminderJob {
	return &ReminderJob{client: client, log: log, windowDays: windowDays}
}

// Run ejecuta una corrida y devuelve las órdenes recordadas.
func (j *ReminderJob) Run(ctx context.Context) ([]dto.OrderResponse, error) {
	ts := time.Now().Format(reminderLayout)

	orders, err := j.client.AllOrders(ctx)
	if err != nil {
		_ = j.log.Append(fmt.Sprintf("[%s] ERROR: %v", ts, err))
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -j.windowDays)
	recent := FilterRecentOrders(orders, cutoff)

	lines := []string{
		"",
		fmt.Sprintf("[%s] Processing %d orders from last %d days:", ts, len(recent), j.windowDays),
	}
	for _, o := range recent {
		name, email := "", ""
		if o.Customer != nil {
			name, email = o.Customer.Name, o.Customer.Email
		}
		lines = append(lines, fmt.Sprintf("[%s] Order ID: %s, Customer: %s (%s), Date: %s, Amount: $%s",
			ts, o.ID, name, email, o.OrderDate.Format(time.RFC3339), o.TotalAmount.StringFixed(2)))
	}
	if err := j.log.Append(lines...); err != nil {
		return nil, err
	}
	return recent, nil
}

// FilterRecentOrders devuelve las órdenes con fecha en o después del corte.
func FilterRecentOrders(orders []dto.OrderResponse, cutoff time.Time) []dto.OrderResponse {
	recent := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		if !o.OrderDate.Before(cutoff) {
			recent = append(recent, o)
		}
	}
	return recent
}
