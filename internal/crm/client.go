package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// Client es el cliente HTTP que usan los jobs de mantenimiento contra la API.
// Timeout impuesto por el llamador: ningún job queda bloqueado en red.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente para el endpoint configurado.
func NewClient(endpoint string) *Client {
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Health verifica que la API responda (chequeo de conectividad del heartbeat,
// independiente de datos de negocio).
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// RestockLowStock invoca la operación server-side updateLowStockProducts y
// devuelve su resultado (success, message, productos actualizados).
func (c *Client) RestockLowStock(ctx context.Context) (dto.UpdateLowStockResult, error) {
	var out dto.UpdateLowStockResult
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/products/restock-low-stock", nil)
	if err != nil {
		return out, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return out, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decodificar respuesta: %w", err)
	}
	return out, nil
}

// AllOrders trae todas las órdenes paginando hasta agotar resultados.
func (c *Client) AllOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	const pageSize = 100
	var all []dto.OrderResponse
	for offset := 0; ; offset += pageSize {
		url := fmt.Sprintf("%s/api/orders?limit=%d&offset=%d", c.baseURL, pageSize, offset)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		var page []dto.OrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decodificar respuesta: %w", err)
		}
		resp.Body.Close()
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
