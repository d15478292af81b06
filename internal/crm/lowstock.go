package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/pkg/logger"
)

// lowStockLayout mismo timestamp que el heartbeat, entre corchetes por línea.
const lowStockLayout = "02/01/2006-15:04:05"

// LowStockJob invoca la reposición server-side de productos bajo el umbral y
// registra en su log cada producto actualizado (o que no hizo falta reponer).
// Un fallo de red queda en el log y el job termina sin propagar nada.
type LowStockJob struct {
	client *Client
	log    *JobLog
	zl     *logger.Logger
}

// NewLowStockJob construye el job.
func NewLowStockJob(client *Client, log *JobLog, zl *logger.Logger) *LowStockJob {
	return &LowStockJob{client: client, log: log, zl: zl}
}

// Run ejecuta una corrida de reposición.
func (j *LowStockJob) Run(ctx context.Context) {
	ts := time.Now().Format(lowStockLayout)

	res, err := j.client.RestockLowStock(ctx)
	if err != nil {
		j.appendOrWarn(fmt.Sprintf("[%s] ERROR in low stock update: %v", ts, err))
		return
	}

	lines := []string{
		"",
		fmt.Sprintf("[%s] Low Stock Update Job:", ts),
		fmt.Sprintf("[%s] Status: %s", ts, res.Message),
	}
	if len(res.UpdatedProducts) > 0 {
		lines = append(lines, fmt.Sprintf("[%s] Updated Products:", ts))
		for _, p := range res.UpdatedProducts {
			lines = append(lines, fmt.Sprintf("[%s] - %s: Stock updated to %d (Price: $%s)",
				ts, p.Name, p.Stock, p.Price.StringFixed(2)))
		}
	} else {
		lines = append(lines, fmt.Sprintf("[%s] No products needed restocking.", ts))
	}
	j.appendOrWarn(lines...)
}

func (j *LowStockJob) appendOrWarn(lines ...string) {
	if err := j.log.Append(lines...); err != nil {
		j.zl.Error().Err(err).Msg("low stock: no se pudo escribir el log")
	}
}
