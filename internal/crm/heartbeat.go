package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/pkg/logger"
)

// heartbeatLayout formato DD/MM/YYYY-HH:MM:SS de las líneas de heartbeat.
const heartbeatLayout = "02/01/2006-15:04:05"

// HeartbeatJob verifica periódicamente que la API esté accesible y deja una
// línea por corrida en su log. Nunca falla hacia el scheduler: todo error se
// captura y queda registrado como descripción en la línea.
type HeartbeatJob struct {
	client *Client
	log    *JobLog
	zl     *logger.Logger
}

// NewHeartbeatJob construye el job.
func NewHeartbeatJob(client *Client, log *JobLog, zl *logger.Logger) *HeartbeatJob {
	return &HeartbeatJob{client: client, log: log, zl: zl}
}

// Run ejecuta una corrida del heartbeat.
func (j *HeartbeatJob) Run(ctx context.Context) {
	ts := time.Now().Format(heartbeatLayout)
	status := "CRM endpoint responsive"
	if err := j.client.Health(ctx); err != nil {
		status = fmt.Sprintf("CRM endpoint error: %v", err)
	}
	if err := j.log.Append(fmt.Sprintf("%s CRM is alive - %s", ts, status)); err != nil {
		j.zl.Error().Err(err).Msg("heartbeat: no se pudo escribir el log")
	}
}
