package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/crm-api/internal/crm"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// crond corre los jobs periódicos de mantenimiento: heartbeat (cada 5 minutos
// por defecto) y reposición de bajo stock (cada 12 horas por defecto). Cada
// corrida captura sus propios fallos; el daemon solo termina por señal.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().
		Str("endpoint", cfg.CRM.Endpoint).
		Str("log_dir", cfg.CRM.LogDir).
		Dur("heartbeat_interval", cfg.CRM.HeartbeatInterval).
		Dur("low_stock_interval", cfg.CRM.LowStockInterval).
		Msg("iniciando crond")

	client := crm.NewClient(cfg.CRM.Endpoint)
	heartbeat := crm.NewHeartbeatJob(client, crm.NewJobLog(cfg.CRM.LogDir, crm.HeartbeatLogFile), log)
	lowStock := crm.NewLowStockJob(client, crm.NewJobLog(cfg.CRM.LogDir, crm.LowStockLogFile), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	heartbeatTicker := time.NewTicker(cfg.CRM.HeartbeatInterval)
	lowStockTicker := time.NewTicker(cfg.CRM.LowStockInterval)
	defer heartbeatTicker.Stop()
	defer lowStockTicker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Primera corrida inmediata: el log muestra estado apenas arranca el daemon.
	heartbeat.Run(ctx)
	lowStock.Run(ctx)

	for {
		select {
		case <-heartbeatTicker.C:
			heartbeat.Run(ctx)
		case <-lowStockTicker.C:
			lowStock.Run(ctx)
		case <-quit:
			log.Info().Msg("señal de apagado recibida, deteniendo crond")
			return
		}
	}
}
