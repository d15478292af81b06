package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/jhoicas/crm-api/internal/crm"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// orderreminders corre bajo demanda: busca las órdenes de la ventana
// configurada (7 días por defecto), las registra en su log y muestra un
// resumen en stdout. Sale con status 1 si la corrida falla.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	client := crm.NewClient(cfg.CRM.Endpoint)
	job := crm.NewReminderJob(client, crm.NewJobLog(cfg.CRM.LogDir, crm.OrderRemindersLogFile), cfg.CRM.ReminderWindowDays)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	orders, err := job.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("procesando recordatorios de órdenes")
		fmt.Fprintln(os.Stderr, "Error processing order reminders:", err)
		os.Exit(1)
	}

	if len(orders) > 0 {
		table := tablewriter.NewTable(os.Stdout)
		table.Header("Order ID", "Customer", "Email", "Date", "Amount")
		for _, o := range orders {
			name, email := "", ""
			if o.Customer != nil {
				name, email = o.Customer.Name, o.Customer.Email
			}
			_ = table.Append(o.ID, name, email, o.OrderDate.Format("2006-01-02"), "$"+o.TotalAmount.StringFixed(2))
		}
		_ = table.Render()
	}

	fmt.Println("Order reminders processed!")
}
