package crm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Nombres de los logs append-only de los jobs de mantenimiento.
const (
	HeartbeatLogFile      = "crm_heartbeat_log.txt"
	LowStockLogFile       = "low_stock_updates_log.txt"
	OrderRemindersLogFile = "order_reminders_log.txt"
)

// JobLog es un log de texto append-only. Cada job escribe el suyo; el formato
// de línea (timestamp incluido) lo decide el job, no el log.
type JobLog struct {
	path string
}

// NewJobLog construye el log sobre dir/filename.
func NewJobLog(dir, filename string) *JobLog {
	return &JobLog{path: filepath.Join(dir, filename)}
}

// Path devuelve la ruta del archivo de log.
func (l *JobLog) Path() string { return l.path }

// Append agrega las líneas al final del archivo, creando el directorio y el
// archivo si no existen.
func (l *JobLog) Append(lines ...string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de log: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("abrir log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("escribir log: %w", err)
	}
	return nil
}
