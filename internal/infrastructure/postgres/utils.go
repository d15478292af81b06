package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae pool y transacción: los repositorios funcionan con cualquiera
// de los dos sin cambiar código.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// whereBuilder acumula condiciones AND con placeholders posicionales.
// argOffset permite arrancar después de args ya reservados (ej. LIMIT/OFFSET).
type whereBuilder struct {
	conds []string
	args  []any
}

// add registra una condición cuyo placeholder se numera automáticamente.
// El formato debe contener un único %d donde va el placeholder.
func (b *whereBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(format, len(b.args)))
}

// clause devuelve " WHERE ..." o cadena vacía si no hay condiciones.
func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// orderByClause traduce el order_by de la API a una cláusula segura: solo
// columnas de la whitelist, prefijo "-" para descendente, fallback al default.
func orderByClause(allowed map[string]string, orderBy, fallback string) string {
	field := orderBy
	dir := " ASC"
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
		dir = " DESC"
	}
	col, ok := allowed[field]
	if !ok {
		return " ORDER BY " + fallback
	}
	return " ORDER BY " + col + dir
}
