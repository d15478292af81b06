package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain"
)

// parseTimeFilter convierte un query param de fecha (RFC 3339) a puntero;
// vacío significa "sin filtro".
func parseTimeFilter(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// parseDecimalFilter convierte un query param decimal a puntero; vacío = sin filtro.
func parseDecimalFilter(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decimal %q", domain.ErrInvalidInput, s)
	}
	return &d, nil
}
