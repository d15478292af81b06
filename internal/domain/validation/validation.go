package validation

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Kind clasifica el motivo de rechazo de una mutación.
type Kind string

const (
	KindDuplicateEmail     Kind = "DUPLICATE_EMAIL"
	KindInvalidEmailFormat Kind = "INVALID_EMAIL_FORMAT"
	KindInvalidPhoneFormat Kind = "INVALID_PHONE_FORMAT"
	KindMissingField       Kind = "MISSING_FIELD"
	KindInvalidPrice       Kind = "INVALID_PRICE"
	KindNonPositivePrice   Kind = "NON_POSITIVE_PRICE"
	KindNegativeStock      Kind = "NEGATIVE_STOCK"
	KindUnknownCustomer    Kind = "UNKNOWN_CUSTOMER"
	KindUnknownProduct     Kind = "UNKNOWN_PRODUCT"
	KindEmptyProductList   Kind = "EMPTY_PRODUCT_LIST"
)

// Error es un rechazo de validación con su clasificación y un mensaje apto
// para devolver al cliente tal cual.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// newError construye el rechazo.
func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Formatos de teléfono aceptados: internacional (+1234567890) o con guiones
// (123-456-7890). Cualquier otro formato se rechaza.
var (
	phoneIntl   = regexp.MustCompile(`^\+\d{7,15}$`)
	phoneDashed = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	emailShape  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Customer valida la forma de los datos de un cliente. No consulta persistencia:
// la unicidad del email se verifica en el caso de uso contra el repositorio.
func Customer(name, email, phone string) *Error {
	if name == "" {
		return newError(KindMissingField, "Name is required")
	}
	if email == "" {
		return newError(KindMissingField, "Email is required")
	}
	if !emailShape.MatchString(email) {
		return newError(KindInvalidEmailFormat, "Enter a valid email address")
	}
	if phone != "" && !phoneIntl.MatchString(phone) && !phoneDashed.MatchString(phone) {
		return newError(KindInvalidPhoneFormat, "Invalid phone format. Use +1234567890 or 123-456-7890")
	}
	return nil
}

// DuplicateEmail construye el rechazo por email ya registrado.
func DuplicateEmail(email string) *Error {
	return newError(KindDuplicateEmail, "Email %s already exists", email)
}

// Product valida nombre, precio textual y stock. El precio llega como texto y se
// parsea a decimal exacto; el stock ausente (nil) vale 0.
func Product(name, priceText string, stock *int) (decimal.Decimal, int, *Error) {
	if name == "" {
		return decimal.Zero, 0, newError(KindMissingField, "Name is required")
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return decimal.Zero, 0, newError(KindInvalidPrice, "Invalid price format")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, 0, newError(KindNonPositivePrice, "Price must be positive")
	}
	qty := 0
	if stock != nil {
		qty = *stock
	}
	if qty < 0 {
		return decimal.Zero, 0, newError(KindNegativeStock, "Stock cannot be negative")
	}
	return price, qty, nil
}

// UnknownCustomer construye el rechazo por cliente inexistente.
func UnknownCustomer() *Error {
	return newError(KindUnknownCustomer, "Invalid customer ID")
}

// UnknownProduct construye el rechazo por producto inexistente (fail-fast: se
// reporta el primer id que no resuelve).
func UnknownProduct(id string) *Error {
	return newError(KindUnknownProduct, "Invalid product ID: %s", id)
}

// EmptyProductList construye el rechazo por orden sin productos.
func EmptyProductList() *Error {
	return newError(KindEmptyProductList, "At least one product must be selected")
}
