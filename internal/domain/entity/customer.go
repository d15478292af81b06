package entity

import "time"

// Customer representa un cliente del CRM. El email es único a nivel de sistema;
// el duplicado se rechaza en la mutación, nunca se sobreescribe.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string // opcional, formato +1234567890 o 123-456-7890
	CreatedAt time.Time
}
