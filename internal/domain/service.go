package domain

import "sibiria/internal/pkg/decimal"

// Service is an ancillary service a guest can attach to a booking
// (breakfast, transfer, late checkout and so on).
type Service struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}
