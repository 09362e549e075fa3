package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalogue
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    *string         `json:"category,omitempty" db:"category"`
	Stock       int64           `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// GetCategory returns the product category or empty string if nil
func (p *Product) GetCategory() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// InStock returns true if at least one unit is available
func (p *Product) InStock() bool {
	return p.Stock > 0
}
