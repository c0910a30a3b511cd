package models

import "time"

// Product represents a product in the catalog. Prices are stored as integer
// cents so no rounding happens in storage.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(150)" validate:"omitempty,max=150"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Price       int64     `json:"price" validate:"gte=0"` // cents
	Image       string    `json:"image"`                  // path relative to the upload directory
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayPrice returns the price formatted for display, e.g. "12.00".
func (p *Product) DisplayPrice() string {
	return FormatCents(p.Price)
}
