package models

import "time"

// Address types. A single model covers both so users don't need separate
// billing and shipping address books.
const (
	AddressTypeBilling  = "B"
	AddressTypeShipping = "S"
)

// Address is a saved billing or shipping address belonging to a user.
type Address struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Line1       string    `json:"line_1" gorm:"type:varchar(150)" validate:"required,max=150"`
	Line2       string    `json:"line_2" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	City        string    `json:"city" gorm:"type:varchar(100)" validate:"required,max=100"`
	Zip         string    `json:"zip" gorm:"type:varchar(20)" validate:"required,max=20"`
	AddressType string    `json:"address_type" gorm:"type:varchar(1)" validate:"required,oneof=B S"`
	Default     bool      `json:"default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
