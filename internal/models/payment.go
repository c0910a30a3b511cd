package models

import (
	"fmt"
	"time"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodPaypal = "Paypal"
)

// Payment is one attempted transaction against an order. Rows are append-only:
// failures are recorded with Successful=false and the provider's raw response
// kept verbatim for diagnostics, never mutated afterwards.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderID       uint      `json:"order_id" gorm:"index" validate:"required"`
	Order         Order     `json:"-"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(20)" validate:"required,oneof=Paypal"`
	Timestamp     time.Time `json:"timestamp" gorm:"autoCreateTime"`
	Successful    bool      `json:"successful"`
	Amount        int64     `json:"amount" validate:"gte=0"` // cents
	RawResponse   string    `json:"raw_response"`            // opaque provider payload, stored as received
}

// ReferenceNumber combines the owning order's reference with the payment's
// own identity, e.g. "PAYMENT-ORDER-3-7". Defined only after persistence.
func (p *Payment) ReferenceNumber() string {
	return fmt.Sprintf("PAYMENT-%s-%d", p.Order.ReferenceNumber(), p.ID)
}
