package models

import (
	"fmt"
	"math"
	"time"
)

// Order is the cart-or-receipt aggregate. While Ordered is false it is the
// session's active cart; once checkout completes it becomes an immutable
// record of the purchase. UserID stays nil until an authenticated user
// touches the cart.
type Order struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      *string    `json:"user_id" gorm:"type:varchar(36);index"`
	StartDate   time.Time  `json:"start_date" gorm:"autoCreateTime"`
	OrderedDate *time.Time `json:"ordered_date"`
	Ordered     bool       `json:"ordered" gorm:"index"`

	// Deleting an address must not delete order history, so both references
	// are nulled rather than cascaded.
	BillingAddressID  *uint    `json:"billing_address_id"`
	ShippingAddressID *uint    `json:"shipping_address_id"`
	BillingAddress    *Address `json:"billing_address,omitempty" gorm:"foreignKey:BillingAddressID;constraint:OnDelete:SET NULL"`
	ShippingAddress   *Address `json:"shipping_address,omitempty" gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:SET NULL"`

	Items    []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	Payments []Payment   `json:"payments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ReferenceNumber is the human-readable order identifier shown to customers.
// It is derived from the primary key, so it is only meaningful once the order
// has been persisted.
func (o *Order) ReferenceNumber() string {
	return fmt.Sprintf("ORDER-%d", o.ID)
}

// RawSubtotal sums the current items' raw totals, in cents.
func (o *Order) RawSubtotal() int64 {
	var total int64
	for i := range o.Items {
		total += o.Items[i].RawTotalPrice()
	}
	return total
}

// Subtotal returns the subtotal formatted for display.
func (o *Order) Subtotal() string {
	return FormatCents(o.RawSubtotal())
}

// RawTax is the flat-rate tax on the subtotal, in cents.
func (o *Order) RawTax() int64 {
	return int64(math.Round(TaxRate * float64(o.RawSubtotal())))
}

// RawTotal is the tax-inclusive total, in cents.
func (o *Order) RawTotal() int64 {
	return o.RawSubtotal() + o.RawTax()
}

// Total returns the displayed order total.
//
// TODO: this mirrors the subtotal; switch to RawTotal once tax display on the
// cart summary is settled.
func (o *Order) Total() string {
	return FormatCents(o.RawSubtotal())
}

// OrderItem is a line item linking a product and a quantity to one order.
// Quantity is never persisted as zero: a decrement at quantity 1 deletes the
// row instead.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"index"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Product   Product `json:"product" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}

// RawTotalPrice is quantity times unit price, in cents.
func (i *OrderItem) RawTotalPrice() int64 {
	return int64(i.Quantity) * i.Product.Price
}

// TotalPrice returns the line total formatted for display.
func (i *OrderItem) TotalPrice() string {
	return FormatCents(i.RawTotalPrice())
}
