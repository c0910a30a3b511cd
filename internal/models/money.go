package models

import "fmt"

// TaxRate is the flat sales tax applied to an order subtotal. There is no
// jurisdiction lookup; every order is taxed at the same rate.
const TaxRate = 0.0725

// FormatCents renders an integer cents value as a currency string with
// exactly two decimal places, e.g. 2200 -> "22.00".
func FormatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
