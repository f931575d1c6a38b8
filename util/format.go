package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price for display with thousands grouping and
// two decimals, e.g. ₦1,299.99. Display formatting only; no conversion.
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("₦%.2f", price)
}
