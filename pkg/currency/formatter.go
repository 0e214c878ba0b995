package currency

import (
	"fmt"
	"math"
)

var symbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// Format renders a fare amount with its currency symbol, or falls back to
// "CODE amount" for currencies without a common symbol (e.g. "SGD 45").
func Format(amount float64, code string) string {
	rounded := math.Round(amount)

	if sym, ok := symbols[code]; ok {
		if rounded == amount {
			return fmt.Sprintf("%s%.0f", sym, amount)
		}
		return fmt.Sprintf("%s%.2f", sym, amount)
	}

	if rounded == amount {
		return fmt.Sprintf("%s %.0f", code, amount)
	}
	return fmt.Sprintf("%s %.2f", code, amount)
}
