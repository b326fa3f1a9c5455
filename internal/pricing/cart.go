package pricing

import (
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// UnitPrice is the discounted unit price when it is set and lower.
func UnitPrice(l models.CartLine) decimal.Decimal {
	if l.DiscountedUnitPrice != nil && l.DiscountedUnitPrice.LessThan(l.UnitPrice) {
		return *l.DiscountedUnitPrice
	}
	return l.UnitPrice
}

func LineTotal(l models.CartLine) decimal.Decimal {
	if l.Quantity <= 0 {
		return decimal.Zero
	}
	return UnitPrice(l).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func Subtotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

// ItemCount is the number of units in the cart.
func ItemCount(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		if l.Quantity > 0 {
			n += l.Quantity
		}
	}
	return n
}
