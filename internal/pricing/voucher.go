package pricing

import (
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// MaxPercent caps percentage vouchers so an order is never free.
var MaxPercent = decimal.NewFromInt(99)

var hundred = decimal.NewFromInt(100)

// Discount is the amount a voucher takes off subtotal. Percentages are capped
// at MaxPercent and fixed amounts at the subtotal, so the result lies in
// [0, subtotal].
func Discount(subtotal decimal.Decimal, kind models.DiscountKind, value decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() || !value.IsPositive() {
		return decimal.Zero
	}
	switch kind {
	case models.DiscountPercentage:
		pct := decimal.Min(value, MaxPercent)
		return subtotal.Mul(pct).Div(hundred)
	case models.DiscountFixed:
		return decimal.Min(value, subtotal)
	default:
		return decimal.Zero
	}
}

// Preview is the checkout summary for a subtotal with an optional voucher.
type Preview struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Voucher  *models.Voucher
}

// PreviewFor applies v to subtotal. A nil voucher means no discount.
func PreviewFor(subtotal decimal.Decimal, v *models.Voucher) Preview {
	p := Preview{Subtotal: subtotal, Discount: decimal.Zero, Voucher: v}
	if v != nil {
		p.Discount = Discount(subtotal, v.DiscountKind, v.DiscountValue)
	}
	p.Total = subtotal.Sub(p.Discount)
	if p.Total.IsNegative() {
		p.Total = decimal.Zero
	}
	return p
}

type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusPaused   Status = "paused"
	StatusUpcoming Status = "upcoming"
)

// Label is the Vietnamese text shown for the status badge.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Đang hoạt động"
	case StatusExpired:
		return "Hết hạn"
	case StatusPaused:
		return "Tạm dừng"
	case StatusUpcoming:
		return "Sắp diễn ra"
	}
	return string(s)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// VoucherStatus derives the status of a voucher on the day of now.
// Expiry (past end date or nothing left) wins over the active flag.
func VoucherStatus(now, start, end time.Time, active bool, remaining int) Status {
	today := midnight(now)
	if !end.IsZero() && today.After(midnight(end.In(now.Location()))) {
		return StatusExpired
	}
	if remaining <= 0 {
		return StatusExpired
	}
	if active {
		return StatusActive
	}
	return StatusPaused
}

// DisplayStatus refines VoucherStatus for listings: an active voucher whose
// start date is still ahead shows as upcoming.
func DisplayStatus(now time.Time, v models.Voucher) Status {
	s := VoucherStatus(now, v.StartDate.Time, v.EndDate.Time, v.Active, v.Remaining)
	if s == StatusActive && !v.StartDate.IsZero() && midnight(now).Before(midnight(v.StartDate.In(now.Location()))) {
		return StatusUpcoming
	}
	return s
}

// Redeemable reports whether v can be applied at checkout on now.
func Redeemable(now time.Time, v models.Voucher) bool {
	return DisplayStatus(now, v) == StatusActive
}
