package pricing

import (
	"testing"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal decimal.Decimal
		kind     models.DiscountKind
		value    decimal.Decimal
		want     decimal.Decimal
	}{
		{"percentage", d(1000000), models.DiscountPercentage, d(10), d(100000)},
		{"percentage capped at 99", d(1000000), models.DiscountPercentage, d(100), d(990000)},
		{"fixed", d(500000), models.DiscountFixed, d(50000), d(50000)},
		{"fixed capped at subtotal", d(30000), models.DiscountFixed, d(50000), d(30000)},
		{"zero subtotal", d(0), models.DiscountFixed, d(50000), d(0)},
		{"negative value", d(100000), models.DiscountPercentage, d(-5), d(0)},
		{"unknown kind", d(100000), models.DiscountKind("bogus"), d(10), d(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.subtotal, tt.kind, tt.value)
			if !got.Equal(tt.want) {
				t.Errorf("Discount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPreviewTotalNeverNegative(t *testing.T) {
	for _, sub := range []int64{0, 1, 999, 50000, 1234567} {
		for _, val := range []int64{0, 1, 50, 99, 100, 150, 10000000} {
			for _, kind := range []models.DiscountKind{models.DiscountPercentage, models.DiscountFixed} {
				v := &models.Voucher{DiscountKind: kind, DiscountValue: d(val)}
				p := PreviewFor(d(sub), v)
				if p.Total.IsNegative() {
					t.Fatalf("Negative total for subtotal=%d kind=%s value=%d", sub, kind, val)
				}
				if !p.Subtotal.Sub(p.Discount).Equal(p.Total) {
					t.Fatalf("Total mismatch for subtotal=%d kind=%s value=%d", sub, kind, val)
				}
			}
		}
	}
	if p := PreviewFor(d(1000), nil); !p.Total.Equal(d(1000)) || !p.Discount.IsZero() {
		t.Errorf("Expected no discount without voucher, got %+v", p)
	}
}

func TestVoucherStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	day := func(m time.Month, dd int) time.Time { return time.Date(2024, m, dd, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		start, end time.Time
		active     bool
		remaining  int
		want       Status
	}{
		{"active in window", day(6, 1), day(6, 30), true, 10, StatusActive},
		{"paused in window", day(6, 1), day(6, 30), false, 10, StatusPaused},
		{"ends today still active", day(6, 1), day(6, 15), true, 10, StatusActive},
		{"ended yesterday", day(6, 1), day(6, 14), true, 10, StatusExpired},
		{"expired beats paused", day(5, 1), day(5, 31), false, 10, StatusExpired},
		{"none remaining", day(6, 1), day(6, 30), true, 0, StatusExpired},
		{"negative remaining", day(6, 1), day(6, 30), false, -1, StatusExpired},
		{"future start active flag", day(7, 1), day(7, 31), true, 5, StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VoucherStatus(now, tt.start, tt.end, tt.active, tt.remaining); got != tt.want {
				t.Errorf("VoucherStatus = %s, want %s", got, tt.want)
			}
			// pure: same inputs, same answer
			if got := VoucherStatus(now, tt.start, tt.end, tt.active, tt.remaining); got != tt.want {
				t.Errorf("VoucherStatus not stable: %s", got)
			}
		})
	}
}

func TestDisplayStatusUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	v := models.Voucher{
		StartDate: models.Date{Time: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:   models.Date{Time: time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)},
		Active:    true,
		Remaining: 3,
	}
	if got := DisplayStatus(now, v); got != StatusUpcoming {
		t.Errorf("Expected upcoming, got %s", got)
	}
	if Redeemable(now, v) {
		t.Error("Upcoming voucher should not be redeemable")
	}
	v.Active = false
	if got := DisplayStatus(now, v); got != StatusPaused {
		t.Errorf("Expected paused, got %s", got)
	}
}

func TestCartTotals(t *testing.T) {
	sale := d(90000)
	higher := d(200000)
	lines := []models.CartLine{
		{Quantity: 2, UnitPrice: d(100000), DiscountedUnitPrice: &sale},
		{Quantity: 1, UnitPrice: d(150000), DiscountedUnitPrice: &higher},
		{Quantity: 3, UnitPrice: d(10000)},
	}
	if got := Subtotal(lines); !got.Equal(d(360000)) {
		t.Errorf("Subtotal = %s, want 360000", got)
	}
	if got := ItemCount(lines); got != 6 {
		t.Errorf("ItemCount = %d, want 6", got)
	}
}

func TestFormatVND(t *testing.T) {
	tests := map[int64]string{
		0:        "0 ₫",
		999:      "999 ₫",
		1000:     "1.000 ₫",
		1234567:  "1.234.567 ₫",
		-25000:   "-25.000 ₫",
		10000000: "10.000.000 ₫",
	}
	for in, want := range tests {
		if got := FormatVND(d(in)); got != want {
			t.Errorf("FormatVND(%d) = %q, want %q", in, got, want)
		}
	}
}
