package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func toggleFavorite(t *testing.T, b *browser, productID string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/favorites/toggle", strings.NewReader("product_id="+productID))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/products/"+productID)
	expectRedirect(t, b.do(req), "/products/"+productID)
}

func TestToggleFavoriteTwiceRestoresFlag(t *testing.T) {
	backend := newFakeBackend()
	backend.products = []models.Product{{ID: 5, Name: "Chuột không dây", Price: decimal.NewFromInt(350000), Stock: 4, CategoryID: 1}}
	b := newTestApp(t, backend)
	signIn(t, b, "khach@shop.vn")

	pressed := func() string {
		t.Helper()
		rec := b.get("/products/5")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		switch {
		case strings.Contains(body, `aria-pressed="true"`):
			return "true"
		case strings.Contains(body, `aria-pressed="false"`):
			return "false"
		}
		t.Fatal("Expected a favorite button on the product page")
		return ""
	}

	if got := pressed(); got != "false" {
		t.Fatalf("Expected product 5 not to start as a favorite, got %s", got)
	}
	toggleFavorite(t, b, "5")
	if got := pressed(); got != "true" {
		t.Errorf("Expected product 5 to show as a favorite after one toggle, got %s", got)
	}
	toggleFavorite(t, b, "5")
	if got := pressed(); got != "false" {
		t.Errorf("Expected the second toggle to restore the flag, got %s", got)
	}
}

// checkoutBackend has one line of 1.000.000 ₫ and a voucher per case.
func checkoutBackend(t *testing.T) *fakeBackend {
	t.Helper()
	backend := newFakeBackend()
	backend.cart = []models.CartLine{{ProductID: 5, ProductName: "Bàn phím cơ", Quantity: 1, UnitPrice: decimal.NewFromInt(1000000)}}
	backend.vouchers = []models.Voucher{
		{ID: 1, Code: "BIG", DiscountKind: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(150),
			StartDate: day(t, "2024-05-01"), EndDate: day(t, "2024-12-31"), Remaining: 5, Active: true},
		{ID: 2, Code: "OLD", DiscountKind: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10),
			StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-05-01"), Remaining: 5, Active: true},
		{ID: 3, Code: "SOON", DiscountKind: models.DiscountFixed, DiscountValue: decimal.NewFromInt(50000),
			StartDate: day(t, "2024-07-01"), EndDate: day(t, "2024-07-31"), Remaining: 5, Active: true},
	}
	return backend
}

func TestCheckoutCapsPercentageVoucher(t *testing.T) {
	b := newTestApp(t, checkoutBackend(t))
	signIn(t, b, "khach@shop.vn")

	rec := b.get("/checkout?voucher=big")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "-990.000 ₫") {
		t.Error("Expected the discount capped at 99% of the subtotal")
	}
	if !strings.Contains(body, "<strong>10.000 ₫</strong>") {
		t.Error("Expected a total of 10.000 ₫")
	}
}

func TestCheckoutRejectsUnredeemableVoucher(t *testing.T) {
	tests := []struct {
		code    string
		message string
	}{
		{"OLD", "Mã giảm giá OLD hết hạn."},
		{"SOON", "Mã giảm giá SOON sắp diễn ra."},
		{"NOPE", "Mã giảm giá không tồn tại."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			b := newTestApp(t, checkoutBackend(t))
			signIn(t, b, "khach@shop.vn")

			rec := b.get("/checkout?voucher=" + tt.code)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.message) {
				t.Errorf("Expected %q on the checkout page", tt.message)
			}
			if strings.Contains(body, "Giảm giá (") {
				t.Error("Expected no discount line for a rejected voucher")
			}
			if !strings.Contains(body, "<strong>1.000.000 ₫</strong>") {
				t.Error("Expected the undiscounted total")
			}
		})
	}
}

func checkoutForm(method string) url.Values {
	return url.Values{
		"recipientName":   {"Nguyễn Văn A"},
		"phone":           {"0901 234 567"},
		"shippingAddress": {"12 Lê Lợi, Quận 1"},
		"paymentMethod":   {method},
		"voucherCode":     {"big"},
	}
}

func TestPlaceOrderFollowsPaymentURL(t *testing.T) {
	backend := checkoutBackend(t)
	b := newTestApp(t, backend)
	signIn(t, b, "khach@shop.vn")

	expectRedirect(t, b.post("/checkout", checkoutForm(api.PaymentVNPay)), "https://pay.example/vnpay?order=1")
	if len(backend.orders) != 1 {
		t.Fatalf("Expected one order, got %d", len(backend.orders))
	}
	order := backend.orders[0]
	if order.VoucherCode != "BIG" || order.Phone != "0901234567" {
		t.Errorf("Unexpected checkout request %+v", order)
	}

	expectRedirect(t, b.post("/checkout", checkoutForm(api.PaymentCOD)), "/orders")
}

func TestPlaceOrderValidation(t *testing.T) {
	backend := checkoutBackend(t)
	b := newTestApp(t, backend)
	signIn(t, b, "khach@shop.vn")

	form := checkoutForm("momo")
	form.Set("phone", "123")
	rec := b.post("/checkout", form)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, msg := range []string{"Số điện thoại không hợp lệ.", "Phương thức thanh toán không hợp lệ."} {
		if !strings.Contains(body, msg) {
			t.Errorf("Expected %q on the checkout page", msg)
		}
	}
	if len(backend.orders) != 0 {
		t.Errorf("Expected no order, got %d", len(backend.orders))
	}
}
