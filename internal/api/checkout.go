package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

const (
	PaymentCOD   = "cod"
	PaymentVNPay = "vnpay"
)

type CheckoutRequest struct {
	VoucherCode     string `json:"voucherCode,omitempty"`
	RecipientName   string `json:"recipientName"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shippingAddress"`
	Note            string `json:"note,omitempty"`
	PaymentMethod   string `json:"paymentMethod"`
}

// CheckoutResult carries the new order and, for online payment, the gateway URL to follow.
type CheckoutResult struct {
	OrderID    int    `json:"orderId"`
	PaymentURL string `json:"paymentUrl"`
}

func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) Result[CheckoutResult] {
	return call[CheckoutResult](ctx, c, request{method: http.MethodPost, path: resource("ThanhToan"), body: req})
}

func (c *Client) OrderHistory(ctx context.Context) Result[[]models.Order] {
	res := call[[]models.Order](ctx, c, request{method: http.MethodGet, path: resource("DonHang")})
	if res.Success && res.Data == nil {
		res.Data = []models.Order{}
	}
	return res
}

func (c *Client) GetOrder(ctx context.Context, id int) Result[models.Order] {
	return call[models.Order](ctx, c, request{method: http.MethodGet, path: resource("DonHang", id)})
}
