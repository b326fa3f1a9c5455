package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func (c *Client) ListVouchers(ctx context.Context, page, pageSize int) Result[models.Page[models.Voucher]] {
	return callPage[models.Voucher](ctx, c, request{
		method: http.MethodGet,
		path:   resource("PhieuGiamGia"),
		query:  pageQuery(page, pageSize),
	}, page, pageSize)
}

// AvailableVouchers lists the vouchers a customer can currently redeem.
func (c *Client) AvailableVouchers(ctx context.Context) Result[[]models.Voucher] {
	return call[[]models.Voucher](ctx, c, request{method: http.MethodGet, path: resource("PhieuGiamGia", "KhaDung")})
}

func (c *Client) GetVoucher(ctx context.Context, id int) Result[models.Voucher] {
	return call[models.Voucher](ctx, c, request{method: http.MethodGet, path: resource("PhieuGiamGia", id)})
}

// LookupVoucher finds a voucher by its redeemable code.
func (c *Client) LookupVoucher(ctx context.Context, code string) Result[models.Voucher] {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Failed[models.Voucher]("Vui lòng nhập mã giảm giá.")
	}
	return call[models.Voucher](ctx, c, request{method: http.MethodGet, path: resource("PhieuGiamGia", "Ma", code)})
}

func (c *Client) CreateVoucher(ctx context.Context, v models.Voucher) Result[models.Voucher] {
	return call[models.Voucher](ctx, c, request{method: http.MethodPost, path: resource("PhieuGiamGia"), body: v})
}

func (c *Client) UpdateVoucher(ctx context.Context, v models.Voucher) Result[models.Voucher] {
	return call[models.Voucher](ctx, c, request{method: http.MethodPut, path: resource("PhieuGiamGia", v.ID), body: v})
}

func (c *Client) DeleteVoucher(ctx context.Context, id int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("PhieuGiamGia", id)})
}
