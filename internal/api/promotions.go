package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func (c *Client) ListPromotions(ctx context.Context, page, pageSize int) Result[models.Page[models.Promotion]] {
	return callPage[models.Promotion](ctx, c, request{
		method: http.MethodGet,
		path:   resource("KhuyenMai"),
		query:  pageQuery(page, pageSize),
	}, page, pageSize)
}

func (c *Client) GetPromotion(ctx context.Context, id int) Result[models.Promotion] {
	return call[models.Promotion](ctx, c, request{method: http.MethodGet, path: resource("KhuyenMai", id)})
}

func (c *Client) CreatePromotion(ctx context.Context, p models.Promotion) Result[models.Promotion] {
	return call[models.Promotion](ctx, c, request{method: http.MethodPost, path: resource("KhuyenMai"), body: p})
}

func (c *Client) UpdatePromotion(ctx context.Context, p models.Promotion) Result[models.Promotion] {
	return call[models.Promotion](ctx, c, request{method: http.MethodPut, path: resource("KhuyenMai", p.ID), body: p})
}

func (c *Client) DeletePromotion(ctx context.Context, id int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("KhuyenMai", id)})
}

// AttachProducts adds products to the promotion.
func (c *Client) AttachProducts(ctx context.Context, promotionID int, productIDs []int) Result[struct{}] {
	return call[struct{}](ctx, c, request{
		method: http.MethodPost,
		path:   resource("KhuyenMai", promotionID, "SanPham"),
		body:   map[string][]int{"productIds": productIDs},
	})
}

// DetachProduct removes one product from the promotion.
func (c *Client) DetachProduct(ctx context.Context, promotionID, productID int) Result[struct{}] {
	return call[struct{}](ctx, c, request{
		method: http.MethodDelete,
		path:   resource("KhuyenMai", promotionID, "SanPham", productID),
	})
}
