package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func (c *Client) GetCart(ctx context.Context) Result[models.Cart] {
	res := call[models.Cart](ctx, c, request{method: http.MethodGet, path: resource("GioHang")})
	if res.Success && res.Data.Lines == nil {
		res.Data.Lines = []models.CartLine{}
	}
	return res
}

func (c *Client) AddToCart(ctx context.Context, productID, quantity int) Result[struct{}] {
	return call[struct{}](ctx, c, request{
		method: http.MethodPost,
		path:   resource("GioHang"),
		body:   map[string]int{"productId": productID, "quantity": quantity},
	})
}

func (c *Client) UpdateCartLine(ctx context.Context, productID, quantity int) Result[struct{}] {
	return call[struct{}](ctx, c, request{
		method: http.MethodPut,
		path:   resource("GioHang", productID),
		body:   map[string]int{"quantity": quantity},
	})
}

func (c *Client) RemoveCartLine(ctx context.Context, productID int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("GioHang", productID)})
}
