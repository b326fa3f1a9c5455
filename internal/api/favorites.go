package api

import (
	"context"
	"net/http"
)

// FavoriteIDs returns the product ids the signed-in user marked as favorite.
func (c *Client) FavoriteIDs(ctx context.Context) Result[[]int] {
	res := call[[]int](ctx, c, request{method: http.MethodGet, path: resource("YeuThich")})
	if res.Success && res.Data == nil {
		res.Data = []int{}
	}
	return res
}

type toggleFavorite struct {
	IsFavorite bool `json:"isFavorite"`
}

// ToggleFavorite flips the favorite state and returns the new state.
func (c *Client) ToggleFavorite(ctx context.Context, productID int) Result[bool] {
	res := call[toggleFavorite](ctx, c, request{method: http.MethodPost, path: resource("YeuThich", productID)})
	return Result[bool]{Success: res.Success, Message: res.Message, Data: res.Data.IsFavorite}
}
