package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func (c *Client) ListCategories(ctx context.Context, page, pageSize int) Result[models.Page[models.Category]] {
	return callPage[models.Category](ctx, c, request{
		method: http.MethodGet,
		path:   resource("DanhMuc"),
		query:  pageQuery(page, pageSize),
	}, page, pageSize)
}

// AllCategories fetches the unpaginated list used by menus and dropdowns.
func (c *Client) AllCategories(ctx context.Context) Result[[]models.Category] {
	res := callPage[models.Category](ctx, c, request{method: http.MethodGet, path: resource("DanhMuc")}, 1, 0)
	return Result[[]models.Category]{Success: res.Success, Message: res.Message, Data: res.Data.Items}
}

func (c *Client) GetCategory(ctx context.Context, id int) Result[models.Category] {
	return call[models.Category](ctx, c, request{method: http.MethodGet, path: resource("DanhMuc", id)})
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) Result[models.Category] {
	return call[models.Category](ctx, c, request{method: http.MethodPost, path: resource("DanhMuc"), body: category})
}

func (c *Client) UpdateCategory(ctx context.Context, category models.Category) Result[models.Category] {
	return call[models.Category](ctx, c, request{
		method: http.MethodPut,
		path:   resource("DanhMuc", category.ID),
		body:   category,
	})
}

func (c *Client) DeleteCategory(ctx context.Context, id int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("DanhMuc", id)})
}

func (c *Client) CategoryProducts(ctx context.Context, categoryID, page, pageSize int) Result[models.Page[models.Product]] {
	return callPage[models.Product](ctx, c, request{
		method: http.MethodGet,
		path:   resource("DanhMuc", categoryID, "SanPham"),
		query:  pageQuery(page, pageSize),
	}, page, pageSize)
}
