package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func (c *Client) SendContact(ctx context.Context, contact models.Contact) Result[models.Contact] {
	return call[models.Contact](ctx, c, request{method: http.MethodPost, path: resource("LienHe"), body: contact})
}

func (c *Client) ListContacts(ctx context.Context, page, pageSize int) Result[models.Page[models.Contact]] {
	return callPage[models.Contact](ctx, c, request{
		method: http.MethodGet,
		path:   resource("LienHe"),
		query:  pageQuery(page, pageSize),
	}, page, pageSize)
}

func (c *Client) DeleteContact(ctx context.Context, id int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("LienHe", id)})
}
