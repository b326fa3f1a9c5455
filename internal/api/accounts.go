package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func (c *Client) ListAccounts(ctx context.Context, page, pageSize int) Result[models.Page[models.Account]] {
	return callPage[models.Account](ctx, c, request{
		method: http.MethodGet,
		path:   resource("TaiKhoan"),
		query:  pageQuery(page, pageSize),
	}, page, pageSize)
}

func (c *Client) GetAccount(ctx context.Context, id int) Result[models.Account] {
	return call[models.Account](ctx, c, request{method: http.MethodGet, path: resource("TaiKhoan", id)})
}

func (c *Client) UpdateAccount(ctx context.Context, account models.Account) Result[models.Account] {
	return call[models.Account](ctx, c, request{
		method: http.MethodPut,
		path:   resource("TaiKhoan", account.ID),
		body:   account,
	})
}

func (c *Client) DeleteAccount(ctx context.Context, id int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("TaiKhoan", id)})
}

// ListAccountTypes is the side lookup used to resolve Account.AccountTypeID.
func (c *Client) ListAccountTypes(ctx context.Context) Result[[]models.AccountType] {
	return call[[]models.AccountType](ctx, c, request{method: http.MethodGet, path: resource("LoaiTaiKhoan")})
}

// ResolveAccountTypes fills AccountTypeName from the lookup list.
func ResolveAccountTypes(accounts []models.Account, types []models.AccountType) {
	names := make(map[int]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	for i := range accounts {
		accounts[i].AccountTypeName = names[accounts[i].AccountTypeID]
	}
}
