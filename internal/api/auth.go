package api

import (
	"context"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) Result[LoginResult] {
	res := call[LoginResult](ctx, c, request{method: http.MethodPost, path: resource("DangNhap"), body: req})
	if res.Success && res.Data.Token == "" {
		return Failed[LoginResult]("Phản hồi đăng nhập không có token.")
	}
	return res
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates a customer account. Validation failures come back in
// FieldErrors keyed by form field.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodPost, path: resource("DangKy"), body: req})
}
