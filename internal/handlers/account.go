package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/session"
)

type AccountHandler struct {
	Base
}

func (h *AccountHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	form := newForm(url.Values{"next": {safeNext(r.URL.Query().Get("next"))}})
	h.render(w, r, http.StatusOK, "login.html", map[string]interface{}{"Form": form})
}

// Login signs the user in against the backend. Admin accounts land on the
// dashboard, everyone else on the page they came from.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, "/login", "error", "Dữ liệu không hợp lệ.")
		return
	}
	form := newForm(r.PostForm)
	form.Required("email", "password")
	form.email("email")
	if !form.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "login.html", map[string]interface{}{"Form": form})
		return
	}

	res := h.API.Login(r.Context(), api.LoginRequest{
		Email:    form.Get("email"),
		Password: form.Values.Get("password"),
	})
	if !res.Success {
		slog.Info("Login failed", "email", form.Get("email"), "message", res.Message)
		h.flash(w, r, "error", res.Message)
		h.render(w, r, http.StatusOK, "login.html", map[string]interface{}{"Form": form})
		return
	}

	remember := form.checked("remember")
	if err := h.Sessions.SignIn(w, r, res.Data.Token, res.Data.User, remember); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	target := "/"
	if res.Data.User.IsAdmin() {
		target = "/admin"
	} else if next := safeNext(form.Get("next")); next != "" {
		target = next
	}
	slog.Info("Login successful", "user_id", res.Data.User.ID, "role", res.Data.User.Role, "redirect", target)
	h.redirectWith(w, r, target, "success", "Xin chào, "+res.Data.User.Name+"!")
}

func (h *AccountHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", map[string]interface{}{"Form": newForm(nil)})
}

// Register creates a customer account. Field errors from the backend are shown
// next to their inputs, first message per field.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, "/register", "error", "Dữ liệu không hợp lệ.")
		return
	}
	form := newForm(r.PostForm)
	name, email, phone, password, confirm := registerFromForm(form)
	if !form.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "register.html", map[string]interface{}{"Form": form})
		return
	}

	res := h.API.Register(r.Context(), api.RegisterRequest{
		Name:            name,
		Email:           email,
		Phone:           phone,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if !res.Success {
		for field, msgs := range res.FieldErrors {
			if len(msgs) > 0 {
				form.Fail(field, msgs[0])
			}
		}
		h.flash(w, r, "error", res.Message)
		h.render(w, r, http.StatusUnprocessableEntity, "register.html", map[string]interface{}{"Form": form})
		return
	}
	h.redirectWith(w, r, "/login", "success", "Đăng ký thành công! Vui lòng đăng nhập.")
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
	h.redirectWith(w, r, "/login", "success", "Bạn đã đăng xuất.")
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFrom(r.Context())
	res := h.API.GetAccount(r.Context(), user.ID)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
	}
	form := newForm(url.Values{
		"name":    {res.Data.Name},
		"email":   {res.Data.Email},
		"phone":   {res.Data.Phone},
		"address": {res.Data.Address},
	})
	h.render(w, r, http.StatusOK, "profile.html", map[string]interface{}{
		"Account": res.Data,
		"Form":    form,
	})
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, "/profile", "error", "Dữ liệu không hợp lệ.")
		return
	}
	current := h.API.GetAccount(r.Context(), user.ID)
	if !current.Success {
		h.redirectWith(w, r, "/profile", "error", current.Message)
		return
	}

	form := newForm(r.PostForm)
	form.Values.Set("accountTypeId", "")
	account := accountFromForm(form)
	if !form.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "profile.html", map[string]interface{}{
			"Account": current.Data,
			"Form":    form,
		})
		return
	}
	account.ID = user.ID
	account.AccountTypeID = current.Data.AccountTypeID

	res := h.API.UpdateAccount(r.Context(), account)
	if !res.Success {
		h.redirectWith(w, r, "/profile", "error", res.Message)
		return
	}

	// keep the header name in step with the profile
	token := h.Sessions.Token(r)
	user.Name = account.Name
	user.Email = account.Email
	if err := h.Sessions.SignIn(w, r, token, user, h.Sessions.RememberMe(r)); err != nil {
		slog.Error("Failed to refresh session profile", "error", err)
	}
	h.redirectWith(w, r, "/profile", "success", "Đã cập nhật thông tin cá nhân.")
}

func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	res := h.API.OrderHistory(r.Context())
	if !res.Success {
		h.flash(w, r, "error", res.Message)
	}
	h.render(w, r, http.StatusOK, "orders.html", map[string]interface{}{
		"Orders": res.Data,
	})
}

func (h *AccountHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	res := h.API.GetOrder(r.Context(), id)
	if !res.Success {
		h.redirectWith(w, r, "/orders", "error", res.Message)
		return
	}
	h.render(w, r, http.StatusOK, "order.html", map[string]interface{}{
		"Order": res.Data,
	})
}
