package handlers

import (
	"net/http"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/favorites"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/inflight"
)

// Router wires the public storefront and the /admin console onto one mux.
type Router struct {
	Base
	StaticDir     string
	ImageMaxWidth uint
	// AuthLimit throttles login and register posts, ContactLimit the contact form.
	AuthLimit    time.Duration
	ContactLimit time.Duration
	Now          func() time.Time
}

func (rt Router) Handler() *http.ServeMux {
	shop := &ShopHandler{Base: rt.Base, Favorites: favorites.NewGuard(), Now: rt.Now}
	account := &AccountHandler{Base: rt.Base}
	admin := &AdminHandler{Base: rt.Base, Fetches: inflight.NewGroup(), ImageMaxWidth: rt.ImageMaxWidth}

	mux := http.NewServeMux()

	if rt.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(rt.StaticDir))
		mux.Handle("GET /static/", http.StripPrefix("/static", fileServer))
	}

	authLimit := limiter(rt.AuthLimit)
	contactLimit := limiter(rt.ContactLimit)
	user := rt.RequireUser
	adminOnly := rt.RequireAdmin

	// Public Routes
	mux.HandleFunc("GET /", shop.Index)
	mux.HandleFunc("GET /products", shop.Products)
	mux.HandleFunc("GET /products/{id}", shop.ProductDetail)
	mux.HandleFunc("GET /categories/{id}", shop.CategoryView)
	mux.HandleFunc("GET /vouchers", shop.Vouchers)
	mux.HandleFunc("GET /contact", shop.ContactForm)
	mux.HandleFunc("POST /contact", contactLimit(shop.SubmitContact))

	mux.HandleFunc("GET /login", account.LoginForm)
	mux.HandleFunc("POST /login", authLimit(account.Login))
	mux.HandleFunc("GET /register", account.RegisterForm)
	mux.HandleFunc("POST /register", authLimit(account.Register))
	mux.HandleFunc("POST /logout", account.Logout)

	// Signed-in Routes
	mux.HandleFunc("POST /favorites/toggle", user(shop.ToggleFavorite))
	mux.HandleFunc("GET /cart", user(shop.Cart))
	mux.HandleFunc("POST /cart/add", user(shop.AddToCart))
	mux.HandleFunc("POST /cart/update", user(shop.UpdateCart))
	mux.HandleFunc("POST /cart/remove", user(shop.RemoveFromCart))
	mux.HandleFunc("GET /checkout", user(shop.Checkout))
	mux.HandleFunc("POST /checkout", user(shop.PlaceOrder))
	mux.HandleFunc("GET /profile", user(account.Profile))
	mux.HandleFunc("POST /profile", user(account.UpdateProfile))
	mux.HandleFunc("GET /orders", user(account.Orders))
	mux.HandleFunc("GET /orders/{id}", user(account.OrderDetail))

	// Admin Routes
	mux.HandleFunc("GET /admin", adminOnly(admin.Dashboard))

	mux.HandleFunc("GET /admin/categories", adminOnly(admin.Categories))
	mux.HandleFunc("POST /admin/categories", adminOnly(admin.CreateCategory))
	mux.HandleFunc("POST /admin/categories/{id}", adminOnly(admin.UpdateCategory))
	mux.HandleFunc("POST /admin/categories/{id}/delete", adminOnly(admin.DeleteCategory))

	mux.HandleFunc("GET /admin/products", adminOnly(admin.Products))
	mux.HandleFunc("POST /admin/products", adminOnly(admin.CreateProduct))
	mux.HandleFunc("POST /admin/products/{id}", adminOnly(admin.UpdateProduct))
	mux.HandleFunc("POST /admin/products/{id}/delete", adminOnly(admin.DeleteProduct))

	mux.HandleFunc("GET /admin/vouchers", adminOnly(admin.Vouchers))
	mux.HandleFunc("POST /admin/vouchers", adminOnly(admin.CreateVoucher))
	mux.HandleFunc("POST /admin/vouchers/{id}", adminOnly(admin.UpdateVoucher))
	mux.HandleFunc("POST /admin/vouchers/{id}/delete", adminOnly(admin.DeleteVoucher))

	mux.HandleFunc("GET /admin/promotions", adminOnly(admin.Promotions))
	mux.HandleFunc("POST /admin/promotions", adminOnly(admin.CreatePromotion))
	mux.HandleFunc("POST /admin/promotions/{id}", adminOnly(admin.UpdatePromotion))
	mux.HandleFunc("POST /admin/promotions/{id}/delete", adminOnly(admin.DeletePromotion))
	mux.HandleFunc("GET /admin/promotions/{id}/products", adminOnly(admin.PromotionProducts))
	mux.HandleFunc("POST /admin/promotions/{id}/products", adminOnly(admin.AttachProducts))
	mux.HandleFunc("POST /admin/promotions/{id}/products/{pid}/delete", adminOnly(admin.DetachProduct))

	mux.HandleFunc("GET /admin/accounts", adminOnly(admin.Accounts))
	mux.HandleFunc("POST /admin/accounts/{id}", adminOnly(admin.UpdateAccount))
	mux.HandleFunc("POST /admin/accounts/{id}/delete", adminOnly(admin.DeleteAccount))

	mux.HandleFunc("GET /admin/contacts", adminOnly(admin.Contacts))
	mux.HandleFunc("POST /admin/contacts/{id}/delete", adminOnly(admin.DeleteContact))

	return mux
}

// limiter returns a rate limit wrapper, or a pass-through when window is zero.
func limiter(window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if window <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	return NewRateLimiter(window).Middleware
}
