package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/favorites"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/pricing"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/session"
	"golang.org/x/sync/errgroup"
)

const homeProductCount = 8

type ShopHandler struct {
	Base
	Favorites *favorites.Guard
	Now       func() time.Time
}

func (h *ShopHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// loadFavorites fetches the favorite set of the signed-in user. Anonymous
// visitors and failed lookups get an empty set.
func (h *ShopHandler) loadFavorites(ctx context.Context) *favorites.Set {
	if _, ok := session.UserFrom(ctx); !ok {
		return favorites.NewSet(nil)
	}
	res := h.API.FavoriteIDs(ctx)
	if !res.Success {
		slog.Warn("Failed to load favorites", "message", res.Message)
		return favorites.NewSet(nil)
	}
	return favorites.NewSet(res.Data)
}

func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var (
		categories api.Result[[]models.Category]
		products   api.Result[models.Page[models.Product]]
		favs       *favorites.Set
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		categories = h.API.AllCategories(ctx)
		return nil
	})
	g.Go(func() error {
		products = h.API.ListProducts(ctx, api.ProductQuery{Page: 1, PageSize: homeProductCount})
		return nil
	})
	g.Go(func() error {
		favs = h.loadFavorites(ctx)
		return nil
	})
	g.Wait()

	if !products.Success {
		h.flash(w, r, "error", products.Message)
	}
	h.render(w, r, http.StatusOK, "home.html", map[string]interface{}{
		"Categories": categories.Data,
		"Products":   products.Data.Items,
		"Favorites":  favs,
	})
}

func (h *ShopHandler) Products(w http.ResponseWriter, r *http.Request) {
	state := paging.ParseState(r.URL.Query())
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("category"))
	keyword := state.SearchTerm

	var (
		categories api.Result[[]models.Category]
		products   api.Result[models.Page[models.Product]]
		favs       *favorites.Set
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		categories = h.API.AllCategories(ctx)
		return nil
	})
	g.Go(func() error {
		products = h.API.ListProducts(ctx, api.ProductQuery{
			Page:       state.CurrentPage,
			PageSize:   state.PageSize,
			CategoryID: categoryID,
			Keyword:    keyword,
		})
		return nil
	})
	g.Go(func() error {
		favs = h.loadFavorites(ctx)
		return nil
	})
	g.Wait()

	if !products.Success {
		h.flash(w, r, "error", products.Message)
	}
	state.Total = products.Data.Total
	state = state.Clamp()
	h.render(w, r, http.StatusOK, "products.html", map[string]interface{}{
		"Categories": categories.Data,
		"Products":   paging.Limit(products.Data.Items, state.PageSize),
		"Favorites":  favs,
		"State":      state,
		"CategoryID": categoryID,
		"Base":       productsBase(categoryID),
	})
}

// productsBase is the product list path with the category filter applied.
func productsBase(categoryID int) string {
	if categoryID > 0 {
		return "/products?category=" + strconv.Itoa(categoryID)
	}
	return "/products"
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	res := h.API.GetProduct(r.Context(), id)
	if !res.Success {
		h.redirectWith(w, r, "/products", "error", res.Message)
		return
	}

	var (
		category api.Result[models.Category]
		related  api.Result[models.Page[models.Product]]
		favs     *favorites.Set
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		category = h.API.GetCategory(ctx, res.Data.CategoryID)
		return nil
	})
	g.Go(func() error {
		related = h.API.ListProducts(ctx, api.ProductQuery{Page: 1, PageSize: 5, CategoryID: res.Data.CategoryID})
		return nil
	})
	g.Go(func() error {
		favs = h.loadFavorites(ctx)
		return nil
	})
	g.Wait()

	relatedItems := make([]models.Product, 0, len(related.Data.Items))
	for _, p := range related.Data.Items {
		if p.ID != id {
			relatedItems = append(relatedItems, p)
		}
	}
	h.render(w, r, http.StatusOK, "product.html", map[string]interface{}{
		"Product":   res.Data,
		"Category":  category.Data,
		"Related":   relatedItems,
		"Favorites": favs,
	})
}

// CategoryView lists every product the backend returns for the category.
func (h *ShopHandler) CategoryView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	state := paging.ParseState(r.URL.Query())

	var (
		category api.Result[models.Category]
		products api.Result[models.Page[models.Product]]
		favs     *favorites.Set
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		category = h.API.GetCategory(ctx, id)
		return nil
	})
	g.Go(func() error {
		products = h.API.CategoryProducts(ctx, id, state.CurrentPage, state.PageSize)
		return nil
	})
	g.Go(func() error {
		favs = h.loadFavorites(ctx)
		return nil
	})
	g.Wait()

	if !category.Success {
		h.redirectWith(w, r, "/products", "error", category.Message)
		return
	}
	if !products.Success {
		h.flash(w, r, "error", products.Message)
	}
	state.Total = products.Data.Total
	state = state.Clamp()
	h.render(w, r, http.StatusOK, "category.html", map[string]interface{}{
		"Category":  category.Data,
		"Products":  paging.Limit(products.Data.Items, state.PageSize),
		"Favorites": favs,
		"State":     state,
		"Base":      "/categories/" + strconv.Itoa(id),
	})
}

// ToggleFavorite flips one product's favorite state and returns to the page
// it was clicked on. A second click while the first is pending is refused.
func (h *ShopHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	back := localReferer(r, "/")
	productID, ok := formInt(r, "product_id")
	if !ok || productID <= 0 {
		h.redirectWith(w, r, back, "error", "Sản phẩm không hợp lệ.")
		return
	}

	key := h.Sessions.ID(w, r) + ":" + strconv.Itoa(productID)
	release, acquired := h.Favorites.Acquire(key)
	if !acquired {
		h.redirectWith(w, r, back, "info", "Đang cập nhật yêu thích, vui lòng đợi.")
		return
	}
	defer release()

	res := h.API.ToggleFavorite(r.Context(), productID)
	if !res.Success {
		h.redirectWith(w, r, back, "error", res.Message)
		return
	}
	if res.Data {
		h.redirectWith(w, r, back, "success", "Đã thêm vào danh sách yêu thích.")
	} else {
		h.redirectWith(w, r, back, "success", "Đã bỏ khỏi danh sách yêu thích.")
	}
}

func (h *ShopHandler) Vouchers(w http.ResponseWriter, r *http.Request) {
	res := h.API.AvailableVouchers(r.Context())
	if !res.Success {
		h.flash(w, r, "error", res.Message)
	}
	type row struct {
		Voucher models.Voucher
		Status  pricing.Status
	}
	rows := make([]row, 0, len(res.Data))
	for _, v := range res.Data {
		rows = append(rows, row{Voucher: v, Status: pricing.DisplayStatus(h.now(), v)})
	}
	h.render(w, r, http.StatusOK, "vouchers.html", map[string]interface{}{
		"Vouchers": rows,
	})
}

func (h *ShopHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact.html", map[string]interface{}{
		"Form": newForm(nil),
	})
}

func (h *ShopHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, "/contact", "error", "Dữ liệu không hợp lệ.")
		return
	}
	form := newForm(r.PostForm)
	contact := contactFromForm(form)
	if !form.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "contact.html", map[string]interface{}{"Form": form})
		return
	}

	res := h.API.SendContact(r.Context(), contact)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.render(w, r, http.StatusOK, "contact.html", map[string]interface{}{"Form": form})
		return
	}
	h.redirectWith(w, r, "/contact", "success", "Cảm ơn bạn đã liên hệ! Chúng tôi sẽ phản hồi sớm.")
}
