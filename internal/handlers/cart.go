package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/pricing"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/session"
)

const maxLineQuantity = 99

func (h *ShopHandler) Cart(w http.ResponseWriter, r *http.Request) {
	res := h.API.GetCart(r.Context())
	if !res.Success {
		h.flash(w, r, "error", res.Message)
	}
	h.render(w, r, http.StatusOK, "cart.html", map[string]interface{}{
		"Lines":     res.Data.Lines,
		"Subtotal":  pricing.Subtotal(res.Data.Lines),
		"ItemCount": pricing.ItemCount(res.Data.Lines),
	})
}

// cartQuantity reads product_id and quantity from the posted form.
func cartQuantity(r *http.Request) (productID, quantity int, ok bool) {
	productID, ok = formInt(r, "product_id")
	if !ok || productID <= 0 {
		return 0, 0, false
	}
	quantity, ok = formInt(r, "quantity")
	if !ok {
		quantity = 1
	}
	if quantity > maxLineQuantity {
		quantity = maxLineQuantity
	}
	return productID, quantity, true
}

func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	back := localReferer(r, "/cart")
	productID, quantity, ok := cartQuantity(r)
	if !ok || quantity < 1 {
		h.redirectWith(w, r, back, "error", "Số lượng không hợp lệ.")
		return
	}
	res := h.API.AddToCart(r.Context(), productID, quantity)
	if !res.Success {
		h.redirectWith(w, r, back, "error", res.Message)
		return
	}
	h.redirectWith(w, r, back, "success", "Đã thêm sản phẩm vào giỏ hàng.")
}

// UpdateCart sets a line's quantity. Zero removes the line.
func (h *ShopHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	productID, quantity, ok := cartQuantity(r)
	if !ok || quantity < 0 {
		h.redirectWith(w, r, "/cart", "error", "Số lượng không hợp lệ.")
		return
	}
	var res api.Result[struct{}]
	if quantity == 0 {
		res = h.API.RemoveCartLine(r.Context(), productID)
	} else {
		res = h.API.UpdateCartLine(r.Context(), productID, quantity)
	}
	if !res.Success {
		h.redirectWith(w, r, "/cart", "error", res.Message)
		return
	}
	h.redirectWith(w, r, "/cart", "success", "Đã cập nhật giỏ hàng.")
}

func (h *ShopHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := formInt(r, "product_id")
	if !ok || productID <= 0 {
		h.redirectWith(w, r, "/cart", "error", "Sản phẩm không hợp lệ.")
		return
	}
	res := h.API.RemoveCartLine(r.Context(), productID)
	if !res.Success {
		h.redirectWith(w, r, "/cart", "error", res.Message)
		return
	}
	h.redirectWith(w, r, "/cart", "success", "Đã xóa sản phẩm khỏi giỏ hàng.")
}

// checkoutPreview loads the cart and, when code is set, the voucher it names.
// A voucher that cannot be redeemed today is reported and left out.
func (h *ShopHandler) checkoutPreview(r *http.Request, code string) (models.Cart, pricing.Preview, string) {
	cart := h.API.GetCart(r.Context())
	subtotal := pricing.Subtotal(cart.Data.Lines)
	if !cart.Success {
		return cart.Data, pricing.PreviewFor(subtotal, nil), cart.Message
	}
	if code == "" {
		return cart.Data, pricing.PreviewFor(subtotal, nil), ""
	}
	v := h.API.LookupVoucher(r.Context(), code)
	if !v.Success {
		return cart.Data, pricing.PreviewFor(subtotal, nil), v.Message
	}
	if !pricing.Redeemable(h.now(), v.Data) {
		return cart.Data, pricing.PreviewFor(subtotal, nil), "Mã giảm giá " + v.Data.Code + " " + strings.ToLower(pricing.DisplayStatus(h.now(), v.Data).Label()) + "."
	}
	return cart.Data, pricing.PreviewFor(subtotal, &v.Data), ""
}

func (h *ShopHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("voucher")))
	cart, preview, problem := h.checkoutPreview(r, code)
	if len(cart.Lines) == 0 && problem == "" {
		h.redirectWith(w, r, "/cart", "info", "Giỏ hàng của bạn đang trống.")
		return
	}
	form := newForm(url.Values{"voucherCode": {code}, "paymentMethod": {api.PaymentCOD}})
	if user, ok := session.UserFrom(r.Context()); ok {
		form.Values.Set("recipientName", user.Name)
	}
	if problem != "" {
		form.Fail("voucherCode", problem)
	}
	h.render(w, r, http.StatusOK, "checkout.html", map[string]interface{}{
		"Lines":   cart.Lines,
		"Preview": preview,
		"Form":    form,
	})
}

func (h *ShopHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, "/checkout", "error", "Dữ liệu không hợp lệ.")
		return
	}
	form := newForm(r.PostForm)
	form.Required("recipientName", "phone", "shippingAddress")
	form.phone("phone")
	method := form.Get("paymentMethod")
	if method != api.PaymentCOD && method != api.PaymentVNPay {
		form.Fail("paymentMethod", "Phương thức thanh toán không hợp lệ.")
	}
	code := strings.ToUpper(form.Get("voucherCode"))

	if !form.Valid() {
		cart, preview, problem := h.checkoutPreview(r, code)
		if problem != "" {
			form.Fail("voucherCode", problem)
		}
		h.render(w, r, http.StatusUnprocessableEntity, "checkout.html", map[string]interface{}{
			"Lines":   cart.Lines,
			"Preview": preview,
			"Form":    form,
		})
		return
	}

	res := h.API.Checkout(r.Context(), api.CheckoutRequest{
		VoucherCode:     code,
		RecipientName:   form.Get("recipientName"),
		Phone:           strings.ReplaceAll(form.Get("phone"), " ", ""),
		ShippingAddress: form.Get("shippingAddress"),
		Note:            form.Get("note"),
		PaymentMethod:   method,
	})
	if !res.Success {
		h.redirectWith(w, r, "/checkout?voucher="+url.QueryEscape(code), "error", res.Message)
		return
	}
	if res.Data.PaymentURL != "" {
		http.Redirect(w, r, res.Data.PaymentURL, http.StatusSeeOther)
		return
	}
	h.redirectWith(w, r, "/orders", "success", "Đặt hàng thành công!")
}
