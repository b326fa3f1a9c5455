package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
)

const (
	vouchersPath   = "/admin/vouchers"
	promotionsPath = "/admin/promotions"
)

// Vouchers

func voucherFields(v models.Voucher) []string { return []string{v.Code, v.Description} }
func voucherID(v models.Voucher) int          { return v.ID }

func voucherValues(v models.Voucher) url.Values {
	discount := v.DiscountValue.String()
	if v.DiscountKind == models.DiscountFixed {
		discount = moneyValue(v.DiscountValue)
	}
	values := url.Values{
		"code":          {v.Code},
		"description":   {v.Description},
		"discountKind":  {string(v.DiscountKind)},
		"discountValue": {discount},
		"startDate":     {v.StartDate.FormValue()},
		"endDate":       {v.EndDate.FormValue()},
		"remaining":     {strconv.Itoa(v.Remaining)},
	}
	if v.Active {
		values.Set("active", "on")
	}
	return values
}

func (h *AdminHandler) vouchersPage(w http.ResponseWriter, r *http.Request, status int, state paging.State, modal Modal, form *Form) {
	list, ok := fetchList(h, w, r, "vouchers", state, h.API.ListVouchers, voucherFields)
	if !ok {
		superseded(w)
		return
	}
	if r.Method == http.MethodGet && list.Stale() {
		http.Redirect(w, r, listURL(vouchersPath, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}

	var target models.Voucher
	if modal.Editing() || modal.Confirming() {
		found, ok := findByID(list.Items, modal.ID, voucherID)
		if !ok {
			res := h.API.GetVoucher(r.Context(), modal.ID)
			if !res.Success {
				h.redirectWith(w, r, listURL(vouchersPath, list.State, list.State.CurrentPage), "error", res.Message)
				return
			}
			found = res.Data
		}
		target = found
		if form == nil {
			form = newForm(voucherValues(found))
		}
	}
	if form == nil {
		form = newForm(url.Values{"discountKind": {string(models.DiscountPercentage)}, "active": {"on"}})
	}

	h.render(w, r, status, "admin_vouchers.html", map[string]interface{}{
		"List":   list,
		"Base":   vouchersPath,
		"Modal":  modal,
		"Form":   form,
		"Target": target,
	})
}

func (h *AdminHandler) Vouchers(w http.ResponseWriter, r *http.Request) {
	h.vouchersPage(w, r, http.StatusOK, paging.ParseState(r.URL.Query()), ParseModal(r.URL.Query()), nil)
}

func (h *AdminHandler) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, vouchersPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	modal := Modal{Mode: ModalAdding}
	form := newForm(r.PostForm)
	voucher := voucherFromForm(form)
	if !form.Valid() {
		h.vouchersPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	res := h.API.CreateVoucher(r.Context(), voucher)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.vouchersPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, vouchersPath, state, "Đã thêm phiếu giảm giá "+voucher.Code+".")
}

func (h *AdminHandler) UpdateVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || r.ParseForm() != nil {
		h.redirectWith(w, r, vouchersPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	modal := Modal{Mode: ModalEditing, ID: id}
	form := newForm(r.PostForm)
	voucher := voucherFromForm(form)
	if !form.Valid() {
		h.vouchersPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	voucher.ID = id
	res := h.API.UpdateVoucher(r.Context(), voucher)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.vouchersPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, vouchersPath, state, "Đã cập nhật phiếu giảm giá "+voucher.Code+".")
}

func (h *AdminHandler) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, vouchersPath, "error", "Phiếu giảm giá không hợp lệ.")
		return
	}
	state := listState(r)
	h.afterDelete(w, r, vouchersPath, state, h.API.DeleteVoucher(r.Context(), id), "Đã xóa phiếu giảm giá.")
}

// Promotions

func promotionFields(p models.Promotion) []string { return []string{p.Name, p.Description} }
func promotionID(p models.Promotion) int          { return p.ID }

func promotionValues(p models.Promotion) url.Values {
	return url.Values{
		"name":        {p.Name},
		"description": {p.Description},
		"percentOff":  {p.PercentOff.String()},
		"startDate":   {p.StartDate.FormValue()},
		"endDate":     {p.EndDate.FormValue()},
	}
}

func (h *AdminHandler) promotionsPage(w http.ResponseWriter, r *http.Request, status int, state paging.State, modal Modal, form *Form) {
	list, ok := fetchList(h, w, r, "promotions", state, h.API.ListPromotions, promotionFields)
	if !ok {
		superseded(w)
		return
	}
	if r.Method == http.MethodGet && list.Stale() {
		http.Redirect(w, r, listURL(promotionsPath, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}

	var target models.Promotion
	if modal.Editing() || modal.Confirming() {
		found, ok := findByID(list.Items, modal.ID, promotionID)
		if !ok {
			res := h.API.GetPromotion(r.Context(), modal.ID)
			if !res.Success {
				h.redirectWith(w, r, listURL(promotionsPath, list.State, list.State.CurrentPage), "error", res.Message)
				return
			}
			found = res.Data
		}
		target = found
		if form == nil {
			form = newForm(promotionValues(found))
		}
	}
	if form == nil {
		form = newForm(nil)
	}

	h.render(w, r, status, "admin_promotions.html", map[string]interface{}{
		"List":   list,
		"Base":   promotionsPath,
		"Modal":  modal,
		"Form":   form,
		"Target": target,
	})
}

func (h *AdminHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	h.promotionsPage(w, r, http.StatusOK, paging.ParseState(r.URL.Query()), ParseModal(r.URL.Query()), nil)
}

func (h *AdminHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, promotionsPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	modal := Modal{Mode: ModalAdding}
	form := newForm(r.PostForm)
	promotion := promotionFromForm(form)
	if !form.Valid() {
		h.promotionsPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	res := h.API.CreatePromotion(r.Context(), promotion)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.promotionsPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, promotionsPath, state, "Đã thêm khuyến mãi "+promotion.Name+".")
}

func (h *AdminHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || r.ParseForm() != nil {
		h.redirectWith(w, r, promotionsPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	modal := Modal{Mode: ModalEditing, ID: id}
	form := newForm(r.PostForm)
	promotion := promotionFromForm(form)
	if !form.Valid() {
		h.promotionsPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	promotion.ID = id
	res := h.API.UpdatePromotion(r.Context(), promotion)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.promotionsPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, promotionsPath, state, "Đã cập nhật khuyến mãi "+promotion.Name+".")
}

func (h *AdminHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, promotionsPath, "error", "Khuyến mãi không hợp lệ.")
		return
	}
	state := listState(r)
	h.afterDelete(w, r, promotionsPath, state, h.API.DeletePromotion(r.Context(), id), "Đã xóa khuyến mãi.")
}

// promotionProductsPath is the attach screen of one promotion.
func promotionProductsPath(id int) string {
	return promotionsPath + "/" + strconv.Itoa(id) + "/products"
}

// PromotionProducts shows the products attached to a promotion next to a
// paged product list to pick more from.
func (h *AdminHandler) PromotionProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid promotion ID", http.StatusBadRequest)
		return
	}
	promotion := h.API.GetPromotion(r.Context(), id)
	if !promotion.Success {
		h.redirectWith(w, r, promotionsPath, "error", promotion.Message)
		return
	}

	base := promotionProductsPath(id)
	state := paging.ParseState(r.URL.Query())
	fetch := func(ctx context.Context, page, pageSize int) api.Result[models.Page[models.Product]] {
		return h.API.ListProducts(ctx, api.ProductQuery{Page: page, PageSize: pageSize})
	}
	list, ok := fetchList(h, w, r, "promotion-products", state, fetch, productFields)
	if !ok {
		superseded(w)
		return
	}
	if list.Stale() {
		http.Redirect(w, r, listURL(base, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "admin_promotion_products.html", map[string]interface{}{
		"Promotion": promotion.Data,
		"List":      list,
		"Base":      base,
	})
}

func (h *AdminHandler) AttachProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || r.ParseForm() != nil {
		h.redirectWith(w, r, promotionsPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	back := listURL(promotionProductsPath(id), state, state.CurrentPage)

	var productIDs []int
	for _, raw := range r.PostForm["productIds"] {
		if pid, err := strconv.Atoi(raw); err == nil && pid > 0 {
			productIDs = append(productIDs, pid)
		}
	}
	if len(productIDs) == 0 {
		h.redirectWith(w, r, back, "error", "Vui lòng chọn ít nhất một sản phẩm.")
		return
	}
	res := h.API.AttachProducts(r.Context(), id, productIDs)
	if !res.Success {
		h.redirectWith(w, r, back, "error", res.Message)
		return
	}
	h.redirectWith(w, r, back, "success", "Đã áp dụng khuyến mãi cho "+strconv.Itoa(len(productIDs))+" sản phẩm.")
}

func (h *AdminHandler) DetachProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	pid, err := strconv.Atoi(r.PathValue("pid"))
	if !ok || err != nil || pid <= 0 {
		h.redirectWith(w, r, promotionsPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	back := listURL(promotionProductsPath(id), state, state.CurrentPage)
	res := h.API.DetachProduct(r.Context(), id, pid)
	if !res.Success {
		h.redirectWith(w, r, back, "error", res.Message)
		return
	}
	h.redirectWith(w, r, back, "success", "Đã gỡ sản phẩm khỏi khuyến mãi.")
}
