package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/inflight"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/session"
	"golang.org/x/sync/errgroup"
)

const (
	categoriesPath = "/admin/categories"
	accountsPath   = "/admin/accounts"
	contactsPath   = "/admin/contacts"
)

type AdminHandler struct {
	Base
	Fetches       *inflight.Group
	ImageMaxWidth uint
}

// DashboardStats are the record counts shown on /admin.
type DashboardStats struct {
	Products   int
	Categories int
	Accounts   int
	Vouchers   int
	Promotions int
	Contacts   int
}

// Dashboard asks every list endpoint for a one-row page and reads its total.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	g, ctx := errgroup.WithContext(r.Context())
	count := func(dst *int, fetch func(context.Context) int) {
		g.Go(func() error {
			*dst = fetch(ctx)
			return nil
		})
	}
	count(&stats.Products, func(ctx context.Context) int {
		return h.API.ListProducts(ctx, api.ProductQuery{Page: 1, PageSize: 1}).Data.Total
	})
	count(&stats.Categories, func(ctx context.Context) int { return h.API.ListCategories(ctx, 1, 1).Data.Total })
	count(&stats.Accounts, func(ctx context.Context) int { return h.API.ListAccounts(ctx, 1, 1).Data.Total })
	count(&stats.Vouchers, func(ctx context.Context) int { return h.API.ListVouchers(ctx, 1, 1).Data.Total })
	count(&stats.Promotions, func(ctx context.Context) int { return h.API.ListPromotions(ctx, 1, 1).Data.Total })
	count(&stats.Contacts, func(ctx context.Context) int { return h.API.ListContacts(ctx, 1, 1).Data.Total })
	g.Wait()

	h.render(w, r, http.StatusOK, "admin.html", map[string]interface{}{
		"Stats": stats,
	})
}

// Categories

func categoryFields(c models.Category) []string { return []string{c.Name, c.Description} }
func categoryID(c models.Category) int          { return c.ID }

func categoryValues(c models.Category) url.Values {
	return url.Values{
		"name":        {c.Name},
		"description": {c.Description},
		"position":    {strconv.Itoa(c.Position)},
	}
}

func (h *AdminHandler) categoriesPage(w http.ResponseWriter, r *http.Request, status int, state paging.State, modal Modal, form *Form) {
	list, ok := fetchList(h, w, r, "categories", state, h.API.ListCategories, categoryFields)
	if !ok {
		superseded(w)
		return
	}
	if r.Method == http.MethodGet && list.Stale() {
		http.Redirect(w, r, listURL(categoriesPath, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}

	var target models.Category
	if modal.Editing() || modal.Confirming() {
		found, ok := findByID(list.Items, modal.ID, categoryID)
		if !ok {
			res := h.API.GetCategory(r.Context(), modal.ID)
			if !res.Success {
				h.redirectWith(w, r, listURL(categoriesPath, list.State, list.State.CurrentPage), "error", res.Message)
				return
			}
			found = res.Data
		}
		target = found
		if form == nil {
			form = newForm(categoryValues(found))
		}
	}
	if form == nil {
		form = newForm(nil)
	}

	h.render(w, r, status, "admin_categories.html", map[string]interface{}{
		"List":   list,
		"Base":   categoriesPath,
		"Modal":  modal,
		"Form":   form,
		"Target": target,
	})
}

func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.categoriesPage(w, r, http.StatusOK, paging.ParseState(r.URL.Query()), ParseModal(r.URL.Query()), nil)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWith(w, r, categoriesPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	form := newForm(r.PostForm)
	category := categoryFromForm(form)
	if !form.Valid() {
		h.categoriesPage(w, r, http.StatusUnprocessableEntity, state, Modal{Mode: ModalAdding}, form)
		return
	}
	res := h.API.CreateCategory(r.Context(), category)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.categoriesPage(w, r, http.StatusOK, state, Modal{Mode: ModalAdding}, form)
		return
	}
	h.afterSave(w, r, categoriesPath, state, "Đã thêm danh mục "+category.Name+".")
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || r.ParseForm() != nil {
		h.redirectWith(w, r, categoriesPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	modal := Modal{Mode: ModalEditing, ID: id}
	form := newForm(r.PostForm)
	category := categoryFromForm(form)
	if !form.Valid() {
		h.categoriesPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	category.ID = id
	res := h.API.UpdateCategory(r.Context(), category)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.categoriesPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, categoriesPath, state, "Đã cập nhật danh mục "+category.Name+".")
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, categoriesPath, "error", "Danh mục không hợp lệ.")
		return
	}
	state := listState(r)
	h.afterDelete(w, r, categoriesPath, state, h.API.DeleteCategory(r.Context(), id), "Đã xóa danh mục.")
}

// Accounts

func accountFields(a models.Account) []string {
	return []string{a.Name, a.Email, a.Phone, a.AccountTypeName}
}
func accountID(a models.Account) int { return a.ID }

func accountValues(a models.Account) url.Values {
	return url.Values{
		"name":          {a.Name},
		"email":         {a.Email},
		"phone":         {a.Phone},
		"address":       {a.Address},
		"accountTypeId": {strconv.Itoa(a.AccountTypeID)},
	}
}

func (h *AdminHandler) accountsPage(w http.ResponseWriter, r *http.Request, status int, state paging.State, modal Modal, form *Form) {
	var types api.Result[[]models.AccountType]
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		types = h.API.ListAccountTypes(ctx)
		return nil
	})
	fetch := func(ctx context.Context, page, pageSize int) api.Result[models.Page[models.Account]] {
		res := h.API.ListAccounts(ctx, page, pageSize)
		g.Wait()
		api.ResolveAccountTypes(res.Data.Items, types.Data)
		return res
	}
	list, ok := fetchList(h, w, r, "accounts", state, fetch, accountFields)
	if !ok {
		superseded(w)
		return
	}
	if r.Method == http.MethodGet && list.Stale() {
		http.Redirect(w, r, listURL(accountsPath, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}
	if modal.Adding() {
		// accounts are created through registration
		modal = Modal{}
	}

	var target models.Account
	if modal.Editing() || modal.Confirming() {
		found, ok := findByID(list.Items, modal.ID, accountID)
		if !ok {
			res := h.API.GetAccount(r.Context(), modal.ID)
			if !res.Success {
				h.redirectWith(w, r, listURL(accountsPath, list.State, list.State.CurrentPage), "error", res.Message)
				return
			}
			found = res.Data
		}
		target = found
		if form == nil {
			form = newForm(accountValues(found))
		}
	}
	if form == nil {
		form = newForm(nil)
	}

	h.render(w, r, status, "admin_accounts.html", map[string]interface{}{
		"List":         list,
		"Base":         accountsPath,
		"Modal":        modal,
		"Form":         form,
		"Target":       target,
		"AccountTypes": types.Data,
	})
}

func (h *AdminHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	h.accountsPage(w, r, http.StatusOK, paging.ParseState(r.URL.Query()), ParseModal(r.URL.Query()), nil)
}

func (h *AdminHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok || r.ParseForm() != nil {
		h.redirectWith(w, r, accountsPath, "error", "Dữ liệu không hợp lệ.")
		return
	}
	state := listState(r)
	modal := Modal{Mode: ModalEditing, ID: id}
	form := newForm(r.PostForm)
	account := accountFromForm(form)
	if account.AccountTypeID <= 0 {
		form.Fail("accountTypeId", "Vui lòng chọn loại tài khoản.")
	}
	if !form.Valid() {
		h.accountsPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	account.ID = id
	res := h.API.UpdateAccount(r.Context(), account)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.accountsPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, accountsPath, state, "Đã cập nhật tài khoản "+account.Email+".")
}

func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, accountsPath, "error", "Tài khoản không hợp lệ.")
		return
	}
	state := listState(r)
	if user, signedIn := session.UserFrom(r.Context()); signedIn && user.ID == id {
		h.redirectWith(w, r, listURL(accountsPath, state, state.CurrentPage), "error", "Không thể xóa tài khoản đang đăng nhập.")
		return
	}
	h.afterDelete(w, r, accountsPath, state, h.API.DeleteAccount(r.Context(), id), "Đã xóa tài khoản.")
}

// Contacts

func contactFields(c models.Contact) []string {
	return []string{c.Name, c.Email, c.Phone, c.Message}
}
func contactID(c models.Contact) int { return c.ID }

// Contacts lists messages sent through the contact form. The edit modal is a
// read-only view of one message.
func (h *AdminHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	state := paging.ParseState(r.URL.Query())
	modal := ParseModal(r.URL.Query())
	list, ok := fetchList(h, w, r, "contacts", state, h.API.ListContacts, contactFields)
	if !ok {
		superseded(w)
		return
	}
	if list.Stale() {
		http.Redirect(w, r, listURL(contactsPath, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}
	if modal.Adding() {
		modal = Modal{}
	}
	var target models.Contact
	if modal.Open() {
		found, ok := findByID(list.Items, modal.ID, contactID)
		if !ok {
			modal = Modal{}
		}
		target = found
	}
	h.render(w, r, http.StatusOK, "admin_contacts.html", map[string]interface{}{
		"List":   list,
		"Base":   contactsPath,
		"Modal":  modal,
		"Target": target,
	})
}

func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, contactsPath, "error", "Liên hệ không hợp lệ.")
		return
	}
	state := listState(r)
	h.afterDelete(w, r, contactsPath, state, h.API.DeleteContact(r.Context(), id), "Đã xóa liên hệ.")
}
