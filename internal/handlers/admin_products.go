package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

const (
	productsPath   = "/admin/products"
	maxUploadBytes = 10 << 20
	maxImages      = 8
	maxBodyBytes   = maxImages*maxUploadBytes + 1<<20
)

// parseUpload parses a product form and returns the flash to show when the
// body cannot be read. Only an oversized body is reported as too large.
func parseUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := r.ParseMultipartForm(maxUploadBytes)
	if err == nil {
		return "", true
	}
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig), errors.Is(err, multipart.ErrMessageTooLarge):
		return "Tệp quá lớn. Tối đa 10MB.", false
	case errors.Is(err, http.ErrNotMultipart):
		slog.Warn("Product form is not multipart", "content_type", r.Header.Get("Content-Type"))
	default:
		slog.Warn("Unreadable product form", "error", err)
	}
	return "Dữ liệu không hợp lệ.", false
}

func productFields(p models.Product) []string { return []string{p.Name, p.Brand, p.Description} }
func productID(p models.Product) int          { return p.ID }

func productValues(p models.Product) url.Values {
	v := url.Values{
		"name":        {p.Name},
		"brand":       {p.Brand},
		"price":       {moneyValue(p.Price)},
		"stock":       {strconv.Itoa(p.Stock)},
		"categoryId":  {strconv.Itoa(p.CategoryID)},
		"description": {p.Description},
	}
	if p.DiscountedPrice != nil {
		v.Set("discountedPrice", moneyValue(*p.DiscountedPrice))
	}
	for i, img := range p.Images {
		v.Add("keepImages", img.URL)
		if img.IsPrimary {
			v.Set("primaryImage", strconv.Itoa(i))
		}
	}
	return v
}

func (h *AdminHandler) productsPage(w http.ResponseWriter, r *http.Request, status int, state paging.State, modal Modal, form *Form) {
	var categories api.Result[[]models.Category]
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		categories = h.API.AllCategories(ctx)
		return nil
	})
	fetch := func(ctx context.Context, page, pageSize int) api.Result[models.Page[models.Product]] {
		return h.API.ListProducts(ctx, api.ProductQuery{Page: page, PageSize: pageSize})
	}
	list, ok := fetchList(h, w, r, "products", state, fetch, productFields)
	g.Wait()
	if !ok {
		superseded(w)
		return
	}
	if r.Method == http.MethodGet && list.Stale() {
		http.Redirect(w, r, listURL(productsPath, list.State, list.State.CurrentPage), http.StatusSeeOther)
		return
	}

	var target models.Product
	if modal.Editing() || modal.Confirming() {
		found, ok := findByID(list.Items, modal.ID, productID)
		if !ok {
			res := h.API.GetProduct(r.Context(), modal.ID)
			if !res.Success {
				h.redirectWith(w, r, listURL(productsPath, list.State, list.State.CurrentPage), "error", res.Message)
				return
			}
			found = res.Data
		}
		target = found
		if form == nil {
			form = newForm(productValues(found))
		}
	}
	if form == nil {
		form = newForm(nil)
	}

	names := make(map[int]string, len(categories.Data))
	for _, c := range categories.Data {
		names[c.ID] = c.Name
	}
	h.render(w, r, status, "admin_products.html", map[string]interface{}{
		"List":          list,
		"Base":          productsPath,
		"Modal":         modal,
		"Form":          form,
		"Target":        target,
		"Categories":    categories.Data,
		"CategoryNames": names,
	})
}

func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	h.productsPage(w, r, http.StatusOK, paging.ParseState(r.URL.Query()), ParseModal(r.URL.Query()), nil)
}

// decodeImage reads a PNG or JPEG upload, chosen by file extension.
func decodeImage(fh *multipart.FileHeader) (image.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".png":
		return png.Decode(f)
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	}
	return nil, fmt.Errorf("unsupported image format %q", filepath.Ext(fh.Filename))
}

// prepareImages shrinks each upload to maxWidth and re-encodes it as JPEG
// under a fresh file name.
func prepareImages(files []*multipart.FileHeader, maxWidth uint) ([]api.Upload, error) {
	uploads := make([]api.Upload, 0, len(files))
	for _, fh := range files {
		img, err := decodeImage(fh)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", fh.Filename, err)
		}
		if maxWidth > 0 && uint(img.Bounds().Dx()) > maxWidth {
			img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
			return nil, fmt.Errorf("encode %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, api.Upload{
			Filename:    uuid.New().String() + ".jpg",
			ContentType: "image/jpeg",
			Content:     buf.Bytes(),
		})
	}
	return uploads, nil
}

// productForm validates the posted product and prepares its images. The
// product needs at least one image, kept or new.
func (h *AdminHandler) productForm(r *http.Request) (api.ProductForm, *Form) {
	form := newForm(r.MultipartForm.Value)
	product := productFromForm(form)

	var files []*multipart.FileHeader
	if r.MultipartForm.File != nil {
		files = r.MultipartForm.File["images"]
	}
	keep := form.Values["keepImages"]
	if len(keep)+len(files) == 0 {
		form.Fail("images", "Cần ít nhất một hình ảnh.")
	}
	if len(keep)+len(files) > maxImages {
		form.Fail("images", "Tối đa "+strconv.Itoa(maxImages)+" hình ảnh.")
	}
	primary := 0
	if v := form.Get("primaryImage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n >= len(keep)+len(files) {
			form.Fail("primaryImage", "Ảnh đại diện không hợp lệ.")
		} else {
			primary = n
		}
	}
	if !form.Valid() {
		return api.ProductForm{}, form
	}

	uploads, err := prepareImages(files, h.ImageMaxWidth)
	if err != nil {
		slog.Warn("Rejected product image", "error", err)
		form.Fail("images", "Chỉ hỗ trợ ảnh PNG, JPG, JPEG hợp lệ.")
		return api.ProductForm{}, form
	}
	return api.ProductForm{
		Product:      product,
		Images:       uploads,
		KeepImages:   keep,
		PrimaryImage: primary,
	}, form
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if msg, ok := parseUpload(w, r); !ok {
		h.redirectWith(w, r, productsPath+"?modal=add", "error", msg)
		return
	}
	defer r.MultipartForm.RemoveAll()

	state := listState(r)
	modal := Modal{Mode: ModalAdding}
	payload, form := h.productForm(r)
	if !form.Valid() {
		h.productsPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	res := h.API.CreateProduct(r.Context(), payload)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.productsPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, productsPath, state, "Đã thêm sản phẩm "+payload.Product.Name+".")
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, productsPath, "error", "Sản phẩm không hợp lệ.")
		return
	}
	if msg, ok := parseUpload(w, r); !ok {
		h.redirectWith(w, r, productsPath+"?modal=edit&id="+strconv.Itoa(id), "error", msg)
		return
	}
	defer r.MultipartForm.RemoveAll()

	state := listState(r)
	modal := Modal{Mode: ModalEditing, ID: id}
	payload, form := h.productForm(r)
	if !form.Valid() {
		h.productsPage(w, r, http.StatusUnprocessableEntity, state, modal, form)
		return
	}
	payload.Product.ID = id
	res := h.API.UpdateProduct(r.Context(), id, payload)
	if !res.Success {
		h.flash(w, r, "error", res.Message)
		h.productsPage(w, r, http.StatusOK, state, modal, form)
		return
	}
	h.afterSave(w, r, productsPath, state, "Đã cập nhật sản phẩm "+payload.Product.Name+".")
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWith(w, r, productsPath, "error", "Sản phẩm không hợp lệ.")
		return
	}
	state := listState(r)
	h.afterDelete(w, r, productsPath, state, h.API.DeleteProduct(r.Context(), id), "Đã xóa sản phẩm.")
}
