package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

type ProductQuery struct {
	Page       int
	PageSize   int
	CategoryID int
	Keyword    string
}

func (q ProductQuery) values() url.Values {
	v := pageQuery(q.Page, q.PageSize)
	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.Itoa(q.CategoryID))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) Result[models.Page[models.Product]] {
	return callPage[models.Product](ctx, c, request{
		method: http.MethodGet,
		path:   resource("SanPham"),
		query:  q.values(),
	}, q.Page, q.PageSize)
}

func (c *Client) GetProduct(ctx context.Context, id int) Result[models.Product] {
	return call[models.Product](ctx, c, request{method: http.MethodGet, path: resource("SanPham", id)})
}

// Upload is an image already read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ProductForm is the multipart payload for creating or updating a product.
// PrimaryImage indexes KeepImages followed by Images.
type ProductForm struct {
	Product      models.Product
	Images       []Upload
	KeepImages   []string
	PrimaryImage int
}

func (f ProductForm) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	p := f.Product

	fields := map[string]string{
		"name":         p.Name,
		"brand":        p.Brand,
		"price":        p.Price.String(),
		"stock":        strconv.Itoa(p.Stock),
		"categoryId":   strconv.Itoa(p.CategoryID),
		"description":  p.Description,
		"primaryImage": strconv.Itoa(f.PrimaryImage),
	}
	if p.DiscountedPrice != nil {
		fields["discountedPrice"] = p.DiscountedPrice.String()
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	for _, keep := range f.KeepImages {
		if err := w.WriteField("keepImages", keep); err != nil {
			return nil, "", err
		}
	}
	for _, img := range f.Images {
		part, err := w.CreateFormFile("images", img.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) sendProductForm(ctx context.Context, method, path string, f ProductForm) Result[models.Product] {
	body, contentType, err := f.encode()
	if err != nil {
		c.log.Error("Failed to encode product form", "error", fmt.Errorf("multipart: %w", err))
		return Failed[models.Product]("")
	}
	return call[models.Product](ctx, c, request{
		method:      method,
		path:        path,
		rawBody:     body,
		contentType: contentType,
	})
}

func (c *Client) CreateProduct(ctx context.Context, f ProductForm) Result[models.Product] {
	return c.sendProductForm(ctx, http.MethodPost, resource("SanPham"), f)
}

func (c *Client) UpdateProduct(ctx context.Context, id int, f ProductForm) Result[models.Product] {
	return c.sendProductForm(ctx, http.MethodPut, resource("SanPham", id), f)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodDelete, path: resource("SanPham", id)})
}
