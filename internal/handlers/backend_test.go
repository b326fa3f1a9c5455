package handlers

import (
	"encoding/json"
	"image"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

func (f *fakeBackend) product(id int) (models.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (f *fakeBackend) catalogRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/SanPham", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writePage(w, r, f.products)
	})

	mux.HandleFunc("GET /api/SanPham/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		if p, ok := f.product(id); ok {
			writeEnvelope(w, http.StatusOK, p, "")
			return
		}
		writeEnvelope(w, http.StatusNotFound, nil, "Không tìm thấy sản phẩm.")
	})

	mux.HandleFunc("POST /api/SanPham", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeEnvelope(w, http.StatusBadRequest, nil, "Dữ liệu không hợp lệ.")
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.productFields = r.MultipartForm.Value
		for _, fh := range r.MultipartForm.File["images"] {
			file, err := fh.Open()
			if err != nil {
				writeEnvelope(w, http.StatusBadRequest, nil, "Không đọc được ảnh.")
				return
			}
			cfg, _, err := image.DecodeConfig(file)
			file.Close()
			if err != nil {
				writeEnvelope(w, http.StatusBadRequest, nil, "Ảnh không hợp lệ.")
				return
			}
			f.uploadWidths = append(f.uploadWidths, cfg.Width)
		}
		price, _ := decimal.NewFromString(r.FormValue("price"))
		p := models.Product{ID: f.nextID, Name: r.FormValue("name"), Brand: r.FormValue("brand"), Price: price}
		f.nextID++
		f.products = append(f.products, p)
		writeEnvelope(w, http.StatusCreated, p, "")
	})

	mux.HandleFunc("GET /api/YeuThich", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		ids := []int{}
		for id, on := range f.favorites {
			if on {
				ids = append(ids, id)
			}
		}
		sort.Ints(ids)
		writeEnvelope(w, http.StatusOK, ids, "")
	})
}

func (f *fakeBackend) checkoutRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/GioHang", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, models.Cart{Lines: f.cart}, "")
	})

	mux.HandleFunc("GET /api/PhieuGiamGia/Ma/{code}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, v := range f.vouchers {
			if v.Code == r.PathValue("code") {
				writeEnvelope(w, http.StatusOK, v, "")
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, nil, "Mã giảm giá không tồn tại.")
	})

	mux.HandleFunc("POST /api/ThanhToan", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var req api.CheckoutRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.orders = append(f.orders, req)
		res := api.CheckoutResult{OrderID: len(f.orders)}
		if req.PaymentMethod == api.PaymentVNPay {
			res.PaymentURL = "https://pay.example/vnpay?order=" + strconv.Itoa(res.OrderID)
		}
		writeEnvelope(w, http.StatusOK, res, "")
	})
}

func (f *fakeBackend) voucherRoutes(mux *http.ServeMux) {
	find := func(id int) int {
		for i, v := range f.vouchers {
			if v.ID == id {
				return i
			}
		}
		return -1
	}

	mux.HandleFunc("GET /api/PhieuGiamGia", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writePage(w, r, f.vouchers)
	})

	mux.HandleFunc("GET /api/PhieuGiamGia/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		if i := find(id); i >= 0 {
			writeEnvelope(w, http.StatusOK, f.vouchers[i], "")
			return
		}
		writeEnvelope(w, http.StatusNotFound, nil, "Không tìm thấy phiếu giảm giá.")
	})

	mux.HandleFunc("POST /api/PhieuGiamGia", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var v models.Voucher
		json.NewDecoder(r.Body).Decode(&v)
		v.ID = f.nextID
		f.nextID++
		f.vouchers = append(f.vouchers, v)
		writeEnvelope(w, http.StatusCreated, v, "")
	})

	mux.HandleFunc("PUT /api/PhieuGiamGia/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		i := find(id)
		if i < 0 {
			writeEnvelope(w, http.StatusNotFound, nil, "Không tìm thấy phiếu giảm giá.")
			return
		}
		var v models.Voucher
		json.NewDecoder(r.Body).Decode(&v)
		v.ID = id
		f.vouchers[i] = v
		writeEnvelope(w, http.StatusOK, v, "")
	})

	mux.HandleFunc("DELETE /api/PhieuGiamGia/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		i := find(id)
		if i < 0 {
			writeEnvelope(w, http.StatusNotFound, nil, "Không tìm thấy phiếu giảm giá.")
			return
		}
		f.vouchers = append(f.vouchers[:i], f.vouchers[i+1:]...)
		writeEnvelope(w, http.StatusOK, nil, "")
	})
}

func (f *fakeBackend) promotionRoutes(mux *http.ServeMux) {
	find := func(id int) int {
		for i, p := range f.promotions {
			if p.ID == id {
				return i
			}
		}
		return -1
	}

	mux.HandleFunc("GET /api/KhuyenMai", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writePage(w, r, f.promotions)
	})

	mux.HandleFunc("GET /api/KhuyenMai/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		i := find(id)
		if i < 0 {
			writeEnvelope(w, http.StatusNotFound, nil, "Không tìm thấy khuyến mãi.")
			return
		}
		p := f.promotions[i]
		p.Products = nil
		for _, pid := range f.attached[id] {
			if prod, ok := f.product(pid); ok {
				p.Products = append(p.Products, prod)
			}
		}
		writeEnvelope(w, http.StatusOK, p, "")
	})

	mux.HandleFunc("POST /api/KhuyenMai", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var p models.Promotion
		json.NewDecoder(r.Body).Decode(&p)
		p.ID = f.nextID
		f.nextID++
		f.promotions = append(f.promotions, p)
		writeEnvelope(w, http.StatusCreated, p, "")
	})

	mux.HandleFunc("POST /api/KhuyenMai/{id}/SanPham", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		if find(id) < 0 {
			writeEnvelope(w, http.StatusNotFound, nil, "Không tìm thấy khuyến mãi.")
			return
		}
		var body struct {
			ProductIDs []int `json:"productIds"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.attached[id] = append(f.attached[id], body.ProductIDs...)
		writeEnvelope(w, http.StatusOK, nil, "")
	})

	mux.HandleFunc("DELETE /api/KhuyenMai/{id}/SanPham/{pid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		pid, _ := strconv.Atoi(r.PathValue("pid"))
		kept := f.attached[id][:0]
		for _, p := range f.attached[id] {
			if p != pid {
				kept = append(kept, p)
			}
		}
		f.attached[id] = kept
		writeEnvelope(w, http.StatusOK, nil, "")
	})
}

// voucherCodes lists the stored codes, for assertions.
func (f *fakeBackend) voucherCodes() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	codes := make([]string, 0, len(f.vouchers))
	for _, v := range f.vouchers {
		codes = append(codes, v.Code)
	}
	return strings.Join(codes, ",")
}
