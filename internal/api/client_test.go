package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

func TestNormalizeBothEnvelopeShapes(t *testing.T) {
	pascal := Normalize([]byte(`{"Success":true,"Message":"ok","Data":[1,2,3]}`))
	camel := Normalize([]byte(`{"success":true,"message":"ok","data":[1,2,3]}`))

	if !reflect.DeepEqual(pascal, camel) {
		t.Fatalf("Expected identical results, got %+v and %+v", pascal, camel)
	}
	if !pascal.Success || pascal.Message != "ok" || string(pascal.Data) != "[1,2,3]" {
		t.Errorf("Unexpected normalised result: %+v", pascal)
	}

	ints := decodeData[[]int](pascal)
	if !reflect.DeepEqual(ints.Data, []int{1, 2, 3}) {
		t.Errorf("Expected data [1 2 3], got %v", ints.Data)
	}
}

func TestNormalizePrefersPascalCase(t *testing.T) {
	res := Normalize([]byte(`{"Success":false,"success":true,"Message":"upper","message":"lower"}`))
	if res.Success || res.Message != "upper" {
		t.Errorf("Expected PascalCase to win, got %+v", res)
	}
}

func TestNormalizeDefaultsToFailure(t *testing.T) {
	tests := []string{`{}`, `{"data":[1]}`, `not json`, `[]`}
	for _, body := range tests {
		if res := Normalize([]byte(body)); res.Success {
			t.Errorf("Normalize(%s): expected Success=false", body)
		}
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestClientInjectsBearerTokenAndJSON(t *testing.T) {
	var gotAuth, gotType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		io.WriteString(w, `{"success":true,"data":{"id":7,"name":"Laptop"}}`)
	})

	res := c.GetCategory(WithToken(context.Background(), "abc123"), 7)
	if !res.Success || res.Data.Name != "Laptop" {
		t.Fatalf("Unexpected result: %+v", res)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
	if gotType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotType)
	}
}

func TestClientOmitsAuthWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("Expected no Authorization header, got %q", r.Header.Get("Authorization"))
		}
		io.WriteString(w, `{"Success":true,"Data":[]}`)
	})
	c.AllCategories(context.Background())
}

func TestClientErrorBodies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"structured message", http.StatusBadRequest, `{"Message":"Mã đã tồn tại"}`, "Mã đã tồn tại"},
		{"camel message", http.StatusConflict, `{"success":false,"message":"trùng tên"}`, "trùng tên"},
		{"problem details", http.StatusBadRequest, `{"title":"One or more validation errors occurred."}`, "One or more validation errors occurred."},
		{"unparseable body", http.StatusInternalServerError, `<html>boom</html>`, DefaultErrorMessage},
		{"empty body", http.StatusBadGateway, ``, DefaultErrorMessage},
		{"success false envelope", http.StatusOK, `{"success":false}`, DefaultErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			res := c.DeleteCategory(context.Background(), 1)
			if res.Success {
				t.Fatal("Expected failure")
			}
			if res.Message != tt.want {
				t.Errorf("Expected message %q, got %q", tt.want, res.Message)
			}
		})
	}
}

func TestClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewClient(url, time.Second).AllCategories(context.Background())
	if res.Success || res.Message != DefaultErrorMessage {
		t.Errorf("Expected generic failure, got %+v", res)
	}
}

func TestClientTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	res := NewClient(srv.URL, 50*time.Millisecond).AllCategories(context.Background())
	if res.Success || res.Message != timeoutMessage {
		t.Errorf("Expected timeout failure, got %+v", res)
	}
}

func TestClientNoContentIsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/PhieuGiamGia/3" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if res := c.DeleteVoucher(context.Background(), 3); !res.Success {
		t.Errorf("Expected success, got %+v", res)
	}
}

func TestListProductsPaged(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("pageSize") != "5" || q.Get("categoryId") != "4" || q.Get("keyword") != "tai nghe" {
			t.Errorf("Unexpected query %v", q)
		}
		io.WriteString(w, `{"Success":true,"Data":{"Items":[{"Id":1,"Name":"A","Price":100000},{"id":2,"name":"B","price":"250000"}],"Total":7,"Page":2,"PageSize":5}}`)
	})

	res := c.ListProducts(context.Background(), ProductQuery{Page: 2, PageSize: 5, CategoryID: 4, Keyword: "tai nghe"})
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if res.Data.Total != 7 || len(res.Data.Items) != 2 || res.Data.Page != 2 {
		t.Errorf("Unexpected page: %+v", res.Data)
	}
	if res.Data.Items[1].Price.String() != "250000" {
		t.Errorf("Expected price 250000, got %s", res.Data.Items[1].Price)
	}
}

func TestBareArrayPage(t *testing.T) {
	res := decodePage[models.Category](Normalize([]byte(`{"success":true,"data":[{"id":1},{"id":2}]}`)), 1, 10)
	if !res.Success || res.Data.Total != 2 || len(res.Data.Items) != 2 {
		t.Errorf("Unexpected page: %+v", res)
	}
}

func TestEmptyResultIsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":null}`)
	})
	res := c.CategoryProducts(context.Background(), 9, 1, 10)
	if !res.Success || res.Data.Items == nil || len(res.Data.Items) != 0 {
		t.Errorf("Expected empty successful page, got %+v", res)
	}
}

func TestRegisterFieldErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"title":"Validation failed","errors":{"Email":["Email đã được sử dụng"],"Password":["Mật khẩu quá ngắn"]}}`)
	})
	res := c.Register(context.Background(), RegisterRequest{Email: "a@b.vn"})
	if res.Success {
		t.Fatal("Expected failure")
	}
	if got := res.FieldErrors["email"]; len(got) != 1 || got[0] != "Email đã được sử dụng" {
		t.Errorf("Unexpected email errors: %v", res.FieldErrors)
	}
	if _, ok := res.FieldErrors["password"]; !ok {
		t.Errorf("Expected password errors, got %v", res.FieldErrors)
	}
}

func TestToggleFavorite(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/YeuThich/42" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"Success":true,"Data":{"IsFavorite":true}}`)
	})
	res := c.ToggleFavorite(context.Background(), 42)
	if !res.Success || !res.Data {
		t.Errorf("Expected favorite=true, got %+v", res)
	}
}

func TestCreateProductMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Expected multipart, got %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if r.FormValue("name") != "Chuột" || r.FormValue("primaryImage") != "1" {
			t.Errorf("Unexpected fields: %v", r.MultipartForm.Value)
		}
		if n := len(r.MultipartForm.File["images"]); n != 2 {
			t.Errorf("Expected 2 images, got %d", n)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": 11}})
	})

	res := c.CreateProduct(context.Background(), ProductForm{
		Product:      models.Product{Name: "Chuột"},
		Images:       []Upload{{Filename: "a.jpg", Content: []byte("a")}, {Filename: "b.jpg", Content: []byte("b")}},
		PrimaryImage: 1,
	})
	if !res.Success || res.Data.ID != 11 {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestResolveAccountTypes(t *testing.T) {
	accounts := []models.Account{{ID: 1, AccountTypeID: 2}, {ID: 2, AccountTypeID: 9}}
	ResolveAccountTypes(accounts, []models.AccountType{{ID: 2, Name: "Admin"}})
	if accounts[0].AccountTypeName != "Admin" || accounts[1].AccountTypeName != "" {
		t.Errorf("Unexpected names: %+v", accounts)
	}
}
