package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

// carry copies Set-Cookie from a response onto the next request.
func carry(t *testing.T, rec *httptest.ResponseRecorder, next *http.Request) *http.Request {
	t.Helper()
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}
	// the last Set-Cookie wins, as in a browser
	next.AddCookie(cookies[len(cookies)-1])
	return next
}

func TestSignInAndOut(t *testing.T) {
	m := New(testKey, Options{})
	user := models.UserInfo{ID: 9, Name: "Mai", Email: "mai@shop.vn", Role: models.RoleAdmin}

	rec := httptest.NewRecorder()
	if err := m.SignIn(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "tok-1", user, false); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if cookie := rec.Header().Get("Set-Cookie"); strings.Contains(cookie, "Max-Age") {
		t.Errorf("Expected a browser-session cookie, got %q", cookie)
	}

	r := carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := m.Token(r); got != "tok-1" {
		t.Errorf("Expected token tok-1, got %q", got)
	}
	got, ok := m.User(r)
	if !ok || got != user {
		t.Errorf("Expected user %+v, got %+v", user, got)
	}

	rec = httptest.NewRecorder()
	if err := m.SignOut(rec, r); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	r = carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if m.Token(r) != "" {
		t.Error("Expected token cleared")
	}
	if _, ok := m.User(r); ok {
		t.Error("Expected user cleared")
	}
}

func TestRememberMeSetsPersistentCookie(t *testing.T) {
	m := New(testKey, Options{})
	rec := httptest.NewRecorder()
	if err := m.SignIn(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "tok", models.UserInfo{ID: 1}, true); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge != rememberMaxAge {
		t.Fatalf("Expected Max-Age %d, got %+v", rememberMaxAge, cookies)
	}
	r := carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !m.RememberMe(r) {
		t.Error("Expected rememberMe flag")
	}
}

func TestFlashesPopOnce(t *testing.T) {
	m := New(testKey, Options{})
	rec := httptest.NewRecorder()
	m.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/", nil), Flash{Type: "success", Message: "Đã lưu"})

	r := carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	rec = httptest.NewRecorder()
	flashes := m.Flashes(rec, r)
	if len(flashes) != 1 || flashes[0].Message != "Đã lưu" {
		t.Fatalf("Unexpected flashes %+v", flashes)
	}

	r = carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := m.Flashes(httptest.NewRecorder(), r); len(got) != 0 {
		t.Errorf("Expected flashes consumed, got %+v", got)
	}
}

func TestMiddlewarePutsTokenOnContext(t *testing.T) {
	m := New(testKey, Options{})
	rec := httptest.NewRecorder()
	m.SignIn(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "ctx-token", models.UserInfo{ID: 4, Name: "Lan"}, false)

	var gotToken string
	var gotUser models.UserInfo
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = api.TokenFrom(r.Context())
		gotUser, _ = UserFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	if gotToken != "ctx-token" || gotUser.Name != "Lan" {
		t.Errorf("Unexpected context values %q %+v", gotToken, gotUser)
	}
}

func TestIDIsStable(t *testing.T) {
	m := New(testKey, Options{})
	rec := httptest.NewRecorder()
	first := m.ID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	r := carry(t, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if second := m.ID(httptest.NewRecorder(), r); second != first {
		t.Errorf("Expected stable id %q, got %q", first, second)
	}
}
