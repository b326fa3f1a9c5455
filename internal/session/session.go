// Package session is the only place that reads or writes the signed session
// cookie. It holds the backend token, the cached user profile, the
// remember-me flag, a per-browser id and pending flash messages.
package session

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "appdocongnghe-session"

	keyToken      = "token"
	keyUserInfo   = "userInfo"
	keyRememberMe = "rememberMe"
	keySessionID  = "sid"

	rememberMaxAge = 30 * 24 * 60 * 60
)

func init() {
	gob.Register(Flash{})
}

// Flash is a one-shot message rendered on the next page.
type Flash struct {
	Type    string
	Message string
}

type Options struct {
	Domain string
	Secure bool
}

type Manager struct {
	store *sessions.CookieStore
}

// New sets up the cookie store once at start-up.
func New(key []byte, opts Options) *Manager {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = opts.Secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	if opts.Domain != "" {
		store.Options.Domain = opts.Domain
	}
	// codecs accept remember-me cookies for their full lifetime, but the
	// default cookie ends with the browser session
	store.MaxAge(rememberMaxAge)
	store.Options.MaxAge = 0
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		// a cookie signed with an old key decodes as a fresh session
		slog.Debug("Discarding unreadable session cookie", "error", err)
	}
	return s
}

func (m *Manager) save(w http.ResponseWriter, r *http.Request, s *sessions.Session) {
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
}

// Token returns the backend bearer token, empty when signed out.
func (m *Manager) Token(r *http.Request) string {
	token, _ := m.get(r).Values[keyToken].(string)
	return token
}

// User returns the cached profile of the signed-in user.
func (m *Manager) User(r *http.Request) (models.UserInfo, bool) {
	raw, ok := m.get(r).Values[keyUserInfo].(string)
	if !ok || raw == "" {
		return models.UserInfo{}, false
	}
	var u models.UserInfo
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.UserInfo{}, false
	}
	return u, true
}

func (m *Manager) RememberMe(r *http.Request) bool {
	v, _ := m.get(r).Values[keyRememberMe].(bool)
	return v
}

// ID returns a stable per-browser id, minting one on first use.
func (m *Manager) ID(w http.ResponseWriter, r *http.Request) string {
	s := m.get(r)
	if id, ok := s.Values[keySessionID].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.Values[keySessionID] = id
	m.save(w, r, s)
	return id
}

// SignIn stores the token and profile. With remember the cookie outlives the browser session.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, token string, user models.UserInfo, remember bool) error {
	s := m.get(r)
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.Values[keyToken] = token
	s.Values[keyUserInfo] = string(raw)
	s.Values[keyRememberMe] = remember
	if remember {
		s.Options.MaxAge = rememberMaxAge
	} else {
		s.Options.MaxAge = 0
	}
	return s.Save(r, w)
}

// SignOut clears the token and cached profile but keeps the session for flashes.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, keyToken)
	delete(s.Values, keyUserInfo)
	delete(s.Values, keyRememberMe)
	s.Options.MaxAge = 0
	return s.Save(r, w)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, f Flash) {
	s := m.get(r)
	s.AddFlash(f)
	m.save(w, r, s)
}

// Flashes pops pending flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	m.save(w, r, s)
	out := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(Flash); ok {
			out = append(out, fm)
		}
	}
	return out
}

type userKey struct{}

// Middleware puts the bearer token and user profile on the request context
// so api calls made by handlers are authenticated.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.Token(r)
		ctx := api.WithToken(r.Context(), token)
		if u, ok := m.User(r); ok {
			ctx = context.WithValue(ctx, userKey{}, u)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom returns the profile Middleware attached to ctx.
func UserFrom(ctx context.Context) (models.UserInfo, bool) {
	u, ok := ctx.Value(userKey{}).(models.UserInfo)
	return u, ok
}
