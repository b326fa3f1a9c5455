package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/session"
	"github.com/gorilla/csrf"
)

// Base carries what every page handler needs.
type Base struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

// render executes page name with data plus the values every page uses:
// flashes, the CSRF field, the signed-in user.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Flashes"] = b.Sessions.Flashes(w, r)
	data["CsrfField"] = csrf.TemplateField(r)
	if user, ok := session.UserFrom(r.Context()); ok {
		data["User"] = user
	}
	data["Path"] = r.URL.Path

	var buf bytes.Buffer
	if err := b.Templates.Render(&buf, name, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (b *Base) flash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	b.Sessions.AddFlash(w, r, session.Flash{Type: kind, Message: msg})
}

// redirectWith flashes msg and sends the browser to target.
func (b *Base) redirectWith(w http.ResponseWriter, r *http.Request, target, kind, msg string) {
	if msg != "" {
		b.flash(w, r, kind, msg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// loginURL sends the visitor to /login and back to the current path afterwards.
func loginURL(r *http.Request) string {
	return "/login?next=" + url.QueryEscape(r.URL.RequestURI())
}

// safeNext only accepts local paths as post-login targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil && id > 0
}

func formInt(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n, err == nil
}

// localReferer returns the referring path on this site, or fallback.
func localReferer(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
