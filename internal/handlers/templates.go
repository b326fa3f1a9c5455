package handlers

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/favorites"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/pricing"
	"github.com/shopspring/decimal"
)

const layoutFile = "layout.html"

// TemplateCache holds parsed templates, each page combined with the layout.
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
	now   func() time.Time
}

func NewTemplateCache() *TemplateCache {
	tc := &TemplateCache{
		cache: make(map[string]*template.Template),
		now:   time.Now,
	}
	tc.funcs = template.FuncMap{
		"vnd": func(d decimal.Decimal) string { return pricing.FormatVND(d) },
		"vndPtr": func(d *decimal.Decimal) string {
			if d == nil {
				return ""
			}
			return pricing.FormatVND(*d)
		},
		"date": func(d models.Date) string {
			if d.IsZero() {
				return ""
			}
			return d.Format("02/01/2006")
		},
		"datetime": func(d models.Date) string {
			if d.IsZero() {
				return ""
			}
			return d.Format("02/01/2006 15:04")
		},
		"lineTotal":  pricing.LineTotal,
		"unitPrice":  pricing.UnitPrice,
		"pageSizes":  func() []int { return paging.PageSizes },
		"prevPage":   func(currentPage int) int { return currentPage - 1 },
		"nextPage":   func(currentPage int) int { return currentPage + 1 },
		"hasPrefix":  strings.HasPrefix,
		"voucherStatus": func(v models.Voucher) pricing.Status {
			return pricing.DisplayStatus(tc.now(), v)
		},
		"fieldError": func(errs map[string]string, field string) string { return errs[field] },
		"isDiscountKind": func(v models.Voucher, kind string) bool {
			return string(v.DiscountKind) == kind
		},
		"card":    productCard,
		"listURL": listURL,
		"modalURL": func(base string, s paging.State, mode ModalMode, id int) string {
			u := listURL(base, s, s.CurrentPage) + "&modal=" + string(mode)
			if id > 0 {
				u += "&id=" + strconv.Itoa(id)
			}
			return u
		},
		"pager": func(base string, s paging.State) Pager { return Pager{Base: base, State: s} },
	}
	return tc
}

// Pager feeds the shared pagination partial.
type Pager struct {
	Base  string
	State paging.State
}

// Link is the URL of page, keeping any query already on Base.
func (p Pager) Link(page int) string {
	sep := "?"
	if strings.Contains(p.Base, "?") {
		sep = "&"
	}
	return p.Base + sep + p.State.Query(page)
}

// ProductCard feeds the shared product card partial.
type ProductCard struct {
	Product   models.Product
	SignedIn  bool
	Favorite  bool
	CsrfField template.HTML
}

// productCard builds a card for p from the page data render passes to every template.
func productCard(p models.Product, page map[string]interface{}) ProductCard {
	c := ProductCard{Product: p}
	_, c.SignedIn = page["User"].(models.UserInfo)
	if favs, ok := page["Favorites"].(*favorites.Set); ok {
		c.Favorite = favs.Has(p.ID)
	}
	c.CsrfField, _ = page["CsrfField"].(template.HTML)
	return c
}

func (tc *TemplateCache) AddFunc(name string, fn interface{}) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.funcs[name] = fn
}

// Load parses every page in dir together with layout.html.
func (tc *TemplateCache) Load(dir string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	layout := filepath.Join(dir, layoutFile)
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == layoutFile {
			continue
		}
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFiles(layout, file)
		if err != nil {
			slog.Error("Failed to parse template", "file", file, "error", err)
			return err
		}
		tc.cache[name] = tmpl
		slog.Debug("Cached template", "name", name)
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// Render executes the layout for page name into w.
func (tc *TemplateCache) Render(w io.Writer, name string, data any) error {
	tmpl := tc.Get(name)
	if tmpl == nil {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
