package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
)

// ModalMode is where a CRUD modal stands. Submitting is the POST itself;
// every successful submit ends closed with the list fetched again.
type ModalMode string

const (
	ModalClosed     ModalMode = ""
	ModalAdding     ModalMode = "add"
	ModalEditing    ModalMode = "edit"
	ModalConfirming ModalMode = "delete"
)

type Modal struct {
	Mode ModalMode
	ID   int
}

// ParseModal reads ?modal=add|edit|delete&id= . Edit and delete need an id.
func ParseModal(q url.Values) Modal {
	switch mode := ModalMode(q.Get("modal")); mode {
	case ModalAdding:
		return Modal{Mode: ModalAdding}
	case ModalEditing, ModalConfirming:
		id, err := strconv.Atoi(q.Get("id"))
		if err != nil || id <= 0 {
			return Modal{}
		}
		return Modal{Mode: mode, ID: id}
	}
	return Modal{}
}

func (m Modal) Open() bool       { return m.Mode != ModalClosed }
func (m Modal) Adding() bool     { return m.Mode == ModalAdding }
func (m Modal) Editing() bool    { return m.Mode == ModalEditing }
func (m Modal) Confirming() bool { return m.Mode == ModalConfirming }

// Action is where the modal form posts: base to create, base/{id} to update.
func (m Modal) Action(base string) string {
	if m.Adding() || m.ID == 0 {
		return base
	}
	return base + "/" + strconv.Itoa(m.ID)
}

// Form is the state of a modal form: what the user typed and what is wrong with it.
type Form struct {
	Values url.Values
	Errors map[string]string
}

func newForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{Values: values, Errors: map[string]string{}}
}

func (f *Form) Get(key string) string { return strings.TrimSpace(f.Values.Get(key)) }

func (f *Form) Valid() bool { return len(f.Errors) == 0 }

// Fail records msg for field unless the field already has an error.
func (f *Form) Fail(field, msg string) {
	if _, exists := f.Errors[field]; !exists {
		f.Errors[field] = msg
	}
}

func (f *Form) Required(fields ...string) {
	for _, field := range fields {
		if f.Get(field) == "" {
			f.Fail(field, "Trường này là bắt buộc.")
		}
	}
}

// listState reads page state from the posted form, falling back to the query.
func listState(r *http.Request) paging.State {
	q := url.Values{}
	for _, key := range []string{"page", "pageSize", "q"} {
		if v := r.FormValue(key); v != "" {
			q.Set(key, v)
		}
	}
	return paging.ParseState(q)
}

// listURL is base with the list state encoded, page replaced by page.
func listURL(base string, s paging.State, page int) string {
	return base + "?" + s.Query(page)
}
