// Package paging holds the list-screen state shared by every paginated view:
// page/page-size parsing, clamping, the page-number window and the
// client-side search filter over the fetched page.
package paging

import (
	"net/url"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// PageSizes are the selectable page sizes.
var PageSizes = []int{5, 10, 20, 50}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// State is the per-screen pagination state.
type State struct {
	CurrentPage int
	PageSize    int
	Total       int
	SearchTerm  string
}

// ParseState reads page, pageSize and q from a query string. A missing or
// invalid page means page 1, which is also what a page-size change submits.
func ParseState(q url.Values) State {
	s := State{CurrentPage: 1, PageSize: DefaultPageSize}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && validPageSize(n) {
		s.PageSize = n
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		s.CurrentPage = n
	}
	s.SearchTerm = strings.TrimSpace(q.Get("q"))
	return s
}

// TotalPages is never below 1 so an empty list still has a page to show.
func (s State) TotalPages() int {
	if s.PageSize <= 0 || s.Total <= 0 {
		return 1
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

// Clamp keeps CurrentPage inside [1, TotalPages()].
func (s State) Clamp() State {
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	if last := s.TotalPages(); s.CurrentPage > last {
		s.CurrentPage = last
	}
	return s
}

func (s State) HasPrev() bool { return s.CurrentPage > 1 }
func (s State) HasNext() bool { return s.CurrentPage < s.TotalPages() }

// Query encodes the state for links. Page changes keep the page size and search term.
func (s State) Query(page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("pageSize", strconv.Itoa(s.PageSize))
	if s.SearchTerm != "" {
		v.Set("q", s.SearchTerm)
	}
	return v.Encode()
}

// Window returns the page numbers to render for this state.
func (s State) Window() []Item {
	return Window(s.CurrentPage, s.TotalPages(), 5)
}

// Limit drops anything past PageSize so a page never shows more than it asked for.
func Limit[T any](items []T, pageSize int) []T {
	if pageSize > 0 && len(items) > pageSize {
		return items[:pageSize]
	}
	return items
}

// AfterDelete is the page to show once an item on current was deleted.
// Removing the only item of a later page steps back one page.
func AfterDelete(current, itemsOnPage int) int {
	if itemsOnPage <= 1 && current > 1 {
		return current - 1
	}
	if current < 1 {
		return 1
	}
	return current
}

// Filter keeps the items where any field contains term, ignoring case.
// It only narrows the page already fetched.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
