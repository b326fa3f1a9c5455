package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/paging"
)

// listView is one rendered page of an admin list screen.
type listView[T any] struct {
	State paging.State
	// Items is the fetched page after the search filter.
	Items []T
	// ItemsOnPage counts the fetched page before filtering; delete forms post it back.
	ItemsOnPage int
	requested   int
}

// Stale reports whether the requested page no longer exists and the list
// should be shown again at the clamped page.
func (v listView[T]) Stale() bool {
	return v.State.Total > 0 && v.requested != v.State.CurrentPage
}

type pageFetcher[T any] func(ctx context.Context, page, pageSize int) api.Result[models.Page[T]]

// fetchList loads one page for screen. Starting a fetch cancels the previous
// one for the same browser and screen; false means this fetch was superseded
// and its result must be dropped.
func fetchList[T any](h *AdminHandler, w http.ResponseWriter, r *http.Request, screen string, state paging.State, fetch pageFetcher[T], fields func(T) []string) (listView[T], bool) {
	ctx, ticket := h.Fetches.Begin(r.Context(), h.Sessions.ID(w, r)+":"+screen)
	defer ticket.Done()

	res := fetch(ctx, state.CurrentPage, state.PageSize)
	if !ticket.Current() {
		slog.Debug("Dropping superseded list fetch", "screen", screen, "page", state.CurrentPage)
		return listView[T]{}, false
	}
	if !res.Success {
		h.flash(w, r, "error", res.Message)
	}

	requested := state.CurrentPage
	state.Total = res.Data.Total
	items := paging.Limit(res.Data.Items, state.PageSize)
	return listView[T]{
		State:       state.Clamp(),
		Items:       paging.Filter(items, state.SearchTerm, fields),
		ItemsOnPage: len(items),
		requested:   requested,
	}, true
}

// superseded answers a dropped fetch. 204 leaves the browser on its current page.
func superseded(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func findByID[T any](items []T, id int, idOf func(T) int) (T, bool) {
	for _, it := range items {
		if idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// afterSave closes the modal and shows the list again on the same page.
func (h *AdminHandler) afterSave(w http.ResponseWriter, r *http.Request, base string, state paging.State, msg string) {
	h.redirectWith(w, r, listURL(base, state, state.CurrentPage), "success", msg)
}

// afterDelete shows the list again, one page back when the deleted row was
// the last one on its page.
func (h *AdminHandler) afterDelete(w http.ResponseWriter, r *http.Request, base string, state paging.State, res api.Result[struct{}], msg string) {
	if !res.Success {
		h.redirectWith(w, r, listURL(base, state, state.CurrentPage), "error", res.Message)
		return
	}
	itemsOnPage, ok := formInt(r, "itemsOnPage")
	if !ok {
		// unknown: stay put, the list clamps itself on the next load
		itemsOnPage = state.PageSize
	}
	page := paging.AfterDelete(state.CurrentPage, itemsOnPage)
	h.redirectWith(w, r, listURL(base, state, page), "success", msg)
}
