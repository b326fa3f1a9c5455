package paging

// Item is one slot of the page-number bar: a page number or an ellipsis gap.
type Item struct {
	Page     int
	Ellipsis bool
}

// Window lays out the page links. Up to maxVisible pages are all shown;
// otherwise first and last are kept, a run of maxVisible-2 pages slides
// around current, and gaps become ellipsis items.
func Window(current, totalPages, maxVisible int) []Item {
	if totalPages < 1 {
		return nil
	}
	if maxVisible < 3 {
		maxVisible = 3
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= maxVisible {
		items := make([]Item, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, Item{Page: p})
		}
		return items
	}

	inner := maxVisible - 2
	start := current - inner/2
	end := start + inner - 1
	if start < 2 {
		start = 2
		end = start + inner - 1
	}
	if end > totalPages-1 {
		end = totalPages - 1
		start = end - inner + 1
	}

	items := []Item{{Page: 1}}
	if start > 2 {
		items = append(items, Item{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		items = append(items, Item{Page: p})
	}
	if end < totalPages-1 {
		items = append(items, Item{Ellipsis: true})
	}
	return append(items, Item{Page: totalPages})
}
