package listing

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Window is one page of a result set. Start and End are slice bounds.
type Window struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Start      int `json:"-"`
	End        int `json:"-"`
}

// Paginate computes the window for a 1-based page. Out-of-range pages are
// clamped to the first or last page; invalid sizes fall back to DefaultPageSize.
func Paginate(total, page, pageSize int) Window {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + pageSize - 1) / pageSize
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Window{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Slice returns the records inside w.
func Slice[T any](records []T, w Window) []T {
	start, end := w.Start, w.End
	if end > len(records) {
		end = len(records)
	}
	if start > end {
		start = end
	}
	return records[start:end]
}
