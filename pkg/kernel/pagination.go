package kernel

// PaginationOptions carries the requested page window.
type PaginationOptions struct {
	PageNumber int `json:"page" query:"page"`
	PageSize   int `json:"page_size" query:"page_size"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps the options into a usable window.
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the SQL offset for the window.
func (p PaginationOptions) Offset() int {
	n := p.Normalize()
	return (n.PageNumber - 1) * n.PageSize
}

// Page describes the window a Paginated result covers.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Paginated wraps a page of items of any entity type.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated assembles a Paginated result from a fetched window.
func NewPaginated[T any](items []T, opts PaginationOptions, total int64) *Paginated[T] {
	opts = opts.Normalize()
	pages := int(total) / opts.PageSize
	if int(total)%opts.PageSize != 0 {
		pages++
	}
	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number:     opts.PageNumber,
			Size:       opts.PageSize,
			TotalItems: total,
			TotalPages: pages,
		},
		Empty: len(items) == 0,
	}
}
