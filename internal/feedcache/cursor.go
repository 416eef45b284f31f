package feedcache

import "github.com/pageza/recipe-feeds/backend/internal/types"

// Cursor is a position in a feed. It is passed into and returned from
// every paging call; the cache keeps no pagination state of its own.
type Cursor struct {
	Feed     FeedKey `json:"feed"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	// LastPage is set when Page reaches the end of an exhausted feed.
	LastPage bool `json:"last_page"`
}

// NewCursor starts at the first page of feed with the default page size.
func NewCursor(feed FeedKey) Cursor {
	return Cursor{Feed: feed, Page: 1, PageSize: types.DefaultPageSize}
}

func (c Cursor) normalize() Cursor {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 {
		c.PageSize = types.DefaultPageSize
	}
	if c.PageSize > types.MaxPageSize {
		c.PageSize = types.MaxPageSize
	}
	return c
}

// window returns the [start, end) row range of the cursor's page.
func (c Cursor) window() (int, int) {
	return (c.Page - 1) * c.PageSize, c.Page * c.PageSize
}

// Page is one page of a feed as served by the cache.
type Page struct {
	Recipes    []types.Recipe
	IsLastPage bool
	// Meta carries feed metadata such as a book's title.
	Meta map[string]string
	// FromCache is set when no network fetch was needed.
	FromCache bool
}
