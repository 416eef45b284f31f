package types

// DefaultPageSize is the number of recipes in a feed increment.
const DefaultPageSize = 20

// MaxPageSize bounds the page_size a client may ask for.
const MaxPageSize = 100

// FeedRequest asks a feed for one increment. PageCount is 1-based.
type FeedRequest struct {
	PageCount int    `json:"page_count" binding:"required,min=1"`
	PageSize  int    `json:"page_size" binding:"omitempty,min=1,max=100"`
	Username  string `json:"username"`
}

// FeedResponse carries one feed increment. Limit is true when fewer than a
// full page was available, which ends pagination for the feed.
type FeedResponse struct {
	Recipes []Recipe          `json:"recipes"`
	Limit   bool              `json:"limit"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
