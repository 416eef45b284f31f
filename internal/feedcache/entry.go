package feedcache

import (
	"time"

	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// Entry is the cached state of one feed. Entries are replaced whole on
// every write.
type Entry struct {
	Feed      string         `json:"feed"`
	Recipes   []types.Recipe `json:"recipes"`
	WrittenAt time.Time      `json:"written_at"`
	// Exhausted is set once the server signalled the end of the feed.
	Exhausted bool `json:"exhausted"`
	// Increments is the number of server increments merged into Recipes.
	Increments int               `json:"increments"`
	PageSize   int               `json:"page_size"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// FreshAt reports whether the entry is still valid at now.
func (e *Entry) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.WrittenAt) < ttl
}

// slice returns the rows in [start, end), clipped to what is held.
func (e *Entry) slice(start, end int) []types.Recipe {
	if start >= len(e.Recipes) {
		return []types.Recipe{}
	}
	end = min(end, len(e.Recipes))
	out := make([]types.Recipe, end-start)
	copy(out, e.Recipes[start:end])
	return out
}
