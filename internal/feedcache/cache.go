// Package feedcache is the client-side recipe cache. It pages through
// server feeds, fetching only the increments a page needs and keeping them
// in a local key-value store for a fixed time.
package feedcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// DefaultTTL is how long a cached feed stays fresh.
const DefaultTTL = 10 * time.Minute

// Config configures a Cache.
type Config struct {
	TTL time.Duration
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *zerolog.Logger
}

// Cache serves feed pages from a Store, filling it from a Fetcher.
type Cache struct {
	store   Store
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu sync.Mutex
}

// New creates a Cache.
func New(store Store, fetcher Fetcher, cfg Config) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := logging.Component("feedcache")
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Cache{store: store, fetcher: fetcher, ttl: cfg.TTL, now: cfg.Now, log: log}
}

// GetPage returns the page at cur and the cursor updated with LastPage.
// Missing rows are fetched from the server one increment at a time and
// written back in a single store write. When a fetch fails the store is
// left as it was, the page is built from the fresh rows already held and
// the fetch error is returned alongside it.
func (c *Cache) GetPage(ctx context.Context, cur Cursor) (Page, Cursor, error) {
	cur = cur.normalize()
	if err := cur.Feed.Validate(); err != nil {
		return Page{}, cur, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := cur.Feed.String()
	held := c.load(ctx, key, cur.PageSize)
	start, end := cur.window()

	work := Entry{Feed: key, PageSize: cur.PageSize, Recipes: []types.Recipe{}}
	if held != nil {
		work = *held
		work.Recipes = append([]types.Recipe(nil), held.Recipes...)
	}

	fetched := false
	for len(work.Recipes) < end && !work.Exhausted {
		next := work.Increments + 1
		resp, err := c.fetcher.Fetch(ctx, cur.Feed, next, cur.PageSize)
		if err != nil {
			c.log.Warn().Err(err).Str("feed", key).Int("increment", next).Msg("feed fetch failed")
			if held == nil {
				held = &Entry{Recipes: []types.Recipe{}}
			}
			page := build(held, start, end, false)
			cur.LastPage = page.IsLastPage
			return page, cur, err
		}
		merge(&work, resp)
		fetched = true
	}

	if fetched {
		work.WrittenAt = c.now()
		if err := c.save(ctx, key, &work); err != nil {
			page := build(&work, start, end, false)
			cur.LastPage = page.IsLastPage
			return page, cur, err
		}
		c.log.Debug().Str("feed", key).Int("page", cur.Page).Int("rows", len(work.Recipes)).Msg("cache miss")
	} else {
		c.log.Debug().Str("feed", key).Int("page", cur.Page).Msg("cache hit")
	}

	page := build(&work, start, end, !fetched)
	cur.LastPage = page.IsLastPage
	return page, cur, nil
}

// Next moves to the following page. At the last page it returns the same
// page again.
func (c *Cache) Next(ctx context.Context, cur Cursor) (Page, Cursor, error) {
	if !cur.LastPage {
		cur.Page++
	}
	return c.GetPage(ctx, cur)
}

// Previous moves back one page, stopping at the first.
func (c *Cache) Previous(ctx context.Context, cur Cursor) (Page, Cursor, error) {
	cur.Page = max(cur.Page-1, 1)
	cur.LastPage = false
	return c.GetPage(ctx, cur)
}

// First returns to the first page.
func (c *Cache) First(ctx context.Context, cur Cursor) (Page, Cursor, error) {
	cur.Page = 1
	cur.LastPage = false
	return c.GetPage(ctx, cur)
}

// Invalidate drops the cached entry for feed.
func (c *Cache) Invalidate(ctx context.Context, feed FeedKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, feed.String())
}

// ClearAll drops every cached feed.
func (c *Cache) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Clear(ctx)
}

// Entry returns the stored entry for feed regardless of freshness.
func (c *Cache) Entry(ctx context.Context, feed FeedKey) (*Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok, err := c.store.Get(ctx, feed.String())
	if err != nil || !ok {
		return nil, false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("decode entry %s: %w", feed, err)
	}
	return &e, true, nil
}

// load returns the fresh entry stored under key, or nil when the feed is
// cold. Entries built with another page size are cold.
func (c *Cache) load(ctx context.Context, key string, pageSize int) *Entry {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("feed", key).Msg("cache read failed")
		return nil
	}
	if !ok {
		return nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn().Err(err).Str("feed", key).Msg("discarding unreadable cache entry")
		return nil
	}
	if !e.FreshAt(c.now(), c.ttl) || e.PageSize != pageSize {
		return nil
	}
	return &e
}

func (c *Cache) save(ctx context.Context, key string, e *Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry %s: %w", key, err)
	}
	return c.store.Put(ctx, key, raw)
}

// merge appends an increment to e, dropping rows it already holds. An
// increment that signals the limit or adds nothing exhausts the feed.
func merge(e *Entry, resp *types.FeedResponse) {
	before := len(e.Recipes)
	e.Recipes = types.DedupeBy(append(e.Recipes, resp.Recipes...), types.RecipeID)
	e.Increments++
	if len(resp.Meta) > 0 {
		e.Meta = resp.Meta
	}
	if resp.Limit || len(e.Recipes) == before {
		e.Exhausted = true
	}
}

func build(e *Entry, start, end int, fromCache bool) Page {
	return Page{
		Recipes:    e.slice(start, end),
		IsLastPage: e.Exhausted && end >= len(e.Recipes),
		Meta:       e.Meta,
		FromCache:  fromCache,
	}
}
