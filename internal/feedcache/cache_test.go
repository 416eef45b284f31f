package feedcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// fakeFetcher serves a fixed feed the way the server pages it.
type fakeFetcher struct {
	mu      sync.Mutex
	rows    []types.Recipe
	meta    map[string]string
	calls   []int
	failAt  int
	failErr error
	// overlap makes every increment repeat the previous one's last row.
	overlap bool
}

func (f *fakeFetcher) Fetch(_ context.Context, _ FeedKey, pageCount, pageSize int) (*types.FeedResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pageCount)
	if f.failAt != 0 && pageCount >= f.failAt {
		return nil, f.failErr
	}
	start := (pageCount - 1) * pageSize
	if f.overlap && start > 0 {
		start--
	}
	end := min(start+pageSize, len(f.rows))
	out := []types.Recipe{}
	if start < len(f.rows) {
		out = append(out, f.rows[start:end]...)
	}
	return &types.FeedResponse{Recipes: out, Limit: len(out) < pageSize, Meta: f.meta}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func recipes(n int) []types.Recipe {
	out := make([]types.Recipe, n)
	for i := range out {
		out[i] = types.Recipe{ID: uuid.New(), Title: fmt.Sprintf("recipe %02d", i+1)}
	}
	return out
}

func titles(rs []types.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(t *testing.T, f Fetcher) (*Cache, *clock) {
	t.Helper()
	db, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(NewBadgerStore(db, "feeds/"), f, Config{Now: clk.now}), clk
}

func cursor(page, size int) Cursor {
	return Cursor{Feed: PublicFeed(), Page: page, PageSize: size}
}

func TestGetPage_ColdFetchesUpToWindow(t *testing.T) {
	f := &fakeFetcher{rows: recipes(25)}
	cache, _ := newTestCache(t, f)

	page, cur, err := cache.GetPage(context.Background(), cursor(2, 5))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, f.calls)
	assert.Equal(t, []string{"recipe 06", "recipe 07", "recipe 08", "recipe 09", "recipe 10"}, titles(page.Recipes))
	assert.False(t, page.FromCache)
	assert.False(t, page.IsLastPage)
	assert.False(t, cur.LastPage)
}

func TestGetPage_RepeatedRequestServedFromStore(t *testing.T) {
	f := &fakeFetcher{rows: recipes(25)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	first, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	second, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)

	assert.Equal(t, 1, f.callCount())
	assert.Equal(t, first.Recipes, second.Recipes)
	assert.True(t, second.FromCache)
}

func TestGetPage_WarmPartialFetchesOnlyMissingIncrements(t *testing.T) {
	f := &fakeFetcher{rows: recipes(25)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	_, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	page, _, err := cache.GetPage(ctx, cursor(3, 5))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, f.calls)
	assert.Equal(t, "recipe 11", page.Recipes[0].Title)

	// Earlier pages are now warm.
	_, _, err = cache.GetPage(ctx, cursor(2, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, f.callCount())
}

func TestGetPage_StaleEntryRefetched(t *testing.T) {
	f := &fakeFetcher{rows: recipes(10)}
	cache, clk := newTestCache(t, f)
	ctx := context.Background()

	_, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)

	clk.advance(DefaultTTL - time.Second)
	_, _, err = cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, f.callCount())

	clk.advance(time.Second)
	page, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, f.calls)
	assert.False(t, page.FromCache)
}

func TestGetPage_LimitEndsPagination(t *testing.T) {
	f := &fakeFetcher{rows: recipes(7)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	page, cur, err := cache.GetPage(ctx, cursor(2, 5))
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 2)
	assert.True(t, page.IsLastPage)
	assert.True(t, cur.LastPage)

	page, _, err = cache.GetPage(ctx, cursor(3, 5))
	require.NoError(t, err)
	assert.Empty(t, page.Recipes)
	assert.True(t, page.IsLastPage)
	assert.Equal(t, []int{1, 2}, f.calls, "an exhausted feed is never fetched past its end")
}

func TestGetPage_FullLastIncrementNeedsEmptyFollowUp(t *testing.T) {
	f := &fakeFetcher{rows: recipes(10)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	page, _, err := cache.GetPage(ctx, cursor(2, 5))
	require.NoError(t, err)
	assert.False(t, page.IsLastPage)

	page, _, err = cache.GetPage(ctx, cursor(3, 5))
	require.NoError(t, err)
	assert.Empty(t, page.Recipes)
	assert.True(t, page.IsLastPage)
	assert.Equal(t, []int{1, 2, 3}, f.calls)
}

func TestGetPage_FailureLeavesEntryUntouched(t *testing.T) {
	f := &fakeFetcher{rows: recipes(25), failAt: 2, failErr: fmt.Errorf("%w: connection refused", ErrTransient)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	_, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	before, ok, err := cache.Entry(ctx, PublicFeed())
	require.NoError(t, err)
	require.True(t, ok)

	page, cur, err := cache.GetPage(ctx, cursor(2, 5))
	require.ErrorIs(t, err, ErrTransient)
	assert.Empty(t, page.Recipes)
	assert.Equal(t, 2, cur.Page)

	after, ok, err := cache.Entry(ctx, PublicFeed())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before.Increments, after.Increments)
	assert.Equal(t, titles(before.Recipes), titles(after.Recipes))
	assert.True(t, before.WrittenAt.Equal(after.WrittenAt))
}

func TestGetPage_FailureMidwayWritesNothing(t *testing.T) {
	f := &fakeFetcher{rows: recipes(25), failAt: 3, failErr: ErrTransient}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	_, _, err := cache.GetPage(ctx, cursor(3, 5))
	require.ErrorIs(t, err, ErrTransient)

	_, ok, err := cache.Entry(ctx, PublicFeed())
	require.NoError(t, err)
	assert.False(t, ok, "increments 1 and 2 are not stored on their own")
}

func TestGetPage_ColdFailureReturnsEmptyPage(t *testing.T) {
	f := &fakeFetcher{failAt: 1, failErr: ErrNotFound}
	cache, _ := newTestCache(t, f)

	page, _, err := cache.GetPage(context.Background(), Cursor{Feed: UserFeed("ghost"), Page: 1, PageSize: 5})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, page.Recipes)
	assert.NotNil(t, page.Recipes)
}

func TestGetPage_OverlappingIncrementsDeduplicated(t *testing.T) {
	f := &fakeFetcher{rows: recipes(12), overlap: true}
	cache, _ := newTestCache(t, f)

	page, _, err := cache.GetPage(context.Background(), cursor(2, 5))
	require.NoError(t, err)

	assert.Equal(t, []string{"recipe 06", "recipe 07", "recipe 08", "recipe 09", "recipe 10"}, titles(page.Recipes))
	assert.Equal(t, []int{1, 2, 3}, f.calls)
	seen := map[uuid.UUID]bool{}
	entry, _, err := cache.Entry(context.Background(), PublicFeed())
	require.NoError(t, err)
	for _, r := range entry.Recipes {
		assert.False(t, seen[r.ID], "duplicate %s", r.Title)
		seen[r.ID] = true
	}
}

func TestGetPage_IncrementWithNothingNewExhausts(t *testing.T) {
	rows := recipes(5)
	f := &repeatFetcher{rows: rows}
	cache, _ := newTestCache(t, f)

	page, _, err := cache.GetPage(context.Background(), cursor(2, 5))
	require.NoError(t, err)
	assert.Empty(t, page.Recipes)
	assert.True(t, page.IsLastPage)
	assert.Equal(t, 2, f.calls)
}

// repeatFetcher answers every increment with the same full page, like a
// random feed that has run out of new recipes.
type repeatFetcher struct {
	rows  []types.Recipe
	calls int
}

func (f *repeatFetcher) Fetch(context.Context, FeedKey, int, int) (*types.FeedResponse, error) {
	f.calls++
	return &types.FeedResponse{Recipes: f.rows}, nil
}

func TestGetPage_PageSizeChangeStartsCold(t *testing.T) {
	f := &fakeFetcher{rows: recipes(25)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	_, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	page, _, err := cache.GetPage(ctx, cursor(1, 10))
	require.NoError(t, err)

	assert.Len(t, page.Recipes, 10)
	assert.Equal(t, []int{1, 1}, f.calls)
}

func TestGetPage_KeepsMeta(t *testing.T) {
	f := &fakeFetcher{rows: recipes(3), meta: map[string]string{"title": "Weeknights"}}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()
	cur := Cursor{Feed: BookFeed(uuid.New()), Page: 1, PageSize: 5}

	_, _, err := cache.GetPage(ctx, cur)
	require.NoError(t, err)
	page, _, err := cache.GetPage(ctx, cur)
	require.NoError(t, err)

	assert.True(t, page.FromCache)
	assert.Equal(t, "Weeknights", page.Meta["title"])
}

func TestGetPage_InvalidFeed(t *testing.T) {
	cache, _ := newTestCache(t, &fakeFetcher{})
	_, _, err := cache.GetPage(context.Background(), Cursor{Feed: FeedKey{Kind: KindUser}})
	assert.Error(t, err)
}

func TestNextAndPrevious(t *testing.T) {
	f := &fakeFetcher{rows: recipes(8)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()

	page, cur, err := cache.First(ctx, cursor(4, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, cur.Page)
	assert.Equal(t, "recipe 01", page.Recipes[0].Title)

	page, cur, err = cache.Next(ctx, cur)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Page)
	assert.True(t, cur.LastPage)
	assert.Len(t, page.Recipes, 3)

	page, cur, err = cache.Next(ctx, cur)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Page, "next at the last page stays put")
	assert.Len(t, page.Recipes, 3)

	_, cur, err = cache.Previous(ctx, cur)
	require.NoError(t, err)
	assert.Equal(t, 1, cur.Page)
	assert.False(t, cur.LastPage)

	_, cur, err = cache.Previous(ctx, cur)
	require.NoError(t, err)
	assert.Equal(t, 1, cur.Page)
	assert.Equal(t, []int{1, 2}, f.calls)
}

func TestInvalidateAndClearAll(t *testing.T) {
	f := &fakeFetcher{rows: recipes(5)}
	cache, _ := newTestCache(t, f)
	ctx := context.Background()
	popular := Cursor{Feed: PopularFeed(), Page: 1, PageSize: 5}

	_, _, err := cache.GetPage(ctx, cursor(1, 5))
	require.NoError(t, err)
	_, _, err = cache.GetPage(ctx, popular)
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx, PublicFeed()))
	_, ok, err := cache.Entry(ctx, PublicFeed())
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = cache.Entry(ctx, PopularFeed())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.ClearAll(ctx))
	_, ok, err = cache.Entry(ctx, PopularFeed())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearAllKeepsOtherPrefixes(t *testing.T) {
	db, err := OpenBadger("")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	feeds := NewBadgerStore(db, "feeds/")
	cursors := NewBadgerStore(db, "cursors/")
	require.NoError(t, feeds.Put(ctx, "public", []byte("a")))
	require.NoError(t, cursors.Put(ctx, "current", []byte("b")))

	require.NoError(t, feeds.Clear(ctx))

	_, ok, err := feeds.Get(ctx, "public")
	require.NoError(t, err)
	assert.False(t, ok)
	v, ok, err := cursors.Get(ctx, "current")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), v)
}

func TestEntryUnreadableIsCold(t *testing.T) {
	db, err := OpenBadger("")
	require.NoError(t, err)
	defer db.Close()
	store := NewBadgerStore(db, "feeds/")
	require.NoError(t, store.Put(context.Background(), "public", []byte("{not json")))

	f := &fakeFetcher{rows: recipes(3)}
	cache := New(store, f, Config{})
	page, _, err := cache.GetPage(context.Background(), cursor(1, 5))
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 3)
	assert.Equal(t, 1, f.callCount())
}
