package feedcache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedKey(t *testing.T) {
	id := uuid.New()
	for _, k := range []FeedKey{PublicFeed(), PopularFeed(), RecommendedFeed("ada"), UserFeed("grace"), BookFeed(id)} {
		got, err := ParseFeedKey(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, got)
	}

	for _, bad := range []string{"", "public:ada", "user", "recommended:", "book:nope", "trending"} {
		_, err := ParseFeedKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestCursorNormalize(t *testing.T) {
	c := Cursor{Feed: PublicFeed(), Page: -2, PageSize: 500}.normalize()
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, 100, c.PageSize)

	c = Cursor{Feed: PublicFeed()}.normalize()
	assert.Equal(t, 20, c.PageSize)

	start, end := Cursor{Page: 3, PageSize: 10}.window()
	assert.Equal(t, 20, start)
	assert.Equal(t, 30, end)
}
