package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// feedServer serves n public recipes in increments and counts requests.
func feedServer(t *testing.T, n int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rows := make([]types.Recipe, n)
	for i := range rows {
		rows[i] = types.Recipe{ID: uuid.New(), Title: fmt.Sprintf("recipe %d", i+1)}
	}

	var hits atomic.Int32
	r := gin.New()
	r.POST("/api/v1/feeds/public", func(c *gin.Context) {
		hits.Add(1)
		var req types.FeedRequest
		if !assert.NoError(t, c.ShouldBindJSON(&req)) {
			return
		}
		start := min((req.PageCount-1)*req.PageSize, len(rows))
		end := min(start+req.PageSize, len(rows))
		page := rows[start:end]
		c.JSON(http.StatusOK, types.FeedResponse{Recipes: page, Limit: len(page) < req.PageSize})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func execute(t *testing.T, args ...string) pageView {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	var view pageView
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	}
	return view
}

func TestFeedsCommands(t *testing.T) {
	srv, hits := feedServer(t, 7)
	base := []string{"--server", srv.URL, "--store", t.TempDir(), "--page-size", "5", "--log-level", "disabled"}
	run := func(args ...string) pageView { return execute(t, append(args, base...)...) }

	view := run("page", "public")
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Recipes, 5)
	assert.False(t, view.FromCache)

	view = run("next", "public")
	assert.Equal(t, 2, view.Page)
	assert.Len(t, view.Recipes, 2)
	assert.True(t, view.LastPage)

	view = run("next", "public")
	assert.Equal(t, 2, view.Page, "no page past the end")
	assert.True(t, view.FromCache)

	view = run("prev", "public")
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, "recipe 1", view.Recipes[0].Title)
	assert.Equal(t, int32(2), hits.Load())

	run("invalidate", "public")
	view = run("page", "public", "--page", "2")
	assert.False(t, view.FromCache)
	assert.Equal(t, int32(4), hits.Load())

	run("clear")
	view = run("first", "public")
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, int32(5), hits.Load())
}

func TestFeedsNeedsUsername(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"page", "recommended", "--store", "", "--log-level", "disabled"})
	assert.ErrorContains(t, cmd.Execute(), "--username")
}

func TestFeedsUsernameFromEnv(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got types.FeedRequest
	r := gin.New()
	r.POST("/api/v1/feeds/recommended", func(c *gin.Context) {
		_ = c.ShouldBindJSON(&got)
		c.JSON(http.StatusOK, types.FeedResponse{Recipes: []types.Recipe{}, Limit: true})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	t.Setenv("FEEDS_USERNAME", "ada")
	t.Setenv("FEEDS_SERVER", srv.URL)
	view := execute(t, "page", "recommended", "--store", "", "--log-level", "disabled")

	assert.Equal(t, "recommended:ada", view.Feed)
	assert.Equal(t, "ada", got.Username)
	assert.True(t, view.LastPage)
}
