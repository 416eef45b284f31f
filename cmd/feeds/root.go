package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/recipe-feeds/backend/internal/feedcache"
	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

const (
	feedPrefix   = "feeds/"
	cursorPrefix = "cursors/"
)

// app holds what every subcommand needs once flags are resolved.
type app struct {
	db      *badger.DB
	cache   *feedcache.Cache
	cursors *feedcache.BadgerStore
	user    string
	size    int
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FEEDS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "feeds",
		Short:         "Browse recipe feeds through the local cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{Level: v.GetString("log-level"), Format: "console"})
		},
	}

	flags := root.PersistentFlags()
	flags.String("server", "http://localhost:8080", "recipe API base URL")
	flags.String("store", defaultStoreDir(), "cache directory; empty keeps the cache in memory")
	flags.String("username", "", "acting user for recommended, user and book feeds")
	flags.Int("page-size", types.DefaultPageSize, "recipes per page")
	flags.Duration("ttl", feedcache.DefaultTTL, "how long fetched feeds stay fresh")
	flags.String("log-level", "warn", "log level")
	_ = v.BindPFlags(flags)

	// open builds the cache for one invocation; the caller closes it.
	open := func(cmd *cobra.Command) (*app, error) {
		db, err := feedcache.OpenBadger(v.GetString("store"))
		if err != nil {
			return nil, err
		}
		fetcher := feedcache.NewHTTPFetcher(feedcache.HTTPConfig{
			BaseURL:  v.GetString("server"),
			Username: v.GetString("username"),
			Timeout:  10 * time.Second,
		})
		cache := feedcache.New(feedcache.NewBadgerStore(db, feedPrefix), fetcher, feedcache.Config{TTL: v.GetDuration("ttl")})
		return &app{
			db:      db,
			cache:   cache,
			cursors: feedcache.NewBadgerStore(db, cursorPrefix),
			user:    v.GetString("username"),
			size:    v.GetInt("page-size"),
			out:     cmd.OutOrStdout(),
		}, nil
	}

	root.AddCommand(
		pageCmd(open),
		moveCmd(open, "next", "Show the next page of a feed", (*feedcache.Cache).Next),
		moveCmd(open, "prev", "Show the previous page of a feed", (*feedcache.Cache).Previous),
		moveCmd(open, "first", "Go back to the first page of a feed", (*feedcache.Cache).First),
		invalidateCmd(open),
		clearCmd(open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*app, error)

type move func(c *feedcache.Cache, ctx context.Context, cur feedcache.Cursor) (feedcache.Page, feedcache.Cursor, error)

func pageCmd(open opener) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "page FEED",
		Short: "Show one page of a feed",
		Long:  "FEED is public, popular, recommended[:user], user[:user] or book:<id>.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.db.Close()
			return a.run(cmd.Context(), args[0], func(c *feedcache.Cache, ctx context.Context, cur feedcache.Cursor) (feedcache.Page, feedcache.Cursor, error) {
				cur.Page = page
				cur.LastPage = false
				return c.GetPage(ctx, cur)
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	return cmd
}

func moveCmd(open opener, use, short string, step move) *cobra.Command {
	return &cobra.Command{
		Use:   use + " FEED",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.db.Close()
			return a.run(cmd.Context(), args[0], step)
		},
	}
}

func invalidateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate FEED",
		Short: "Drop the cached copy of a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.db.Close()
			feed, err := a.resolveFeed(args[0])
			if err != nil {
				return err
			}
			if err := a.cache.Invalidate(cmd.Context(), feed); err != nil {
				return err
			}
			return a.cursors.Delete(cmd.Context(), feed.String())
		},
	}
}

func clearCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached feed and saved position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.db.Close()
			if err := a.cache.ClearAll(cmd.Context()); err != nil {
				return err
			}
			return a.cursors.Clear(cmd.Context())
		},
	}
}

// resolveFeed parses a feed argument, filling a missing username from the
// --username flag.
func (a *app) resolveFeed(arg string) (feedcache.FeedKey, error) {
	switch feedcache.Kind(arg) {
	case feedcache.KindRecommended, feedcache.KindUser:
		if a.user == "" {
			return feedcache.FeedKey{}, fmt.Errorf("feed %q needs --username or %s:<user>", arg, arg)
		}
		arg += ":" + a.user
	}
	return feedcache.ParseFeedKey(arg)
}

// run loads the saved cursor for a feed, applies step, saves the new
// cursor and prints the page.
func (a *app) run(ctx context.Context, arg string, step move) error {
	feed, err := a.resolveFeed(arg)
	if err != nil {
		return err
	}
	cur, err := a.loadCursor(ctx, feed)
	if err != nil {
		return err
	}

	page, cur, fetchErr := step(a.cache, ctx, cur)
	if fetchErr != nil && len(page.Recipes) == 0 {
		return fetchErr
	}
	if fetchErr != nil {
		logging.Warn().Err(fetchErr).Msg("showing cached rows only")
	}
	if err := a.saveCursor(ctx, cur); err != nil {
		return err
	}
	return a.print(cur, page)
}

func (a *app) loadCursor(ctx context.Context, feed feedcache.FeedKey) (feedcache.Cursor, error) {
	cur := feedcache.NewCursor(feed)
	cur.PageSize = a.size
	raw, ok, err := a.cursors.Get(ctx, feed.String())
	if err != nil || !ok {
		return cur, err
	}
	var saved feedcache.Cursor
	if err := json.Unmarshal(raw, &saved); err != nil {
		logging.Warn().Err(err).Str("feed", feed.String()).Msg("ignoring unreadable saved position")
		return cur, nil
	}
	if saved.PageSize != a.size {
		// A new page size makes the saved page number meaningless.
		return cur, nil
	}
	saved.Feed = feed
	return saved, nil
}

func (a *app) saveCursor(ctx context.Context, cur feedcache.Cursor) error {
	raw, err := json.Marshal(cur)
	if err != nil {
		return err
	}
	return a.cursors.Put(ctx, cur.Feed.String(), raw)
}

type pageView struct {
	Feed      string            `json:"feed"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
	LastPage  bool              `json:"last_page"`
	FromCache bool              `json:"from_cache"`
	Meta      map[string]string `json:"meta,omitempty"`
	Recipes   []types.Recipe    `json:"recipes"`
}

func (a *app) print(cur feedcache.Cursor, page feedcache.Page) error {
	out, err := json.MarshalIndent(pageView{
		Feed:      cur.Feed.String(),
		Page:      cur.Page,
		PageSize:  cur.PageSize,
		LastPage:  page.IsLastPage,
		FromCache: page.FromCache,
		Meta:      page.Meta,
		Recipes:   page.Recipes,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}

func defaultStoreDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "recipe-feeds")
}
