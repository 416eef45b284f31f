// Command feeds pages through the recipe feeds from a terminal, keeping
// fetched increments in a local cache between runs.
package main

import (
	"os"

	"github.com/pageza/recipe-feeds/backend/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error().Err(err).Msg("feeds failed")
		os.Exit(1)
	}
}
