package feedcache

import "errors"

var (
	// ErrTransient reports a failed fetch that may succeed on retry. The
	// cache is left as it was.
	ErrTransient = errors.New("transient fetch failure")
	// ErrNotFound reports a feed whose subject does not exist on the server.
	ErrNotFound = errors.New("feed not found")
	// ErrRejected reports a request the server refused as invalid.
	ErrRejected = errors.New("feed request rejected")
)
