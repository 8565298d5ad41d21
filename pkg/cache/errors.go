package cache

import "errors"

// ErrCacheMiss is returned when a key is absent. Callers fall through to the
// database and repopulate.
var ErrCacheMiss = errors.New("cache miss")
