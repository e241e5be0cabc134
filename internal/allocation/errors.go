package allocation

import "errors"

// ErrSoldOut is the expected outcome of Buy when the variation's pool is
// exhausted.  Handlers render it as a sold-out response, never as a server
// error, and it is never produced by a store failure.
var ErrSoldOut = errors.New("sold out")

// ErrNotFound is returned when a variation or ticket ID does not resolve in
// the catalog index.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable is returned by operations that need the fast store
// when the service was configured without one.  In durable mode the store
// is optional; only the counter, seat-map and feed views depend on it.
var ErrStoreUnavailable = errors.New("fast store not configured")
