package relationship

import "errors"

var (
	ErrSelfReference    = errors.New("cannot follow or block yourself")
	ErrBlocked          = errors.New("action not allowed due to block relationship")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrAlreadyBlocked   = errors.New("user already blocked")
	ErrNotBlocked       = errors.New("user is not blocked")

	// ErrStoreUnavailable wraps graph store connectivity failures. The
	// engine never retries; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("relationship store unavailable")
)
