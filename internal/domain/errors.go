package domain

import "errors"

// Error taxonomy for store operations. Handlers never leak raw internal
// messages across the API boundary; they map these to UserMessage.
var (
	// ErrInvalidInput marks a mutating call with a missing or malformed
	// required field. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a field update whose target id is absent.
	// Delete is idempotent and does not use it.
	ErrNotFound = errors.New("bookmark not found")

	// ErrQuotaExceeded means the projected storage size stays over the
	// threshold even after trimming.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrVerificationFailed means the post-write read-back did not match
	// what was written. Transient; retried before surfacing.
	ErrVerificationFailed = errors.New("write verification failed")

	// ErrStorageUnavailable wraps any other storage fault that survived
	// the retry budget.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// UserMessage sanitizes an internal error into one of a small set of
// user-facing strings. Renderers display these verbatim.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Invalid bookmark data."
	case errors.Is(err, ErrNotFound):
		return "Bookmark not found. It may have been deleted elsewhere."
	case errors.Is(err, ErrQuotaExceeded):
		return "Storage is full. Export and delete old bookmarks to free up space."
	case errors.Is(err, ErrVerificationFailed):
		return "Your change could not be confirmed. Please try again."
	case errors.Is(err, ErrStorageUnavailable):
		return "Storage is temporarily unavailable. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
