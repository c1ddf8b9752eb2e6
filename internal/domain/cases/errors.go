package cases

import "errors"

var (
	// ErrNotFound means no case matched the lookup.
	ErrNotFound = errors.New("case not found")
	// ErrStoreEmpty means the store has never been written to.
	ErrStoreEmpty = errors.New("case store is empty")
	// ErrStoreCorrupt means the persisted slot exists but cannot be decoded.
	ErrStoreCorrupt = errors.New("case store is corrupt")

	// ErrDraftNotFound means no draft exists under the given id.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrMissingTemplate means a draft operation requires a selected template.
	ErrMissingTemplate = errors.New("no test template selected")
	// ErrAlreadyCommitted means the draft reached its terminal state.
	ErrAlreadyCommitted = errors.New("draft already committed")
	// ErrInvalidState means the operation is not allowed in the draft's
	// current state.
	ErrInvalidState = errors.New("operation not allowed in current draft state")
)
