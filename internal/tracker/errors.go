package tracker

import "errors"

var (
	// ErrNotFound is returned when a referenced activity or interval id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when registering an id that already exists.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidState marks an activity whose active flag disagrees with its
	// intervals. Toggle logs it and carries on; Restore rejects snapshots that
	// cannot be reconciled.
	ErrInvalidState = errors.New("invalid state")
)
