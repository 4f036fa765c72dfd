package order

import (
	"errors"
	"fmt"
)

var (
	// ErrNoItem is returned by operations that need a loaded item.
	ErrNoItem = errors.New("no item loaded")
	// ErrStale marks a response superseded by a newer request. It is not a
	// failure the user needs to see.
	ErrStale = errors.New("stale response")
)

// LoadError is a failed item fetch. Prior state is left untouched.
type LoadError struct {
	ID  int
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load item %d: %v", e.ID, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// SubmitError is a failed order submission.
type SubmitError struct {
	ItemID int
	Err    error
}

func (e *SubmitError) Error() string { return fmt.Sprintf("submit order for item %d: %v", e.ItemID, e.Err) }
func (e *SubmitError) Unwrap() error { return e.Err }

// FavoriteSyncError is a failed remote add/remove of a favorite.
// RolledBack tells whether the local flag was reverted.
type FavoriteSyncError struct {
	ItemID     int
	Add        bool
	RolledBack bool
	Err        error
}

func (e *FavoriteSyncError) Error() string {
	op := "remove"
	if e.Add {
		op = "add"
	}
	return fmt.Sprintf("%s favorite %d: %v", op, e.ItemID, e.Err)
}

func (e *FavoriteSyncError) Unwrap() error { return e.Err }
