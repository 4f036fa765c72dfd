package order

import (
	"context"

	"go.uber.org/zap"
)

// FavoriteSync flips the composer's favorite flag optimistically and
// confirms the change remotely, once, best-effort. Requests are not
// cancelled or sequenced on the remote side: with two toggles in flight
// either may land last.
type FavoriteSync struct {
	c        *Composer
	rollback bool
	gen      uint64

	// last state the remote side acknowledged, for confirmedID
	confirmedID int
	confirmed   bool
}

// FavoriteOption configures a FavoriteSync.
type FavoriteOption func(*FavoriteSync)

// WithRollback restores the last remotely confirmed flag when the newest
// toggle fails. Failures of superseded toggles are ignored. Off by default.
func WithRollback(enabled bool) FavoriteOption {
	return func(f *FavoriteSync) { f.rollback = enabled }
}

func NewFavoriteSync(c *Composer, opts ...FavoriteOption) *FavoriteSync {
	f := &FavoriteSync{c: c}
	for _, o := range opts {
		o(f)
	}
	return f
}

// FavoriteResult is the outcome of a remote confirmation.
type FavoriteResult struct {
	ItemID int
	Added  bool
	Err    error

	gen uint64
}

// Toggle flips the local flag now and returns the remote confirmation to
// run off the event loop.
func (f *FavoriteSync) Toggle() (func(ctx context.Context) FavoriteResult, error) {
	item, ok := f.c.Item()
	if !ok {
		return nil, ErrNoItem
	}
	add := !f.c.favorite
	f.c.favorite = add
	f.gen++
	gen, svc := f.gen, f.c.svc

	return func(ctx context.Context) FavoriteResult {
		var err error
		if add {
			_, err = svc.AddFavorite(ctx, item)
		} else {
			_, err = svc.RemoveFavorite(ctx, item.ID)
		}
		return FavoriteResult{ItemID: item.ID, Added: add, Err: err, gen: gen}
	}, nil
}

// Settle records the confirmation. Failures are logged and returned as a
// *FavoriteSyncError; the local flag stays as set unless rollback is on.
func (f *FavoriteSync) Settle(r FavoriteResult) error {
	if r.Err == nil {
		f.confirmedID, f.confirmed = r.ItemID, r.Added
		f.c.log.Debug("favorite synced", zap.Int("item_id", r.ItemID), zap.Bool("favorite", r.Added))
		return nil
	}

	rolledBack := false
	if f.rollback && r.gen == f.gen && f.current(r.ItemID) {
		f.c.favorite = f.lastConfirmed(r.ItemID)
		rolledBack = true
	}
	f.c.log.Warn("favorite sync failed",
		zap.Int("item_id", r.ItemID),
		zap.Bool("add", r.Added),
		zap.Bool("rolled_back", rolledBack),
		zap.Error(r.Err))
	return &FavoriteSyncError{ItemID: r.ItemID, Add: r.Added, RolledBack: rolledBack, Err: r.Err}
}

// ToggleAndConfirm toggles and waits for the remote confirmation.
func (f *FavoriteSync) ToggleAndConfirm(ctx context.Context) error {
	confirm, err := f.Toggle()
	if err != nil {
		return err
	}
	return f.Settle(confirm(ctx))
}

func (f *FavoriteSync) current(itemID int) bool {
	return f.c.item != nil && f.c.item.ID == itemID
}

// lastConfirmed is false for an item with no acknowledged toggle yet.
func (f *FavoriteSync) lastConfirmed(itemID int) bool {
	return f.confirmedID == itemID && f.confirmed
}
