package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idilsaglam/foodie/internal/catalog"
)

func TestFavorite_ToggleIsOptimistic(t *testing.T) {
	svc := newFakeService(pasta())
	c := loadedComposer(t, svc, 1)
	f := NewFavoriteSync(c)

	confirm, err := f.Toggle()
	require.NoError(t, err)
	assert.True(t, c.IsFavorite(), "flag flips before the remote call")
	assert.Empty(t, svc.added)

	require.NoError(t, f.Settle(confirm(context.Background())))
	assert.Equal(t, []int{1}, svc.added)

	require.NoError(t, f.ToggleAndConfirm(context.Background()))
	assert.False(t, c.IsFavorite())
	assert.Equal(t, []int{1}, svc.removed)
}

func TestFavorite_TwiceReturnsToNotFavorite(t *testing.T) {
	svc := newFakeService(pasta())
	c := loadedComposer(t, svc, 1)
	f := NewFavoriteSync(c)

	first, err := f.Toggle()
	require.NoError(t, err)
	second, err := f.Toggle()
	require.NoError(t, err)
	assert.False(t, c.IsFavorite())

	// remote results land out of order
	_ = f.Settle(second(context.Background()))
	_ = f.Settle(first(context.Background()))
	assert.False(t, c.IsFavorite())
}

func TestFavorite_FailureWithoutRollbackIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := newFakeService(pasta())
	c := NewComposer(svc, WithLogger(zap.New(core)))
	require.NoError(t, c.Load(context.Background(), 1))
	f := NewFavoriteSync(c)

	svc.favErr = fmt.Errorf("add favorite: %w", catalog.ErrTimeout)
	err := f.ToggleAndConfirm(context.Background())

	var fe *FavoriteSyncError
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Add)
	assert.False(t, fe.RolledBack)
	assert.ErrorIs(t, err, catalog.ErrTimeout)
	assert.True(t, c.IsFavorite(), "local flag stands")

	entries := logs.FilterMessage("favorite sync failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["item_id"])
}

func TestFavorite_RollbackOnFailure(t *testing.T) {
	svc := newFakeService(pasta())
	c := loadedComposer(t, svc, 1)
	f := NewFavoriteSync(c, WithRollback(true))

	svc.favErr = catalog.ErrNetwork
	err := f.ToggleAndConfirm(context.Background())

	var fe *FavoriteSyncError
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.RolledBack)
	assert.False(t, c.IsFavorite())
}

func TestFavorite_RollbackSkippedWhenNewerToggle(t *testing.T) {
	svc := newFakeService(pasta())
	c := loadedComposer(t, svc, 1)
	f := NewFavoriteSync(c, WithRollback(true))

	svc.favErr = catalog.ErrNetwork
	first, err := f.Toggle()
	require.NoError(t, err)
	_, err = f.Toggle()
	require.NoError(t, err)
	require.False(t, c.IsFavorite())

	err = f.Settle(first(context.Background()))
	var fe *FavoriteSyncError
	require.ErrorAs(t, err, &fe)
	assert.False(t, fe.RolledBack)
	assert.False(t, c.IsFavorite())
}

func TestFavorite_RollbackRestoresConfirmedState(t *testing.T) {
	cases := []struct {
		name        string
		newestFirst bool
	}{
		{"oldest settles first", false},
		{"newest settles first", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFakeService(pasta())
			c := loadedComposer(t, svc, 1)
			f := NewFavoriteSync(c, WithRollback(true))

			svc.favErr = catalog.ErrNetwork
			add, err := f.Toggle()
			require.NoError(t, err)
			remove, err := f.Toggle()
			require.NoError(t, err)

			results := []FavoriteResult{add(context.Background()), remove(context.Background())}
			if tc.newestFirst {
				results[0], results[1] = results[1], results[0]
			}
			for _, r := range results {
				require.Error(t, f.Settle(r))
			}
			assert.False(t, c.IsFavorite(), "nothing was ever stored remotely")
		})
	}
}

func TestFavorite_RollbackKeepsEarlierConfirmation(t *testing.T) {
	svc := newFakeService(pasta())
	c := loadedComposer(t, svc, 1)
	f := NewFavoriteSync(c, WithRollback(true))
	require.NoError(t, f.ToggleAndConfirm(context.Background()))

	svc.favErr = catalog.ErrNetwork
	remove, err := f.Toggle()
	require.NoError(t, err)
	add, err := f.Toggle()
	require.NoError(t, err)
	require.True(t, c.IsFavorite())

	var fe *FavoriteSyncError
	require.ErrorAs(t, f.Settle(add(context.Background())), &fe)
	assert.True(t, fe.RolledBack)
	require.Error(t, f.Settle(remove(context.Background())))
	assert.True(t, c.IsFavorite(), "the confirmed add stands")
}

func TestFavorite_RequiresItem(t *testing.T) {
	c := NewComposer(newFakeService())
	f := NewFavoriteSync(c)
	_, err := f.Toggle()
	assert.ErrorIs(t, err, ErrNoItem)
	assert.False(t, c.IsFavorite())
}

func TestFavorite_ReloadKeepsFlagForSameItem(t *testing.T) {
	svc := newFakeService(pasta(), salad())
	c := loadedComposer(t, svc, 1)
	f := NewFavoriteSync(c)
	require.NoError(t, f.ToggleAndConfirm(context.Background()))

	require.NoError(t, c.Load(context.Background(), 1))
	assert.True(t, c.IsFavorite())

	require.NoError(t, c.Load(context.Background(), 2))
	assert.False(t, c.IsFavorite())
}
