// Package catalog is the remote side of the screen: item lookup, favorites
// and order submission.
package catalog

import (
	"context"
	"errors"

	"github.com/idilsaglam/foodie/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network failure")
	ErrTimeout      = errors.New("timeout")
	ErrRejected     = errors.New("rejected")
	ErrUnauthorized = errors.New("unauthorized")
)

// Ack is a successful remote acknowledgement. ID is set when the remote
// side assigned one (orders).
type Ack struct {
	ID string `json:"id,omitempty"`
}

// Service is one network round trip per call; every call can fail.
type Service interface {
	GetItem(ctx context.Context, id int) (model.MenuItem, error)
	AddFavorite(ctx context.Context, item model.MenuItem) (Ack, error)
	RemoveFavorite(ctx context.Context, id int) (Ack, error)
	SubmitOrder(ctx context.Context, item model.MenuItem, quantity int) (Ack, error)
}
