package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/idilsaglam/foodie/internal/catalog"
	"github.com/idilsaglam/foodie/internal/model"
)

// Composer owns the screen state: the loaded item, its add-on ledger, the
// base quantity and the favorite flag. It is not safe for concurrent use;
// all mutations are expected to run on one event loop. Remote calls are
// split into a prepare step (returns a function to run off the loop) and
// an apply step (runs back on the loop).
type Composer struct {
	svc catalog.Service
	log *zap.Logger

	item     *model.MenuItem
	ledger   *Ledger
	baseQty  int
	favorite bool

	loadGen uint64
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger used for failure reporting.
func WithLogger(log *zap.Logger) Option {
	return func(c *Composer) { c.log = log }
}

// NewComposer returns an empty composer: no item, base quantity 1.
func NewComposer(svc catalog.Service, opts ...Option) *Composer {
	c := &Composer{
		svc:     svc,
		log:     zap.NewNop(),
		baseQty: 1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State is a read-only view of the composer for rendering.
type State struct {
	Loaded       bool
	Item         model.MenuItem // AddOns hold the current selections
	BaseQuantity int
	Total        decimal.Decimal
	Favorite     bool
}

// Snapshot copies the current observable state.
func (c *Composer) Snapshot() State {
	s := State{
		BaseQuantity: c.baseQty,
		Total:        c.Total(),
		Favorite:     c.favorite,
	}
	if item, ok := c.Item(); ok {
		s.Loaded = true
		s.Item = item
	}
	return s
}

// Item returns a copy of the loaded item with the current add-on
// selections, or false when nothing is loaded yet.
func (c *Composer) Item() (model.MenuItem, bool) {
	if c.item == nil {
		return model.MenuItem{}, false
	}
	item := *c.item
	item.AddOns = c.ledger.AddOns()
	return item, true
}

// Ledger returns the current add-on snapshot.
func (c *Composer) Ledger() *Ledger { return c.ledger }

func (c *Composer) BaseQuantity() int { return c.baseQty }

func (c *Composer) IsFavorite() bool { return c.favorite }

// Total is recomputed on every call:
// price*baseQuantity + sum(unitPrice*quantity). Zero before any load.
func (c *Composer) Total() decimal.Decimal {
	if c.item == nil {
		return decimal.Zero
	}
	return model.Total(c.item.Price, c.baseQty, c.ledger.addOns)
}

func (c *Composer) IncrementAddOn(id int) { c.ledger = c.ledger.Increment(id) }

func (c *Composer) DecrementAddOn(id int) { c.ledger = c.ledger.Decrement(id) }

func (c *Composer) IncrementBase() { c.baseQty++ }

// DecrementBase never goes below one unit.
func (c *Composer) DecrementBase() {
	if c.baseQty <= 1 {
		return
	}
	c.baseQty--
}

// Loaded is the outcome of a fetch started by PrepareLoad.
type Loaded struct {
	ID   int
	Item model.MenuItem
	Err  error

	gen uint64
}

// PrepareLoad issues a new load generation for id and returns the fetch to
// run off the event loop. Only the newest generation is applied.
func (c *Composer) PrepareLoad(id int) func(ctx context.Context) Loaded {
	c.loadGen++
	gen, svc := c.loadGen, c.svc
	return func(ctx context.Context) Loaded {
		item, err := svc.GetItem(ctx, id)
		return Loaded{ID: id, Item: item, Err: err, gen: gen}
	}
}

// ApplyLoad installs a fetched item: new ledger, base quantity back to 1.
// The favorite flag is kept when the same item is reloaded and cleared
// otherwise. On failure nothing changes and a *LoadError is returned.
func (c *Composer) ApplyLoad(l Loaded) error {
	if l.gen != c.loadGen {
		c.log.Debug("discarding stale item load",
			zap.Int("item_id", l.ID), zap.Uint64("gen", l.gen), zap.Uint64("latest", c.loadGen))
		return ErrStale
	}
	if l.Err != nil {
		c.log.Warn("item load failed", zap.Int("item_id", l.ID), zap.Error(l.Err))
		return &LoadError{ID: l.ID, Err: l.Err}
	}

	if c.item == nil || c.item.ID != l.Item.ID {
		c.favorite = false
	}
	item := l.Item
	c.ledger = NewLedger(item.AddOns)
	item.AddOns = nil
	c.item = &item
	c.baseQty = 1
	c.log.Info("item loaded",
		zap.Int("item_id", item.ID), zap.String("name", item.Name), zap.Int("add_ons", c.ledger.Len()))
	return nil
}

// Load fetches and applies in one blocking call.
func (c *Composer) Load(ctx context.Context, id int) error {
	return c.ApplyLoad(c.PrepareLoad(id)(ctx))
}

// Submitted is the outcome of a submission started by PrepareSubmit.
type Submitted struct {
	ItemID   int
	Quantity int
	Ack      catalog.Ack
	Err      error
}

// PrepareSubmit captures the composed order and returns the call to run
// off the event loop.
func (c *Composer) PrepareSubmit() (func(ctx context.Context) Submitted, error) {
	item, ok := c.Item()
	if !ok {
		return nil, ErrNoItem
	}
	qty, svc := c.baseQty, c.svc
	return func(ctx context.Context) Submitted {
		ack, err := svc.SubmitOrder(ctx, item, qty)
		return Submitted{ItemID: item.ID, Quantity: qty, Ack: ack, Err: err}
	}, nil
}

// SettleSubmit reports the submission outcome. It never changes state.
func (c *Composer) SettleSubmit(s Submitted) (catalog.Ack, error) {
	if s.Err != nil {
		c.log.Warn("order submit failed", zap.Int("item_id", s.ItemID), zap.Error(s.Err))
		return catalog.Ack{}, &SubmitError{ItemID: s.ItemID, Err: s.Err}
	}
	c.log.Info("order submitted",
		zap.Int("item_id", s.ItemID), zap.Int("quantity", s.Quantity), zap.String("order_id", s.Ack.ID))
	return s.Ack, nil
}

// Submit sends the composed order in one blocking call.
func (c *Composer) Submit(ctx context.Context) (catalog.Ack, error) {
	call, err := c.PrepareSubmit()
	if err != nil {
		return catalog.Ack{}, err
	}
	return c.SettleSubmit(call(ctx))
}

// IsUserVisible reports whether err should be shown to the user.
func IsUserVisible(err error) bool {
	return err != nil && !errors.Is(err, ErrStale)
}
