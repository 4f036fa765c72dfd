// Package order holds the state behind the item screen: the add-on ledger,
// the composer that derives the total, and the favorite toggle.
package order

import (
	"github.com/shopspring/decimal"

	"github.com/idilsaglam/foodie/internal/model"
)

// Ledger is an immutable, ordered set of add-ons with their selected
// quantities. Every change returns a new *Ledger; a no-op returns the
// receiver, so callers can detect changes by pointer comparison.
// A nil *Ledger is an empty ledger.
type Ledger struct {
	addOns []model.AddOn
}

// NewLedger seeds a ledger from a loaded item's add-ons. Quantities sent by
// the server are kept; negative ones are clamped to 0.
func NewLedger(addOns []model.AddOn) *Ledger {
	out := make([]model.AddOn, len(addOns))
	copy(out, addOns)
	for i := range out {
		if out[i].Quantity < 0 {
			out[i].Quantity = 0
		}
	}
	return &Ledger{addOns: out}
}

// Increment adds one unit of add-on id. Unknown ids are ignored.
// There is no upper bound.
func (l *Ledger) Increment(id int) *Ledger {
	i := l.index(id)
	if i < 0 {
		return l
	}
	return l.with(i, l.addOns[i].Quantity+1)
}

// Decrement removes one unit of add-on id. Unknown ids and add-ons already
// at 0 are ignored.
func (l *Ledger) Decrement(id int) *Ledger {
	i := l.index(id)
	if i < 0 || l.addOns[i].Quantity <= 0 {
		return l
	}
	return l.with(i, l.addOns[i].Quantity-1)
}

// AddOns returns a copy of the add-ons in load order.
func (l *Ledger) AddOns() []model.AddOn {
	if l == nil {
		return nil
	}
	out := make([]model.AddOn, len(l.addOns))
	copy(out, l.addOns)
	return out
}

// Quantity reports the selected quantity of add-on id.
func (l *Ledger) Quantity(id int) (int, bool) {
	i := l.index(id)
	if i < 0 {
		return 0, false
	}
	return l.addOns[i].Quantity, true
}

func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.addOns)
}

// Subtotal is the sum of unitPrice*quantity over all add-ons.
func (l *Ledger) Subtotal() decimal.Decimal {
	if l == nil {
		return decimal.Zero
	}
	return model.Total(decimal.Zero, 0, l.addOns)
}

func (l *Ledger) index(id int) int {
	if l == nil {
		return -1
	}
	for i, a := range l.addOns {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// with copies the ledger, replacing the quantity at position i.
func (l *Ledger) with(i, quantity int) *Ledger {
	next := make([]model.AddOn, len(l.addOns))
	copy(next, l.addOns)
	next[i].Quantity = quantity
	return &Ledger{addOns: next}
}
