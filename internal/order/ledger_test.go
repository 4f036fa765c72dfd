package order

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/foodie/internal/model"
)

func TestLedger_IncrementDecrement(t *testing.T) {
	l := NewLedger(salad().AddOns)

	l = l.Increment(10).Increment(10)
	q, ok := l.Quantity(10)
	require.True(t, ok)
	assert.Equal(t, 2, q)

	l = l.Decrement(11)
	q, _ = l.Quantity(11)
	assert.Equal(t, 0, q)

	// floor at zero
	same := l.Decrement(11)
	assert.Same(t, l, same)
}

func TestLedger_UnknownIDIsNoop(t *testing.T) {
	l := NewLedger(salad().AddOns)
	assert.Same(t, l, l.Increment(99))
	assert.Same(t, l, l.Decrement(99))
}

func TestLedger_SnapshotsAreImmutable(t *testing.T) {
	before := NewLedger(salad().AddOns)
	after := before.Increment(10)

	require.NotSame(t, before, after)
	q, _ := before.Quantity(10)
	assert.Equal(t, 0, q)
	q, _ = after.Quantity(10)
	assert.Equal(t, 1, q)

	view := after.AddOns()
	view[0].Quantity = 42
	q, _ = after.Quantity(10)
	assert.Equal(t, 1, q)
}

func TestLedger_PreservesOrder(t *testing.T) {
	l := NewLedger(salad().AddOns).Increment(11)
	ids := []int{}
	for _, a := range l.AddOns() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int{10, 11}, ids)
}

func TestLedger_ClampsNegativeSeed(t *testing.T) {
	l := NewLedger([]model.AddOn{{ID: 1, UnitPrice: dec("1"), Quantity: -3}})
	q, _ := l.Quantity(1)
	assert.Equal(t, 0, q)
}

func TestLedger_Nil(t *testing.T) {
	var l *Ledger
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.AddOns())
	assert.True(t, l.Subtotal().IsZero())
	assert.Nil(t, l.Increment(1))
}

func TestLedger_Subtotal(t *testing.T) {
	l := NewLedger(salad().AddOns).Increment(10).Increment(10)
	// 2*1.25 + 1*0.75
	assert.True(t, l.Subtotal().Equal(dec("3.25")), "got %s", l.Subtotal())
}

func TestLedger_RandomSequencesNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		l := NewLedger(pasta().AddOns)
		want := 0
		for step := 0; step < 50; step++ {
			if rng.Intn(2) == 0 {
				l = l.Increment(1)
				want++
			} else {
				l = l.Decrement(1)
				if want > 0 {
					want--
				}
			}
			got, _ := l.Quantity(1)
			require.GreaterOrEqual(t, got, 0)
			require.Equal(t, want, got)
		}
	}
}
