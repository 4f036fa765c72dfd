package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/idilsaglam/foodie/internal/catalog"
	"github.com/idilsaglam/foodie/internal/model"
)

// fakeService is an in-memory catalog.Service with injectable failures.
type fakeService struct {
	items map[int]model.MenuItem

	getErr    error
	favErr    error
	submitErr error

	added     []int
	removed   []int
	submitted []model.Order
}

func newFakeService(items ...model.MenuItem) *fakeService {
	f := &fakeService{items: map[int]model.MenuItem{}}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeService) GetItem(_ context.Context, id int) (model.MenuItem, error) {
	if f.getErr != nil {
		return model.MenuItem{}, f.getErr
	}
	it, ok := f.items[id]
	if !ok {
		return model.MenuItem{}, fmt.Errorf("get item %d: %w", id, catalog.ErrNotFound)
	}
	return it, nil
}

func (f *fakeService) AddFavorite(_ context.Context, item model.MenuItem) (catalog.Ack, error) {
	if f.favErr != nil {
		return catalog.Ack{}, f.favErr
	}
	f.added = append(f.added, item.ID)
	return catalog.Ack{}, nil
}

func (f *fakeService) RemoveFavorite(_ context.Context, id int) (catalog.Ack, error) {
	if f.favErr != nil {
		return catalog.Ack{}, f.favErr
	}
	f.removed = append(f.removed, id)
	return catalog.Ack{}, nil
}

func (f *fakeService) SubmitOrder(_ context.Context, item model.MenuItem, quantity int) (catalog.Ack, error) {
	if f.submitErr != nil {
		return catalog.Ack{}, f.submitErr
	}
	f.submitted = append(f.submitted, model.NewOrder(item, quantity))
	return catalog.Ack{ID: fmt.Sprintf("order-%d", len(f.submitted))}, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// pasta is the reference item: price 10.00 with one 2.00 add-on.
func pasta() model.MenuItem {
	return model.MenuItem{
		ID:          1,
		Name:        "Ao molho",
		Description: "Macarrao ao molho branco",
		Price:       dec("10.00"),
		ImageURL:    "https://example.com/food1.png",
		AddOns: []model.AddOn{
			{ID: 1, Name: "Bacon", UnitPrice: dec("2.00")},
		},
	}
}

func salad() model.MenuItem {
	return model.MenuItem{
		ID:    2,
		Name:  "Salada",
		Price: dec("15.50"),
		AddOns: []model.AddOn{
			{ID: 10, Name: "Queijo", UnitPrice: dec("1.25")},
			{ID: 11, Name: "Ovo", UnitPrice: dec("0.75"), Quantity: 1},
		},
	}
}
