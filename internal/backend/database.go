// Package backend is a small JSON-file catalog API with the REST surface
// the screen consumes. It exists for local development and tests.
package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/idilsaglam/foodie/internal/model"
)

// Database is the whole file.
type Database struct {
	Foods     []model.MenuItem `json:"foods"`
	Favorites []model.MenuItem `json:"favorites"`
	Orders    []StoredOrder    `json:"orders"`
}

// StoredOrder is an accepted order.
type StoredOrder struct {
	ID string `json:"id"`
	model.Order
	CreatedAt time.Time `json:"created_at"`
}

func (db *Database) food(id int) (model.MenuItem, bool) {
	for _, f := range db.Foods {
		if f.ID == id {
			return f, true
		}
	}
	return model.MenuItem{}, false
}

func (db *Database) favoriteIndex(id int) int {
	for i, f := range db.Favorites {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Seed is the demo menu written on first start.
func Seed() Database {
	d := decimal.RequireFromString
	return Database{
		Foods: []model.MenuItem{
			{
				ID:          1,
				Name:        "Ao molho",
				Description: "Macarrão ao molho branco, fughi e cheiro verde das montanhas.",
				Price:       d("19.90"),
				ImageURL:    "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/ao_molho.png",
				AddOns: []model.AddOn{
					{ID: 1, Name: "Bacon", UnitPrice: d("1.50")},
					{ID: 2, Name: "Frango", UnitPrice: d("2.00")},
				},
			},
			{
				ID:          2,
				Name:        "Veggie",
				Description: "Macarrão com pimentão, ervilha e ervas finas colhidas no himalaia.",
				Price:       d("21.90"),
				ImageURL:    "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/veggie.png",
				AddOns: []model.AddOn{
					{ID: 3, Name: "Queijo extra", UnitPrice: d("1.25")},
				},
			},
			{
				ID:          3,
				Name:        "A la Camarón",
				Description: "Macarrão com vegetais de primeira linha e camarão dos 7 mares.",
				Price:       d("25.90"),
				ImageURL:    "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/camarao.png",
			},
		},
	}
}
