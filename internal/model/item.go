package model

import "github.com/shopspring/decimal"

// MenuItem is a dish as served by the catalog, with its optional add-ons.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	AddOns      []AddOn         `json:"extras"`
}

// AddOn is a separately priced extra. Quantity is what the user selected;
// a missing value in the payload decodes as 0.
type AddOn struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"value"`
	Quantity  int             `json:"quantity"`
}

// Order is the body sent when the user confirms. It carries the item fields
// so the backend can store it as-is.
type Order struct {
	ProductID   int             `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	AddOns      []AddOn         `json:"extras"`
	Total       decimal.Decimal `json:"total"`
}

// NewOrder builds the order body for item at the given base quantity.
// item.AddOns must already hold the selected quantities.
func NewOrder(item MenuItem, quantity int) Order {
	addOns := make([]AddOn, len(item.AddOns))
	copy(addOns, item.AddOns)
	return Order{
		ProductID:   item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		Quantity:    quantity,
		AddOns:      addOns,
		Total:       Total(item.Price, quantity, addOns),
	}
}

// Total is the linear price of an order line:
// price*quantity + sum(unitPrice*addOnQuantity).
func Total(price decimal.Decimal, quantity int, addOns []AddOn) decimal.Decimal {
	total := price.Mul(decimal.NewFromInt(int64(quantity)))
	for _, a := range addOns {
		if a.Quantity <= 0 {
			continue
		}
		total = total.Add(a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return total
}
