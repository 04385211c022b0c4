// Package inventory tracks per-product unit stock.
//
// Unlike gold weight, unit stock may go negative when an item is oversold.
// Decrement never refuses on quantity; callers surface the negative result.
package inventory

import (
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Product is a sellable catalogue item.
type Product struct {
	ID          id.ProductID `json:"id"`
	SKU         string       `json:"sku"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	MetalType   string       `json:"metal_type"`
	GrossWeight types.Weight `json:"gross_weight"`
	NetWeight   types.Weight `json:"net_weight"`
	Price       types.Money  `json:"price"`
	CostPrice   types.Money  `json:"cost_price"`
	Stock       int          `json:"stock"`
	Description string       `json:"description,omitempty"`
}

// Validate checks the product fields. Prices are kept in the ledger
// currency.
func (p *Product) Validate() error {
	if p.Name == "" {
		return types.Invalid("name", "is required")
	}
	if err := types.CheckMonies(map[string]*types.Money{
		"price":      &p.Price,
		"cost_price": &p.CostPrice,
	}); err != nil {
		return err
	}
	if p.Price.IsNegative() || p.CostPrice.IsNegative() {
		return types.Invalid("price", "must not be negative")
	}
	if p.GrossWeight.IsNegative() || p.NetWeight.IsNegative() {
		return types.Invalid("weight", "must not be negative")
	}
	return nil
}

// Book is the product catalogue with stock counts.
type Book struct {
	Products []Product
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Products: append([]Product(nil), b.Products...)}
}

// Get returns the product with the given id.
func (b Book) Get(pid id.ProductID) (Product, bool) {
	if i := b.index(pid); i >= 0 {
		return b.Products[i], true
	}
	return Product{}, false
}

// Add registers a new product. SKUs are unique when set.
func (b *Book) Add(p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	if p.ID.IsNil() {
		p.ID = id.NewProductID()
	}
	for _, existing := range b.Products {
		if existing.ID == p.ID {
			return Product{}, types.Conflict("product", "id %s already exists", p.ID)
		}
		if p.SKU != "" && existing.SKU == p.SKU {
			return Product{}, types.Conflict("product", "sku %q already exists", p.SKU)
		}
	}
	b.Products = append([]Product{p}, b.Products...)
	return p, nil
}

// Decrement lowers the stock of pid by qty and returns the updated product.
// The result may be negative.
func (b *Book) Decrement(pid id.ProductID, qty int) (Product, error) {
	i := b.index(pid)
	if i < 0 {
		return Product{}, types.NotFound("product", pid.String())
	}
	p := b.Products[i]
	p.Stock -= qty
	b.Products[i] = p
	return p, nil
}

// Oversold returns the products whose stock is below zero.
func (b Book) Oversold() []Product {
	var out []Product
	for _, p := range b.Products {
		if p.Stock < 0 {
			out = append(out, p)
		}
	}
	return out
}

func (b Book) index(pid id.ProductID) int {
	for i, p := range b.Products {
		if p.ID == pid {
			return i
		}
	}
	return -1
}
