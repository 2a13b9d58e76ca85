// Package catalog defines the product model and the boundary validation
// contracts for client queries and upstream payloads.
package catalog

// Product is a single catalog entry as served by the upstream API.
// Products are immutable once fetched; they live in the cache for the
// TTL window and are then discarded.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ProductRecord is the wire shape of an upstream record, validated at
// the boundary before conversion to Product. Price is a pointer so a
// record missing the field is distinguishable from a zero price: every
// field, price included, must be present.
type ProductRecord struct {
	ID          int      `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
}

// Product converts a validated record to the domain model.
func (r ProductRecord) Product() Product {
	p := Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}
