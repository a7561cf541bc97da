// Package store holds flat view and filter types that are matched against
// the warehouse entities.
package store

import (
	"time"
)

// OrderStatus is the status of an order as shown to customers.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderSummary is a flattened order. Every field resolves on warehouse.Order,
// some of them through PascalCase decomposition (CustomerEmail -> Customer.Email).
type OrderSummary struct {
	ID                  uint        `json:"id"`
	OrderNumber         string      `json:"order_number"`
	Status              OrderStatus `json:"status"`
	TotalAmount         int64       `json:"total_amount"`
	CustomerFirstName   string      `json:"customer_first_name"`
	CustomerLastName    string      `json:"customer_last_name"`
	CustomerEmail       string      `json:"customer_email"`
	ShippingAddressCity string      `json:"shipping_address_city"`
	PlacedAt            time.Time   `json:"placed_at"`
}

// OrderFilter selects orders. Pointer fields are optional criteria.
type OrderFilter struct {
	ID                     *uint      `json:"id,omitempty"`
	Status                 *string    `json:"status,omitempty"`
	CustomerEmail          *string    `json:"customer_email,omitempty"`
	ShippingAddressCountry *string    `json:"shipping_address_country,omitempty"`
	PlacedAt               *time.Time `json:"placed_at,omitempty"`
	Tags                   []string   `json:"tags,omitempty"`
}

// ProductView is a product as listed in the catalog.
type ProductView struct {
	SKU    string  `json:"sku"`
	Name   string  `json:"name"`
	Price  int32   `json:"price"`
	Weight float32 `json:"weight"`
	Label  string  `json:"label" map:"Name"`
}
