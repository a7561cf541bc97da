// Package warehouse holds nested entity types used as match targets by the
// analyze tests and the propmatch examples.
package warehouse

import (
	"time"
)

// Address is a postal address snapshot.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Audit carries bookkeeping columns shared by every entity.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Customer places orders.
type Customer struct {
	Audit

	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Addresses   []Address  `json:"addresses,omitempty"`

	nickname string
}

// FullName is exposed as a read-only property when methods are analyzed.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// GetNickname and SetNickname expose a read-write Nickname property.
func (c *Customer) GetNickname() string {
	return c.nickname
}

// SetNickname sets the nickname.
func (c *Customer) SetNickname(nickname string) {
	c.nickname = nickname
}

// Product is a sellable item.
type Product struct {
	ID     uint    `json:"id"`
	SKU    string  `json:"sku"`
	Name   string  `json:"name"`
	Price  int64   `json:"price"`
	Weight float64 `json:"weight"`
}

// Order is a customer's purchase.
type Order struct {
	Audit

	ID          uint   `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`

	ShippingAddress Address     `json:"shipping_address"`
	Customer        Customer    `json:"customer"`
	Items           []OrderItem `json:"items"`

	PlacedAt *time.Time `json:"placed_at,omitempty"`
}

// OrderItem is a line of an order.
type OrderItem struct {
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
}

// Labeled is implemented by entities that carry a display label.
type Labeled interface {
	GetLabel() string
	SetLabel(label string)
}
