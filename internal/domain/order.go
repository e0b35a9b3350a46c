package domain

import "time"

type OrderStatus string

const (
	StatusPending OrderStatus = "Pending - Awaiting Battery"
)

const (
	ProductName  = "Bosch 4Ah to Tesla 10Ah Upgrade"
	PricePerUnit = int64(149)
	Currency     = "USD"
)

type Customer struct {
	Name    string `json:"name" firestore:"name" gorm:"not null"`
	Email   string `json:"email" firestore:"email" gorm:"not null;index"`
	Phone   string `json:"phone" firestore:"phone" gorm:"not null"`
	Address string `json:"address" firestore:"address" gorm:"not null"`
}

type Items struct {
	Product  string `json:"product" firestore:"product" gorm:"not null"`
	Quantity int    `json:"quantity" firestore:"quantity" gorm:"not null"`
}

type Pricing struct {
	PricePerUnit int64  `json:"pricePerUnit" firestore:"pricePerUnit" gorm:"not null"`
	TotalPrice   int64  `json:"totalPrice" firestore:"totalPrice" gorm:"not null"`
	Currency     string `json:"currency" firestore:"currency" gorm:"size:3;not null"`
}

type Order struct {
	OrderID   string      `json:"orderId" firestore:"orderId" gorm:"primaryKey;size:64"`
	CreatedAt time.Time   `json:"createdAt" firestore:"createdAt" gorm:"not null;index"`
	Status    OrderStatus `json:"status" firestore:"status" gorm:"size:64;not null"`
	Customer  Customer    `json:"customer" firestore:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Items     Items       `json:"items" firestore:"items" gorm:"embedded;embeddedPrefix:item_"`
	Pricing   Pricing     `json:"pricing" firestore:"pricing" gorm:"embedded;embeddedPrefix:pricing_"`
}

// NewOrder builds the normalized record for a single-product order.
// The caller owns trimming and validation of the customer fields.
func NewOrder(id string, customer Customer, quantity int, createdAt time.Time) *Order {
	return &Order{
		OrderID:   id,
		CreatedAt: createdAt.UTC(),
		Status:    StatusPending,
		Customer:  customer,
		Items: Items{
			Product:  ProductName,
			Quantity: quantity,
		},
		Pricing: Pricing{
			PricePerUnit: PricePerUnit,
			TotalPrice:   PricePerUnit * int64(quantity),
			Currency:     Currency,
		},
	}
}
