package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Address struct {
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	Street     string `json:"street" validate:"required,max=200"`
	Apartment  string `json:"apartment,omitempty" validate:"omitempty,max=50"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=12"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"order_number,omitempty"`
	UserID          string        `json:"user_id"`
	Items           []OrderItem   `json:"items"`
	ShippingAddress Address       `json:"shipping_address"`
	BillingAddress  *Address      `json:"billing_address,omitempty"`
	Totals          CartTotals    `json:"totals"`
	PaymentIntentID string        `json:"payment_intent_id"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (o *Order) IsPaid() bool {
	return o != nil && o.PaymentStatus == PaymentStatusPaid
}

type CreateOrderRequest struct {
	Items           []OrderItem `json:"items"`
	ShippingAddress Address     `json:"shipping_address"`
	BillingAddress  *Address    `json:"billing_address,omitempty"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone,omitempty"`
	Totals          CartTotals  `json:"totals"`
	PaymentIntentID string      `json:"payment_intent_id"`
}

type OrderHistoryResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
