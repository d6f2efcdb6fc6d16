package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

const (
	OrderReceived   = "received"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

func IsOrderStatus(status string) bool {
	switch status {
	case OrderReceived, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	gorm.Model
	OrderNumber     string `json:"order_number" gorm:"size:50;uniqueIndex"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZip     string `json:"shipping_zip"`

	Items        datatypes.JSONType[[]OrderItem] `json:"items"`
	Subtotal     float64                         `json:"subtotal"`
	ShippingCost float64                         `json:"shipping_cost"`
	Tax          float64                         `json:"tax"`
	Total        float64                         `json:"total"`

	PaymentStatus   string `json:"payment_status" gorm:"size:50;default:pending"`
	PaymentIntentID string `json:"payment_intent_id"`

	Status string `json:"status" gorm:"size:50;default:received"`
	Notes  string `json:"notes"`

	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}
