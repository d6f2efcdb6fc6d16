package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CustomOrderPending    = "pending"
	CustomOrderQuoted     = "quoted"
	CustomOrderApproved   = "approved"
	CustomOrderInProgress = "in_progress"
	CustomOrderCompleted  = "completed"
	CustomOrderCancelled  = "cancelled"
)

func IsCustomOrderStatus(status string) bool {
	switch status {
	case CustomOrderPending, CustomOrderQuoted, CustomOrderApproved,
		CustomOrderInProgress, CustomOrderCompleted, CustomOrderCancelled:
		return true
	}
	return false
}

// Measurements is stored as a JSON column. Blank values are fine, the
// submission form just has to send every field.
type Measurements struct {
	Bust       string `json:"bust"`
	UnderBust  string `json:"under_bust"`
	Waist      string `json:"waist"`
	Hips       string `json:"hips"`
	Additional string `json:"additional"`
}

type CustomOrder struct {
	gorm.Model
	OrderNumber   string `json:"order_number" gorm:"size:50;uniqueIndex"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	Style           string `json:"style"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	Pattern         string `json:"pattern"`
	SpecialRequests string `json:"special_requests"`

	Measurements datatypes.JSONType[Measurements] `json:"measurements"`

	Budget      string  `json:"budget"`
	QuotedPrice float64 `json:"quoted_price"`

	ReferenceImages datatypes.JSONSlice[string] `json:"reference_images"`

	Status string `json:"status" gorm:"size:50;default:pending"`
	Notes  string `json:"notes"`

	CompletedAt *time.Time `json:"completed_at"`
}
