// Package ledger is the durable record of purchase intents. All order and
// custom-order writes go through it; uniqueness of order numbers is enforced
// by the storage layer so correctness holds across server processes.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/bikinisbytelly/bikinis-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoItems       = errors.New("order has no items")
	ErrBadQuantity   = errors.New("order item quantity must be positive")
	ErrBadStatus     = errors.New("unknown status")
)

const (
	orderPrefix       = "ORD"
	customOrderPrefix = "CO"
	numberAttempts    = 5
)

type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func newNumber(prefix string) (string, error) {
	code, err := utils.GenerateCode(4)
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), code), nil
}

// NewCustomOrderNumber hands out a number ahead of record creation so
// reference-image uploads can be prefixed with it.
func NewCustomOrderNumber() (string, error) {
	return newNumber(customOrderPrefix)
}

type OrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	Items           []models.OrderItem
	Subtotal        float64
	ShippingCost    float64
	Tax             float64
	Total           float64
}

// CreateOrder persists a new order with payment_status=pending and
// status=received, retrying number generation on the rare collision.
func (l *Ledger) CreateOrder(input OrderInput) (models.Order, error) {
	if len(input.Items) == 0 {
		return models.Order{}, ErrNoItems
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return models.Order{}, ErrBadQuantity
		}
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := newNumber(orderPrefix)
		if err != nil {
			return models.Order{}, err
		}

		order := models.Order{
			OrderNumber:     number,
			CustomerName:    input.CustomerName,
			CustomerEmail:   input.CustomerEmail,
			CustomerPhone:   input.CustomerPhone,
			ShippingAddress: input.ShippingAddress,
			ShippingCity:    input.ShippingCity,
			ShippingState:   input.ShippingState,
			ShippingZip:     input.ShippingZip,
			Items:           datatypes.NewJSONType(input.Items),
			Subtotal:        input.Subtotal,
			ShippingCost:    input.ShippingCost,
			Tax:             input.Tax,
			Total:           input.Total,
			PaymentStatus:   models.PaymentPending,
			Status:          models.OrderReceived,
		}

		err = l.db.Create(&order).Error
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Order{}, err
		}
	}
	return models.Order{}, fmt.Errorf("no unique order number after %d attempts", numberAttempts)
}

// SetPaymentIntent records the gateway handle on a freshly created order.
func (l *Ledger) SetPaymentIntent(orderID uint, intentID string) error {
	result := l.db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("payment_intent_id", intentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkPaid flips an order to paid. It is idempotent: a repeat delivery of
// the same payment event reports changed=false so callers do not fire the
// confirmation side effects twice.
func (l *Ledger) MarkPaid(orderID uint, intentID string) (models.Order, bool, error) {
	var order models.Order
	if err := l.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, false, ErrOrderNotFound
		}
		return models.Order{}, false, err
	}

	if order.PaymentStatus == models.PaymentPaid {
		return order, false, nil
	}

	updates := map[string]any{"payment_status": models.PaymentPaid}
	if intentID != "" {
		updates["payment_intent_id"] = intentID
	}
	if err := l.db.Model(&order).Updates(updates).Error; err != nil {
		return models.Order{}, false, err
	}
	order.PaymentStatus = models.PaymentPaid
	if intentID != "" {
		order.PaymentIntentID = intentID
	}
	return order, true, nil
}

func (l *Ledger) MarkRefunded(orderID uint) error {
	result := l.db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("payment_status", models.PaymentRefunded)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetOrderStatus moves an order through fulfillment, stamping shipped and
// delivered times, and returns the updated row.
func (l *Ledger) SetOrderStatus(orderID uint, status string) (models.Order, error) {
	if !models.IsOrderStatus(status) {
		return models.Order{}, ErrBadStatus
	}

	var order models.Order
	if err := l.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	updates := map[string]any{"status": status}
	now := time.Now()
	switch status {
	case models.OrderShipped:
		updates["shipped_at"] = &now
	case models.OrderDelivered:
		updates["delivered_at"] = &now
	}

	if err := l.db.Model(&order).Updates(updates).Error; err != nil {
		return models.Order{}, err
	}
	order.Status = status
	return order, nil
}

type CustomOrderInput struct {
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Style           string
	PrimaryColor    string
	SecondaryColor  string
	Pattern         string
	SpecialRequests string
	Measurements    models.Measurements
	Budget          string
	ReferenceImages []string
}

// CreateCustomOrder persists a bespoke request. The caller may pre-assign
// OrderNumber (so saved uploads share its prefix); on a collision a fresh
// number is generated and the files simply keep the older prefix.
func (l *Ledger) CreateCustomOrder(input CustomOrderInput) (models.CustomOrder, error) {
	number := input.OrderNumber

	for attempt := 0; attempt < numberAttempts; attempt++ {
		if number == "" {
			fresh, err := NewCustomOrderNumber()
			if err != nil {
				return models.CustomOrder{}, err
			}
			number = fresh
		}

		customOrder := models.CustomOrder{
			OrderNumber:     number,
			CustomerName:    input.CustomerName,
			CustomerEmail:   input.CustomerEmail,
			CustomerPhone:   input.CustomerPhone,
			Style:           input.Style,
			PrimaryColor:    input.PrimaryColor,
			SecondaryColor:  input.SecondaryColor,
			Pattern:         input.Pattern,
			SpecialRequests: input.SpecialRequests,
			Measurements:    datatypes.NewJSONType(input.Measurements),
			Budget:          input.Budget,
			ReferenceImages: datatypes.NewJSONSlice(input.ReferenceImages),
			Status:          models.CustomOrderPending,
		}

		err := l.db.Create(&customOrder).Error
		if err == nil {
			return customOrder, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.CustomOrder{}, err
		}
		number = ""
	}
	return models.CustomOrder{}, fmt.Errorf("no unique order number after %d attempts", numberAttempts)
}

// SetCustomOrderStatus updates a request's lifecycle state, stamping the
// completion time when it finishes.
func (l *Ledger) SetCustomOrderStatus(id uint, status string) (models.CustomOrder, error) {
	if !models.IsCustomOrderStatus(status) {
		return models.CustomOrder{}, ErrBadStatus
	}

	var customOrder models.CustomOrder
	if err := l.db.First(&customOrder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CustomOrder{}, ErrOrderNotFound
		}
		return models.CustomOrder{}, err
	}

	updates := map[string]any{"status": status}
	if status == models.CustomOrderCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}

	if err := l.db.Model(&customOrder).Updates(updates).Error; err != nil {
		return models.CustomOrder{}, err
	}
	customOrder.Status = status
	return customOrder, nil
}
