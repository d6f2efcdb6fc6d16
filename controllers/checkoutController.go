package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/bikinisbytelly/bikinis-api/initializers"
	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/bikinisbytelly/bikinis-api/pricing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetStripePublicKey(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"publicKey": os.Getenv("STRIPE_PUBLIC_KEY")})
}

type checkoutCustomer struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address" binding:"required"`
	Address2  string `json:"address2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
}

type checkoutItem struct {
	ProductID int    `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreatePaymentIntent prices the cart from the catalog, records the order
// and asks the gateway for a payment intent. The client's total is only a
// cross-check: pricing is always authoritative on this side.
func CreatePaymentIntent(ctx *gin.Context) {
	var body struct {
		Customer checkoutCustomer `json:"customer" binding:"required"`
		Items    []checkoutItem   `json:"items" binding:"required,min=1,dive"`
		Total    float64          `json:"total" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	items := make([]models.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		var product models.Product
		if err := initializers.DB.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to load product", err)
			}
			return
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	quote := pricing.QuoteGoods(pricing.GoodsTotal(items))
	if !pricing.WithinOneCent(quote.Total, decimal.NewFromFloat(body.Total)) {
		respondWithError(ctx, http.StatusUnprocessableEntity,
			"Cart total does not match current catalog pricing", nil)
		return
	}

	address := body.Customer.Address
	if body.Customer.Address2 != "" {
		address += "\n" + body.Customer.Address2
	}

	order, err := Ledger.CreateOrder(ledger.OrderInput{
		CustomerName:    body.Customer.FirstName + " " + body.Customer.LastName,
		CustomerEmail:   body.Customer.Email,
		CustomerPhone:   body.Customer.Phone,
		ShippingAddress: address,
		ShippingCity:    body.Customer.City,
		ShippingState:   body.Customer.State,
		ShippingZip:     body.Customer.Zip,
		Items:           items,
		Subtotal:        quote.Subtotal.InexactFloat64(),
		ShippingCost:    quote.Shipping.InexactFloat64(),
		Tax:             quote.Tax.InexactFloat64(),
		Total:           quote.Total.InexactFloat64(),
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNoItems) || errors.Is(err, ledger.ErrBadQuantity) {
			respondWithError(ctx, http.StatusBadRequest, "Invalid order items", err)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	intent, err := Payments.CreateIntent(ctx.Request.Context(),
		pricing.Cents(quote.Total), order.ID, body.Customer.Email)
	if err != nil {
		// Order stays pending for manual follow-up.
		log.Printf("Payment intent failed for order %s: %v", order.OrderNumber, err)
		respondWithError(ctx, http.StatusBadGateway, "Failed to initiate payment", nil)
		return
	}

	if err := Ledger.SetPaymentIntent(order.ID, intent.ID); err != nil {
		log.Printf("Order %s created, but intent id not saved: %s", order.OrderNumber, intent.ID)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"orderId":      order.ID,
		"orderNumber":  order.OrderNumber,
	})
}
