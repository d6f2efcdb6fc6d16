package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/payments"
	"github.com/gin-gonic/gin"
)

// HandleStripeWebhook verifies the provider callback before touching any
// state. Receipt and email are best effort once the order is durably paid:
// a 200 here stops the provider's redelivery, so it is only returned after
// the status update has committed.
func HandleStripeWebhook(ctx *gin.Context) {
	payload, err := ctx.GetRawData()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unable to read request body")
		return
	}

	event, err := Payments.VerifyWebhook(payload, ctx.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid signature")
			return
		}
		if errors.Is(err, payments.ErrMalformedPayload) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Malformed payload")
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, "Webhook rejected")
		return
	}

	if event.Type != payments.EventPaymentSucceeded {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	orderIDValue, ok := event.Metadata["order_id"]
	if !ok {
		log.Printf("Payment event %s carries no order_id metadata", event.IntentID)
		ctx.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	orderID, err := strconv.ParseUint(orderIDValue, 10, 64)
	if err != nil {
		log.Printf("Payment event %s has unparseable order_id %q", event.IntentID, orderIDValue)
		ctx.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	order, changed, err := Ledger.MarkPaid(uint(orderID), event.IntentID)
	if err != nil {
		if errors.Is(err, ledger.ErrOrderNotFound) {
			// Non-2xx so the provider redelivers once the order is visible.
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order")
		return
	}

	if changed {
		receiptPath, err := Receipts.Render(order)
		if err != nil {
			log.Printf("Error generating receipt for %s: %v", order.OrderNumber, err)
			receiptPath = ""
		}
		if err := Mailer.OrderConfirmation(order, receiptPath); err != nil {
			log.Printf("Error sending confirmation for %s: %v", order.OrderNumber, err)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
