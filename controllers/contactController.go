package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/bikinisbytelly/bikinis-api/initializers"
	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SubmitContact(ctx *gin.Context) {
	var body struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	contact := models.Contact{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Message: body.Message,
	}
	if err := initializers.DB.Create(&contact).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save message", err)
		return
	}

	if err := Mailer.ContactReceipt(contact); err != nil {
		log.Println("Error sending contact emails:", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// SubscribeNewsletter is idempotent: resubscribing an existing address
// flips the flag back on instead of inserting a duplicate row.
func SubscribeNewsletter(ctx *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var existing models.Newsletter
	err := initializers.DB.Where("email = ?", body.Email).First(&existing).Error
	if err == nil {
		if !existing.Subscribed {
			if err := initializers.DB.Model(&existing).Update("subscribed", true).Error; err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to update subscription", err)
				return
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Already subscribed"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check subscription", err)
		return
	}

	subscription := models.Newsletter{Email: body.Email, Subscribed: true}
	if err := initializers.DB.Create(&subscription).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save subscription", err)
		return
	}

	if err := Mailer.NewsletterWelcome(body.Email); err != nil {
		log.Println("Error sending newsletter welcome:", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
