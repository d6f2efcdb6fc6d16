package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bikinisbytelly/bikinis-api/initializers"
	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidInput          = "invalid input"
	msgInvalidCredentials    = "invalid username or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(admin models.Admin) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"role":     "admin",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

// AdminLogin authenticates the shop owner and issues a JWT.
func AdminLogin(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var admin models.Admin
	if err := initializers.DB.Where("username = ?", loginData.Username).First(&admin).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(admin.PasswordHash, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(admin)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}
	query = query.Order("created_at " + sortOrder)

	if result := query.Limit(limit).Offset(offset).Find(&orders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("order_number LIKE ?", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

// UpdateOrderStatus moves an order through fulfillment. Shipping an order
// also fires the customer notice.
func UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		Status         string `json:"status" binding:"required"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := Ledger.SetOrderStatus(uint(orderId), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrBadStatus):
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		case errors.Is(err, ledger.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		default:
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if body.Status == models.OrderShipped {
		if err := Mailer.ShippingNotice(order, body.TrackingNumber); err != nil {
			log.Println("Error sending shipping notice:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

// RefundOrder reverses the charge on a paid order and records the refund.
func RefundOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if order.PaymentStatus != models.PaymentPaid {
		sendErrorResponse(ctx, http.StatusBadRequest, "Only paid orders can be refunded")
		return
	}

	if err := Payments.Refund(ctx.Request.Context(), order.PaymentIntentID); err != nil {
		log.Printf("Refund failed for order %s: %v", order.OrderNumber, err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Payment gateway refused the refund")
		return
	}

	if err := Ledger.MarkRefunded(order.ID); err != nil {
		log.Printf("Refund issued for order %s, but status not saved: %v", order.OrderNumber, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}

func GetCustomOrders(ctx *gin.Context) {
	var customOrders []models.CustomOrder

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Order("created_at " + sortOrder)
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if result := query.Find(&customOrders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch custom orders", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"customOrders": customOrders})
}

func UpdateCustomOrderStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	if _, err := Ledger.SetCustomOrderStatus(uint(orderId), body.Status); err != nil {
		switch {
		case errors.Is(err, ledger.ErrBadStatus):
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown custom order status")
		case errors.Is(err, ledger.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Custom order not found")
		default:
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Custom order status updated successfully."})
}

// ApproveReview flips a pending review into the public listing.
func ApproveReview(ctx *gin.Context) {
	reviewId, err := strconv.Atoi(ctx.Param("reviewId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse reviewId")
		return
	}

	result := initializers.DB.Model(&models.Review{}).
		Where("id = ?", reviewId).
		Update("approved", true)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}
