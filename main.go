package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/bikinisbytelly/bikinis-api/initializers"
	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/notifications"
	"github.com/bikinisbytelly/bikinis-api/payments"
	"github.com/bikinisbytelly/bikinis-api/receipts"
	"github.com/bikinisbytelly/bikinis-api/routes"
	"github.com/bikinisbytelly/bikinis-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.BootstrapAdmin()
}

func main() {
	businessName := utils.EnvOr("BUSINESS_NAME", "Bikinis By Telly")
	businessEmail := os.Getenv("BUSINESS_EMAIL")

	controllers.Ledger = ledger.New(initializers.DB)
	controllers.Payments = payments.NewStripeGateway(
		os.Getenv("STRIPE_SECRET_KEY"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
	)
	controllers.Receipts = receipts.NewPDFGenerator(
		receipts.BusinessProfile{
			Name:  businessName,
			Email: businessEmail,
			Phone: os.Getenv("BUSINESS_PHONE"),
		},
		utils.EnvOr("RECEIPT_DIR", "receipts"),
	)
	controllers.Mailer = notifications.NewSMTPMailer(
		os.Getenv("SMTP_ADDRESS"),
		os.Getenv("FROM_EMAIL_SMTP"),
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL"),
		businessName,
		businessEmail,
	)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{utils.EnvOr("FRONTEND_URL", "http://localhost:5000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server.Static("/static/images/uploads", utils.EnvOr("UPLOAD_DIR", filepath.Join("static", "images", "uploads")))

	routes.DefaultRoutes(server)
	routes.ProductRoutes(server)
	routes.ContactRoutes(server)
	routes.CustomOrderRoutes(server)
	routes.CheckoutRoutes(server)
	routes.AdminRoutes(server)

	server.Run()
}
