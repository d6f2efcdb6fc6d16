package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/bikinisbytelly/bikinis-api/initializers"
	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/bikinisbytelly/bikinis-api/payments"
	"github.com/bikinisbytelly/bikinis-api/routes"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type createdIntent struct {
	AmountCents int64
	OrderID     uint
	Email       string
}

type fakeGateway struct {
	intents   []createdIntent
	refunds   []string
	intentErr error
	refundErr error
	event     payments.Event
	verifyErr error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountCents int64, orderID uint, customerEmail string) (payments.Intent, error) {
	if g.intentErr != nil {
		return payments.Intent{}, g.intentErr
	}
	g.intents = append(g.intents, createdIntent{amountCents, orderID, customerEmail})
	return payments.Intent{
		ID:           fmt.Sprintf("pi_test_%d", orderID),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", orderID),
	}, nil
}

func (g *fakeGateway) VerifyWebhook(payload []byte, sigHeader string) (payments.Event, error) {
	if g.verifyErr != nil {
		return payments.Event{}, g.verifyErr
	}
	return g.event, nil
}

func (g *fakeGateway) Refund(_ context.Context, intentID string) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, intentID)
	return nil
}

type fakeDispatcher struct {
	orderConfirmations  []string // receipt paths
	customConfirmations int
	shippingNotices     []string // tracking numbers
	contactReceipts     int
	welcomes            []string
	reviewsPending      int
}

func (d *fakeDispatcher) OrderConfirmation(_ models.Order, receiptPath string) error {
	d.orderConfirmations = append(d.orderConfirmations, receiptPath)
	return nil
}

func (d *fakeDispatcher) CustomOrderConfirmation(models.CustomOrder) error {
	d.customConfirmations++
	return nil
}

func (d *fakeDispatcher) ShippingNotice(_ models.Order, trackingNumber string) error {
	d.shippingNotices = append(d.shippingNotices, trackingNumber)
	return nil
}

func (d *fakeDispatcher) ContactReceipt(models.Contact) error {
	d.contactReceipts++
	return nil
}

func (d *fakeDispatcher) NewsletterWelcome(email string) error {
	d.welcomes = append(d.welcomes, email)
	return nil
}

func (d *fakeDispatcher) ReviewPending(models.Review) error {
	d.reviewsPending++
	return nil
}

type fakeReceipts struct {
	renders int
	err     error
}

func (r *fakeReceipts) Render(order models.Order) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.renders++
	return filepath.Join("receipts", "receipt_"+order.OrderNumber+".pdf"), nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	gateway  *fakeGateway
	mailer   *fakeDispatcher
	receipts *fakeReceipts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Review{}, &models.Order{},
		&models.CustomOrder{}, &models.Newsletter{}, &models.Contact{},
		&models.Admin{},
	))

	env := &testEnv{
		db:       db,
		gateway:  &fakeGateway{},
		mailer:   &fakeDispatcher{},
		receipts: &fakeReceipts{},
	}

	initializers.DB = db
	controllers.Ledger = ledger.New(db)
	controllers.Payments = env.gateway
	controllers.Receipts = env.receipts
	controllers.Mailer = env.mailer

	t.Setenv("JWT_SECRET", "test-secret")

	env.router = gin.New()
	routes.DefaultRoutes(env.router)
	routes.ProductRoutes(env.router)
	routes.ContactRoutes(env.router)
	routes.CustomOrderRoutes(env.router)
	routes.CheckoutRoutes(env.router)
	routes.AdminRoutes(env.router)
	return env
}

func (e *testEnv) do(t *testing.T, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": 1,
		"username": "telly",
		"role":     "admin",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func authHeader(t *testing.T) map[string]string {
	return map[string]string{"Authorization": "Bearer " + adminToken(t)}
}

func seedProduct(t *testing.T, env *testEnv, name string, price float64, featured bool) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, IsFeatured: featured, Style: "bikini"}
	require.NoError(t, env.db.Create(&product).Error)
	return product
}

func seedOrder(t *testing.T, env *testEnv, price float64) models.Order {
	t.Helper()
	order, err := controllers.Ledger.CreateOrder(ledger.OrderInput{
		CustomerName:    "Ava Reyes",
		CustomerEmail:   "ava@example.com",
		ShippingAddress: "12 Shore Rd",
		ShippingCity:    "Miami",
		ShippingState:   "FL",
		ShippingZip:     "33101",
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Wave Rider Top", Quantity: 1, Price: price},
		},
		Subtotal:     price / 1.08,
		Tax:          price - price/1.08,
		ShippingCost: 10,
		Total:        price + 10,
	})
	require.NoError(t, err)
	return order
}

func TestGetProductsListsAndSearches(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Wave Rider Top", 45, false)
	seedProduct(t, env, "Coral Reef Set", 89, true)

	rec := env.do(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)

	rec = env.do(t, http.MethodGet, "/api/products?search=Coral", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Coral Reef Set", products[0].Name)
	// No photos uploaded yet, so the catalog falls back to the placeholder.
	assert.Equal(t, models.PlaceholderImage, products[0].MainImage)
}

func TestGetFeaturedProducts(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Wave Rider Top", 45, false)
	featured := seedProduct(t, env, "Coral Reef Set", 89, true)

	rec := env.do(t, http.MethodGet, "/api/products/featured", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, featured.ID, products[0].ID)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/products/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Wave Rider Top", 45, false)

	rec := env.do(t, http.MethodPost, "/api/reviews", gin.H{
		"product_id": product.ID,
		"name":       "Maya",
		"rating":     5,
		"review":     "Fits perfectly.",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.mailer.reviewsPending)

	// Pending reviews stay out of the public listing.
	url := fmt.Sprintf("/api/products/%d/reviews", product.ID)
	rec = env.do(t, http.MethodGet, url, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	assert.Empty(t, reviews)

	var stored models.Review
	require.NoError(t, env.db.First(&stored).Error)
	rec = env.do(t, http.MethodPatch,
		fmt.Sprintf("/api/admin/reviews/%d/approve", stored.ID), nil, authHeader(t))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, url, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.True(t, reviews[0].Approved)
}

func TestSubmitReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Wave Rider Top", 45, false)

	rec := env.do(t, http.MethodPost, "/api/reviews", gin.H{
		"product_id": product.ID,
		"name":       "Maya",
		"rating":     6,
		"review":     "Too good to be true.",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/reviews", gin.H{
		"product_id": 999,
		"name":       "Maya",
		"rating":     4,
		"review":     "Ghost product.",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, env.mailer.reviewsPending)
}

func TestApproveReviewNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPatch, "/api/admin/reviews/404/approve", nil, authHeader(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/contact", gin.H{
		"name":    "Maya",
		"email":   "maya@example.com",
		"subject": "Sizing",
		"message": "Do tops run small?",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	env.db.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 1, env.mailer.contactReceipts)
}

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/newsletter/subscribe",
		gin.H{"email": "maya@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/newsletter/subscribe",
		gin.H{"email": "maya@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Already subscribed", decodeJSON(t, rec)["message"])

	var count int64
	env.db.Model(&models.Newsletter{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, []string{"maya@example.com"}, env.mailer.welcomes)
}

func TestNewsletterResubscribeFlipsFlag(t *testing.T) {
	env := newTestEnv(t)
	var row models.Newsletter
	require.NoError(t, env.db.Create(&models.Newsletter{Email: "maya@example.com"}).Error)
	require.NoError(t, env.db.Model(&models.Newsletter{}).
		Where("email = ?", "maya@example.com").Update("subscribed", false).Error)

	rec := env.do(t, http.MethodPost, "/api/newsletter/subscribe",
		gin.H{"email": "maya@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, env.db.Where("email = ?", "maya@example.com").First(&row).Error)
	assert.True(t, row.Subscribed)
	// Re-activation is silent, no second welcome email.
	assert.Empty(t, env.mailer.welcomes)
}

func checkoutBody(productID uint, quantity int, total float64) gin.H {
	return gin.H{
		"customer": gin.H{
			"first_name": "Ava",
			"last_name":  "Reyes",
			"email":      "ava@example.com",
			"address":    "12 Shore Rd",
			"city":       "Miami",
			"state":      "FL",
			"zip":        "33101",
		},
		"items": []gin.H{
			{"product_id": productID, "size": "M", "quantity": quantity},
		},
		"total": total,
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Wave Rider Top", 50, false)

	// Goods 50 ship for 10, so the storefront submits 60.
	rec := env.do(t, http.MethodPost, "/api/create-payment-intent",
		checkoutBody(product.ID, 1, 60), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	assert.NotEmpty(t, body["clientSecret"])
	assert.NotEmpty(t, body["orderNumber"])

	require.Len(t, env.gateway.intents, 1)
	assert.EqualValues(t, 6000, env.gateway.intents[0].AmountCents)
	assert.Equal(t, "ava@example.com", env.gateway.intents[0].Email)

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.NotEmpty(t, order.PaymentIntentID)
	assert.InDelta(t, 60, order.Total, 0.001)
	items := order.Items.Data()
	require.Len(t, items, 1)
	// Price comes from the catalog, not the request.
	assert.InDelta(t, 50, items[0].Price, 0.001)
}

func TestCreatePaymentIntentRejectsStaleTotal(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Wave Rider Top", 50, false)

	rec := env.do(t, http.MethodPost, "/api/create-payment-intent",
		checkoutBody(product.ID, 1, 55), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, env.gateway.intents)
}

func TestCreatePaymentIntentUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/create-payment-intent",
		checkoutBody(77, 1, 60), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePaymentIntentGatewayDown(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Wave Rider Top", 50, false)
	env.gateway.intentErr = &payments.GatewayError{Op: "create intent", Status: 503, Message: "down"}

	rec := env.do(t, http.MethodPost, "/api/create-payment-intent",
		checkoutBody(product.ID, 1, 60), nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The order survives for manual follow-up.
	var order models.Order
	require.NoError(t, env.db.First(&order).Error)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
}

func TestWebhookInvalidSignature(t *testing.T) {
	env := newTestEnv(t)
	order := seedOrder(t, env, 50)
	env.gateway.verifyErr = payments.ErrInvalidSignature

	rec := env.do(t, http.MethodPost, "/webhook/stripe", gin.H{"forged": true}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var reloaded models.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentPending, reloaded.PaymentStatus)
	assert.Empty(t, env.mailer.orderConfirmations)
}

func TestWebhookMarksPaidOnce(t *testing.T) {
	env := newTestEnv(t)
	order := seedOrder(t, env, 50)
	env.gateway.event = payments.Event{
		Type:     payments.EventPaymentSucceeded,
		IntentID: "pi_test_1",
		Metadata: map[string]string{"order_id": fmt.Sprint(order.ID)},
	}

	// Providers redeliver; the second delivery must not resend the email.
	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/webhook/stripe", gin.H{"id": "evt_1"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var reloaded models.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, reloaded.PaymentStatus)
	assert.Equal(t, "pi_test_1", reloaded.PaymentIntentID)
	assert.Equal(t, 1, env.receipts.renders)
	require.Len(t, env.mailer.orderConfirmations, 1)
	assert.Contains(t, env.mailer.orderConfirmations[0], order.OrderNumber)
}

func TestWebhookUnknownOrderAsksForRedelivery(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.event = payments.Event{
		Type:     payments.EventPaymentSucceeded,
		IntentID: "pi_test_9",
		Metadata: map[string]string{"order_id": "9999"},
	}

	rec := env.do(t, http.MethodPost, "/webhook/stripe", gin.H{"id": "evt_9"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	env := newTestEnv(t)
	order := seedOrder(t, env, 50)
	env.gateway.event = payments.Event{
		Type:     "payment_intent.created",
		IntentID: "pi_test_1",
		Metadata: map[string]string{"order_id": fmt.Sprint(order.ID)},
	}

	rec := env.do(t, http.MethodPost, "/webhook/stripe", gin.H{"id": "evt_2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentPending, reloaded.PaymentStatus)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("sandy-toes"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.Admin{Username: "telly", PasswordHash: string(hash)}).Error)

	rec := env.do(t, http.MethodPost, "/api/admin/login",
		gin.H{"username": "telly", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/admin/login",
		gin.H{"username": "telly", "password": "sandy-toes"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeJSON(t, rec)["token"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/orders", nil,
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetOrdersPagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		seedOrder(t, env, 50)
	}

	rec := env.do(t, http.MethodGet, "/api/admin/orders?page=1&limit=2", nil, authHeader(t))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	orders := body["orders"].([]any)
	assert.Len(t, orders, 2)
	metadata := body["metadata"].(map[string]any)
	assert.EqualValues(t, 3, metadata["total"])
	assert.Equal(t, true, metadata["hasNextPage"])
	assert.Equal(t, false, metadata["hasPrevPage"])
}

func TestUpdateOrderStatusShippedSendsNotice(t *testing.T) {
	env := newTestEnv(t)
	order := seedOrder(t, env, 50)

	url := fmt.Sprintf("/api/admin/orders/%d/status", order.ID)
	rec := env.do(t, http.MethodPatch, url,
		gin.H{"status": models.OrderShipped, "tracking_number": "1Z999"}, authHeader(t))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderShipped, reloaded.Status)
	require.NotNil(t, reloaded.ShippedAt)
	assert.Equal(t, []string{"1Z999"}, env.mailer.shippingNotices)

	rec = env.do(t, http.MethodPatch, url, gin.H{"status": "teleported"}, authHeader(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefundOrder(t *testing.T) {
	env := newTestEnv(t)
	order := seedOrder(t, env, 50)
	url := fmt.Sprintf("/api/admin/orders/%d/refund", order.ID)

	// Unpaid orders have nothing to refund.
	rec := env.do(t, http.MethodPost, url, nil, authHeader(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, _, err := controllers.Ledger.MarkPaid(order.ID, "pi_test_1")
	require.NoError(t, err)

	rec = env.do(t, http.MethodPost, url, nil, authHeader(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"pi_test_1"}, env.gateway.refunds)

	var reloaded models.Order
	require.NoError(t, env.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentRefunded, reloaded.PaymentStatus)
}

func customOrderForm(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("images", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func baseCustomOrderFields() map[string]string {
	return map[string]string{
		"name":          "Ava Reyes",
		"email":         "ava@example.com",
		"phone":         "555-0100",
		"style":         "high-waisted",
		"primary_color": "coral",
		"pattern":       "solid",
		"budget":        "150-200",
		"bust":          "34",
		"under_bust":    "30",
		"waist":         "28",
		"hips":          "38",
	}
}

func TestCreateCustomOrder(t *testing.T) {
	env := newTestEnv(t)
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)

	buf, contentType := customOrderForm(t, baseCustomOrderFields(), "inspo.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/custom-order", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	orderNumber, _ := body["order_number"].(string)
	assert.True(t, strings.HasPrefix(orderNumber, "CO-"), "got %q", orderNumber)

	var stored models.CustomOrder
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "34", stored.Measurements.Data().Bust)
	images := []string(stored.ReferenceImages)
	require.Len(t, images, 1)
	_, err := os.Stat(images[0])
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(images[0]), orderNumber)

	assert.Equal(t, 1, env.mailer.customConfirmations)
}

func TestCreateCustomOrderMissingField(t *testing.T) {
	env := newTestEnv(t)

	fields := baseCustomOrderFields()
	delete(fields, "budget")
	buf, contentType := customOrderForm(t, fields, "")
	req := httptest.NewRequest(http.MethodPost, "/api/custom-order", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	env.db.Model(&models.CustomOrder{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCustomOrderAllowsBlankMeasurements(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	fields := baseCustomOrderFields()
	fields["bust"] = ""
	buf, contentType := customOrderForm(t, fields, "")
	req := httptest.NewRequest(http.MethodPost, "/api/custom-order", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCustomOrdersFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	for _, status := range []string{models.CustomOrderPending, models.CustomOrderInProgress} {
		order, err := controllers.Ledger.CreateCustomOrder(ledger.CustomOrderInput{
			CustomerName:  "Ava",
			CustomerEmail: "ava@example.com",
			Style:         "one-piece",
			Budget:        "200",
		})
		require.NoError(t, err)
		if status != models.CustomOrderPending {
			_, err = controllers.Ledger.SetCustomOrderStatus(order.ID, status)
			require.NoError(t, err)
		}
	}

	rec := env.do(t, http.MethodGet,
		"/api/admin/custom-orders?status="+models.CustomOrderInProgress, nil, authHeader(t))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Len(t, body["customOrders"].([]any), 1)
}

func TestHomeListsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/create-payment-intent")
}
