package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bikinisbytelly/bikinis-api/ledger"
	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/bikinisbytelly/bikinis-api/utils"
	"github.com/gin-gonic/gin"
)

// Every field the request form must carry. Measurement values may be blank
// strings, but the keys themselves have to be present.
var requiredCustomOrderFields = []string{
	"name", "email", "phone", "style", "primary_color", "pattern", "budget",
	"bust", "under_bust", "waist", "hips",
}

func formValue(form map[string][]string, key string) string {
	if values, ok := form[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// CreateCustomOrder handles the bespoke-request form: multipart fields plus
// optional reference images. Images are written to disk before the record
// commits; a failed commit leaves orphan files, which is accepted.
func CreateCustomOrder(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	for _, field := range requiredCustomOrderFields {
		if _, ok := form.Value[field]; !ok {
			respondWithError(ctx, http.StatusBadRequest, "Missing field: "+field, nil)
			return
		}
	}
	for _, field := range []string{"name", "email", "phone", "style", "primary_color", "pattern", "budget"} {
		if formValue(form.Value, field) == "" {
			respondWithError(ctx, http.StatusBadRequest, "Field cannot be empty: "+field, nil)
			return
		}
	}

	orderNumber, err := ledger.NewCustomOrderNumber()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order number", err)
		return
	}

	uploadDir := utils.EnvOr("UPLOAD_DIR", filepath.Join("static", "images", "uploads"))
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to prepare upload directory", err)
		return
	}

	var savedPaths []string
	for _, file := range form.File["images"] {
		if file.Filename == "" {
			continue
		}
		dest := filepath.Join(uploadDir,
			fmt.Sprintf("%s_%s", orderNumber, utils.SanitizeFilename(file.Filename)))
		if err := ctx.SaveUploadedFile(file, dest); err != nil {
			log.Printf("Error saving reference image %s: %v", file.Filename, err)
			continue
		}
		savedPaths = append(savedPaths, dest)
	}

	customOrder, err := Ledger.CreateCustomOrder(ledger.CustomOrderInput{
		OrderNumber:     orderNumber,
		CustomerName:    formValue(form.Value, "name"),
		CustomerEmail:   formValue(form.Value, "email"),
		CustomerPhone:   formValue(form.Value, "phone"),
		Style:           formValue(form.Value, "style"),
		PrimaryColor:    formValue(form.Value, "primary_color"),
		SecondaryColor:  formValue(form.Value, "secondary_color"),
		Pattern:         formValue(form.Value, "pattern"),
		SpecialRequests: formValue(form.Value, "special_requests"),
		Measurements: models.Measurements{
			Bust:       formValue(form.Value, "bust"),
			UnderBust:  formValue(form.Value, "under_bust"),
			Waist:      formValue(form.Value, "waist"),
			Hips:       formValue(form.Value, "hips"),
			Additional: formValue(form.Value, "additional_measurements"),
		},
		Budget:          formValue(form.Value, "budget"),
		ReferenceImages: savedPaths,
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save custom order", err)
		return
	}

	if err := Mailer.CustomOrderConfirmation(customOrder); err != nil {
		log.Println("Error sending custom order emails:", err)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":      true,
		"order_id":     customOrder.ID,
		"order_number": customOrder.OrderNumber,
	})
}
