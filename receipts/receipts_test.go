package receipts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func sampleOrder() models.Order {
	return models.Order{
		Model:           gorm.Model{ID: 7, CreatedAt: time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)},
		OrderNumber:     "ORD-20260814-1A2B3C4D",
		CustomerName:    "Marina Diaz",
		CustomerEmail:   "marina@example.com",
		ShippingAddress: "12 Shoreline Dr",
		ShippingCity:    "Santa Cruz",
		ShippingState:   "CA",
		ShippingZip:     "95060",
		Items: datatypes.NewJSONType([]models.OrderItem{
			{Name: "Triangle Top", Size: "M", Quantity: 2, Price: 45.50},
			{Name: "Halter Bottom", Quantity: 1, Price: 38.00},
		}),
		Subtotal:     119.44,
		ShippingCost: 0,
		Tax:          9.56,
		Total:        129.00,
	}
}

func TestRenderWritesReceiptPDF(t *testing.T) {
	dir := t.TempDir()
	g := NewPDFGenerator(BusinessProfile{Name: "Bikinis By Telly", Email: "telly@example.com"}, dir)

	path, err := g.Render(sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "receipt_ORD-20260814-1A2B3C4D.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "receipt should not be empty")

	head := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestRenderCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")
	g := NewPDFGenerator(BusinessProfile{Name: "Bikinis By Telly", Email: "telly@example.com"}, dir)

	_, err := g.Render(sampleOrder())
	require.NoError(t, err)
}

func TestRenderOverwritesOnRepeatedCalls(t *testing.T) {
	g := NewPDFGenerator(BusinessProfile{Name: "Bikinis By Telly", Email: "telly@example.com"}, t.TempDir())

	first, err := g.Render(sampleOrder())
	require.NoError(t, err)
	second, err := g.Render(sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
