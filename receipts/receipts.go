// Package receipts renders fixed-layout PDF summaries of paid orders.
package receipts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bikinisbytelly/bikinis-api/models"
	"github.com/jung-kurt/gofpdf"
)

type Generator interface {
	Render(order models.Order) (string, error)
}

type BusinessProfile struct {
	Name  string
	Email string
	Phone string
}

// PDFGenerator writes receipt_<order_number>.pdf into Dir. Rendering is a
// pure function of the order plus the business profile.
type PDFGenerator struct {
	Business BusinessProfile
	Dir      string
}

func NewPDFGenerator(business BusinessProfile, dir string) *PDFGenerator {
	return &PDFGenerator{Business: business, Dir: dir}
}

// Brand palette, matches the storefront.
var (
	brandR, brandG, brandB = 0, 105, 148
	inkR, inkG, inkB       = 44, 62, 80
)

func (g *PDFGenerator) Render(order models.Order) (string, error) {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(54, 54, 54)
	pdf.AddPage()

	// Business header
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 30, g.Business.Name, "", 1, "C", false, 0, "")
	pdf.SetTextColor(inkR, inkG, inkB)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Email: "+g.Business.Email, "", 1, "C", false, 0, "")
	pdf.Ln(18)

	g.heading(pdf, "RECEIPT")

	// Order metadata
	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Order Number:", order.OrderNumber},
		{"Date:", order.CreatedAt.Format("January 2, 2006")},
		{"Customer:", order.CustomerName},
		{"Email:", order.CustomerEmail},
	}
	for _, row := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 16, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 16, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(12)

	// Shipping address
	g.heading(pdf, "Shipping Address:")
	pdf.SetFont("Helvetica", "", 10)
	address := fmt.Sprintf("%s\n%s, %s %s",
		order.ShippingAddress, order.ShippingCity, order.ShippingState, order.ShippingZip)
	pdf.MultiCell(0, 14, address, "", "L", false)
	pdf.Ln(12)

	// Item table
	g.heading(pdf, "Items Ordered:")
	colWidths := []float64{190, 70, 50, 90, 90}
	headers := []string{"Item", "Size", "Qty", "Price", "Total"}

	pdf.SetFillColor(brandR, brandG, brandB)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(colWidths[i], 22, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(inkR, inkG, inkB)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items.Data() {
		size := item.Size
		if size == "" {
			size = "N/A"
		}
		lineTotal := item.Price * float64(item.Quantity)
		cells := []string{
			item.Name,
			size,
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("$%.2f", item.Price),
			fmt.Sprintf("$%.2f", lineTotal),
		}
		for i, c := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(colWidths[i], 18, c, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(16)

	// Totals
	totals := [][2]string{
		{"Subtotal:", fmt.Sprintf("$%.2f", order.Subtotal)},
		{"Shipping:", fmt.Sprintf("$%.2f", order.ShippingCost)},
		{"Tax:", fmt.Sprintf("$%.2f", order.Tax)},
	}
	for _, row := range totals {
		pdf.CellFormat(380, 15, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(110, 15, row[1], "", 1, "R", false, 0, "")
	}
	pdf.SetDrawColor(brandR, brandG, brandB)
	pdf.SetLineWidth(1.5)
	pdf.Line(pdf.GetX()+330, pdf.GetY()+4, pdf.GetX()+490, pdf.GetY()+4)
	pdf.Ln(8)
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(380, 20, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(110, 20, fmt.Sprintf("$%.2f", order.Total), "", 1, "R", false, 0, "")
	pdf.Ln(24)

	// Footer
	pdf.SetTextColor(inkR, inkG, inkB)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 14, "Thank you for your purchase!", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Each bikini is handcrafted with love.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 14, "Questions? Contact us at "+g.Business.Email, "", 1, "C", false, 0, "")

	path := filepath.Join(g.Dir, fmt.Sprintf("receipt_%s.pdf", order.OrderNumber))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

func (g *PDFGenerator) heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 20, text, "", 1, "L", false, 0, "")
	pdf.SetTextColor(inkR, inkG, inkB)
	pdf.Ln(4)
}
