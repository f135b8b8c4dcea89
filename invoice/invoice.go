// Package invoice renders a finalized bill into a paginated A4 tax invoice.
package invoice

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/sanju-subash/Cloudnest-rag/billing"
	"github.com/sanju-subash/Cloudnest-rag/config"
)

const (
	leftMargin = 15.0
	rightEdge  = 195.0
	breakAt    = 270.0 // start a new page beyond this y
	rowHeight  = 6.0
	colItem    = leftMargin
	colQty     = 110.0
	colUnit    = 130.0
	colTotal   = 165.0
)

// Render writes the bill as a PDF document. Page breaks reprint the item
// table header so long orders stay readable.
func Render(w io.Writer, bill billing.Bill, brand config.Branding) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := header(pdf, brand)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(leftMargin, y, "Tax Invoice")
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftMargin, y, "Bill ID: "+bill.BillID)
	y += 6
	pdf.Text(leftMargin, y, "Issued At: "+bill.IssuedAt)
	y += 6

	switch bill.Mode {
	case "dine_in":
		pdf.Text(leftMargin, y, "Order Type: Dine-In")
		y += 6
		if bill.Slot != "" {
			pdf.Text(leftMargin, y, "Dine-In Slot: "+bill.Slot)
			y += 6
		}
	case "delivery":
		pdf.Text(leftMargin, y, "Order Type: Online Delivery")
		y += 6
		if len(bill.AddressLines) > 0 {
			pdf.Text(leftMargin, y, "Delivery Address:")
			y += 6
			for _, line := range bill.AddressLines {
				y = ensureSpace(pdf, y)
				pdf.Text(leftMargin+5, y, "- "+line)
				y += 5
			}
		}
	}

	y += 8
	y = itemTableHeader(pdf, y)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range bill.Items {
		if y > breakAt {
			pdf.AddPage()
			y = itemTableHeader(pdf, 25)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.Text(colItem, y, item.Name)
		pdf.Text(colQty, y, fmt.Sprintf("%d", item.Quantity))
		pdf.Text(colUnit, y, fmt.Sprintf("Rs %d", item.UnitPrice))
		pdf.Text(colTotal, y, fmt.Sprintf("Rs %d", item.LineTotal))
		y += rowHeight
	}

	y += 6
	y = ensureSpace(pdf, y)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(colUnit, y, fmt.Sprintf("Subtotal: Rs %d", bill.Subtotal))
	y += 6
	pdf.Text(colUnit, y, fmt.Sprintf("GST (5%%): Rs %d", bill.GST))
	y += 6
	pdf.Text(colUnit, y, fmt.Sprintf("Total: Rs %d", bill.Total))
	y += 12

	y = ensureSpace(pdf, y)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Text(leftMargin, y, "Thank you for ordering with us.")
	y += 5
	pdf.Text(leftMargin, y, "This is a system-generated invoice.")

	return pdf.Output(w)
}

func header(pdf *fpdf.Fpdf, brand config.Branding) float64 {
	y := 20.0
	titleX := leftMargin

	// Logo is optional; a missing file just shifts the title left
	if brand.LogoPath != "" {
		if _, err := os.Stat(brand.LogoPath); err == nil {
			opts := fpdf.ImageOptions{ReadDpi: true}
			// Branding dimensions are points in the original config; they map
			// cleanly enough onto mm for a small corner logo.
			w := brand.LogoWidth * 0.35
			h := brand.LogoHeight * 0.35
			pdf.ImageOptions(brand.LogoPath, leftMargin, y-5, w, h, false, opts, 0, "")
			titleX = leftMargin + w + 4
		}
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(titleX, y, brand.Name)
	y += 6

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(titleX, y, brand.Address)
	y += 5
	pdf.Text(titleX, y, fmt.Sprintf("Phone: %s | GSTIN: %s", brand.Phone, brand.GSTIN))
	y += 5
	pdf.Text(titleX, y, fmt.Sprintf("Email: %s | Web: %s", brand.Email, brand.Website))
	y += 6

	pdf.SetLineWidth(0.4)
	pdf.Line(leftMargin, y, rightEdge, y)
	return y + 8
}

func itemTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(colItem, y, "Item")
	pdf.Text(colQty, y, "Qty")
	pdf.Text(colUnit, y, "Unit Price")
	pdf.Text(colTotal, y, "Total")
	return y + rowHeight
}

func ensureSpace(pdf *fpdf.Fpdf, y float64) float64 {
	if y <= breakAt {
		return y
	}
	pdf.AddPage()
	return 25
}
