// Package billing turns a confirmed order into an immutable bill record.
package billing

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanju-subash/Cloudnest-rag/knowledge"
)

// GSTRate is applied to the subtotal of every bill
const GSTRate = 0.05

// LineItem is one billed row
type LineItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	LineTotal int    `json:"line_total"`
}

// Bill is the finalized computation of a confirmed order. Only the latest
// bill per session is retained; a new confirm overwrites it.
type Bill struct {
	BillID       string     `json:"bill_id"`
	IssuedAt     string     `json:"issued_at"`
	Items        []LineItem `json:"items"`
	Subtotal     int        `json:"subtotal"`
	GST          int        `json:"gst"`
	Total        int        `json:"total"`
	Mode         string     `json:"mode"`
	Slot         string     `json:"slot"`
	Address      string     `json:"address"`
	AddressLines []string   `json:"address_lines"`
}

// Requested is one ordered item with its quantity, in selection order
type Requested struct {
	Name     string
	Quantity int
}

// NewBillID produces "CN-" plus 8 uppercase hex characters. Uniqueness is
// best-effort; collisions are not checked.
func NewBillID() string {
	return "CN-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Compute prices the requested items against the menu and produces the bill.
// Line order follows the order items were requested in. GST is rounded to
// the nearest integer, ties away from zero.
func Compute(requested []Requested, menu map[string]knowledge.MenuItem, mode, slot, address string) Bill {
	items := make([]LineItem, 0, len(requested))
	subtotal := 0
	for _, req := range requested {
		item := menu[req.Name]
		lineTotal := item.Price * req.Quantity
		subtotal += lineTotal
		items = append(items, LineItem{
			Name:      item.Name,
			Quantity:  req.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
	}

	gst := int(math.Round(float64(subtotal) * GSTRate))
	return Bill{
		BillID:       NewBillID(),
		IssuedAt:     time.Now().Format("2006-01-02 15:04:05"),
		Items:        items,
		Subtotal:     subtotal,
		GST:          gst,
		Total:        subtotal + gst,
		Mode:         mode,
		Slot:         slot,
		Address:      address,
		AddressLines: SplitAddressLines(address),
	}
}

// SplitAddressLines breaks an address into display lines: newline-separated
// segments first, then comma-separated segments when at least two result,
// then a midpoint split for long unsegmented text (8+ words), else the
// address as a single line.
func SplitAddressLines(address string) []string {
	value := strings.TrimSpace(address)
	if value == "" {
		return nil
	}

	if strings.Contains(value, "\n") {
		var lines []string
		for _, line := range strings.Split(value, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			return lines
		}
	}

	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) >= 2 {
		return parts
	}

	words := strings.Fields(value)
	if len(words) >= 8 {
		mid := len(words) / 2
		return []string{strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")}
	}

	return []string{value}
}
