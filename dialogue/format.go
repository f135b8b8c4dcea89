package dialogue

import (
	"fmt"
	"strings"

	"github.com/sanju-subash/Cloudnest-rag/billing"
	"github.com/sanju-subash/Cloudnest-rag/knowledge"
	"github.com/sanju-subash/Cloudnest-rag/session"
)

func modeLabel(mode string) string {
	switch mode {
	case session.ModeDineIn:
		return "Dine-In"
	case session.ModeDelivery:
		return "Online Delivery"
	}
	return ""
}

// orderSummary renders the pending order with a running subtotal
func orderSummary(order *session.Order, menuItems []knowledge.MenuItem, sctx *session.ServiceContext) (string, int) {
	byName := knowledge.ByName(menuItems)
	lines := []string{"Pending Order:"}

	if label := modeLabel(sctx.Mode); label != "" {
		lines = append(lines, "Order Type: "+label)
	}
	if sctx.Mode == session.ModeDineIn && sctx.Slot != "" {
		lines = append(lines, "Dine-In Slot: "+sctx.Slot)
	}

	subtotal := 0
	for idx, req := range order.Items() {
		item := byName[req.Name]
		lineTotal := item.Price * req.Quantity
		subtotal += lineTotal
		lines = append(lines, fmt.Sprintf("%d. %s x%d = Rs %d", idx+1, item.Name, req.Quantity, lineTotal))
	}

	lines = append(lines, fmt.Sprintf("Estimated Subtotal: Rs %d", subtotal))
	if sctx.Mode == session.ModeDelivery && sctx.Address == "" {
		lines = append(lines, "At confirm, you will be asked for delivery address.")
	}
	lines = append(lines, "Type 'confirm' to place order and generate final bill, or 'cancel' to discard.")
	return strings.Join(lines, "\n"), subtotal
}

// billText renders a finalized bill for the chat answer
func billText(bill billing.Bill) string {
	lines := []string{"Final Bill:"}

	if label := modeLabel(bill.Mode); label != "" {
		lines = append(lines, "Order Type: "+label)
	}
	if bill.Mode == session.ModeDineIn && bill.Slot != "" {
		lines = append(lines, "Dine-In Slot: "+bill.Slot)
	}
	if bill.Mode == session.ModeDelivery && bill.Address != "" {
		lines = append(lines, "Delivery Address:")
		for _, addrLine := range bill.AddressLines {
			lines = append(lines, "- "+addrLine)
		}
	}

	for idx, item := range bill.Items {
		lines = append(lines, fmt.Sprintf("%d. %s x%d = Rs %d", idx+1, item.Name, item.Quantity, item.LineTotal))
	}

	lines = append(lines,
		fmt.Sprintf("Subtotal: Rs %d", bill.Subtotal),
		fmt.Sprintf("GST (5%%): Rs %d", bill.GST),
		fmt.Sprintf("Total: Rs %d", bill.Total),
		"Bill ID: "+bill.BillID,
	)
	return strings.Join(lines, "\n")
}

func formatMenuList(menuItems []knowledge.MenuItem) string {
	if len(menuItems) == 0 {
		return "Menu is currently unavailable."
	}

	lines := []string{"Menu Items:"}
	for _, item := range menuItems {
		lines = append(lines, fmt.Sprintf("- %s - Rs %d (%s, Ingredients: %s)",
			item.Name, item.Price, item.ItemType, item.Ingredients))
	}
	return strings.Join(lines, "\n")
}
