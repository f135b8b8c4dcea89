package session

import "github.com/sanju-subash/Cloudnest-rag/billing"

// Order is a pending order: item name → quantity, preserving the order
// items were first added in. Go maps don't keep insertion order, and the
// summary and bill must list lines the way the customer built them.
type Order struct {
	names []string
	qty   map[string]int
}

// NewOrder creates an empty pending order
func NewOrder() *Order {
	return &Order{qty: make(map[string]int)}
}

// Set records an absolute quantity for an item
func (o *Order) Set(name string, quantity int) {
	if _, exists := o.qty[name]; !exists {
		o.names = append(o.names, name)
	}
	o.qty[name] = quantity
}

// Add increments an item's quantity
func (o *Order) Add(name string, quantity int) {
	if _, exists := o.qty[name]; !exists {
		o.names = append(o.names, name)
	}
	o.qty[name] += quantity
}

// Quantity returns the recorded quantity for an item, zero if absent
func (o *Order) Quantity(name string) int {
	return o.qty[name]
}

// Empty reports whether no items are pending
func (o *Order) Empty() bool {
	return len(o.names) == 0
}

// Len returns the number of distinct pending items
func (o *Order) Len() int {
	return len(o.names)
}

// Items returns the pending lines in insertion order
func (o *Order) Items() []billing.Requested {
	items := make([]billing.Requested, 0, len(o.names))
	for _, name := range o.names {
		items = append(items, billing.Requested{Name: name, Quantity: o.qty[name]})
	}
	return items
}

// Clear discards all pending items
func (o *Order) Clear() {
	o.names = nil
	o.qty = make(map[string]int)
}
