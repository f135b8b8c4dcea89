package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanju-subash/Cloudnest-rag/billing"
)

func TestOrderInsertionOrder(t *testing.T) {
	o := NewOrder()
	o.Set("Chicken Curry", 1)
	o.Set("Veg Salad", 2)
	o.Set("Gulab Jamun", 3)

	assert.Equal(t, []billing.Requested{
		{Name: "Chicken Curry", Quantity: 1},
		{Name: "Veg Salad", Quantity: 2},
		{Name: "Gulab Jamun", Quantity: 3},
	}, o.Items())
}

func TestOrderSetReplacesQuantity(t *testing.T) {
	o := NewOrder()
	o.Set("Veg Salad", 2)
	o.Set("Veg Salad", 5)

	assert.Equal(t, 5, o.Quantity("Veg Salad"))
	assert.Equal(t, 1, o.Len())
}

func TestOrderAddIncrements(t *testing.T) {
	o := NewOrder()
	o.Set("Veg Salad", 2)
	o.Add("Veg Salad", 3)
	o.Add("Chicken Curry", 1)

	assert.Equal(t, 5, o.Quantity("Veg Salad"))
	assert.Equal(t, 1, o.Quantity("Chicken Curry"))
	// Incrementing an existing item keeps its original position
	assert.Equal(t, "Veg Salad", o.Items()[0].Name)
}

func TestOrderClear(t *testing.T) {
	o := NewOrder()
	o.Set("Veg Salad", 2)
	o.Clear()

	assert.True(t, o.Empty())
	assert.Zero(t, o.Quantity("Veg Salad"))
	assert.Empty(t, o.Items())
}
