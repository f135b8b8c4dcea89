package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanju-subash/Cloudnest-rag/knowledge"
)

func TestDetectServiceMode(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"I want to dine in", "dine_in"},
		{"dine-in please", "dine_in"},
		{"book a table", "dine_in"},
		{"eat in tonight", "dine_in"},
		{"home delivery", "delivery"},
		{"can you deliver?", "delivery"},
		{"online delivery to my place", "delivery"},
		{"2 veg salad", ""},
		{"hello", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectServiceMode(tt.query), "query %q", tt.query)
	}
}

func TestExtractSlot(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"7:30 pm to 9:30 pm", "7:30 PM - 9:30 PM"},
		{"7pm - 9pm works", "7PM - 9PM"},
		{"between 7 to 9 pm", "7 - 9 PM"},
		{"8 PM", "8 PM"},
		{"around 7:30pm", "7:30PM"},
		{"19:30", "19:30"},
		{"dinner please", "Dinner"},
		{"in the evening", "Evening"},
		{"no time here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSlot(tt.query), "query %q", tt.query)
	}
}

func TestLooksLikeAddress(t *testing.T) {
	t.Run("accepts multi-word, numeric or separated text", func(t *testing.T) {
		assert.True(t, LooksLikeAddress("Flat 4B, 12 MG Road, Bangalore 560038"))
		assert.True(t, LooksLikeAddress("behind the old temple"))
		assert.True(t, LooksLikeAddress("house number 42"))
		assert.True(t, LooksLikeAddress("green-park-colony"))
	})

	t.Run("rejects short strings", func(t *testing.T) {
		assert.False(t, LooksLikeAddress("MG Road"))
		assert.False(t, LooksLikeAddress(""))
	})

	t.Run("rejects mode phrases and reserved words", func(t *testing.T) {
		assert.False(t, LooksLikeAddress("switch to home delivery"))
		assert.False(t, LooksLikeAddress("confirm"))
	})
}

func testAliases() *knowledge.AliasMap {
	return knowledge.BuildAliases([]knowledge.MenuItem{
		{Name: "Veg Salad", Price: 120},
		{Name: "Chicken Curry", Price: 250},
		{Name: "Margherita Pizza", Price: 300},
	})
}

func TestParseOrder(t *testing.T) {
	aliases := testAliases()

	t.Run("leading quantity", func(t *testing.T) {
		got := ParseOrder("2 veg salad", aliases)
		assert.Equal(t, []ParsedItem{{Name: "Veg Salad", Quantity: 2}}, got)
	})

	t.Run("trailing quantity with x", func(t *testing.T) {
		got := ParseOrder("chicken curry x 3", aliases)
		assert.Equal(t, []ParsedItem{{Name: "Chicken Curry", Quantity: 3}}, got)
	})

	t.Run("default quantity is one", func(t *testing.T) {
		got := ParseOrder("a margherita pizza please", aliases)
		assert.Equal(t, []ParsedItem{{Name: "Margherita Pizza", Quantity: 1}}, got)
	})

	t.Run("multiple items in one utterance", func(t *testing.T) {
		got := ParseOrder("2 veg salad and 1 chicken curry", aliases)
		assert.Len(t, got, 2)
		quantities := map[string]int{}
		for _, item := range got {
			quantities[item.Name] = item.Quantity
		}
		assert.Equal(t, 2, quantities["Veg Salad"])
		assert.Equal(t, 1, quantities["Chicken Curry"])
	})

	t.Run("overlapping aliases take max not sum", func(t *testing.T) {
		// "2 veg salad" matches the full name with quantity 2 and the
		// bare "salad" alias with quantity 1; the item must not double
		got := ParseOrder("2 veg salad salad", aliases)
		assert.Equal(t, []ParsedItem{{Name: "Veg Salad", Quantity: 2}}, got)
	})

	t.Run("alias must match on word boundary", func(t *testing.T) {
		assert.Empty(t, ParseOrder("saladworks special", aliases))
	})

	t.Run("no menu mention", func(t *testing.T) {
		assert.Empty(t, ParseOrder("what are your opening hours", aliases))
	})
}
