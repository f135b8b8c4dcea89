package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var docLines = []string{
	"Restaurant: CloudNest",
	"Opening Hours:",
	"Mon-Sun 10:00 AM - 10:00 PM",
	"Menu:",
	"1. Veg Salad - Rs 120",
	"2. Chicken Curry - Rs 250",
	"Policies:",
	"No outside food.",
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"2", "veg", "salad"}, Tokenize("2 Veg Salad!"))
	assert.Empty(t, Tokenize("?!"))
}

func TestContext(t *testing.T) {
	t.Run("matching lines keep document order", func(t *testing.T) {
		got := Context(docLines, "chicken salad", 5)
		lines := strings.Split(got, "\n")
		assert.Equal(t, []string{"1. Veg Salad - Rs 120", "2. Chicken Curry - Rs 250"}, lines)
	})

	t.Run("phrase bonus outranks single token hits", func(t *testing.T) {
		got := Context(docLines, "outside food", 1)
		assert.Equal(t, "No outside food.", got)
	})

	t.Run("all stop words returns first K unmodified", func(t *testing.T) {
		got := Context(docLines, "what is the", 3)
		assert.Equal(t, strings.Join(docLines[:3], "\n"), got)
	})

	t.Run("no positive score returns first K", func(t *testing.T) {
		got := Context(docLines, "pasta lasagna", 2)
		assert.Equal(t, strings.Join(docLines[:2], "\n"), got)
	})

	t.Run("topK larger than document", func(t *testing.T) {
		got := Context(docLines, "what is the", 50)
		assert.Equal(t, strings.Join(docLines, "\n"), got)
	})

	t.Run("empty document", func(t *testing.T) {
		assert.Equal(t, "", Context(nil, "menu", 5))
	})
}
