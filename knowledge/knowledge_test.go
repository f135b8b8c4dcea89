package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `Restaurant: CloudNest
Opening Hours:
Mon-Sun 10:00 AM - 10:00 PM
Menu:
1. Veg Salad - Rs 120
Type: Veg
Ingredients: Lettuce, cucumber
2. Chicken Curry - Rs 250
Type: Non-Veg
not a menu line at all
3. Gulab Jamun - Rs 90
Policies:
No outside food.
Delivery within 5 km only.`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restaurant.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStoreLines(t *testing.T) {
	t.Run("reads fresh content", func(t *testing.T) {
		path := writeDoc(t, "Menu:\n1. Veg Salad - Rs 120")
		store := NewStore(path)

		lines, loadErr := store.Lines()
		assert.Empty(t, loadErr)
		assert.Equal(t, []string{"Menu:", "1. Veg Salad - Rs 120"}, lines)
	})

	t.Run("re-read picks up live edits", func(t *testing.T) {
		path := writeDoc(t, "Menu:\n1. Veg Salad - Rs 120")
		store := NewStore(path)

		require.NoError(t, os.WriteFile(path, []byte("Menu:\n1. Veg Salad - Rs 150"), 0o644))
		lines, loadErr := store.Lines()
		assert.Empty(t, loadErr)
		assert.Contains(t, lines, "1. Veg Salad - Rs 150")
	})

	t.Run("falls back to startup snapshot when re-read fails", func(t *testing.T) {
		path := writeDoc(t, "Menu:\n1. Veg Salad - Rs 120")
		store := NewStore(path)

		require.NoError(t, os.Remove(path))
		lines, loadErr := store.Lines()
		assert.Empty(t, loadErr)
		assert.Equal(t, []string{"Menu:", "1. Veg Salad - Rs 120"}, lines)
	})

	t.Run("surfaces sentinel when no read ever succeeded", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "missing.txt"))

		lines, loadErr := store.Lines()
		assert.Nil(t, lines)
		assert.True(t, strings.HasPrefix(loadErr, LoadErrorPrefix))
	})

	t.Run("recovers once the file appears", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "late.txt")
		store := NewStore(path)

		require.NoError(t, os.WriteFile(path, []byte("Menu:\n1. Veg Salad - Rs 120"), 0o644))
		lines, loadErr := store.Lines()
		assert.Empty(t, loadErr)
		assert.Len(t, lines, 2)
	})
}

func TestSection(t *testing.T) {
	lines := splitLines(sampleDoc)

	t.Run("spans to terminating prefix", func(t *testing.T) {
		hours := Section(lines, "Opening Hours:", "Menu:", "Policies:")
		assert.Equal(t, []string{"Opening Hours:", "Mon-Sun 10:00 AM - 10:00 PM"}, hours)
	})

	t.Run("runs to document end without terminator", func(t *testing.T) {
		policies := Section(lines, "Policies:")
		assert.Equal(t, []string{"Policies:", "No outside food.", "Delivery within 5 km only."}, policies)
	})

	t.Run("missing start yields empty", func(t *testing.T) {
		assert.Nil(t, Section(lines, "Specials:"))
	})

	t.Run("prefix match is case-insensitive", func(t *testing.T) {
		assert.NotNil(t, Section(lines, "MENU:", "Policies:"))
	})
}

func TestMenuItems(t *testing.T) {
	items := MenuItems(splitLines(sampleDoc))
	require.Len(t, items, 3)

	assert.Equal(t, MenuItem{Name: "Veg Salad", Price: 120, ItemType: "Veg", Ingredients: "Lettuce, cucumber"}, items[0])

	// Missing annotations default to N/A; malformed lines are skipped
	assert.Equal(t, "Chicken Curry", items[1].Name)
	assert.Equal(t, 250, items[1].Price)
	assert.Equal(t, "Non-Veg", items[1].ItemType)
	assert.Equal(t, "N/A", items[1].Ingredients)

	assert.Equal(t, MenuItem{Name: "Gulab Jamun", Price: 90, ItemType: "N/A", Ingredients: "N/A"}, items[2])
}

func TestMenuItemsEmptySection(t *testing.T) {
	assert.Nil(t, MenuItems(splitLines("Policies:\nNo outside food.")))
}

func TestBuildAliases(t *testing.T) {
	items := []MenuItem{
		{Name: "Veg Salad", Price: 120},
		{Name: "Chicken Curry", Price: 250},
		{Name: "Pav Bhaji", Price: 110},
	}
	am := BuildAliases(items)

	lookup := make(map[string]string)
	for _, alias := range am.All() {
		lookup[alias.Text] = alias.Item.Name
	}

	t.Run("full names always registered", func(t *testing.T) {
		assert.Equal(t, "Veg Salad", lookup["veg salad"])
		assert.Equal(t, "Chicken Curry", lookup["chicken curry"])
	})

	t.Run("salient words over 3 chars registered", func(t *testing.T) {
		assert.Equal(t, "Veg Salad", lookup["salad"])
		assert.Equal(t, "Chicken Curry", lookup["chicken"])
		assert.Equal(t, "Chicken Curry", lookup["curry"])
		assert.Equal(t, "Pav Bhaji", lookup["bhaji"])
	})

	t.Run("ambiguous and short words skipped", func(t *testing.T) {
		_, hasVeg := lookup["veg"]
		assert.False(t, hasVeg)
		_, hasPav := lookup["pav"]
		assert.False(t, hasPav)
	})

	t.Run("last registration wins on collision", func(t *testing.T) {
		colliding := BuildAliases([]MenuItem{
			{Name: "Paneer Tikka", Price: 180},
			{Name: "Chicken Tikka", Price: 220},
		})
		for _, alias := range colliding.All() {
			if alias.Text == "tikka" {
				assert.Equal(t, "Chicken Tikka", alias.Item.Name)
			}
		}
	})
}
