package knowledge

import "strings"

// Category words that would map one alias onto several distinct dishes.
// Not registered as shorthand aliases.
var ambiguousAliasWords = map[string]struct{}{
	"veg":            {},
	"nonveg":         {},
	"vegetarian":     {},
	"non-vegetarian": {},
	"vegan":          {},
	"dessert":        {},
}

// Alias maps a lowercase shorthand to its canonical menu item
type Alias struct {
	Text string
	Item MenuItem
}

// AliasMap holds menu aliases in deterministic registration order so that
// free-text order parsing behaves the same on every run.
type AliasMap struct {
	ordered []Alias
	byText  map[string]int // index into ordered; last registration wins
}

// BuildAliases registers each item's full lowercase name, plus its first and
// last words when they are longer than 3 characters and not ambiguous
// category words. On alias collision the last registration wins.
func BuildAliases(items []MenuItem) *AliasMap {
	am := &AliasMap{byText: make(map[string]int)}
	for _, item := range items {
		name := strings.ToLower(item.Name)
		am.register(name, item)
		words := strings.Fields(name)
		if len(words) == 0 {
			continue
		}
		first, last := words[0], words[len(words)-1]
		if usableAliasWord(first) {
			am.register(first, item)
		}
		if usableAliasWord(last) {
			am.register(last, item)
		}
	}
	return am
}

func usableAliasWord(word string) bool {
	if _, ambiguous := ambiguousAliasWords[word]; ambiguous {
		return false
	}
	return len(word) > 3
}

func (am *AliasMap) register(text string, item MenuItem) {
	if idx, exists := am.byText[text]; exists {
		am.ordered[idx].Item = item
		return
	}
	am.byText[text] = len(am.ordered)
	am.ordered = append(am.ordered, Alias{Text: text, Item: item})
}

// All returns aliases in registration order
func (am *AliasMap) All() []Alias {
	return am.ordered
}

// Len reports the number of registered aliases
func (am *AliasMap) Len() int {
	return len(am.ordered)
}
