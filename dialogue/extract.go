package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sanju-subash/Cloudnest-rag/knowledge"
	"github.com/sanju-subash/Cloudnest-rag/session"
)

// Pure free-text extraction helpers: string in, structured value out.
// They carry no session state so they stay unit-testable on their own.

const minAddressLength = 10

// DetectServiceMode returns "dine_in" or "delivery" when the utterance
// contains one of the fixed mode phrases, else ""
func DetectServiceMode(query string) string {
	q := strings.ToLower(query)
	for _, phrase := range dineInPhrases {
		if strings.Contains(q, phrase) {
			return session.ModeDineIn
		}
	}
	for _, phrase := range deliveryPhrases {
		if strings.Contains(q, phrase) {
			return session.ModeDelivery
		}
	}
	return ""
}

var (
	slotRangePattern       = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\s*(?:-|to)\s*\d{1,2}(?::\d{2})?\s?(?:am|pm)\b`)
	slotRangeSuffixPattern = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s*(?:-|to)\s*\d{1,2}(?::\d{2})?\s?(?:am|pm)\b`)
	timeAmPmPattern        = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\b`)
	time24hPattern         = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	spacesPattern          = regexp.MustCompile(`\s+`)
)

// ExtractSlot pulls a dine-in slot out of the utterance. Tried in order:
// a time range (AM/PM on both bounds, then on the second bound only), a
// bare AM/PM time, a 24-hour H:MM time, then a named period keyword.
// First match wins; no match yields "".
func ExtractSlot(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))

	if m := slotRangePattern.FindString(q); m != "" {
		return normalizeSlot(m)
	}
	if m := slotRangeSuffixPattern.FindString(q); m != "" {
		return normalizeSlot(m)
	}
	if m := timeAmPmPattern.FindString(q); m != "" {
		return normalizeSlot(m)
	}
	if m := time24hPattern.FindString(q); m != "" {
		return m
	}

	for _, hint := range slotHints {
		if strings.Contains(q, hint) {
			return strings.ToUpper(hint[:1]) + hint[1:]
		}
	}
	return ""
}

func normalizeSlot(match string) string {
	slot := strings.ToUpper(spacesPattern.ReplaceAllString(match, " "))
	return strings.ReplaceAll(slot, " TO ", " - ")
}

var digitPattern = regexp.MustCompile(`\d`)

// LooksLikeAddress is a practical heuristic: an address usually has several
// words, numbers, commas, or hyphen-separated parts. Short strings, mode
// phrases and the reserved command words are rejected outright.
func LooksLikeAddress(query string) bool {
	q := strings.TrimSpace(query)
	if len(q) < minAddressLength {
		return false
	}
	if DetectServiceMode(q) != "" {
		return false
	}
	if _, reserved := reservedAddressWords[strings.ToLower(q)]; reserved {
		return false
	}

	wordCount := len(strings.Fields(q))
	hasNumeric := digitPattern.MatchString(q)
	hasSeparator := strings.Contains(q, ",") || strings.Contains(q, "-")
	return wordCount >= 3 || hasNumeric || hasSeparator
}

// ParsedItem is one menu item mentioned in an utterance
type ParsedItem struct {
	Name     string
	Quantity int
}

// ParseOrder scans the utterance for menu aliases and their quantities.
// A quantity may lead ("2 veg salad", "2 x salad") or trail ("salad x 2");
// absent both, it defaults to 1. When several aliases resolve to the same
// item the maximum quantity wins, never the sum, so overlapping aliases
// can't double count. Result order follows alias registration order.
func ParseOrder(query string, aliases *knowledge.AliasMap) []ParsedItem {
	q := strings.ToLower(query)

	var order []ParsedItem
	index := make(map[string]int)
	for _, alias := range aliases.All() {
		aliasPattern := `\b` + regexp.QuoteMeta(alias.Text) + `\b`
		if !regexp.MustCompile(aliasPattern).MatchString(q) {
			continue
		}

		qty := 1
		left := regexp.MustCompile(`(\d+)\s*(?:x\s*)?` + aliasPattern)
		right := regexp.MustCompile(aliasPattern + `\s*(?:x\s*)?(\d+)`)
		if m := left.FindStringSubmatch(q); m != nil {
			qty, _ = strconv.Atoi(m[1])
		} else if m := right.FindStringSubmatch(q); m != nil {
			qty, _ = strconv.Atoi(m[1])
		}

		name := alias.Item.Name
		if idx, seen := index[name]; seen {
			if qty > order[idx].Quantity {
				order[idx].Quantity = qty
			}
			continue
		}
		index[name] = len(order)
		order = append(order, ParsedItem{Name: name, Quantity: qty})
	}
	return order
}
