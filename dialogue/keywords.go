package dialogue

// Keyword sets driving utterance classification. Matching is per token
// after lowercasing, except the service-mode phrases which are substring
// matched.
var (
	menuKeywords = set("menu", "food", "foods", "item", "items", "dish", "dishes", "price", "prices")

	hoursKeywords = set("hour", "hours", "open", "opening", "close", "closing", "timing", "time")

	policyKeywords = set("policy", "policies", "rule", "rules", "outside", "delivery")

	greetingKeywords = set("hi", "hello", "hey")

	orderKeywords = set("order", "bill", "total", "buy", "want", "add", "cart", "checkout")

	confirmKeywords = set("ok", "okay", "yes", "confirm", "proceed", "place")

	cancelKeywords = set("cancel", "stop", "clear", "remove")
)

var (
	dineInPhrases   = []string{"dine in", "dine-in", "dinein", "table", "eat in", "eat-in"}
	deliveryPhrases = []string{"online delivery", "home delivery", "delivery", "deliver", "door delivery"}
)

// Named periods accepted as dine-in slots, checked in this order
var slotHints = []string{"breakfast", "lunch", "dinner", "morning", "afternoon", "evening", "night"}

// Exact words never accepted as a delivery address
var reservedAddressWords = set("confirm", "ok", "yes", "menu", "cancel")

func set(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func hasAny(tokens map[string]struct{}, keywords map[string]struct{}) bool {
	for token := range tokens {
		if _, ok := keywords[token]; ok {
			return true
		}
	}
	return false
}
