// Package retrieval implements the lexical fallback scorer used when no
// dialogue rule produces an answer.
package retrieval

import (
	"regexp"
	"sort"
	"strings"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "at": {}, "can": {},
	"do": {}, "for": {}, "from": {}, "how": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "with": {}, "you": {}, "your": {},
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize lowercases the text and returns its alphanumeric runs
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// TokenSet returns the tokens of text as a set
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokenize(text) {
		set[token] = struct{}{}
	}
	return set
}

func scoreLine(line, query string, queryTokens []string) int {
	lineTokens := TokenSet(line)
	score := 0
	for _, token := range queryTokens {
		if _, ok := lineTokens[token]; ok {
			score++
		}
	}
	phrase := strings.TrimSpace(strings.ToLower(query))
	if phrase != "" && strings.Contains(strings.ToLower(line), phrase) {
		score += 2
	}
	return score
}

// Context selects the topK best-matching lines for the query and joins them
// in document order. If every query token is a stop word, or no line scores
// above zero, the first topK lines are returned unmodified.
func Context(lines []string, query string, topK int) string {
	if len(lines) == 0 {
		return ""
	}

	var queryTokens []string
	for _, token := range Tokenize(query) {
		if _, stop := stopWords[token]; !stop {
			queryTokens = append(queryTokens, token)
		}
	}
	if len(queryTokens) == 0 {
		return strings.Join(head(lines, topK), "\n")
	}

	type scored struct {
		score int
		idx   int
	}
	var hits []scored
	for idx, line := range lines {
		if s := scoreLine(line, query, queryTokens); s > 0 {
			hits = append(hits, scored{score: s, idx: idx})
		}
	}
	if len(hits) == 0 {
		return strings.Join(head(lines, topK), "\n")
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].idx < hits[j].idx
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	// Re-sort the winners by position so the output keeps document order
	sort.Slice(hits, func(i, j int) bool { return hits[i].idx < hits[j].idx })

	selected := make([]string, 0, len(hits))
	for _, h := range hits {
		selected = append(selected, lines[h.idx])
	}
	return strings.Join(selected, "\n")
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
