// Package knowledge parses the flat restaurant text file into structured
// sections and menu items. The file is re-read on every query so live edits
// show up without a restart; if a re-read fails we fall back to the content
// captured at startup.
package knowledge

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// LoadErrorPrefix marks a failed read of the knowledge file. The full
// sentinel string is surfaced verbatim to the caller as the answer.
const LoadErrorPrefix = "DATA_LOAD_ERROR: "

// MenuItem is a single dish parsed from the Menu section.
// Immutable once parsed; identity is the name as extracted.
type MenuItem struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	ItemType    string `json:"item_type"`
	Ingredients string `json:"ingredients"`
}

// Store reads the restaurant document from disk
type Store struct {
	path         string
	initialText  string
	initialLines []string
}

// NewStore captures the document content at process start. A failed initial
// read is not fatal: the sentinel is kept and returned on queries until the
// file becomes readable.
func NewStore(path string) *Store {
	text := readText(path)
	return &Store{
		path:         path,
		initialText:  text,
		initialLines: splitLines(text),
	}
}

func readText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadErrorPrefix + err.Error()
	}
	return strings.TrimSpace(string(data))
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Lines re-reads the document and returns its non-empty trimmed lines.
// On a read failure it falls back to the startup snapshot; if that snapshot
// was itself a failed read, the sentinel string is returned as loadErr.
func (s *Store) Lines() (lines []string, loadErr string) {
	text := readText(s.path)
	if strings.HasPrefix(text, LoadErrorPrefix) {
		if strings.HasPrefix(s.initialText, LoadErrorPrefix) {
			return nil, text
		}
		return s.initialLines, ""
	}
	return splitLines(text), ""
}

// InitialText returns the raw content captured at startup
func (s *Store) InitialText() string {
	return s.initialText
}

func findLineIndex(lines []string, prefix string) int {
	target := strings.ToLower(prefix)
	for idx, line := range lines {
		if strings.HasPrefix(strings.ToLower(line), target) {
			return idx
		}
	}
	return -1
}

// Section returns the lines from the first line starting with startPrefix
// (case-insensitive, header included) up to the first subsequent line
// starting with any endPrefix, or document end. Missing start yields nil.
func Section(lines []string, startPrefix string, endPrefixes ...string) []string {
	startIdx := findLineIndex(lines, startPrefix)
	if startIdx == -1 {
		return nil
	}

	endIdx := len(lines)
	for idx := startIdx + 1; idx < len(lines); idx++ {
		lower := strings.ToLower(lines[idx])
		for _, end := range endPrefixes {
			if strings.HasPrefix(lower, strings.ToLower(end)) {
				endIdx = idx
				break
			}
		}
		if endIdx == idx {
			break
		}
	}
	return lines[startIdx:endIdx]
}

var menuLinePattern = regexp.MustCompile(`(?i)^\d+\.\s*(.+?)\s*-\s*Rs\s*(\d+)`)

// MenuItems parses the Menu section. Lines that don't match the numbered
// item pattern or a Type:/Ingredients: annotation are skipped silently.
func MenuItems(lines []string) []MenuItem {
	menuLines := Section(lines, "Menu:", "Policies:")
	if len(menuLines) == 0 {
		return nil
	}

	var items []MenuItem
	var current *MenuItem
	for _, raw := range menuLines[1:] {
		line := strings.TrimSpace(raw)
		if m := menuLinePattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				items = append(items, *current)
			}
			price, _ := strconv.Atoi(m[2])
			current = &MenuItem{Name: strings.TrimSpace(m[1]), Price: price}
			continue
		}

		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "type:"):
			current.ItemType = strings.TrimSpace(line[len("type:"):])
		case strings.HasPrefix(lower, "ingredients:"):
			current.Ingredients = strings.TrimSpace(line[len("ingredients:"):])
		}
	}
	if current != nil {
		items = append(items, *current)
	}

	for i := range items {
		if items[i].ItemType == "" {
			items[i].ItemType = "N/A"
		}
		if items[i].Ingredients == "" {
			items[i].Ingredients = "N/A"
		}
	}
	return items
}

// ByName builds a name lookup over parsed menu items
func ByName(items []MenuItem) map[string]MenuItem {
	byName := make(map[string]MenuItem, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}
	return byName
}
