package frontmatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Encode renders a metadata mapping back into the fixed block notation the
// parser accepts: a marker line, one key per line, sequences in the inline
// bracketed form, and a closing marker. Keys are emitted in sorted order
// since the mapping does not preserve insertion order; parse(encode(meta))
// yields the same keys and values.
func Encode(meta map[string]any) []byte {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("---\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(encodeValue(meta[key]))
		b.WriteString("\n")
	}
	b.WriteString("---\n")
	return []byte(b.String())
}

func encodeValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case string:
		return encodeScalar(typed)
	case []string:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, encodeScalar(item))
		}
		return encodeSequence(items)
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, encodeValue(item))
		}
		return encodeSequence(items)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func encodeSequence(items []string) string {
	if len(items) == 0 {
		return "[ ]"
	}
	return "[ " + strings.Join(items, ", ") + " ]"
}

// encodeScalar quotes strings that would otherwise change meaning when read
// back: empty values, surrounding whitespace, reserved punctuation, or bare
// words YAML would coerce into another type.
func encodeScalar(value string) string {
	if value == "" {
		return `""`
	}
	if value != strings.TrimSpace(value) {
		return fmt.Sprintf("%q", value)
	}
	if strings.ContainsAny(value, ":#[]{},\"'\n") {
		return fmt.Sprintf("%q", value)
	}
	switch strings.ToLower(value) {
	case "true", "false", "null", "yes", "no", "on", "off", "~":
		return fmt.Sprintf("%q", value)
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return fmt.Sprintf("%q", value)
	}
	return value
}
