package answers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize converts a raw submitted or stored answer into its canonical
// comparable form: an ordered list of lowercase, trimmed tokens.
//
// Answers arrive in several shapes depending on the client and question
// type: a single value, a JSON-encoded multi-select, or a comma-separated
// list from legacy clients. Rules, in priority order:
//
//  1. nil/absent input yields an empty list.
//  2. A list input maps each element to a trimmed lowercase string.
//  3. A string with JSON array syntax ("[...]") is parsed and each element
//     normalized; if the parse fails the whole string is one token.
//  4. A string containing a comma but no object or quote markers is split
//     on commas.
//  5. Any other string is a single-token list.
//
// Normalize is idempotent: feeding its output back in returns the same
// token list.
func Normalize(input any) []string {
	switch v := input.(type) {
	case nil:
		return []string{}
	case []string:
		tokens := make([]string, 0, len(v))
		for _, s := range v {
			tokens = append(tokens, canonToken(s))
		}
		return tokens
	case []any:
		tokens := make([]string, 0, len(v))
		for _, el := range v {
			tokens = append(tokens, canonToken(stringify(el)))
		}
		return tokens
	case string:
		return normalizeString(v)
	default:
		return normalizeString(stringify(v))
	}
}

func normalizeString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}

	// JSON array syntax. A failed parse means the text merely looks like
	// JSON; it must not be split, the whole string is one token.
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var elems []any
		if err := json.Unmarshal([]byte(trimmed), &elems); err == nil {
			tokens := make([]string, 0, len(elems))
			for _, el := range elems {
				tokens = append(tokens, canonToken(stringify(el)))
			}
			return tokens
		}
		return []string{canonToken(trimmed)}
	}

	// Legacy comma-separated lists. Quote or object markers indicate the
	// comma belongs to literal option text, not a separator.
	if strings.Contains(trimmed, ",") && !strings.ContainsAny(trimmed, `"{}`) {
		parts := strings.Split(trimmed, ",")
		tokens := make([]string, 0, len(parts))
		for _, p := range parts {
			tokens = append(tokens, canonToken(p))
		}
		return tokens
	}

	return []string{canonToken(trimmed)}
}

// canonToken lowercases and trims a single token.
func canonToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stringify renders a decoded JSON value as its token text. Numbers come
// out of encoding/json as float64; format them without a trailing ".0" so
// "3" and 3 normalize identically.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
