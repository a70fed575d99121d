package expression

import "strings"

// splitTopLevel splits s on commas that sit outside quotes, parentheses
// and brackets. Parts are trimmed. It reports whether at least one
// top-level comma was found.
func splitTopLevel(s string) ([]string, bool) {
	var parts []string
	var current strings.Builder
	depth := 0
	quote := byte(0)
	split := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '(' || ch == '[':
			depth++
		case ch == ')' || ch == ']':
			if depth > 0 {
				depth--
			}
		case ch == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
			split = true
			continue
		}
		current.WriteByte(ch)
	}
	parts = append(parts, strings.TrimSpace(current.String()))
	return parts, split
}

// splitArgs splits a call argument list on commas, respecting quotes.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	quote := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			current.WriteByte(ch)
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
			current.WriteByte(ch)
		case ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	if strings.TrimSpace(current.String()) != "" || len(args) > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}

// unquote returns the text inside matching single or double quotes.
func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// isBracketedList reports whether s is wrapped as one [ ... ] list.
func isBracketedList(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}
