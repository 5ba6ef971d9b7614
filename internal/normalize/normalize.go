// Package normalize canonicalizes account identifiers and free-text search
// terms into comparison-safe forms. Pure functions, no state.
package normalize

import "strings"

// ID normalizes an account identifier for comparison and index keys:
// surrounding whitespace is trimmed and the result is uppercased. Storage
// keeps the caller's original casing; only comparisons use this form.
func ID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Text normalizes a free-text search term: trimmed, lowercased, internal
// spaces removed. Used for substring matching on names, emails, phones and
// postcodes, never for identifiers.
func Text(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
