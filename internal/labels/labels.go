// Package labels turns machine field names into row titles.
package labels

import (
	"regexp"
	"strings"
	"unicode"
)

var separators = regexp.MustCompile(`[_\-.\s]+`)

// Default converts a property name such as "first_name" or "billingAddress"
// into "First Name" / "Billing Address".
func Default(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var words []string
	for _, chunk := range separators.Split(name, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range splitCamel(chunk) {
			words = append(words, capitalize(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	runes := []rune(input)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		if boundary(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func boundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(cur):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		// "HTTPServer" splits as "HTTP Server".
		return true
	}
	return false
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(word)
	if allUpper(runes) && len(runes) > 1 {
		return word
	}
	lower := []rune(strings.ToLower(word))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}

func allUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
