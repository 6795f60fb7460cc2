package common

import (
	"strings"
	"unicode"
)

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"

// ExportedName converts an identifier such as "profile_id", "created-at" or
// "userName" into an exported Go identifier ("ProfileID", "CreatedAt",
// "UserName"). Common initialisms are upper-cased.
func ExportedName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder

	for _, part := range parts {
		for _, word := range splitCamel(part) {
			if initialism := strings.ToUpper(word); initialisms[initialism] {
				b.WriteString(initialism)
				continue
			}

			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			b.WriteString(string(runes))
		}
	}

	out := b.String()
	if out == "" {
		return "X"
	}

	if unicode.IsDigit([]rune(out)[0]) {
		return "X" + out
	}

	return out
}

var initialisms = map[string]bool{
	"ID":   true,
	"URL":  true,
	"URI":  true,
	"API":  true,
	"JSON": true,
	"HTTP": true,
	"UUID": true,
	"SQL":  true,
}

// splitCamel splits "userName" into "user", "Name". Runs of capitals stay
// together ("HTTPServer" -> "HTTP", "Server").
func splitCamel(s string) []string {
	runes := []rune(s)

	var (
		words []string
		start int
	)

	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		next := rune(0)

		if i+1 < len(runes) {
			next = runes[i+1]
		}

		lowerToUpper := unicode.IsLower(prev) && unicode.IsUpper(cur)
		acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(next)

		if lowerToUpper || acronymEnd {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}

	return append(words, string(runes[start:]))
}
