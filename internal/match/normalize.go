package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy comparison: CamelCase is
// split, everything is lower-cased, and separators (_ - . / space) are
// dropped.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, token := range TokenizeIdent(s) {
		b.WriteString(token)
	}

	return b.String()
}

// TokenizeIdent splits an identifier into lowercase tokens:
//   - "OrderID" -> ["order", "id"]
//   - "make-enums" -> ["make", "enums"]
//   - "XMLParser" -> ["xml", "parser"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r)
}

// startsToken reports whether runes[i] begins a new CamelCase token.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	// "orderID": lower to upper.
	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser": last capital of an acronym followed by lowercase.
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
