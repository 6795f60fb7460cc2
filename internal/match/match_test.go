package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"naïve", "naive", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"order", "id"}, TokenizeIdent("OrderID"))
	assert.Equal(t, []string{"xml", "parser"}, TokenizeIdent("XMLParser"))
	assert.Equal(t, []string{"make", "enums"}, TokenizeIdent("./make-enums"))
	assert.Equal(t, []string{"user", "profile"}, TokenizeIdent("user_profile"))
	assert.Nil(t, TokenizeIdent(""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("UserProfile", "user_profile"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Contact", "Address", "Profile"}

	tests := []struct {
		name string
		want string
	}{
		{name: "Contcat", want: "Contact"},
		{name: "contact", want: "Contact"},
		{name: "Adress", want: "Address"},
		{name: "Ghost", want: ""},
		{name: "Contact", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.name, candidates))
		})
	}

	assert.Equal(t, "go-types", Suggest("go-type", []string{"go-types", "schema-yaml"}))
	assert.Empty(t, Suggest("anything", nil))
}
