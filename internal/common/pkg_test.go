package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "name", want: "Name"},
		{in: "profile_id", want: "ProfileID"},
		{in: "created-at", want: "CreatedAt"},
		{in: "userName", want: "UserName"},
		{in: "HTTPServer", want: "HTTPServer"},
		{in: "avatarUrl", want: "AvatarURL"},
		{in: "ADMIN", want: "ADMIN"},
		{in: "2fa", want: "X2fa"},
		{in: "", want: "X"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportedName(tt.in))
		})
	}
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)
}
