package sanitizex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSingleLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "John Doe", want: "John Doe"},
		{name: "trims", in: "  John Doe  ", want: "John Doe"},
		{name: "collapses whitespace", in: "John \t\n Doe", want: "John Doe"},
		{name: "strips control chars", in: "John\x00Doe", want: "John Doe"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanSingleLine(tt.in))
		})
	}
}

func TestCleanPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already clean", in: "+237650123456", want: "+237650123456"},
		{name: "spaces and dashes", in: "+237 650-12-34-56", want: "+237650123456"},
		{name: "parentheses", in: "(650) 123 456", want: "650123456"},
		{name: "plus only at start", in: "650+123", want: "650+123"},
		{name: "letters kept for validation to reject", in: "65O123", want: "65O123"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanPhone(tt.in))
		})
	}
}
