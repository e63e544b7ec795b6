package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "regular address", in: "johndoe@example.com", want: "jo****@example.com"},
		{name: "trims whitespace", in: "  johndoe@example.com ", want: "jo****@example.com"},
		{name: "short local part kept", in: "jd@example.com", want: "jd@example.com"},
		{name: "no at sign", in: "not-an-email", want: "not-an-email"},
		{name: "at sign at start", in: "@example.com", want: "@example.com"},
		{name: "at sign at end", in: "johndoe@", want: "johndoe@"},
		{name: "empty", in: "", want: ""},
		{name: "unicode local part", in: "héloïse@example.com", want: "hé****@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RedactEmail(tt.in))
		})
	}
}

func TestRedactPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "cameroon number", in: "+237650123456", want: "+237*******56"},
		{name: "no plus prefix", in: "0650123456", want: "065*****56"},
		{name: "too short", in: "+23765", want: "+23765"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RedactPhone(tt.in))
		})
	}
}
