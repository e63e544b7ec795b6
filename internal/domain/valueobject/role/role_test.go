package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	for _, r := range All() {
		assert.True(t, IsValid(r), "role %s should be valid", r)
	}

	assert.False(t, IsValid("STAFF"))
	assert.False(t, IsValid("admin"))
	assert.False(t, IsValid(""))
}
