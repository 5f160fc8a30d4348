package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@mergington.edu", Normalize("  a@mergington.edu "))
	assert.Equal(t, "", Normalize("   "))
}

func TestValid(t *testing.T) {
	valid := []string{
		"michael@mergington.edu",
		"first.last@mergington.edu",
		"a@b",
	}
	for _, addr := range valid {
		assert.True(t, Valid(addr), addr)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"@mergington.edu",
		"trailing@",
		"two@@mergington.edu",
		"spa ce@mergington.edu",
	}
	for _, addr := range invalid {
		assert.False(t, Valid(addr), addr)
	}
}
