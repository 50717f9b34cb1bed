package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"09171234567",
		"+639171234567",
		"9171234567",
		"0917 123 4567",
		"0917-123-4567",
	}
	for _, phone := range valid {
		assert.True(t, ValidPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"12345",
		"091712345678",
		"+19171234567",
		"not a phone",
	}
	for _, phone := range invalid {
		assert.False(t, ValidPhone(phone), "expected %q to be invalid", phone)
	}
}
