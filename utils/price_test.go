package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "₱0.00"},
		{250, "₱250.00"},
		{250.5, "₱250.50"},
		{1234.5, "₱1,234.50"},
		{450000, "₱450,000.00"},
		{1234567.89, "₱1,234,567.89"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.amount), "amount %v", tc.amount)
	}
}
