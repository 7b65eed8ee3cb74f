package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountRateForAge(t *testing.T) {
	tests := []struct {
		age      string
		expected string
	}{
		{"20", "0.026"},
		{"35", "0.026"},
		{"35.5", "0.024"},
		{"36", "0.024"},
		{"54", "0.024"},
		{"54.9", "0.024"},
		{"55", "0.021"},
		{"80", "0.021"},
	}

	for _, tt := range tests {
		rate := DiscountRateForAge(decimal.RequireFromString(tt.age))
		assert.True(t, rate.Equal(decimal.RequireFromString(tt.expected)),
			"age %s: expected %s, got %s", tt.age, tt.expected, rate.String())
	}
}

func TestDiscountFactor(t *testing.T) {
	rate := decimal.NewFromFloat(0.02)

	assert.True(t, DiscountFactor(rate, 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, DiscountFactor(rate, 1).Equal(decimal.RequireFromString("1.02")))
	assert.True(t, DiscountFactor(rate, 2).Equal(decimal.RequireFromString("1.0404")))
	assert.True(t, DiscountFactor(decimal.Zero, 30).Equal(decimal.NewFromInt(1)))
}

func TestDiscountBands(t *testing.T) {
	bands := DiscountBands()
	assert.Len(t, bands, 3)
	assert.Equal(t, 0, bands[2].MaxAge, "last band is open-ended")

	bands[0].Rate = decimal.NewFromInt(1)
	assert.True(t, DiscountRateForAge(decimal.NewFromInt(30)).Equal(decimal.NewFromFloat(0.026)))
}
