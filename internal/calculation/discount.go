package calculation

import (
	"github.com/shopspring/decimal"
)

// DiscountBand is one age band of the default discount rate schedule
type DiscountBand struct {
	Label  string          `json:"label"`
	MinAge int             `json:"minAge"`
	MaxAge int             `json:"maxAge,omitempty"` // 0 means open-ended
	Rate   decimal.Decimal `json:"rate"`
}

var discountBands = []DiscountBand{
	{Label: "35 and under", MinAge: 0, MaxAge: 35, Rate: decimal.NewFromFloat(0.026)},
	{Label: "36 to 54", MinAge: 36, MaxAge: 54, Rate: decimal.NewFromFloat(0.024)},
	{Label: "55 and over", MinAge: 55, Rate: decimal.NewFromFloat(0.021)},
}

// DiscountBands returns a copy of the age-banded discount schedule
func DiscountBands() []DiscountBand {
	out := make([]DiscountBand, len(discountBands))
	copy(out, discountBands)
	return out
}

// DiscountRateForAge selects the discount rate for a starting age.
// Any age above 35 and below 55 falls in the middle band.
func DiscountRateForAge(age decimal.Decimal) decimal.Decimal {
	switch {
	case age.LessThanOrEqual(decimal.NewFromInt(35)):
		return discountBands[0].Rate
	case age.LessThan(decimal.NewFromInt(55)):
		return discountBands[1].Rate
	default:
		return discountBands[2].Rate
	}
}

// DiscountFactor returns (1+rate)^year
func DiscountFactor(rate decimal.Decimal, year int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(year)))
}
