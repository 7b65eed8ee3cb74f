package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateReport formats a projection result and writes it to w
func GenerateReport(w io.Writer, result *domain.ProjectionResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// FormatCurrency formats a decimal as dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	s := rounded.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + "$" + b.String() + frac
}

// FormatPercentage formats a decimal that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate (0.021) as a percentage (2.10%)
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatAge prints whole ages without a decimal point
func FormatAge(age decimal.Decimal) string {
	if age.Equal(age.Truncate(0)) {
		return age.StringFixed(0)
	}
	return age.StringFixed(1)
}

// ModeLabel is the display name of a claim mode
func ModeLabel(mode domain.ClaimMode) string {
	switch mode {
	case domain.ClaimModeWrongfulDeath:
		return "Wrongful death"
	case domain.ClaimModeInjury:
		return "Injury"
	default:
		return string(mode)
	}
}

// HorizonLabel describes where the horizon came from
func HorizonLabel(result *domain.ProjectionResult) string {
	if result.WorklifeHorizon {
		return fmt.Sprintf("%d years (work-life table)", result.Horizon)
	}
	return fmt.Sprintf("%d years (manual)", result.Horizon)
}
