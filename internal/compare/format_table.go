package compare

import (
	"fmt"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the base claim with its variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("VCF CLAIM VARIANT COMPARISON") + "\n")
	sb.WriteString(fmt.Sprintf("Base Claim: %s\n", compSet.BaseName))
	if compSet.ClaimPath != "" {
		sb.WriteString(fmt.Sprintf("Claim File: %s\n", compSet.ClaimPath))
	}
	sb.WriteString("\n")

	t := output.NewTable("Variant", "Mode", "Ordering", "Years", "Gross PV", "Offsets PV", "Net PV", "Δ Net", "Δ %")
	if compSet.BaseResult != nil {
		t.Row(tf.formatRow(compSet.BaseResult, true)...)
	}
	for i := range compSet.AlternativeResults {
		t.Row(tf.formatRow(&compSet.AlternativeResults[i], false)...)
	}
	sb.WriteString(t.Render() + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(output.SectionStyle.Render("COMPARISON TO BASE") + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.VariantName))
			if alt.Description != "" {
				sb.WriteString("  " + output.SubtitleStyle.Render(alt.Description) + "\n")
			}
			sb.WriteString(fmt.Sprintf("  Net Present Value:   %s\n",
				output.DeltaStyle(!alt.NetDiffFromBase.IsNegative()).Render(tf.formatDelta(alt.NetDiffFromBase))))
			if !alt.GrossDiffFromBase.Equal(alt.NetDiffFromBase) {
				sb.WriteString(fmt.Sprintf("  Gross Present Value: %s\n", tf.formatDelta(alt.GrossDiffFromBase)))
			}
			if alt.HorizonDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Horizon:             %+d years\n", alt.HorizonDiff))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString(output.SectionStyle.Render("OBSERVATIONS") + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single result as table cells
func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool) []string {
	name := result.VariantName
	delta, pct := "", ""
	if isBase {
		name += " (base)"
	} else {
		delta = tf.formatDelta(result.NetDiffFromBase)
		pct = fmt.Sprintf("%s%%", result.NetPctFromBase.StringFixed(1))
	}

	return []string{
		name,
		string(result.Mode),
		string(result.Ordering),
		fmt.Sprintf("%d", result.Horizon),
		output.FormatCurrency(result.GrossPresentValue),
		output.FormatCurrency(result.OffsetsPresentValue),
		output.FormatCurrency(result.NetPresentValue),
		delta,
		pct,
	}
}

// formatDelta prefixes a signed currency amount
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatCurrency(d)
	}
	return output.FormatCurrency(d)
}

// FormatCompact creates a compact single-line summary for each variant
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	if compSet.BaseResult == nil {
		return ""
	}

	sb.WriteString(fmt.Sprintf("Base: %s %s", compSet.BaseName, output.FormatCurrency(compSet.BaseResult.NetPresentValue)))

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.NetDiffFromBase.IsZero() {
			change = tf.formatDelta(alt.NetDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.VariantName, change))
	}

	return sb.String()
}
