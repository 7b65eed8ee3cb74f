package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"Mode",
		"Ordering",
		"Horizon",
		"Gross PV",
		"Offsets PV",
		"Net PV",
		"First Year Subtotal",
		"Gross Diff from Base",
		"Net Diff from Base",
		"Net % Change",
		"Horizon Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "variant")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.VariantName,
		kind,
		string(result.Mode),
		string(result.Ordering),
		strconv.Itoa(result.Horizon),
		result.GrossPresentValue.StringFixed(2),
		result.OffsetsPresentValue.StringFixed(2),
		result.NetPresentValue.StringFixed(2),
		result.FirstYearSubtotal.StringFixed(2),
		result.GrossDiffFromBase.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		strconv.Itoa(result.HorizonDiff),
	}
}
