package output

import (
	"bytes"
	"strconv"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
)

// RenderReferenceTables renders every reference table the engine uses
func RenderReferenceTables(refs calculation.ReferenceTables) string {
	var buf bytes.Buffer

	buf.WriteString(SectionStyle.Render("EFFECTIVE TAX RATES"))
	buf.WriteString("\n")
	tax := NewTable("Income From", "Rate")
	for _, b := range refs.TaxBrackets {
		tax.Row(FormatCurrency(b.Threshold), FormatRate(b.Value))
	}
	buf.WriteString(tax.Render() + "\n")

	buf.WriteString(SectionStyle.Render("PERSONAL CONSUMPTION RATES"))
	buf.WriteString("\n")
	consumption := NewTable("Income From", "Single", "Single w/ Children", "Married", "Married +1", "Married +2")
	for _, b := range refs.ConsumptionBrackets {
		consumption.Row(
			FormatCurrency(b.Threshold),
			FormatRate(b.Value.SingleNoChildren),
			FormatRate(b.Value.SingleWithChildren),
			FormatRate(b.Value.MarriedNoChildren),
			FormatRate(b.Value.MarriedOneChild),
			FormatRate(b.Value.MarriedTwoPlusChildren),
		)
	}
	buf.WriteString(consumption.Render() + "\n")

	buf.WriteString(SectionStyle.Render("EARNINGS GROWTH BY AGE"))
	buf.WriteString("\n")
	growth := NewTable("Age", "Rate")
	for _, age := range refs.EarningsGrowth.Ages() {
		growth.Row(strconv.Itoa(age), FormatRate(refs.EarningsGrowth.Rates[age]))
	}
	growth.Row(strconv.Itoa(calculation.GrowthFallbackAge)+"+", FormatRate(refs.EarningsGrowth.Fallback))
	buf.WriteString(growth.Render() + "\n")

	buf.WriteString(SectionStyle.Render("WORK-LIFE EXPECTANCY"))
	buf.WriteString("\n")
	worklife := NewTable("Age", "Remaining Years", "Exit Age")
	for _, r := range refs.Worklife {
		worklife.Row(strconv.Itoa(r.Age), r.RemainingYears.StringFixed(1), strconv.Itoa(r.NominalExitAge))
	}
	buf.WriteString(worklife.Render() + "\n")

	buf.WriteString(SectionStyle.Render("DISCOUNT RATES"))
	buf.WriteString("\n")
	discount := NewTable("Starting Age", "Rate")
	for _, band := range refs.DiscountBands {
		discount.Row(band.Label, FormatRate(band.Rate))
	}
	buf.WriteString(discount.Render() + "\n")

	return buf.String()
}

// RenderWorklife renders a single work-life lookup
func RenderWorklife(est domain.WorklifeEstimate) string {
	t := NewTable("Input Age", "Table Age", "Remaining Years", "Horizon", "Expected Exit Age", "Table Exit Age")
	t.Row(
		FormatAge(est.InputAge),
		strconv.Itoa(est.TableAge),
		est.RemainingYears.StringFixed(1),
		strconv.Itoa(est.Years),
		strconv.Itoa(est.ExpectedExitAge),
		strconv.Itoa(est.NominalExitAge),
	)
	return t.Render() + "\n"
}
