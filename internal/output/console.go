package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a summary card, the year-by-year table, and assumptions
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no projection result to format")
	}

	var buf bytes.Buffer
	buf.WriteString(TitleStyle.Render("VCF ECONOMIC LOSS PROJECTION"))
	buf.WriteString("\n")
	if result.Name != "" {
		buf.WriteString(SubtitleStyle.Render(result.Name))
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	buf.WriteString(SummaryCard(result))
	buf.WriteString("\n")

	buf.WriteString(SectionStyle.Render("YEAR-BY-YEAR PROJECTION"))
	buf.WriteString("\n")
	buf.WriteString(YearTable(result.Years))
	buf.WriteString("\n")

	buf.WriteString(SectionStyle.Render("ASSUMPTIONS"))
	buf.WriteString("\n")
	for _, a := range DefaultAssumptions {
		buf.WriteString("  - " + a + "\n")
	}

	return buf.Bytes(), nil
}

// SummaryCard renders the headline figures of a projection in a bordered card
func SummaryCard(result *domain.ProjectionResult) string {
	lines := []string{
		labelValue("Claim type", ModeLabel(result.Mode)),
		labelValue("Unemployment ordering", string(result.Ordering)),
		labelValue("Starting age", FormatAge(result.Worklife.InputAge)),
		labelValue("Projection horizon", HorizonLabel(result)),
		labelValue("Expected exit age", strconv.Itoa(result.Worklife.ExpectedExitAge)),
		labelValue("Effective tax rate", FormatRate(result.TaxRate)),
		labelValue("Discount rate", FormatRate(result.DiscountRate)),
		"",
		labelValue("Gross present value", FormatCurrency(result.GrossPresentValue)),
		labelValue("Offsets present value", FormatCurrency(result.OffsetsPresentValue)),
		labelValue("Net present value", FormatCurrency(result.NetPresentValue)),
	}
	return CardStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// YearTable renders one row per projection year plus a totals row
func YearTable(rows []domain.YearRow) string {
	if len(rows) == 0 {
		return LabelStyle.Render("No projection years (horizon is zero).") + "\n"
	}

	t := NewTable("Year", "Age", "Growth", "Salary", "Income+Ret", "Unemp. Adj.", "Post-Tax",
		"Cons. Rate", "Consumption", "Medical", "Subtotal", "Present Value")

	subtotal := decimal.Zero
	presentValue := decimal.Zero
	for _, r := range rows {
		subtotal = subtotal.Add(r.Subtotal)
		presentValue = presentValue.Add(r.PresentValue)
		t.Row(
			strconv.Itoa(r.Year),
			FormatAge(r.Age),
			FormatRate(r.GrowthRate),
			FormatCurrency(r.Salary),
			FormatCurrency(r.IncomePlusRetirement),
			FormatCurrency(r.UnemploymentAdjusted),
			FormatCurrency(r.PostTaxIncome),
			FormatRate(r.ConsumptionRate),
			FormatCurrency(r.Consumption),
			FormatCurrency(r.Medical),
			FormatCurrency(r.Subtotal),
			FormatCurrency(r.PresentValue),
		)
	}
	t.Row("Total", "", "", "", "", "", "", "", "", "", FormatCurrency(subtotal), FormatCurrency(presentValue))

	return t.Render() + "\n"
}
