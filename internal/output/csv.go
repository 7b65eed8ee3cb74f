package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
)

// CSVFormatter writes one row per projection year
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no projection result to format")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "Age", "GrowthRate", "Salary", "Retirement", "IncomePlusRetirement",
		"UnemploymentAdjusted", "TaxRate", "PostTaxIncome", "ConsumptionRate", "Consumption",
		"IncomeLessConsumption", "Medical", "Subtotal", "PresentValue",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range result.Years {
		row := []string{
			strconv.Itoa(r.Year),
			r.Age.String(),
			r.GrowthRate.String(),
			r.Salary.StringFixed(2),
			r.Retirement.StringFixed(2),
			r.IncomePlusRetirement.StringFixed(2),
			r.UnemploymentAdjusted.StringFixed(2),
			r.TaxRate.String(),
			r.PostTaxIncome.StringFixed(2),
			r.ConsumptionRate.String(),
			r.Consumption.StringFixed(2),
			r.IncomeLessConsumption.StringFixed(2),
			r.Medical.StringFixed(2),
			r.Subtotal.StringFixed(2),
			r.PresentValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVSummaryFormatter writes the headline figures as a single row
type CSVSummaryFormatter struct{}

func (c CSVSummaryFormatter) Name() string      { return "csv-summary" }
func (c CSVSummaryFormatter) Extension() string { return "csv" }

func (c CSVSummaryFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no projection result to format")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Name", "Mode", "Ordering", "Horizon", "TaxRate", "DiscountRate", "GrossPV", "OffsetsPV", "NetPV"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		result.Name,
		string(result.Mode),
		string(result.Ordering),
		strconv.Itoa(result.Horizon),
		result.TaxRate.String(),
		result.DiscountRate.String(),
		result.GrossPresentValue.StringFixed(2),
		result.OffsetsPresentValue.StringFixed(2),
		result.NetPresentValue.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
