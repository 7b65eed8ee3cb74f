package sensitivity

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/output"
	"github.com/goccy/go-json"
)

// Formatter renders sensitivity results
type Formatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

// ConsoleFormatter formats sensitivity output for the terminal
type ConsoleFormatter struct{}

func (cf ConsoleFormatter) Name() string { return "console" }

func (cf ConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *Analysis:
		return cf.formatSingle(&buf, a)
	case *MultiAnalysis:
		return cf.formatMulti(&buf, a)
	case *Matrix:
		return cf.formatMatrix(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (cf ConsoleFormatter) formatSingle(buf *bytes.Buffer, analysis *Analysis) (string, error) {
	if len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	cf.writeSingle(buf, analysis)
	return buf.String(), nil
}

func (cf ConsoleFormatter) writeSingle(buf *bytes.Buffer, analysis *Analysis) {
	param := analysis.Parameter

	fmt.Fprintln(buf, output.TitleStyle.Render("SENSITIVITY ANALYSIS: "+strings.ToUpper(strings.ReplaceAll(string(param.Name), "_", " "))))
	if analysis.ClaimName != "" {
		fmt.Fprintf(buf, "Claim: %s\n", analysis.ClaimName)
	}
	fmt.Fprintf(buf, "Base Case: %s = %s (net %s)\n", param.Name, output.FormatRate(param.BaseValue),
		output.FormatCurrency(analysis.BaseNetPresentValue))
	fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n", output.FormatRate(param.MinValue), output.FormatRate(param.MaxValue), param.Steps)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	t := output.NewTable(string(param.Name), "Years", "Gross PV", "Net PV", "Δ Net", "Δ %")
	for _, p := range analysis.Points {
		value := output.FormatRate(p.Value)
		if p.Value.Equal(param.BaseValue) {
			value += " ← BASE"
		}
		t.Row(
			value,
			fmt.Sprintf("%d", p.Horizon),
			output.FormatCurrency(p.GrossPresentValue),
			output.FormatCurrency(p.NetPresentValue),
			output.FormatCurrency(p.NetChange),
			output.FormatPercentage(p.NetChangePct),
		)
	}
	fmt.Fprintln(buf, t.Render())

	s := analysis.Summary
	fmt.Fprintln(buf, output.SectionStyle.Render("SENSITIVITY"))
	fmt.Fprintf(buf, "  Spread: %s (%s of base)\n", output.FormatCurrency(s.Spread), output.FormatPercentage(s.SpreadPct))
	fmt.Fprintf(buf, "  Risk Level: %s\n", s.RiskLevel)
	for _, rec := range s.Recommendations {
		fmt.Fprintf(buf, "  • %s\n", rec)
	}
}

func (cf ConsoleFormatter) formatMulti(buf *bytes.Buffer, multi *MultiAnalysis) (string, error) {
	if len(multi.Analyses) == 0 {
		return "", fmt.Errorf("no parameters in analysis")
	}

	t := output.NewTable("Parameter", "Min Net", "Max Net", "Spread", "Spread %", "Risk")
	for _, a := range multi.Analyses {
		t.Row(
			string(a.Parameter.Name),
			output.FormatCurrency(a.Summary.MinNetPresentValue),
			output.FormatCurrency(a.Summary.MaxNetPresentValue),
			output.FormatCurrency(a.Summary.Spread),
			output.FormatPercentage(a.Summary.SpreadPct),
			string(a.Summary.RiskLevel),
		)
	}

	fmt.Fprintln(buf, output.TitleStyle.Render("SENSITIVITY RANKING"))
	fmt.Fprintf(buf, "Base net present value: %s\n", output.FormatCurrency(multi.BaseNetPresentValue))
	fmt.Fprintf(buf, "Most sensitive parameter: %s\n\n", multi.MostSensitiveParameter)
	fmt.Fprintln(buf, t.Render())

	for i := range multi.Analyses {
		fmt.Fprintln(buf)
		cf.writeSingle(buf, &multi.Analyses[i])
	}

	return buf.String(), nil
}

func (cf ConsoleFormatter) formatMatrix(buf *bytes.Buffer, matrix *Matrix) (string, error) {
	if len(matrix.Cells) == 0 {
		return "", fmt.Errorf("no results in matrix")
	}

	fmt.Fprintln(buf, output.TitleStyle.Render(fmt.Sprintf("SENSITIVITY MATRIX: %s × %s", matrix.Parameter1.Name, matrix.Parameter2.Name)))
	fmt.Fprintf(buf, "Base net present value: %s\n\n", output.FormatCurrency(matrix.BaseNetPresentValue))

	headers := []string{fmt.Sprintf("%s \\ %s", matrix.Parameter1.Name, matrix.Parameter2.Name)}
	for _, cell := range matrix.Cells[0] {
		headers = append(headers, output.FormatRate(cell.Value2))
	}
	t := output.NewTable(headers...)
	for _, row := range matrix.Cells {
		cells := []string{output.FormatRate(row[0].Value1)}
		for _, cell := range row {
			cells = append(cells, output.FormatCurrency(cell.NetPresentValue))
		}
		t.Row(cells...)
	}
	fmt.Fprintln(buf, t.Render())

	fmt.Fprintln(buf, output.SectionStyle.Render("SUMMARY"))
	fmt.Fprintf(buf, "  Most Sensitive Combination: %s\n", matrix.MostSensitiveCombination)
	fmt.Fprintf(buf, "  Interaction Effect: %s\n", output.FormatCurrency(matrix.InteractionEffect))
	fmt.Fprintf(buf, "  Risk Level: %s\n", matrix.RiskLevel)

	return buf.String(), nil
}

// CSVFormatter formats sensitivity output as CSV
type CSVFormatter struct{}

func (cf CSVFormatter) Name() string { return "csv" }

func (cf CSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch a := analysis.(type) {
	case *Analysis:
		if err := w.Write(pointHeader); err != nil {
			return "", err
		}
		if err := cf.writePoints(w, a); err != nil {
			return "", err
		}
	case *MultiAnalysis:
		if err := w.Write(pointHeader); err != nil {
			return "", err
		}
		for i := range a.Analyses {
			if err := cf.writePoints(w, &a.Analyses[i]); err != nil {
				return "", err
			}
		}
	case *Matrix:
		if err := w.Write([]string{"parameter_1_name", "parameter_1_value", "parameter_2_name", "parameter_2_value", "net_present_value", "net_change"}); err != nil {
			return "", err
		}
		for _, row := range a.Cells {
			for _, cell := range row {
				if err := w.Write([]string{
					string(a.Parameter1.Name), cell.Value1.String(),
					string(a.Parameter2.Name), cell.Value2.String(),
					cell.NetPresentValue.StringFixed(2), cell.NetChange.StringFixed(2),
				}); err != nil {
					return "", err
				}
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pointHeader = []string{"parameter_name", "parameter_value", "horizon", "gross_present_value", "offsets_present_value", "net_present_value", "net_change", "net_change_pct"}

func (cf CSVFormatter) writePoints(w *csv.Writer, a *Analysis) error {
	for _, p := range a.Points {
		if err := w.Write([]string{
			string(a.Parameter.Name),
			p.Value.String(),
			fmt.Sprintf("%d", p.Horizon),
			p.GrossPresentValue.StringFixed(2),
			p.OffsetsPresentValue.StringFixed(2),
			p.NetPresentValue.StringFixed(2),
			p.NetChange.StringFixed(2),
			p.NetChangePct.StringFixed(4),
		}); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats sensitivity output as indented JSON
type JSONFormatter struct{}

func (jf JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	switch analysis.(type) {
	case *Analysis, *MultiAnalysis, *Matrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sensitivity analysis: %w", err)
	}
	return string(data), nil
}

// NewFormatter creates a sensitivity formatter based on the format name
func NewFormatter(format string) Formatter {
	switch output.NormalizeFormatName(format) {
	case "csv":
		return CSVFormatter{}
	case "json":
		return JSONFormatter{}
	default:
		return ConsoleFormatter{}
	}
}
