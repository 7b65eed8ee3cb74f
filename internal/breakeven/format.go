package breakeven

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/output"
	"github.com/goccy/go-json"
)

// TableFormatter formats solver results for the console
type TableFormatter struct{}

// Format renders a single solve
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("BREAK-EVEN ANALYSIS") + "\n")
	sb.WriteString(fmt.Sprintf("Parameter:   %s\n", result.Request.Parameter))
	sb.WriteString(fmt.Sprintf("Target:      %s\n", output.FormatCurrency(result.Request.TargetNet)))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	t := output.NewTable("", "Value", "Net PV")
	t.Row("As filed", output.FormatRate(result.BaseValue), output.FormatCurrency(result.BaseNet))
	t.Row("Break-even", output.FormatRate(result.Value), output.FormatCurrency(result.NetPresentValue))
	sb.WriteString(t.Render() + "\n")

	delta := result.ValueDiffFromBase
	sb.WriteString(fmt.Sprintf("Change from claim as filed: %s\n", signedRate(delta)))

	return sb.String()
}

// FormatMulti renders one row per parameter that reaches the target
func (tf *TableFormatter) FormatMulti(multi *MultiResult) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("BREAK-EVEN ANALYSIS") + "\n")
	sb.WriteString(fmt.Sprintf("Target: %s\n\n", output.FormatCurrency(multi.TargetNet)))

	t := output.NewTable("Parameter", "As Filed", "Break-even", "Change", "Net PV")
	for _, r := range multi.Results {
		t.Row(
			string(r.Request.Parameter),
			output.FormatRate(r.BaseValue),
			output.FormatRate(r.Value),
			signedRate(r.ValueDiffFromBase),
			output.FormatCurrency(r.NetPresentValue),
		)
	}
	sb.WriteString(t.Render() + "\n")

	if len(multi.Unreachable) > 0 {
		sb.WriteString(output.SectionStyle.Render("UNREACHABLE") + "\n")
		names := make([]string, 0, len(multi.Unreachable))
		for name := range multi.Unreachable {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", name, multi.Unreachable[name]))
		}
	}

	if len(multi.Recommendations) > 0 {
		sb.WriteString(output.SectionStyle.Render("OBSERVATIONS") + "\n")
		for _, rec := range multi.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return output.DeltaStyle(true).Render("✓ Converged")
	}
	return output.DeltaStyle(false).Render("✗ Not converged")
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals a *SolveResult or *MultiResult
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	switch v.(type) {
	case *SolveResult, *MultiResult:
	default:
		return "", fmt.Errorf("unsupported result type: %T", v)
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
