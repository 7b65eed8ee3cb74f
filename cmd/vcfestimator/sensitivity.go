package main

import (
	"fmt"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/config"
	"github.com/DavidGslade86/VCFEstimator/internal/sensitivity"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [claim-file]",
	Short: "Sweep claim parameters and measure the effect on net present value",
	Long: `Sweep one or more claim parameters across a range and report how the net
present value responds.

Examples:
  # Single parameter sweep
  vcfestimator sensitivity claim.yaml --param discount_rate --min 0.01 --max 0.05 --steps 5

  # Every parameter over its default range
  vcfestimator sensitivity claim.yaml --param all

  # Two-parameter matrix
  vcfestimator sensitivity claim.yaml --param discount_rate --param2 growth_rate`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivityAnalysis,
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	claimFile := args[0]
	paramName, _ := cmd.Flags().GetString("param")
	param2Name, _ := cmd.Flags().GetString("param2")
	outputFormat, _ := cmd.Flags().GetString("format")

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(claimFile)
	if err != nil {
		return err
	}

	analyzer := sensitivity.NewAnalyzer(newEngine(false))

	var analysis interface{}
	switch {
	case strings.EqualFold(paramName, "all"):
		params := make([]sensitivity.SweepParameter, 0, len(transform.Parameters()))
		for _, name := range transform.Parameters() {
			if p, ok := sensitivity.DefaultRange(name); ok {
				params = append(params, p)
			}
		}
		analysis, err = analyzer.SweepAll(cmd.Context(), cfg, params)
	case param2Name != "":
		p1, perr := sweepParameterFromFlags(cmd, paramName, true)
		if perr != nil {
			return perr
		}
		p2, perr := sweepParameterFromFlags(cmd, param2Name, false)
		if perr != nil {
			return perr
		}
		analysis, err = analyzer.Matrix(cmd.Context(), cfg, p1, p2)
	default:
		p, perr := sweepParameterFromFlags(cmd, paramName, true)
		if perr != nil {
			return perr
		}
		analysis, err = analyzer.Sweep(cmd.Context(), cfg, p)
	}
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	logger.Debug("sensitivity analysis complete",
		zap.String("op", "main.sensitivity"),
		zap.String("claim", claimFile),
		zap.String("param", paramName),
		zap.String("param2", param2Name))

	text, err := sensitivity.NewFormatter(outputFormat).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// sweepParameterFromFlags starts from the parameter's default range; --min,
// --max and --steps override it only for the primary parameter.
func sweepParameterFromFlags(cmd *cobra.Command, name string, primary bool) (sensitivity.SweepParameter, error) {
	param := transform.Parameter(strings.ToLower(strings.TrimSpace(name)))
	if !param.IsValid() {
		return sensitivity.SweepParameter{}, fmt.Errorf("unknown parameter %q (valid: %s)", name, parameterNames())
	}

	sweep, _ := sensitivity.DefaultRange(param)
	sweep.Name = param
	if !primary {
		return sweep, nil
	}

	if minValue, ok, err := parseDecimalFlag(cmd, "min"); err != nil {
		return sweep, err
	} else if ok {
		sweep.MinValue = minValue
	}
	if maxValue, ok, err := parseDecimalFlag(cmd, "max"); err != nil {
		return sweep, err
	} else if ok {
		sweep.MaxValue = maxValue
	}
	if steps, _ := cmd.Flags().GetInt("steps"); steps > 0 {
		sweep.Steps = steps
	}
	return sweep, sweep.Validate()
}

func parameterNames() string {
	names := make([]string, 0, len(transform.Parameters()))
	for _, p := range transform.Parameters() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func init() {
	sensitivityCmd.Flags().String("param", string(transform.ParamDiscountRate), "Parameter to sweep, or \"all\"")
	sensitivityCmd.Flags().String("param2", "", "Second parameter for a two-way matrix")
	sensitivityCmd.Flags().String("min", "", "Range minimum (default: parameter's conventional range)")
	sensitivityCmd.Flags().String("max", "", "Range maximum (default: parameter's conventional range)")
	sensitivityCmd.Flags().Int("steps", 0, "Number of values in the sweep, at least 2")
	sensitivityCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")

	rootCmd.AddCommand(sensitivityCmd)
}
