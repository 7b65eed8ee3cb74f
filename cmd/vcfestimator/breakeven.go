package main

import (
	"fmt"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/breakeven"
	"github.com/DavidGslade86/VCFEstimator/internal/config"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [claim-file]",
	Short: "Find the parameter value at which a claim reaches a target award",
	Long: `Solve for the value of one claim parameter at which the net present value
equals a target award, holding every other input as filed.

Examples:
  # Discount rate that yields a $1.5M net award
  vcfestimator breakeven claim.yaml --target 1500000 --param discount_rate

  # Every parameter, ranked by smallest change from the claim as filed
  vcfestimator breakeven claim.yaml --target 1500000 --param all`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		claimFile := args[0]
		paramName, _ := cmd.Flags().GetString("param")
		outputFormat, _ := cmd.Flags().GetString("format")

		target, ok, err := parseDecimalFlag(cmd, "target")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("--target is required")
		}

		parser := config.NewInputParser()
		claim, err := parser.LoadFromFile(claimFile)
		if err != nil {
			return err
		}

		solver := breakeven.NewDefaultSolver(newEngine(false))

		var result interface{}
		if strings.EqualFold(paramName, "all") {
			result, err = solver.SolveAll(cmd.Context(), claim, target, nil)
		} else {
			req := breakeven.SolveRequest{
				Claim:     claim,
				Parameter: transform.Parameter(strings.ToLower(strings.TrimSpace(paramName))),
				TargetNet: target,
			}
			if minValue, ok, err := parseDecimalFlag(cmd, "min"); err != nil {
				return err
			} else if ok {
				req.MinValue = &minValue
			}
			if maxValue, ok, err := parseDecimalFlag(cmd, "max"); err != nil {
				return err
			} else if ok {
				req.MaxValue = &maxValue
			}
			result, err = solver.Solve(cmd.Context(), req)
		}
		if err != nil {
			return err
		}

		logger.Debug("break-even solve complete",
			zap.String("op", "main.breakeven"),
			zap.String("claim", claimFile),
			zap.String("param", paramName),
			zap.String("target", target.String()))

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "table", "console", "":
			tf := &breakeven.TableFormatter{}
			switch r := result.(type) {
			case *breakeven.SolveResult:
				fmt.Fprint(out, tf.Format(r))
			case *breakeven.MultiResult:
				fmt.Fprint(out, tf.FormatMulti(r))
			}
		case "json":
			s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, s)
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	breakevenCmd.Flags().String("target", "", "Target net present value in dollars")
	breakevenCmd.Flags().String("param", string(transform.ParamDiscountRate), "Parameter to solve for, or \"all\"")
	breakevenCmd.Flags().String("min", "", "Search lower bound (default: parameter's bounds)")
	breakevenCmd.Flags().String("max", "", "Search upper bound (default: parameter's bounds)")
	breakevenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	rootCmd.AddCommand(breakevenCmd)
}
