package main

import (
	"fmt"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/compare"
	"github.com/DavidGslade86/VCFEstimator/internal/config"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare [claim-file]",
	Short: "Compare a claim against variants or other claim files",
	Long: `Project a base claim and compare it against built-in variants (--with) or
against other claim files (--against).

Examples:
  # Both unemployment orderings
  vcfestimator compare claim.yaml --with before_medical,after_medical

  # Work-life horizon and no offsets, as CSV
  vcfestimator compare claim.yaml --with worklife_horizon,no_offsets -f csv

  # Separately filed claims
  vcfestimator compare claim.yaml --against spouse.yaml,amended.yaml

  # List the available variants
  vcfestimator compare --list-variants`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listVariants, _ := cmd.Flags().GetBool("list-variants")
		if listVariants {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("claim file required for comparison (use --list-variants to see available variants)")
		}
		claimFile := args[0]

		variantsStr, _ := cmd.Flags().GetString("with")
		againstFiles, _ := cmd.Flags().GetStringSlice("against")
		outputFormat, _ := cmd.Flags().GetString("format")
		debugMode, _ := cmd.Flags().GetBool("debug")

		variants := transform.ParseTemplateList(variantsStr)
		if len(variants) == 0 && len(againstFiles) == 0 {
			return fmt.Errorf("--with or --against is required (or use --list-variants)")
		}

		parser := config.NewInputParser()
		base, err := parser.LoadFromFile(claimFile)
		if err != nil {
			return err
		}

		engine := compare.NewCompareEngine(newEngine(debugMode))

		var compSet *compare.ComparisonSet
		if len(againstFiles) > 0 {
			others := make([]*domain.ProjectionConfig, 0, len(againstFiles))
			for _, f := range againstFiles {
				other, err := parser.LoadFromFile(f)
				if err != nil {
					return err
				}
				others = append(others, other)
			}
			compSet, err = engine.CompareClaims(cmd.Context(), base, others)
		} else {
			compSet, err = engine.Compare(cmd.Context(), base, variants)
		}
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		compSet.ClaimPath = claimFile

		logger.Debug("comparison complete",
			zap.String("op", "main.compare"),
			zap.String("claim", claimFile),
			zap.Int("alternatives", len(compSet.AlternativeResults)))

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
		case "csv":
			s, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, s)
		case "json":
			s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, s)
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().String("with", "", "Comma-separated list of variants to compare")
	compareCmd.Flags().StringSlice("against", nil, "Other claim files to compare against the base claim")
	compareCmd.Flags().Bool("list-variants", false, "List available variants")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("debug", false, "Log every projected year")

	rootCmd.AddCommand(compareCmd)
}
