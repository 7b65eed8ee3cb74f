package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/config"
	"github.com/DavidGslade86/VCFEstimator/internal/output"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// populated by the root command's PersistentPreRunE
var (
	settings *config.Settings
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vcfestimator",
	Short: "Economic loss estimator for VCF claims",
	Long: `vcfestimator projects a claimant's lost earnings and benefits year by year,
discounts each year to present value, and nets collateral offsets against the
gross award. Claims are described in YAML or JSON files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settingsPath, _ := cmd.Flags().GetString("settings")
		logLevel, _ := cmd.Flags().GetString("log-level")

		s, err := config.LoadSettings(settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		l, err := initializeLogger(s.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		settings, logger = s, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// initializeLogger builds a zap logger from logging settings, with an optional
// level override from the command line.
func initializeLogger(loggingSettings config.LoggingSettings, logLevelOverride string) (*zap.Logger, error) {
	logLevel := loggingSettings.Level
	if logLevelOverride != "" {
		logLevel = logLevelOverride
	}

	var level zap.AtomicLevel
	switch strings.ToLower(logLevel) {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info", "":
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn", "warning":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("invalid log level: %s", logLevel)
	}

	var cfg zap.Config
	switch strings.ToLower(loggingSettings.Format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingSettings.Format)
	}
	cfg.Level = level
	// reports go to stdout, so logs stay on stderr
	cfg.OutputPaths = []string{"stderr"}

	if loggingSettings.OutputFile != "" {
		if dir := filepath.Dir(loggingSettings.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		file, err := os.OpenFile(loggingSettings.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingSettings.OutputFile, err)
		}
		_ = file.Close()

		cfg.OutputPaths = []string{loggingSettings.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingSettings.OutputFile}
	}

	return cfg.Build()
}

// newEngine returns a calculation engine that logs through the CLI logger
func newEngine(debugMode bool) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.Debug = debugMode
	if logger != nil {
		engine.SetLogger(logger.Sugar())
	}
	return engine
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [claim-file]",
	Short: "Project and discount the economic loss for a claim",
	Long: `Project every year of a claim's horizon and report gross, offsets and net
present value. Variants of the claim can be computed in place with --transform.

Examples:
  vcfestimator calculate claim.yaml
  vcfestimator calculate claim.yaml -f csv --save ./reports
  vcfestimator calculate claim.yaml --transform set_ordering:ordering=after_medical`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		claimFile := args[0]
		outputFormat, _ := cmd.Flags().GetString("format")
		debugMode, _ := cmd.Flags().GetBool("debug")
		saveDir, _ := cmd.Flags().GetString("save")
		transformSpecs, _ := cmd.Flags().GetStringArray("transform")

		if outputFormat == "" {
			outputFormat = settings.Output.Format
		}

		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(claimFile)
		if err != nil {
			return err
		}

		if len(transformSpecs) > 0 {
			registry := transform.NewTransformRegistry()
			transforms := make([]transform.ClaimTransform, 0, len(transformSpecs))
			for _, spec := range transformSpecs {
				t, err := registry.ParseTransformSpec(spec)
				if err != nil {
					return err
				}
				transforms = append(transforms, t)
			}
			if cfg, err = transform.ApplyTransforms(cfg, transforms); err != nil {
				return err
			}
		}

		logger.Debug("running projection",
			zap.String("op", "main.calculate"),
			zap.String("claim", claimFile),
			zap.String("format", outputFormat))

		result, err := newEngine(debugMode).RunProjection(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("projection failed: %w", err)
		}

		if saveDir != "" {
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unsupported format: %s (available: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			if err := os.MkdirAll(saveDir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", saveDir, err)
			}
			path, err := output.WriteFormatted(f, result, saveDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		}

		return output.GenerateReport(cmd.OutOrStdout(), result, outputFormat)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [claim-file]",
	Short: "Validate a claim file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		claimFile := args[0]
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(claimFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Claim file %s is valid\n", claimFile)
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the reference tables used by the engine",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderReferenceTables(calculation.References()))
	},
}

var worklifeCmd = &cobra.Command{
	Use:   "worklife [age]",
	Short: "Look up the remaining work-life expectancy for an age",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid age %q: %w", args[0], err)
		}
		if age.IsNegative() {
			return fmt.Errorf("age cannot be negative: %s", args[0])
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderWorklife(calculation.LookupWorklife(age)))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vcfestimator %s (commit %s, built %s)\n", version, commit, date)
		if info := buildInfo(); info != "" {
			fmt.Fprintln(cmd.OutOrStdout(), info)
		}
	},
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// parseDecimalFlag reads an optional decimal flag; ok is false when unset
func parseDecimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, bool, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, true, nil
}

func init() {
	rootCmd.PersistentFlags().String("settings", "vcfestimator.yaml", "Path to settings file (optional)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")

	calculateCmd.Flags().StringP("format", "f", "", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	calculateCmd.Flags().Bool("debug", false, "Log every projected year")
	calculateCmd.Flags().String("save", "", "Write the report to a timestamped file in this directory")
	calculateCmd.Flags().StringArray("transform", nil, "Apply a transform before projecting (name:key=value,...)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(worklifeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
