package compare

import (
	"context"
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
)

// CompareEngine orchestrates variant comparison for a single claim
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in variants
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// Compare projects the base claim, then each named variant of it, and reports
// every variant's present values relative to the base.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *domain.ProjectionConfig,
	variants []string,
) (*ComparisonSet, error) {
	if cfg == nil {
		return nil, fmt.Errorf("base claim cannot be nil")
	}

	baseName := baseNameOf(cfg)

	baseResult, err := ce.CalcEngine.RunProjection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base claim: %w", err)
	}
	base := ce.MetricsCalculator.CalculateMetrics(baseName, baseResult)
	base.Description = "Claim as filed"

	alternatives := make([]ComparisonResult, 0, len(variants))

	for _, variantName := range variants {
		template, ok := ce.TemplateRegistry.Get(variantName)
		if !ok {
			return nil, fmt.Errorf("variant %s not found", variantName)
		}

		modified, err := transform.ApplyTemplate(cfg, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply variant %s: %w", variantName, err)
		}
		modified.Name = baseName + "_" + template.Name

		altResult, err := ce.CalcEngine.RunProjection(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate variant %s: %w", variantName, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(modified.Name, altResult)
		alt.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, base))
	}

	compSet := &ComparisonSet{
		BaseName:           baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareClaims compares separately filed claims against a base claim, without variants
func (ce *CompareEngine) CompareClaims(
	ctx context.Context,
	base *domain.ProjectionConfig,
	others []*domain.ProjectionConfig,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base claim cannot be nil")
	}

	baseName := baseNameOf(base)
	baseProjection, err := ce.CalcEngine.RunProjection(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base claim: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseProjection)

	alternatives := make([]ComparisonResult, 0, len(others))
	for i, other := range others {
		if other == nil {
			return nil, fmt.Errorf("claim at index %d is nil", i)
		}
		name := other.Name
		if name == "" {
			name = fmt.Sprintf("claim_%d", i+1)
		}

		projection, err := ce.CalcEngine.RunProjection(ctx, other)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate claim %s: %w", name, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(name, projection)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseName:           baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func baseNameOf(cfg *domain.ProjectionConfig) string {
	if cfg.Name == "" {
		return "claim"
	}
	return cfg.Name
}
