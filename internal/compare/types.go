package compare

import (
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one projection reduced to the figures a comparison reports
type ComparisonResult struct {
	VariantName string                   `json:"variantName"`
	Description string                   `json:"description,omitempty"`
	Result      *domain.ProjectionResult `json:"-"`

	// Key Metrics
	GrossPresentValue   decimal.Decimal             `json:"grossPresentValue"`
	OffsetsPresentValue decimal.Decimal             `json:"offsetsPresentValue"`
	NetPresentValue     decimal.Decimal             `json:"netPresentValue"`
	FirstYearSubtotal   decimal.Decimal             `json:"firstYearSubtotal"`
	Horizon             int                         `json:"horizon"`
	Mode                domain.ClaimMode            `json:"mode"`
	Ordering            domain.UnemploymentOrdering `json:"ordering"`

	// Comparison to Base
	GrossDiffFromBase decimal.Decimal `json:"grossDiffFromBase"`
	NetDiffFromBase   decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase    decimal.Decimal `json:"netPctFromBase"`
	HorizonDiff       int             `json:"horizonDiff"`
}

// ComparisonSet represents a base claim and its compared alternatives
type ComparisonSet struct {
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ClaimPath          string             `json:"claimPath,omitempty"`
}

// MetricsCalculator extracts comparison metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics reduces a projection result to its comparison metrics
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.ProjectionResult) ComparisonResult {
	return ComparisonResult{
		VariantName:         name,
		Result:              result,
		GrossPresentValue:   result.GrossPresentValue,
		OffsetsPresentValue: result.OffsetsPresentValue,
		NetPresentValue:     result.NetPresentValue,
		FirstYearSubtotal:   result.FirstYear().Subtotal,
		Horizon:             result.Horizon,
		Mode:                result.Mode,
		Ordering:            result.Ordering,
	}
}

// CalculateComparison fills in the variant-minus-base deltas
func (mc *MetricsCalculator) CalculateComparison(variant, base ComparisonResult) ComparisonResult {
	variant.GrossDiffFromBase = variant.GrossPresentValue.Sub(base.GrossPresentValue)
	variant.NetDiffFromBase = variant.NetPresentValue.Sub(base.NetPresentValue)

	if !base.NetPresentValue.IsZero() {
		variant.NetPctFromBase = variant.NetDiffFromBase.
			Div(base.NetPresentValue).
			Mul(decimal.NewFromInt(100))
	}

	variant.HorizonDiff = variant.Horizon - base.Horizon

	return variant
}

// GenerateRecommendations summarizes which variants move the award and by how much
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	base := compSet.BaseResult

	highest := base
	lowest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetPresentValue.GreaterThan(highest.NetPresentValue) {
			highest = alt
		}
		if alt.NetPresentValue.LessThan(lowest.NetPresentValue) {
			lowest = alt
		}
	}

	if highest != base {
		recommendations = append(recommendations,
			"Highest Award: "+highest.VariantName+" adds $"+highest.NetDiffFromBase.StringFixed(0)+
				" net present value over the base claim")
	}

	if lowest != base {
		recommendations = append(recommendations,
			"Lowest Award: "+lowest.VariantName+" reduces net present value by $"+
				lowest.NetDiffFromBase.Abs().StringFixed(0))
	}

	before, after := orderingPair(compSet)
	if before != nil && after != nil {
		spread := before.NetPresentValue.Sub(after.NetPresentValue)
		recommendations = append(recommendations,
			fmt.Sprintf("Ordering Spread: applying unemployment before medical differs from after medical by $%s",
				spread.StringFixed(0)))
	}

	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.HorizonDiff != 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Horizon: %s projects %d years (%+d vs base)", alt.VariantName, alt.Horizon, alt.HorizonDiff))
		}
	}

	return recommendations
}

// orderingPair finds a result for each unemployment ordering among base and
// alternatives that share the base claim's mode and horizon.
func orderingPair(compSet *ComparisonSet) (before, after *ComparisonResult) {
	base := compSet.BaseResult
	candidates := []*ComparisonResult{base}
	for i := range compSet.AlternativeResults {
		candidates = append(candidates, &compSet.AlternativeResults[i])
	}

	for _, c := range candidates {
		if c.Mode != base.Mode || c.Horizon != base.Horizon || !c.OffsetsPresentValue.Equal(base.OffsetsPresentValue) {
			continue
		}
		switch c.Ordering {
		case domain.OrderingBeforeMedical:
			if before == nil {
				before = c
			}
		case domain.OrderingAfterMedical:
			if after == nil {
				after = c
			}
		}
	}
	return before, after
}
