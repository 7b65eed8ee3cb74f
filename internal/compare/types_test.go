package compare

import (
	"testing"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	projection := &domain.ProjectionResult{
		GrossPresentValue:   decimal.NewFromInt(900000),
		OffsetsPresentValue: decimal.NewFromInt(100000),
		NetPresentValue:     decimal.NewFromInt(800000),
		Horizon:             12,
		Mode:                domain.ClaimModeInjury,
		Ordering:            domain.OrderingAfterMedical,
		Years: []domain.YearRow{
			{Year: 1, Subtotal: decimal.NewFromInt(70000)},
			{Year: 2, Subtotal: decimal.NewFromInt(72000)},
		},
	}

	result := calc.CalculateMetrics("Test Claim", projection)

	if result.VariantName != "Test Claim" {
		t.Errorf("Expected variant name 'Test Claim', got %s", result.VariantName)
	}

	if result.Result != projection {
		t.Error("Expected the projection to be carried on the result")
	}

	if !result.NetPresentValue.Equal(decimal.NewFromInt(800000)) {
		t.Errorf("Expected net 800000, got %s", result.NetPresentValue.String())
	}

	if !result.FirstYearSubtotal.Equal(decimal.NewFromInt(70000)) {
		t.Errorf("Expected first year subtotal 70000, got %s", result.FirstYearSubtotal.String())
	}

	if result.Horizon != 12 || result.Mode != domain.ClaimModeInjury || result.Ordering != domain.OrderingAfterMedical {
		t.Errorf("Unexpected claim specifics: %+v", result)
	}
}

func TestMetricsCalculator_CalculateMetrics_EmptyHorizon(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics("empty", &domain.ProjectionResult{})

	if !result.FirstYearSubtotal.IsZero() {
		t.Errorf("Expected zero first year subtotal, got %s", result.FirstYearSubtotal.String())
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		VariantName:       "Base",
		GrossPresentValue: decimal.NewFromInt(1000000),
		NetPresentValue:   decimal.NewFromInt(800000),
		Horizon:           10,
	}

	variant := ComparisonResult{
		VariantName:       "Variant",
		GrossPresentValue: decimal.NewFromInt(1100000),
		NetPresentValue:   decimal.NewFromInt(900000),
		Horizon:           12,
	}

	result := calc.CalculateComparison(variant, base)

	if !result.NetDiffFromBase.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected net diff 100000, got %s", result.NetDiffFromBase.String())
	}

	if !result.GrossDiffFromBase.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected gross diff 100000, got %s", result.GrossDiffFromBase.String())
	}

	// 100000 / 800000 * 100 = 12.5
	if !result.NetPctFromBase.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("Expected 12.5%% change, got %s", result.NetPctFromBase.String())
	}

	if result.HorizonDiff != 2 {
		t.Errorf("Expected horizon diff 2, got %d", result.HorizonDiff)
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{NetPresentValue: decimal.Zero}
	variant := ComparisonResult{NetPresentValue: decimal.NewFromInt(5000)}

	result := calc.CalculateComparison(variant, base)

	if !result.NetPctFromBase.IsZero() {
		t.Errorf("Expected zero percent change against a zero base, got %s", result.NetPctFromBase.String())
	}
}

func TestGenerateRecommendations(t *testing.T) {
	base := &ComparisonResult{
		VariantName:     "Base",
		NetPresentValue: decimal.NewFromInt(800000),
		Mode:            domain.ClaimModeWrongfulDeath,
		Ordering:        domain.OrderingBeforeMedical,
		Horizon:         10,
	}

	compSet := &ComparisonSet{
		BaseName:   "Base",
		BaseResult: base,
		AlternativeResults: []ComparisonResult{
			{
				VariantName:     "Base_after_medical",
				NetPresentValue: decimal.NewFromInt(780000),
				NetDiffFromBase: decimal.NewFromInt(-20000),
				Mode:            domain.ClaimModeWrongfulDeath,
				Ordering:        domain.OrderingAfterMedical,
				Horizon:         10,
			},
			{
				VariantName:     "Base_injury",
				NetPresentValue: decimal.NewFromInt(950000),
				NetDiffFromBase: decimal.NewFromInt(150000),
				Mode:            domain.ClaimModeInjury,
				Ordering:        domain.OrderingBeforeMedical,
				Horizon:         10,
			},
			{
				VariantName:     "Base_worklife_horizon",
				NetPresentValue: decimal.NewFromInt(880000),
				NetDiffFromBase: decimal.NewFromInt(80000),
				Mode:            domain.ClaimModeWrongfulDeath,
				Ordering:        domain.OrderingBeforeMedical,
				Horizon:         13,
				HorizonDiff:     3,
			},
		},
	}

	recommendations := GenerateRecommendations(compSet)

	expected := []string{
		"Highest Award: Base_injury adds $150000 net present value over the base claim",
		"Lowest Award: Base_after_medical reduces net present value by $20000",
		"Ordering Spread: applying unemployment before medical differs from after medical by $20000",
		"Horizon: Base_worklife_horizon projects 13 years (+3 vs base)",
	}

	if len(recommendations) != len(expected) {
		t.Fatalf("Expected %d recommendations, got %d: %v", len(expected), len(recommendations), recommendations)
	}

	for i, want := range expected {
		if recommendations[i] != want {
			t.Errorf("Recommendation %d: expected %q, got %q", i, want, recommendations[i])
		}
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	compSet := &ComparisonSet{
		BaseName: "Base",
		BaseResult: &ComparisonResult{
			VariantName:     "Base",
			NetPresentValue: decimal.NewFromInt(800000),
		},
		AlternativeResults: []ComparisonResult{},
	}

	if recommendations := GenerateRecommendations(compSet); len(recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %d", len(recommendations))
	}
}
