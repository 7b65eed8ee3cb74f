package compare

import (
	"context"
	"testing"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaim() *domain.ProjectionConfig {
	return &domain.ProjectionConfig{
		Name:                 "smith",
		Mode:                 domain.ClaimModeWrongfulDeath,
		StartAge:             decimal.NewFromInt(45),
		Horizon:              domain.FixedHorizon(15),
		BaseIncome:           decimal.NewFromInt(90000),
		TaxRate:              domain.AutoRate(),
		MaritalStatus:        domain.MaritalStatusMarried,
		Dependents:           [domain.MaxDependents]domain.Dependent{domain.DependentAged(12), domain.DependentAged(16)},
		ConsumptionRate:      domain.AutoRate(),
		Growth:               domain.AgeIndexedGrowth(calculation.DefaultGrowthFallback),
		RetirementRate:       decimal.NewFromFloat(0.06),
		MedicalBase:          decimal.NewFromInt(6000),
		MedicalGrowthRate:    decimal.NewFromFloat(0.05),
		UnemploymentFactor:   decimal.NewFromFloat(0.04),
		UnemploymentOrdering: domain.OrderingBeforeMedical,
		DiscountRate:         domain.AutoRate(),
		Offsets: domain.Offsets{
			AnnualAmount: decimal.NewFromInt(10000),
			Years:        3,
			LumpSum:      decimal.NewFromInt(50000),
		},
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	variants := []string{"after_medical", "injury", "worklife_horizon", "no_offsets"}

	compSet, err := engine.Compare(context.Background(), testClaim(), variants)
	require.NoError(t, err)
	require.NotNil(t, compSet.BaseResult)
	require.Len(t, compSet.AlternativeResults, len(variants))

	assert.Equal(t, "smith", compSet.BaseName)
	assert.Equal(t, "smith", compSet.BaseResult.VariantName)
	assert.Equal(t, 15, compSet.BaseResult.Horizon)

	for i, alt := range compSet.AlternativeResults {
		assert.Equal(t, "smith_"+variants[i], alt.VariantName)
		assert.NotEmpty(t, alt.Description)
		assert.NotNil(t, alt.Result)

		assert.True(t, alt.NetDiffFromBase.Equal(alt.NetPresentValue.Sub(compSet.BaseResult.NetPresentValue)),
			"%s: net delta is variant minus base", alt.VariantName)
		assert.True(t, alt.GrossDiffFromBase.Equal(alt.GrossPresentValue.Sub(compSet.BaseResult.GrossPresentValue)),
			"%s: gross delta is variant minus base", alt.VariantName)
		assert.Equal(t, alt.Horizon-compSet.BaseResult.Horizon, alt.HorizonDiff)
	}

	afterMedical := compSet.AlternativeResults[0]
	assert.Equal(t, domain.OrderingAfterMedical, afterMedical.Ordering)

	injury := compSet.AlternativeResults[1]
	assert.Equal(t, domain.ClaimModeInjury, injury.Mode)
	assert.True(t, injury.GrossDiffFromBase.IsPositive(), "no consumption deduction raises the award")

	worklife := compSet.AlternativeResults[2]
	assert.Equal(t, calculation.LookupWorklife(decimal.NewFromInt(45)).Years, worklife.Horizon)

	noOffsets := compSet.AlternativeResults[3]
	assert.True(t, noOffsets.OffsetsPresentValue.IsZero())
	assert.True(t, noOffsets.GrossDiffFromBase.IsZero())
	assert.True(t, noOffsets.NetDiffFromBase.Equal(compSet.BaseResult.OffsetsPresentValue))

	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompareEngine_Compare_BaseUnchanged(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	claim := testClaim()

	_, err := engine.Compare(context.Background(), claim, []string{"injury", "no_offsets", "after_medical"})
	require.NoError(t, err)

	assert.Equal(t, testClaim(), claim)
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	_, err := engine.Compare(context.Background(), nil, nil)
	assert.Error(t, err)

	_, err = engine.Compare(context.Background(), testClaim(), []string{"sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variant sideways not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, testClaim(), []string{"injury"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_Compare_NoVariants(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), testClaim(), nil)
	require.NoError(t, err)
	assert.Empty(t, compSet.AlternativeResults)
	assert.Empty(t, compSet.Recommendations)
}

func TestCompareEngine_CompareClaims(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	other := testClaim()
	other.Name = ""
	other.BaseIncome = decimal.NewFromInt(120000)

	compSet, err := engine.CompareClaims(context.Background(), testClaim(), []*domain.ProjectionConfig{other})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "claim_1", alt.VariantName)
	assert.True(t, alt.NetDiffFromBase.IsPositive())

	_, err = engine.CompareClaims(context.Background(), testClaim(), []*domain.ProjectionConfig{nil})
	assert.Error(t, err)
}
