package sensitivity

import (
	"context"
	"testing"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClaim is a wrongful-death claim at 45: discount band 2.4%, 15 year horizon
func testClaim() *domain.ProjectionConfig {
	return &domain.ProjectionConfig{
		Name:                 "jones",
		Mode:                 domain.ClaimModeWrongfulDeath,
		StartAge:             decimal.NewFromInt(45),
		Horizon:              domain.FixedHorizon(15),
		BaseIncome:           decimal.NewFromInt(90000),
		TaxRate:              domain.AutoRate(),
		MaritalStatus:        domain.MaritalStatusMarried,
		Dependents:           [domain.MaxDependents]domain.Dependent{domain.DependentAged(12), domain.NoDependent()},
		ConsumptionRate:      domain.AutoRate(),
		Growth:               domain.AgeIndexedGrowth(calculation.DefaultGrowthFallback),
		RetirementRate:       decimal.NewFromFloat(0.06),
		MedicalBase:          decimal.NewFromInt(6000),
		MedicalGrowthRate:    decimal.NewFromFloat(0.05),
		UnemploymentFactor:   decimal.NewFromFloat(0.04),
		UnemploymentOrdering: domain.OrderingBeforeMedical,
		DiscountRate:         domain.AutoRate(),
		Offsets: domain.Offsets{
			LumpSum: decimal.NewFromInt(20000),
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSweepParameter_Values(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		steps    int
		want     []string
	}{
		{"even", "0.01", "0.05", 5, []string{"0.01", "0.02", "0.03", "0.04", "0.05"}},
		{"two steps", "0", "0.2", 2, []string{"0", "0.2"}},
		{"degenerate range", "0.03", "0.03", 3, []string{"0.03", "0.03", "0.03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SweepParameter{Name: transform.ParamDiscountRate, MinValue: dec(tt.min), MaxValue: dec(tt.max), Steps: tt.steps}
			values := p.Values()
			require.Len(t, values, len(tt.want))
			for i, want := range tt.want {
				assert.True(t, values[i].Equal(dec(want)), "value %d: want %s got %s", i, want, values[i])
			}
		})
	}
}

func TestSweepParameter_Values_EndpointsExact(t *testing.T) {
	// 0.1 / 3 does not terminate; the last value must still be the max
	p := SweepParameter{Name: transform.ParamTaxRate, MinValue: decimal.Zero, MaxValue: dec("0.1"), Steps: 4}
	values := p.Values()

	require.Len(t, values, 4)
	assert.True(t, values[0].Equal(decimal.Zero))
	assert.True(t, values[3].Equal(dec("0.1")))
	for i := 1; i < len(values); i++ {
		assert.True(t, values[i].GreaterThan(values[i-1]))
	}
}

func TestSweepParameter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		param   SweepParameter
		wantErr bool
	}{
		{"valid", SweepParameter{Name: transform.ParamDiscountRate, MinValue: dec("0.01"), MaxValue: dec("0.05"), Steps: 5}, false},
		{"unknown parameter", SweepParameter{Name: "salary", MinValue: dec("0"), MaxValue: dec("1"), Steps: 3}, true},
		{"one step", SweepParameter{Name: transform.ParamDiscountRate, MinValue: dec("0.01"), MaxValue: dec("0.05"), Steps: 1}, true},
		{"inverted range", SweepParameter{Name: transform.ParamDiscountRate, MinValue: dec("0.05"), MaxValue: dec("0.01"), Steps: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.param.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzer_BaseValue(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	cfg := testClaim()

	tests := []struct {
		param transform.Parameter
		want  decimal.Decimal
	}{
		{transform.ParamDiscountRate, dec("0.024")},
		{transform.ParamTaxRate, calculation.TaxRateForIncome(cfg.BaseIncome)},
		{transform.ParamConsumptionRate, calculation.ConsumptionRateFor(cfg.BaseIncome, domain.MaritalStatusMarried, 1)},
		{transform.ParamGrowthRate, calculation.GrowthRateForAge(decimal.NewFromInt(46), calculation.DefaultGrowthFallback)},
		{transform.ParamGrowthFallback, calculation.DefaultGrowthFallback},
		{transform.ParamUnemploymentFactor, dec("0.04")},
		{transform.ParamMedicalGrowthRate, dec("0.05")},
		{transform.ParamRetirementRate, dec("0.06")},
	}

	for _, tt := range tests {
		t.Run(string(tt.param), func(t *testing.T) {
			got, err := analyzer.BaseValue(cfg, tt.param)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "want %s got %s", tt.want, got)
		})
	}

	_, err := analyzer.BaseValue(cfg, "salary")
	assert.Error(t, err)
}

func TestAnalyzer_BaseValue_Overrides(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	injury := testClaim()
	injury.Mode = domain.ClaimModeInjury
	got, err := analyzer.BaseValue(injury, transform.ParamConsumptionRate)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "injury claims carry no consumption")

	fixed := testClaim()
	fixed.Growth = domain.FixedGrowth(dec("0.025"))
	got, err = analyzer.BaseValue(fixed, transform.ParamGrowthRate)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("0.025")))

	manual := testClaim()
	manual.DiscountRate = domain.ManualRate(dec("0.035"))
	got, err = analyzer.BaseValue(manual, transform.ParamDiscountRate)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("0.035")))
}

func TestAnalyzer_Sweep_DiscountRateFloor(t *testing.T) {
	analyzer := NewAnalyzer(calculation.NewCalculationEngine())

	param := SweepParameter{
		Name:     transform.ParamDiscountRate,
		MinValue: dec("-1"),
		MaxValue: dec("0.03"),
		Steps:    3,
	}

	_, err := analyzer.Sweep(context.Background(), testClaim(), param)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than -1")
}

func TestAnalyzer_Sweep_DiscountRate(t *testing.T) {
	analyzer := NewAnalyzer(calculation.NewCalculationEngine())
	cfg := testClaim()

	param := SweepParameter{
		Name:     transform.ParamDiscountRate,
		MinValue: dec("0.016"),
		MaxValue: dec("0.032"),
		Steps:    5,
	}

	analysis, err := analyzer.Sweep(context.Background(), cfg, param)
	require.NoError(t, err)

	assert.Equal(t, "jones", analysis.ClaimName)
	assert.True(t, analysis.Parameter.BaseValue.Equal(dec("0.024")))
	assert.NotEmpty(t, analysis.Parameter.Description)

	require.Len(t, analysis.Points, 5)
	assert.True(t, analysis.Points[0].Value.Equal(param.MinValue))
	assert.True(t, analysis.Points[4].Value.Equal(param.MaxValue))

	base, err := calculation.NewCalculationEngine().RunProjection(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, analysis.BaseNetPresentValue.Equal(base.NetPresentValue))

	// the middle point is the auto discount rate
	assert.True(t, analysis.Points[2].NetChange.IsZero(), "got %s", analysis.Points[2].NetChange)

	for i := 1; i < len(analysis.Points); i++ {
		assert.True(t, analysis.Points[i].NetPresentValue.LessThan(analysis.Points[i-1].NetPresentValue),
			"higher discount rates shrink the award")
	}
	for _, p := range analysis.Points {
		assert.True(t, p.NetChange.Equal(p.NetPresentValue.Sub(analysis.BaseNetPresentValue)))
		assert.True(t, p.OffsetsPresentValue.Equal(dec("20000")), "lump sum is not discounted")
	}

	s := analysis.Summary
	assert.True(t, s.MaxNetPresentValue.Equal(analysis.Points[0].NetPresentValue))
	assert.True(t, s.MinNetPresentValue.Equal(analysis.Points[4].NetPresentValue))
	assert.True(t, s.Spread.Equal(s.MaxNetPresentValue.Sub(s.MinNetPresentValue)))
	assert.True(t, s.SpreadPct.IsPositive())
	assert.Equal(t, RiskLevelFor(s.SpreadPct), s.RiskLevel)
	assert.NotEmpty(t, s.Recommendations)

	assert.Equal(t, testClaim(), cfg, "the swept claim is never modified")
}

func TestAnalyzer_Sweep_UnemploymentFactor(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	analysis, err := analyzer.Sweep(context.Background(), testClaim(), SweepParameter{
		Name:     transform.ParamUnemploymentFactor,
		MinValue: decimal.Zero,
		MaxValue: dec("0.2"),
		Steps:    3,
	})
	require.NoError(t, err)
	require.Len(t, analysis.Points, 3)

	assert.True(t, analysis.Points[0].NetChange.IsPositive())
	assert.True(t, analysis.Points[2].NetChange.IsNegative())
}

func TestAnalyzer_Sweep_Errors(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	valid := SweepParameter{Name: transform.ParamTaxRate, MinValue: dec("0.1"), MaxValue: dec("0.3"), Steps: 3}

	_, err := analyzer.Sweep(context.Background(), nil, valid)
	assert.Error(t, err)

	invalid := valid
	invalid.Steps = 0
	_, err = analyzer.Sweep(context.Background(), testClaim(), invalid)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.Sweep(ctx, testClaim(), valid)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_SweepAll(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	discount, ok := DefaultRange(transform.ParamDiscountRate)
	require.True(t, ok)
	retirement, ok := DefaultRange(transform.ParamRetirementRate)
	require.True(t, ok)
	medical := SweepParameter{Name: transform.ParamMedicalGrowthRate, MinValue: dec("0.04"), MaxValue: dec("0.05"), Steps: 2}

	multi, err := analyzer.SweepAll(context.Background(), testClaim(), []SweepParameter{medical, discount, retirement})
	require.NoError(t, err)
	require.Len(t, multi.Analyses, 3)

	widest := multi.Analyses[0]
	for _, a := range multi.Analyses[1:] {
		if a.Summary.Spread.GreaterThan(widest.Summary.Spread) {
			widest = a
		}
	}
	assert.Equal(t, widest.Parameter.Name, multi.MostSensitiveParameter)
	assert.NotEqual(t, transform.ParamMedicalGrowthRate, multi.MostSensitiveParameter)

	_, err = analyzer.SweepAll(context.Background(), testClaim(), nil)
	assert.Error(t, err)
}

func TestAnalyzer_Matrix(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	unemployment := SweepParameter{Name: transform.ParamUnemploymentFactor, MinValue: decimal.Zero, MaxValue: dec("0.1"), Steps: 3}
	medical := SweepParameter{Name: transform.ParamMedicalGrowthRate, MinValue: decimal.Zero, MaxValue: dec("0.06"), Steps: 4}

	matrix, err := analyzer.Matrix(context.Background(), testClaim(), unemployment, medical)
	require.NoError(t, err)

	require.Len(t, matrix.Cells, 3)
	for i, row := range matrix.Cells {
		require.Len(t, row, 4)
		for j, cell := range row {
			assert.True(t, cell.Value1.Equal(unemployment.Values()[i]))
			assert.True(t, cell.Value2.Equal(medical.Values()[j]))
		}
	}
	assert.NotEmpty(t, matrix.MostSensitiveCombination)
	assert.True(t, matrix.Parameter1.BaseValue.Equal(dec("0.04")))

	// before medical, unemployment never touches medical: the two act independently
	assert.True(t, matrix.InteractionEffect.Abs().LessThan(dec("0.01")), "got %s", matrix.InteractionEffect)

	after := testClaim()
	after.UnemploymentOrdering = domain.OrderingAfterMedical
	matrix, err = analyzer.Matrix(context.Background(), after, unemployment, medical)
	require.NoError(t, err)
	assert.True(t, matrix.InteractionEffect.Abs().GreaterThan(decimal.NewFromInt(1)),
		"after medical, unemployment scales the medical benefit")
}

func TestAnalyzer_Matrix_SameParameter(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	p := SweepParameter{Name: transform.ParamTaxRate, MinValue: dec("0.1"), MaxValue: dec("0.3"), Steps: 3}

	_, err := analyzer.Matrix(context.Background(), testClaim(), p, p)
	assert.Error(t, err)
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		pct  string
		want RiskLevel
	}{
		{"0", RiskLow},
		{"4.99", RiskLow},
		{"5", RiskMedium},
		{"14.9", RiskMedium},
		{"15", RiskHigh},
		{"29.99", RiskHigh},
		{"30", RiskCritical},
		{"120", RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.pct, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevelFor(dec(tt.pct)))
		})
	}
}

func TestDefaultRange(t *testing.T) {
	for _, p := range transform.Parameters() {
		r, ok := DefaultRange(p)
		require.True(t, ok, "missing default range for %s", p)
		assert.Equal(t, p, r.Name)
		assert.NoError(t, r.Validate())
	}

	_, ok := DefaultRange("salary")
	assert.False(t, ok)
}
