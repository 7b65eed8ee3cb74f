package sensitivity

import (
	"context"
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
)

// Analyzer performs parameter sweep analysis over a single claim
type Analyzer struct {
	calculationEngine *calculation.CalculationEngine
}

// NewAnalyzer creates a new analyzer; a nil engine gets a default one
func NewAnalyzer(engine *calculation.CalculationEngine) *Analyzer {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Analyzer{calculationEngine: engine}
}

// BaseValue is the value a parameter takes in the unmodified claim, resolving
// table-driven rates the same way the projection does for its first year.
func (a *Analyzer) BaseValue(cfg *domain.ProjectionConfig, name transform.Parameter) (decimal.Decimal, error) {
	switch name {
	case transform.ParamDiscountRate:
		return a.calculationEngine.ResolveDiscountRate(cfg), nil
	case transform.ParamTaxRate:
		return a.calculationEngine.ResolveTaxRate(cfg), nil
	case transform.ParamConsumptionRate:
		if !cfg.IsWrongfulDeath() {
			return decimal.Zero, nil
		}
		return cfg.ConsumptionRate.Resolve(func() decimal.Decimal {
			dependents := calculation.CountDependents(cfg.Dependents[:], 0)
			return calculation.ConsumptionRateFor(cfg.BaseIncome, cfg.MaritalStatus, dependents)
		}), nil
	case transform.ParamGrowthRate:
		if !cfg.Growth.IsAgeIndexed() {
			return *cfg.Growth.Fixed, nil
		}
		return calculation.GrowthRateForAge(cfg.StartAge.Add(decimal.NewFromInt(1)), cfg.Growth.Fallback), nil
	case transform.ParamGrowthFallback:
		return cfg.Growth.Fallback, nil
	case transform.ParamUnemploymentFactor:
		return cfg.UnemploymentFactor, nil
	case transform.ParamMedicalGrowthRate:
		return cfg.MedicalGrowthRate, nil
	case transform.ParamRetirementRate:
		return cfg.RetirementRate, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown parameter %q", name)
	}
}

// Sweep projects the claim once per parameter value and scores the spread of
// net present value across the sweep.
func (a *Analyzer) Sweep(ctx context.Context, cfg *domain.ProjectionConfig, param SweepParameter) (*Analysis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("claim cannot be nil")
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}

	baseValue, err := a.BaseValue(cfg, param.Name)
	if err != nil {
		return nil, err
	}
	param.BaseValue = baseValue
	if param.Description == "" {
		param.Description = param.Name.Description()
	}

	baseResult, err := a.calculationEngine.RunProjection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base claim: %w", err)
	}
	baseNet := baseResult.NetPresentValue

	values := param.Values()
	points := make([]SweepPoint, 0, len(values))

	for _, value := range values {
		result, err := a.project(ctx, cfg, []transform.ClaimTransform{
			&transform.SetParameter{Parameter: param.Name, Value: value},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run claim for %s=%s: %w", param.Name, value.String(), err)
		}

		point := SweepPoint{
			Value:               value,
			GrossPresentValue:   result.GrossPresentValue,
			OffsetsPresentValue: result.OffsetsPresentValue,
			NetPresentValue:     result.NetPresentValue,
			Horizon:             result.Horizon,
			NetChange:           result.NetPresentValue.Sub(baseNet),
		}
		point.NetChangePct = percentOf(point.NetChange, baseNet)
		points = append(points, point)
	}

	return &Analysis{
		ClaimName:           cfg.Name,
		Parameter:           param,
		BaseNetPresentValue: baseNet,
		Points:              points,
		Summary:             summarize(points, baseNet, param.Name),
	}, nil
}

// SweepAll runs an independent sweep per parameter and names the parameter
// with the widest spread.
func (a *Analyzer) SweepAll(ctx context.Context, cfg *domain.ProjectionConfig, params []SweepParameter) (*MultiAnalysis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("claim cannot be nil")
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("at least one parameter is required")
	}

	multi := &MultiAnalysis{ClaimName: cfg.Name}
	widest := decimal.NewFromInt(-1)

	for _, param := range params {
		analysis, err := a.Sweep(ctx, cfg, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		multi.BaseNetPresentValue = analysis.BaseNetPresentValue
		multi.Analyses = append(multi.Analyses, *analysis)

		if analysis.Summary.Spread.GreaterThan(widest) {
			widest = analysis.Summary.Spread
			multi.MostSensitiveParameter = param.Name
		}
	}

	return multi, nil
}

// Matrix sweeps two parameters jointly. The interaction effect is the largest
// mixed difference net(i,j) - net(i,0) - net(0,j) + net(0,0): zero when the two
// parameters move the award independently.
func (a *Analyzer) Matrix(ctx context.Context, cfg *domain.ProjectionConfig, param1, param2 SweepParameter) (*Matrix, error) {
	if cfg == nil {
		return nil, fmt.Errorf("claim cannot be nil")
	}
	if param1.Name == param2.Name {
		return nil, fmt.Errorf("matrix parameters must differ, got %s twice", param1.Name)
	}
	for _, p := range []*SweepParameter{&param1, &param2} {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		base, err := a.BaseValue(cfg, p.Name)
		if err != nil {
			return nil, err
		}
		p.BaseValue = base
		if p.Description == "" {
			p.Description = p.Name.Description()
		}
	}

	baseResult, err := a.calculationEngine.RunProjection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base claim: %w", err)
	}
	baseNet := baseResult.NetPresentValue

	values1 := param1.Values()
	values2 := param2.Values()
	cells := make([][]MatrixCell, len(values1))

	maxChange := decimal.NewFromInt(-1)
	mostSensitive := ""
	minNet, maxNet := decimal.Zero, decimal.Zero

	for i, v1 := range values1 {
		cells[i] = make([]MatrixCell, len(values2))
		for j, v2 := range values2 {
			result, err := a.project(ctx, cfg, []transform.ClaimTransform{
				&transform.SetParameter{Parameter: param1.Name, Value: v1},
				&transform.SetParameter{Parameter: param2.Name, Value: v2},
			})
			if err != nil {
				return nil, fmt.Errorf("failed to run claim for %s=%s, %s=%s: %w",
					param1.Name, v1.String(), param2.Name, v2.String(), err)
			}

			net := result.NetPresentValue
			cells[i][j] = MatrixCell{
				Value1:          v1,
				Value2:          v2,
				NetPresentValue: net,
				NetChange:       net.Sub(baseNet),
			}

			if i == 0 && j == 0 {
				minNet, maxNet = net, net
			}
			minNet = decimal.Min(minNet, net)
			maxNet = decimal.Max(maxNet, net)

			if cells[i][j].NetChange.Abs().GreaterThan(maxChange) {
				maxChange = cells[i][j].NetChange.Abs()
				mostSensitive = fmt.Sprintf("%s=%s, %s=%s", param1.Name, v1.String(), param2.Name, v2.String())
			}
		}
	}

	interaction := decimal.Zero
	for i := range cells {
		for j := range cells[i] {
			effect := cells[i][j].NetPresentValue.
				Sub(cells[i][0].NetPresentValue).
				Sub(cells[0][j].NetPresentValue).
				Add(cells[0][0].NetPresentValue)
			if effect.Abs().GreaterThan(interaction.Abs()) {
				interaction = effect
			}
		}
	}

	return &Matrix{
		ClaimName:                cfg.Name,
		Parameter1:               param1,
		Parameter2:               param2,
		BaseNetPresentValue:      baseNet,
		Cells:                    cells,
		MostSensitiveCombination: mostSensitive,
		InteractionEffect:        interaction,
		RiskLevel:                RiskLevelFor(percentOf(maxNet.Sub(minNet), baseNet)),
	}, nil
}

func (a *Analyzer) project(ctx context.Context, cfg *domain.ProjectionConfig, transforms []transform.ClaimTransform) (*domain.ProjectionResult, error) {
	modified, err := transform.ApplyTransforms(cfg, transforms)
	if err != nil {
		return nil, err
	}
	return a.calculationEngine.RunProjection(ctx, modified)
}

func summarize(points []SweepPoint, baseNet decimal.Decimal, param transform.Parameter) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	minNet, maxNet := points[0].NetPresentValue, points[0].NetPresentValue
	for _, p := range points[1:] {
		minNet = decimal.Min(minNet, p.NetPresentValue)
		maxNet = decimal.Max(maxNet, p.NetPresentValue)
	}

	spread := maxNet.Sub(minNet)
	summary := Summary{
		MinNetPresentValue: minNet,
		MaxNetPresentValue: maxNet,
		Spread:             spread,
		SpreadPct:          percentOf(spread, baseNet),
	}
	summary.RiskLevel = RiskLevelFor(summary.SpreadPct)
	summary.Recommendations = summary.generateRecommendations(param)
	return summary
}

// percentOf is amount as a percentage of base, or zero when base is zero
func percentOf(amount, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return amount.Div(base).Mul(decimal.NewFromInt(100))
}
