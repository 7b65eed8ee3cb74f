package sensitivity

import (
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
)

// SweepParameter is one claim input swept across a range
type SweepParameter struct {
	Name        transform.Parameter `yaml:"name" json:"name"`
	MinValue    decimal.Decimal     `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal     `yaml:"max_value" json:"maxValue"`
	Steps       int                 `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal     `yaml:"base_value" json:"baseValue"` // filled in from the claim by the analyzer
	Description string              `yaml:"description" json:"description"`
}

// Validate checks the range and step count
func (p SweepParameter) Validate() error {
	if !p.Name.IsValid() {
		return fmt.Errorf("unknown parameter %q", p.Name)
	}
	if p.Steps < 2 {
		return fmt.Errorf("%s: steps must be at least 2, got %d", p.Name, p.Steps)
	}
	if p.MinValue.GreaterThan(p.MaxValue) {
		return fmt.Errorf("%s: min %s is greater than max %s", p.Name, p.MinValue.String(), p.MaxValue.String())
	}
	return nil
}

// Values returns Steps evenly spaced values from MinValue to MaxValue inclusive.
// The last value is MaxValue exactly, whatever the rounding of the step size.
func (p SweepParameter) Values() []decimal.Decimal {
	if p.Steps < 2 {
		return []decimal.Decimal{p.MinValue}
	}

	stepSize := p.MaxValue.Sub(p.MinValue).Div(decimal.NewFromInt(int64(p.Steps - 1)))

	values := make([]decimal.Decimal, 0, p.Steps)
	for i := 0; i < p.Steps-1; i++ {
		values = append(values, p.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return append(values, p.MaxValue)
}

// SweepPoint is the projection outcome at one parameter value
type SweepPoint struct {
	Value               decimal.Decimal `json:"value"`
	GrossPresentValue   decimal.Decimal `json:"grossPresentValue"`
	OffsetsPresentValue decimal.Decimal `json:"offsetsPresentValue"`
	NetPresentValue     decimal.Decimal `json:"netPresentValue"`
	Horizon             int             `json:"horizon"`
	NetChange           decimal.Decimal `json:"netChange"`    // vs the unmodified claim
	NetChangePct        decimal.Decimal `json:"netChangePct"` // percent of the unmodified net
}

// RiskLevel buckets how much an award moves across a sweep
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevelFor buckets a spread expressed as a percentage of the base award
func RiskLevelFor(spreadPct decimal.Decimal) RiskLevel {
	switch {
	case spreadPct.LessThan(decimal.NewFromInt(5)):
		return RiskLow
	case spreadPct.LessThan(decimal.NewFromInt(15)):
		return RiskMedium
	case spreadPct.LessThan(decimal.NewFromInt(30)):
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Summary scores a sweep by the spread of net present value across its points
type Summary struct {
	MinNetPresentValue decimal.Decimal `json:"minNetPresentValue"`
	MaxNetPresentValue decimal.Decimal `json:"maxNetPresentValue"`
	Spread             decimal.Decimal `json:"spread"`    // max - min
	SpreadPct          decimal.Decimal `json:"spreadPct"` // spread as a percent of the base net
	RiskLevel          RiskLevel       `json:"riskLevel"`
	Recommendations    []string        `json:"recommendations"`
}

// Analysis is a complete single-parameter sweep
type Analysis struct {
	ClaimName           string          `json:"claimName"`
	Parameter           SweepParameter  `json:"parameter"`
	BaseNetPresentValue decimal.Decimal `json:"baseNetPresentValue"`
	Points              []SweepPoint    `json:"points"`
	Summary             Summary         `json:"summary"`
}

// MultiAnalysis ranks several independent sweeps of the same claim
type MultiAnalysis struct {
	ClaimName              string              `json:"claimName"`
	BaseNetPresentValue    decimal.Decimal     `json:"baseNetPresentValue"`
	Analyses               []Analysis          `json:"analyses"`
	MostSensitiveParameter transform.Parameter `json:"mostSensitiveParameter"`
}

// MatrixCell is one combination of a two-parameter sweep
type MatrixCell struct {
	Value1          decimal.Decimal `json:"value1"`
	Value2          decimal.Decimal `json:"value2"`
	NetPresentValue decimal.Decimal `json:"netPresentValue"`
	NetChange       decimal.Decimal `json:"netChange"`
}

// Matrix is a two-parameter sweep; Cells[i][j] pairs Parameter1's i-th value with Parameter2's j-th
type Matrix struct {
	ClaimName                string          `json:"claimName"`
	Parameter1               SweepParameter  `json:"parameter1"`
	Parameter2               SweepParameter  `json:"parameter2"`
	BaseNetPresentValue      decimal.Decimal `json:"baseNetPresentValue"`
	Cells                    [][]MatrixCell  `json:"cells"`
	MostSensitiveCombination string          `json:"mostSensitiveCombination"`
	InteractionEffect        decimal.Decimal `json:"interactionEffect"`
	RiskLevel                RiskLevel       `json:"riskLevel"`
}

// DefaultRange returns a conventional sweep range for a parameter
func DefaultRange(name transform.Parameter) (SweepParameter, bool) {
	p, ok := defaultRanges[name]
	return p, ok
}

var defaultRanges = map[transform.Parameter]SweepParameter{
	transform.ParamDiscountRate: {
		Name: transform.ParamDiscountRate, Steps: 5,
		MinValue: decimal.NewFromFloat(0.01), MaxValue: decimal.NewFromFloat(0.05),
	},
	transform.ParamGrowthRate: {
		Name: transform.ParamGrowthRate, Steps: 5,
		MinValue: decimal.Zero, MaxValue: decimal.NewFromFloat(0.04),
	},
	transform.ParamGrowthFallback: {
		Name: transform.ParamGrowthFallback, Steps: 5,
		MinValue: decimal.Zero, MaxValue: decimal.NewFromFloat(0.04),
	},
	transform.ParamUnemploymentFactor: {
		Name: transform.ParamUnemploymentFactor, Steps: 5,
		MinValue: decimal.Zero, MaxValue: decimal.NewFromFloat(0.2),
	},
	transform.ParamTaxRate: {
		Name: transform.ParamTaxRate, Steps: 5,
		MinValue: decimal.NewFromFloat(0.1), MaxValue: decimal.NewFromFloat(0.3),
	},
	transform.ParamConsumptionRate: {
		Name: transform.ParamConsumptionRate, Steps: 5,
		MinValue: decimal.NewFromFloat(0.05), MaxValue: decimal.NewFromFloat(0.25),
	},
	transform.ParamMedicalGrowthRate: {
		Name: transform.ParamMedicalGrowthRate, Steps: 5,
		MinValue: decimal.Zero, MaxValue: decimal.NewFromFloat(0.08),
	},
	transform.ParamRetirementRate: {
		Name: transform.ParamRetirementRate, Steps: 5,
		MinValue: decimal.Zero, MaxValue: decimal.NewFromFloat(0.12),
	},
}

// generateRecommendations describes what the risk level means for the claim
func (s *Summary) generateRecommendations(param transform.Parameter) []string {
	recommendations := []string{}

	switch s.RiskLevel {
	case RiskLow:
		recommendations = append(recommendations, fmt.Sprintf("Award is robust to %s", param))
	case RiskMedium:
		recommendations = append(recommendations, fmt.Sprintf("Moderate sensitivity to %s", param))
		recommendations = append(recommendations, "Document the basis for the chosen value")
	case RiskHigh, RiskCritical:
		recommendations = append(recommendations, fmt.Sprintf("High sensitivity to %s", param))
		recommendations = append(recommendations, "Support the chosen value with claim-specific evidence")
	}

	switch param {
	case transform.ParamDiscountRate:
		recommendations = append(recommendations, "Confirm the discount band against the claimant's age at loss")
	case transform.ParamConsumptionRate:
		recommendations = append(recommendations, "Only wrongful-death claims carry a consumption deduction")
	case transform.ParamUnemploymentFactor:
		recommendations = append(recommendations, "Compare both unemployment orderings for this claim")
	}

	return recommendations
}
