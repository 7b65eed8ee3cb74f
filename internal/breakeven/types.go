package breakeven

import (
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
)

// SolveRequest asks for the value of one claim parameter at which the net
// present value reaches TargetNet.
type SolveRequest struct {
	Claim     *domain.ProjectionConfig `json:"-"`
	Parameter transform.Parameter      `json:"parameter"`
	TargetNet decimal.Decimal          `json:"targetNet"`

	// Search bounds; nil uses the parameter's default bounds
	MinValue *decimal.Decimal `json:"minValue,omitempty"`
	MaxValue *decimal.Decimal `json:"maxValue,omitempty"`

	MaxIterations int             `json:"maxIterations"` // 0 uses the solver default
	Tolerance     decimal.Decimal `json:"tolerance"`     // dollars; zero uses the solver default
}

// SolveResult is the parameter value found by the solver and the projection at it
type SolveResult struct {
	Request         SolveRequest `json:"request"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergenceInfo"`

	Value           decimal.Decimal          `json:"value"`
	NetPresentValue decimal.Decimal          `json:"netPresentValue"`
	Result          *domain.ProjectionResult `json:"-"`

	// The claim as filed, for comparison
	BaseValue         decimal.Decimal `json:"baseValue"`
	BaseNet           decimal.Decimal `json:"baseNet"`
	ValueDiffFromBase decimal.Decimal `json:"valueDiffFromBase"`
}

// MultiResult holds one solve per parameter for the same target
type MultiResult struct {
	TargetNet       decimal.Decimal   `json:"targetNet"`
	Results         []SolveResult     `json:"results"`
	Unreachable     map[string]string `json:"unreachable,omitempty"` // parameter -> reason
	SmallestChange  *SolveResult      `json:"smallestChange,omitempty"`
	Recommendations []string          `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance      decimal.Decimal // dollars of net present value
	ValueTolerance decimal.Decimal // width of the parameter bracket at which the search stops
	MaxIterations  int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:      decimal.NewFromInt(100),
		ValueTolerance: decimal.NewFromFloat(0.000001),
		MaxIterations:  60,
	}
}

// Bounds is a closed search interval for one parameter
type Bounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

var defaultBounds = map[transform.Parameter]Bounds{
	transform.ParamDiscountRate:       {decimal.Zero, decimal.NewFromFloat(0.15)},
	transform.ParamTaxRate:            {decimal.Zero, decimal.NewFromFloat(0.6)},
	transform.ParamConsumptionRate:    {decimal.Zero, decimal.NewFromFloat(0.9)},
	transform.ParamGrowthRate:         {decimal.NewFromFloat(-0.05), decimal.NewFromFloat(0.15)},
	transform.ParamGrowthFallback:     {decimal.NewFromFloat(-0.05), decimal.NewFromFloat(0.15)},
	transform.ParamUnemploymentFactor: {decimal.Zero, decimal.NewFromInt(1)},
	transform.ParamMedicalGrowthRate:  {decimal.NewFromFloat(-0.05), decimal.NewFromFloat(0.2)},
	transform.ParamRetirementRate:     {decimal.Zero, decimal.NewFromFloat(0.5)},
}

// DefaultBounds returns the search interval used when a request gives none
func DefaultBounds(p transform.Parameter) (Bounds, bool) {
	b, ok := defaultBounds[p]
	return b, ok
}

// bounds merges the request's explicit bounds over the defaults
func (r *SolveRequest) bounds() Bounds {
	b := defaultBounds[r.Parameter]
	if r.MinValue != nil {
		b.Min = *r.MinValue
	}
	if r.MaxValue != nil {
		b.Max = *r.MaxValue
	}
	return b
}

// Validate checks the request is internally consistent
func (r *SolveRequest) Validate() error {
	if r.Claim == nil {
		return &BreakEvenError{Operation: "validate_request", Message: "claim is required"}
	}
	if !r.Parameter.IsValid() {
		return &BreakEvenError{Operation: "validate_request", Message: "unknown parameter " + string(r.Parameter)}
	}
	if r.TargetNet.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "target net present value cannot be negative"}
	}
	if b := r.bounds(); b.Min.GreaterThan(b.Max) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min value " + b.Min.String() + " is greater than max value " + b.Max.String(),
		}
	}
	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
