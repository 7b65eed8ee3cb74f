package breakeven

import (
	"context"
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/output"
	"github.com/DavidGslade86/VCFEstimator/internal/sensitivity"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds parameter values that produce a target net present value
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve bisects the parameter's bracket for the target net present value. The
// target must lie between the net values at the two ends of the bracket.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	baseValue, err := sensitivity.NewAnalyzer(s.CalcEngine).BaseValue(req.Claim, req.Parameter)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to resolve base value", Cause: err}
	}
	baseResult, err := s.CalcEngine.RunProjection(ctx, req.Claim)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to project base claim", Cause: err}
	}

	b := req.bounds()
	lo, hi := b.Min, b.Max
	loResult, err := s.projectAt(ctx, req, lo)
	if err != nil {
		return nil, err
	}
	hiResult, err := s.projectAt(ctx, req, hi)
	if err != nil {
		return nil, err
	}

	newResult := func(value decimal.Decimal, r *domain.ProjectionResult, iterations int) *SolveResult {
		return &SolveResult{
			Request:           req,
			Iterations:        iterations,
			Value:             value,
			NetPresentValue:   r.NetPresentValue,
			Result:            r,
			BaseValue:         baseValue,
			BaseNet:           baseResult.NetPresentValue,
			ValueDiffFromBase: value.Sub(baseValue),
		}
	}

	target := req.TargetNet
	for _, end := range []struct {
		value  decimal.Decimal
		result *domain.ProjectionResult
	}{{lo, loResult}, {hi, hiResult}} {
		if end.result.NetPresentValue.Sub(target).Abs().LessThanOrEqual(req.Tolerance) {
			res := newResult(end.value, end.result, 0)
			res.Success = true
			res.ConvergenceInfo = "Target met at search bound"
			return res, nil
		}
	}

	netLo, netHi := loResult.NetPresentValue, hiResult.NetPresentValue
	if target.LessThan(decimal.Min(netLo, netHi)) || target.GreaterThan(decimal.Max(netLo, netHi)) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message: fmt.Sprintf("target %s is outside the reachable range %s to %s for %s between %s and %s",
				output.FormatCurrency(target),
				output.FormatCurrency(decimal.Min(netLo, netHi)), output.FormatCurrency(decimal.Max(netLo, netHi)),
				req.Parameter, lo.String(), hi.String()),
		}
	}

	increasing := netHi.GreaterThan(netLo)
	two := decimal.NewFromInt(2)
	var best *SolveResult

	for iterations := 1; iterations <= req.MaxIterations; iterations++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		midResult, err := s.projectAt(ctx, req, mid)
		if err != nil {
			return nil, err
		}

		result := newResult(mid, midResult, iterations)
		diff := midResult.NetPresentValue.Sub(target)
		if best == nil || diff.Abs().LessThan(best.NetPresentValue.Sub(target).Abs()) {
			best = result
		}

		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Converged to target within %s", output.FormatCurrency(req.Tolerance))
			return result, nil
		}

		if diff.IsNegative() == increasing {
			lo = mid
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThan(s.Options.ValueTolerance) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = "Bisection converged"
			return best, nil
		}
	}

	best.Iterations = req.MaxIterations
	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

func (s *Solver) projectAt(ctx context.Context, req SolveRequest, value decimal.Decimal) (*domain.ProjectionResult, error) {
	modified, err := transform.ApplyTransforms(req.Claim, []transform.ClaimTransform{
		&transform.SetParameter{Parameter: req.Parameter, Value: value},
	})
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to apply parameter", Cause: err}
	}
	result, err := s.CalcEngine.RunProjection(ctx, modified)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to project claim", Cause: err}
	}
	return result, nil
}
