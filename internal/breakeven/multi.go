package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/DavidGslade86/VCFEstimator/internal/output"
	"github.com/DavidGslade86/VCFEstimator/internal/transform"
	"github.com/shopspring/decimal"
)

// SolveAll solves for the target once per parameter and reports which single
// change of assumption reaches it with the smallest move from the claim as filed.
func (s *Solver) SolveAll(
	ctx context.Context,
	claim *domain.ProjectionConfig,
	targetNet decimal.Decimal,
	params []transform.Parameter,
) (*MultiResult, error) {
	if len(params) == 0 {
		params = transform.Parameters()
	}

	multi := &MultiResult{
		TargetNet:   targetNet,
		Unreachable: map[string]string{},
	}

	for _, p := range params {
		result, err := s.Solve(ctx, SolveRequest{Claim: claim, Parameter: p, TargetNet: targetNet})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var beErr *BreakEvenError
			if errors.As(err, &beErr) && beErr.Operation == "validate_request" {
				return nil, err
			}
			multi.Unreachable[string(p)] = err.Error()
			continue
		}
		if !result.Success {
			multi.Unreachable[string(p)] = result.ConvergenceInfo
			continue
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   fmt.Sprintf("no parameter reaches a net present value of %s", output.FormatCurrency(targetNet)),
		}
	}

	for i := range multi.Results {
		if multi.SmallestChange == nil ||
			multi.Results[i].ValueDiffFromBase.Abs().LessThan(multi.SmallestChange.ValueDiffFromBase.Abs()) {
			multi.SmallestChange = &multi.Results[i]
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

func generateRecommendations(multi *MultiResult) []string {
	var recs []string
	if sc := multi.SmallestChange; sc != nil {
		recs = append(recs, fmt.Sprintf("Smallest Change: %s from %s to %s (%s) reaches %s",
			sc.Request.Parameter, output.FormatRate(sc.BaseValue), output.FormatRate(sc.Value),
			signedRate(sc.ValueDiffFromBase), output.FormatCurrency(multi.TargetNet)))
	}
	if n := len(multi.Unreachable); n > 0 {
		recs = append(recs, fmt.Sprintf("Unreachable: %d parameter(s) cannot reach the target alone within their bounds", n))
	}
	return recs
}

func signedRate(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + output.FormatRate(d.Abs())
	}
	return "+" + output.FormatRate(d)
}
