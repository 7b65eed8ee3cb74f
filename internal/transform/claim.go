package transform

import (
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// SetOrdering switches the unemployment ordering strategy.
type SetOrdering struct {
	Ordering domain.UnemploymentOrdering
}

func (so *SetOrdering) Name() string {
	return "set_ordering"
}

func (so *SetOrdering) Description() string {
	return fmt.Sprintf("Apply unemployment %s", so.Ordering)
}

func (so *SetOrdering) Validate(base *domain.ProjectionConfig) error {
	if base == nil {
		return NewTransformError(so.Name(), "validate", "base claim cannot be nil", nil)
	}
	switch so.Ordering {
	case domain.OrderingBeforeMedical, domain.OrderingAfterMedical:
		return nil
	default:
		return NewTransformError(so.Name(), "validate", fmt.Sprintf("unknown ordering %q", so.Ordering), nil)
	}
}

func (so *SetOrdering) Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error) {
	modified := base.Clone()
	modified.UnemploymentOrdering = so.Ordering
	return modified, nil
}

// SetMode switches between injury and wrongful-death claims.
type SetMode struct {
	Mode domain.ClaimMode
}

func (sm *SetMode) Name() string {
	return "set_mode"
}

func (sm *SetMode) Description() string {
	return fmt.Sprintf("Treat the claim as %s", sm.Mode)
}

func (sm *SetMode) Validate(base *domain.ProjectionConfig) error {
	if base == nil {
		return NewTransformError(sm.Name(), "validate", "base claim cannot be nil", nil)
	}
	switch sm.Mode {
	case domain.ClaimModeInjury, domain.ClaimModeWrongfulDeath:
		return nil
	default:
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("unknown mode %q", sm.Mode), nil)
	}
}

func (sm *SetMode) Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error) {
	modified := base.Clone()
	modified.Mode = sm.Mode
	return modified, nil
}

// SetHorizon fixes the projection at an explicit number of years.
type SetHorizon struct {
	Years int
}

func (sh *SetHorizon) Name() string {
	return "set_horizon"
}

func (sh *SetHorizon) Description() string {
	return fmt.Sprintf("Project %d years", sh.Years)
}

func (sh *SetHorizon) Validate(base *domain.ProjectionConfig) error {
	if base == nil {
		return NewTransformError(sh.Name(), "validate", "base claim cannot be nil", nil)
	}
	if sh.Years < 0 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", sh.Years), nil)
	}
	return nil
}

func (sh *SetHorizon) Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error) {
	modified := base.Clone()
	modified.Horizon = domain.FixedHorizon(sh.Years)
	return modified, nil
}

// UseWorklifeHorizon derives the horizon from the work-life table.
type UseWorklifeHorizon struct{}

func (uw *UseWorklifeHorizon) Name() string {
	return "use_worklife"
}

func (uw *UseWorklifeHorizon) Description() string {
	return "Derive the horizon from the work-life table"
}

func (uw *UseWorklifeHorizon) Validate(base *domain.ProjectionConfig) error {
	if base == nil {
		return NewTransformError(uw.Name(), "validate", "base claim cannot be nil", nil)
	}
	return nil
}

func (uw *UseWorklifeHorizon) Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error) {
	modified := base.Clone()
	modified.Horizon = domain.WorklifeHorizon()
	return modified, nil
}

// ClearOffsets removes both periodic and lump-sum offsets.
type ClearOffsets struct{}

func (co *ClearOffsets) Name() string {
	return "clear_offsets"
}

func (co *ClearOffsets) Description() string {
	return "Ignore collateral offsets"
}

func (co *ClearOffsets) Validate(base *domain.ProjectionConfig) error {
	if base == nil {
		return NewTransformError(co.Name(), "validate", "base claim cannot be nil", nil)
	}
	return nil
}

func (co *ClearOffsets) Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error) {
	modified := base.Clone()
	modified.Offsets = domain.Offsets{}
	return modified, nil
}

// SetParameter overrides one numeric input of the claim. Rates that normally come
// from a reference table become manual overrides.
type SetParameter struct {
	Parameter Parameter
	Value     decimal.Decimal
}

func (sp *SetParameter) Name() string {
	return "set_rate"
}

func (sp *SetParameter) Description() string {
	return fmt.Sprintf("Set %s to %s", sp.Parameter, sp.Value.String())
}

func (sp *SetParameter) Validate(base *domain.ProjectionConfig) error {
	if base == nil {
		return NewTransformError(sp.Name(), "validate", "base claim cannot be nil", nil)
	}
	if !sp.Parameter.IsValid() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("unknown parameter %q", sp.Parameter), nil)
	}
	if sp.Parameter == ParamDiscountRate && sp.Value.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewTransformError(sp.Name(), "validate",
			fmt.Sprintf("discount rate must be greater than -1, got %s", sp.Value.String()), nil)
	}
	return nil
}

func (sp *SetParameter) Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error) {
	modified := base.Clone()

	switch sp.Parameter {
	case ParamDiscountRate:
		modified.DiscountRate = domain.ManualRate(sp.Value)
	case ParamTaxRate:
		modified.TaxRate = domain.ManualRate(sp.Value)
	case ParamConsumptionRate:
		modified.ConsumptionRate = domain.ManualRate(sp.Value)
	case ParamGrowthRate:
		fallback := modified.Growth.Fallback
		modified.Growth = domain.FixedGrowth(sp.Value)
		modified.Growth.Fallback = fallback
	case ParamGrowthFallback:
		modified.Growth.Fallback = sp.Value
	case ParamUnemploymentFactor:
		modified.UnemploymentFactor = sp.Value
	case ParamMedicalGrowthRate:
		modified.MedicalGrowthRate = sp.Value
	case ParamRetirementRate:
		modified.RetirementRate = sp.Value
	default:
		return nil, NewTransformError(sp.Name(), "apply", fmt.Sprintf("unknown parameter %q", sp.Parameter), nil)
	}

	return modified, nil
}
