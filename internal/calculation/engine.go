package calculation

import (
	"context"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine drives projections over a claim's horizon
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Enable per-year debug output
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ResolveTaxRate returns the manual tax rate or the bracket rate for base income
func (ce *CalculationEngine) ResolveTaxRate(cfg *domain.ProjectionConfig) decimal.Decimal {
	return cfg.TaxRate.Resolve(func() decimal.Decimal {
		return TaxRateForIncome(cfg.BaseIncome)
	})
}

// ResolveDiscountRate returns the manual discount rate or the band for the starting age
func (ce *CalculationEngine) ResolveDiscountRate(cfg *domain.ProjectionConfig) decimal.Decimal {
	return cfg.DiscountRate.Resolve(func() decimal.Decimal {
		return DiscountRateForAge(cfg.StartAge)
	})
}

// ResolveHorizon returns the number of projection years and the work-life estimate
// for the starting age. The estimate is returned even when the horizon is manual.
func (ce *CalculationEngine) ResolveHorizon(cfg *domain.ProjectionConfig) (int, domain.WorklifeEstimate) {
	worklife := LookupWorklife(cfg.StartAge)
	if cfg.Horizon.UsesWorklife() {
		return worklife.Years, worklife
	}
	return *cfg.Horizon.Years, worklife
}

// RunProjection projects every year of the horizon, discounts each to present
// value, and nets the offsets against the gross with a floor of zero.
func (ce *CalculationEngine) RunProjection(ctx context.Context, cfg *domain.ProjectionConfig) (*domain.ProjectionResult, error) {
	if ce.Logger == nil {
		ce.Logger = NopLogger{}
	}

	horizon, worklife := ce.ResolveHorizon(cfg)
	taxRate := ce.ResolveTaxRate(cfg)
	discountRate := ce.ResolveDiscountRate(cfg)

	ce.Logger.Debugf("projection %q: mode=%s horizon=%d (worklife=%t) tax=%s (manual=%t) discount=%s (manual=%t) ordering=%s",
		cfg.Name, cfg.Mode, horizon, cfg.Horizon.UsesWorklife(),
		taxRate.String(), cfg.TaxRate.IsManual(),
		discountRate.String(), cfg.DiscountRate.IsManual(),
		cfg.UnemploymentOrdering)

	projector := NewYearProjector(cfg, taxRate, discountRate)
	rows := make([]domain.YearRow, 0, max(horizon, 0))
	gross := decimal.Zero

	for year := 1; year <= horizon; year++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := projector.Next()
		rows = append(rows, row)
		gross = gross.Add(row.PresentValue)

		if ce.Debug {
			ce.Logger.Debugf("year %d age %s: salary=%s consumption=%s subtotal=%s pv=%s",
				row.Year, row.Age.String(), row.Salary.StringFixed(2), row.Consumption.StringFixed(2),
				row.Subtotal.StringFixed(2), row.PresentValue.StringFixed(2))
		}
	}

	offsetsPV := OffsetsPresentValue(cfg.Offsets, discountRate)
	net := decimal.Max(decimal.Zero, gross.Sub(offsetsPV))

	ce.Logger.Infof("projection %q: gross=%s offsets=%s net=%s",
		cfg.Name, gross.StringFixed(2), offsetsPV.StringFixed(2), net.StringFixed(2))

	ordering := cfg.UnemploymentOrdering
	if ordering == "" {
		ordering = domain.OrderingBeforeMedical
	}

	return &domain.ProjectionResult{
		Name:                cfg.Name,
		GrossPresentValue:   gross,
		OffsetsPresentValue: offsetsPV,
		NetPresentValue:     net,
		TaxRate:             taxRate,
		DiscountRate:        discountRate,
		Horizon:             horizon,
		WorklifeHorizon:     cfg.Horizon.UsesWorklife(),
		Mode:                cfg.Mode,
		Ordering:            ordering,
		Worklife:            worklife,
		Years:               rows,
	}, nil
}

// OffsetsPresentValue discounts the periodic offset over its years and adds the
// lump sum as-is, since the lump sum is already a present value.
func OffsetsPresentValue(offsets domain.Offsets, discountRate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	if offsets.HasPeriodic() {
		for year := 1; year <= offsets.Years; year++ {
			total = total.Add(offsets.AnnualAmount.Div(DiscountFactor(discountRate, year)))
		}
	}
	return total.Add(offsets.LumpSum)
}
