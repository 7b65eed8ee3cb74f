package calculation

import (
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// adjustmentInput carries the amounts an unemployment ordering combines for one year
type adjustmentInput struct {
	IncomePlusRetirement decimal.Decimal
	TaxRate              decimal.Decimal
	UnemploymentFactor   decimal.Decimal
	Consumption          decimal.Decimal
	Medical              decimal.Decimal
}

// adjustmentResult is the outcome of applying unemployment, tax, consumption and medical
type adjustmentResult struct {
	UnemploymentAdjusted decimal.Decimal
	PostTax              decimal.Decimal
	AfterConsumption     decimal.Decimal
	Subtotal             decimal.Decimal
}

// adjustmentOrdering is one of the two fixed orders of the per-year deductions
type adjustmentOrdering func(adjustmentInput) adjustmentResult

// applyBeforeMedical: unemployment, then tax, then consumption, then add medical.
func applyBeforeMedical(in adjustmentInput) adjustmentResult {
	one := decimal.NewFromInt(1)
	adjusted := in.IncomePlusRetirement.Mul(one.Sub(in.UnemploymentFactor))
	postTax := adjusted.Mul(one.Sub(in.TaxRate))
	afterConsumption := postTax.Sub(in.Consumption)
	return adjustmentResult{
		UnemploymentAdjusted: adjusted,
		PostTax:              postTax,
		AfterConsumption:     afterConsumption,
		Subtotal:             afterConsumption.Add(in.Medical),
	}
}

// applyAfterMedical: tax, consumption, add medical, then unemployment on the whole
// subtotal. Medical is reduced by the unemployment factor in this ordering.
func applyAfterMedical(in adjustmentInput) adjustmentResult {
	one := decimal.NewFromInt(1)
	postTax := in.IncomePlusRetirement.Mul(one.Sub(in.TaxRate))
	afterConsumption := postTax.Sub(in.Consumption)
	subtotal := afterConsumption.Add(in.Medical).Mul(one.Sub(in.UnemploymentFactor))
	return adjustmentResult{
		UnemploymentAdjusted: subtotal,
		PostTax:              postTax,
		AfterConsumption:     afterConsumption,
		Subtotal:             subtotal,
	}
}

// orderingFor maps the configured ordering to its strategy; anything but
// after_medical gets the default before_medical ordering.
func orderingFor(o domain.UnemploymentOrdering) adjustmentOrdering {
	if o == domain.OrderingAfterMedical {
		return applyAfterMedical
	}
	return applyBeforeMedical
}

// YearProjector carries running salary and medical values across projection years.
// It is single use: create one per projection and call Next once per year.
type YearProjector struct {
	cfg          *domain.ProjectionConfig
	taxRate      decimal.Decimal
	discountRate decimal.Decimal
	ordering     adjustmentOrdering
	afterTaxBase decimal.Decimal

	year    int
	salary  decimal.Decimal
	medical decimal.Decimal
}

// NewYearProjector starts a projection at the base income and medical amounts
func NewYearProjector(cfg *domain.ProjectionConfig, taxRate, discountRate decimal.Decimal) *YearProjector {
	return &YearProjector{
		cfg:          cfg,
		taxRate:      taxRate,
		discountRate: discountRate,
		ordering:     orderingFor(cfg.UnemploymentOrdering),
		afterTaxBase: cfg.BaseIncome.Mul(decimal.NewFromInt(1).Sub(taxRate)),
		salary:       cfg.BaseIncome,
		medical:      cfg.MedicalBase,
	}
}

// Year returns the index of the last projected year (0 before the first call to Next)
func (p *YearProjector) Year() int {
	return p.year
}

// Next advances one year and returns that year's row
func (p *YearProjector) Next() domain.YearRow {
	p.year++
	one := decimal.NewFromInt(1)
	age := p.cfg.StartAge.Add(decimal.NewFromInt(int64(p.year)))

	growth := p.growthRate(age)
	p.salary = p.salary.Mul(one.Add(growth))
	p.medical = p.medical.Mul(one.Add(p.cfg.MedicalGrowthRate))

	retirement := p.salary.Mul(p.cfg.RetirementRate)
	incomePlusRetirement := p.salary.Add(retirement)

	consumptionRate := p.consumptionRate()
	// anchored to after-tax base income at the time of loss, not this year's salary
	consumption := p.afterTaxBase.Mul(consumptionRate)

	adj := p.ordering(adjustmentInput{
		IncomePlusRetirement: incomePlusRetirement,
		TaxRate:              p.taxRate,
		UnemploymentFactor:   p.cfg.UnemploymentFactor,
		Consumption:          consumption,
		Medical:              p.medical,
	})

	return domain.YearRow{
		Year:                  p.year,
		Age:                   age,
		GrowthRate:            growth,
		Salary:                p.salary,
		Retirement:            retirement,
		IncomePlusRetirement:  incomePlusRetirement,
		UnemploymentAdjusted:  adj.UnemploymentAdjusted,
		TaxRate:               p.taxRate,
		PostTaxIncome:         adj.PostTax,
		ConsumptionRate:       consumptionRate,
		Consumption:           consumption,
		IncomeLessConsumption: adj.AfterConsumption,
		Medical:               p.medical,
		Subtotal:              adj.Subtotal,
		PresentValue:          adj.Subtotal.Div(DiscountFactor(p.discountRate, p.year)),
	}
}

func (p *YearProjector) growthRate(age decimal.Decimal) decimal.Decimal {
	if !p.cfg.Growth.IsAgeIndexed() {
		return *p.cfg.Growth.Fixed
	}
	return GrowthRateForAge(age, p.cfg.Growth.Fallback)
}

// consumptionRate is zero outside wrongful-death mode. In wrongful-death mode the
// auto rate is re-selected every year as dependents age past the cutoff.
func (p *YearProjector) consumptionRate() decimal.Decimal {
	if !p.cfg.IsWrongfulDeath() {
		return decimal.Zero
	}
	return p.cfg.ConsumptionRate.Resolve(func() decimal.Decimal {
		dependents := CountDependents(p.cfg.Dependents[:], p.year-1)
		return ConsumptionRateFor(p.cfg.BaseIncome, p.cfg.MaritalStatus, dependents)
	})
}
