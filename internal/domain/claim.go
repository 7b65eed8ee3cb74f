package domain

import (
	"github.com/shopspring/decimal"
)

// ClaimMode selects which kind of economic-loss claim is being projected
type ClaimMode string

const (
	// ClaimModeInjury projects lost income with no personal consumption deduction
	ClaimModeInjury ClaimMode = "injury"
	// ClaimModeWrongfulDeath deducts the decedent's personal consumption each year
	ClaimModeWrongfulDeath ClaimMode = "wrongful_death"
)

// MaritalStatus of the claimant at the time of loss
type MaritalStatus string

const (
	MaritalStatusSingle  MaritalStatus = "single"
	MaritalStatusMarried MaritalStatus = "married"
)

// UnemploymentOrdering selects where the unemployment factor is applied in the
// per-year cash flow. The two orderings are mutually exclusive.
type UnemploymentOrdering string

const (
	// OrderingBeforeMedical applies unemployment to income before tax, consumption and medical
	OrderingBeforeMedical UnemploymentOrdering = "before_medical"
	// OrderingAfterMedical applies unemployment to the final subtotal, medical included
	OrderingAfterMedical UnemploymentOrdering = "after_medical"
)

// MaxDependents is the number of dependent slots a claim carries
const MaxDependents = 2

// Dependent is either "none" or a dependent of a given current age
type Dependent struct {
	Age *int `yaml:"age,omitempty" json:"age,omitempty"`
}

// NoDependent returns an empty dependent slot
func NoDependent() Dependent {
	return Dependent{}
}

// DependentAged returns a dependent of the given current age
func DependentAged(age int) Dependent {
	return Dependent{Age: &age}
}

// IsNone reports whether the slot is empty
func (d Dependent) IsNone() bool {
	return d.Age == nil
}

// RateSource is either Auto (resolved from a reference table) or a manual override
type RateSource struct {
	Manual *decimal.Decimal `yaml:"manual,omitempty" json:"manual,omitempty"`
}

// AutoRate resolves the rate from the reference tables
func AutoRate() RateSource {
	return RateSource{}
}

// ManualRate overrides the reference tables with a fixed rate
func ManualRate(rate decimal.Decimal) RateSource {
	return RateSource{Manual: &rate}
}

// IsManual reports whether an override is set
func (r RateSource) IsManual() bool {
	return r.Manual != nil
}

// Resolve returns the override when set, otherwise the result of auto
func (r RateSource) Resolve(auto func() decimal.Decimal) decimal.Decimal {
	if r.Manual != nil {
		return *r.Manual
	}
	return auto()
}

// HorizonSource is either the work-life table or an explicit year count
type HorizonSource struct {
	Years *int `yaml:"years,omitempty" json:"years,omitempty"`
}

// WorklifeHorizon derives the horizon from the work-life table
func WorklifeHorizon() HorizonSource {
	return HorizonSource{}
}

// FixedHorizon uses an explicit number of projection years
func FixedHorizon(years int) HorizonSource {
	return HorizonSource{Years: &years}
}

// UsesWorklife reports whether the horizon comes from the work-life table
func (h HorizonSource) UsesWorklife() bool {
	return h.Years == nil
}

// GrowthSource is either age-indexed (with a fallback for ages past the table) or fixed
type GrowthSource struct {
	Fixed    *decimal.Decimal `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	Fallback decimal.Decimal  `yaml:"fallback" json:"fallback"`
}

// AgeIndexedGrowth looks growth up by attained age, using fallback for ages 52 and up
func AgeIndexedGrowth(fallback decimal.Decimal) GrowthSource {
	return GrowthSource{Fallback: fallback}
}

// FixedGrowth applies one growth rate to every projection year
func FixedGrowth(rate decimal.Decimal) GrowthSource {
	return GrowthSource{Fixed: &rate}
}

// IsAgeIndexed reports whether growth is looked up per attained age
func (g GrowthSource) IsAgeIndexed() bool {
	return g.Fixed == nil
}

// Offsets are collateral payments deducted from gross present value
type Offsets struct {
	AnnualAmount decimal.Decimal `yaml:"annual_amount" json:"annualAmount"`
	Years        int             `yaml:"years" json:"years"`
	LumpSum      decimal.Decimal `yaml:"lump_sum" json:"lumpSum"` // already in present-value terms
}

// HasPeriodic reports whether a periodic offset is configured
func (o Offsets) HasPeriodic() bool {
	return o.Years > 0 && !o.AnnualAmount.IsZero()
}

// ProjectionConfig is the complete, resolved input to one projection
type ProjectionConfig struct {
	Name string `yaml:"name" json:"name"`

	Mode       ClaimMode       `yaml:"mode" json:"mode"`
	StartAge   decimal.Decimal `yaml:"start_age" json:"startAge"`
	Horizon    HorizonSource   `yaml:"horizon" json:"horizon"`
	BaseIncome decimal.Decimal `yaml:"base_income" json:"baseIncome"`

	TaxRate         RateSource               `yaml:"tax_rate" json:"taxRate"`
	MaritalStatus   MaritalStatus            `yaml:"marital_status" json:"maritalStatus"`
	Dependents      [MaxDependents]Dependent `yaml:"dependents" json:"dependents"`
	ConsumptionRate RateSource               `yaml:"consumption_rate" json:"consumptionRate"`
	Growth          GrowthSource             `yaml:"growth" json:"growth"`

	RetirementRate    decimal.Decimal `yaml:"retirement_rate" json:"retirementRate"`
	MedicalBase       decimal.Decimal `yaml:"medical_base" json:"medicalBase"`
	MedicalGrowthRate decimal.Decimal `yaml:"medical_growth_rate" json:"medicalGrowthRate"`

	UnemploymentFactor   decimal.Decimal      `yaml:"unemployment_factor" json:"unemploymentFactor"`
	UnemploymentOrdering UnemploymentOrdering `yaml:"unemployment_ordering" json:"unemploymentOrdering"`

	DiscountRate RateSource `yaml:"discount_rate" json:"discountRate"`
	Offsets      Offsets    `yaml:"offsets" json:"offsets"`
}

// IsWrongfulDeath reports whether the consumption deduction applies
func (c *ProjectionConfig) IsWrongfulDeath() bool {
	return c.Mode == ClaimModeWrongfulDeath
}

// Clone returns a copy safe to modify without touching the receiver
func (c *ProjectionConfig) Clone() *ProjectionConfig {
	clone := *c
	clone.Dependents = [MaxDependents]Dependent{}
	for i, d := range c.Dependents {
		if d.Age != nil {
			clone.Dependents[i] = DependentAged(*d.Age)
		}
	}
	clone.TaxRate = cloneRate(c.TaxRate)
	clone.ConsumptionRate = cloneRate(c.ConsumptionRate)
	clone.DiscountRate = cloneRate(c.DiscountRate)
	if c.Horizon.Years != nil {
		clone.Horizon = FixedHorizon(*c.Horizon.Years)
	}
	if c.Growth.Fixed != nil {
		clone.Growth = FixedGrowth(*c.Growth.Fixed)
		clone.Growth.Fallback = c.Growth.Fallback
	}
	return &clone
}

func cloneRate(r RateSource) RateSource {
	if r.Manual == nil {
		return AutoRate()
	}
	return ManualRate(*r.Manual)
}
