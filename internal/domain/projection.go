package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearRow is the full cash-flow breakdown for a single projection year
type YearRow struct {
	Year int             `json:"year"`
	Age  decimal.Decimal `json:"age"`

	GrowthRate           decimal.Decimal `json:"growthRate"`
	Salary               decimal.Decimal `json:"salary"`
	Retirement           decimal.Decimal `json:"retirement"`
	IncomePlusRetirement decimal.Decimal `json:"incomePlusRetirement"`
	UnemploymentAdjusted decimal.Decimal `json:"unemploymentAdjusted"`

	TaxRate       decimal.Decimal `json:"taxRate"`
	PostTaxIncome decimal.Decimal `json:"postTaxIncome"`

	ConsumptionRate       decimal.Decimal `json:"consumptionRate"`
	Consumption           decimal.Decimal `json:"consumption"`
	IncomeLessConsumption decimal.Decimal `json:"incomeLessConsumption"`

	Medical      decimal.Decimal `json:"medical"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	PresentValue decimal.Decimal `json:"presentValue"`
}

// WorklifeEstimate is the work-life table result for a starting age
type WorklifeEstimate struct {
	InputAge        decimal.Decimal `json:"inputAge"`
	TableAge        int             `json:"tableAge"`
	RemainingYears  decimal.Decimal `json:"remainingYears"`
	Years           int             `json:"years"`
	ExpectedExitAge int             `json:"expectedExitAge"`
	NominalExitAge  int             `json:"nominalExitAge"`
}

// ProjectionResult is the sole durable output of a projection
type ProjectionResult struct {
	Name string `json:"name,omitempty"`

	GrossPresentValue   decimal.Decimal `json:"grossPresentValue"`
	OffsetsPresentValue decimal.Decimal `json:"offsetsPresentValue"`
	NetPresentValue     decimal.Decimal `json:"netPresentValue"`

	TaxRate      decimal.Decimal `json:"taxRate"`
	DiscountRate decimal.Decimal `json:"discountRate"`

	Horizon         int                  `json:"horizon"`
	WorklifeHorizon bool                 `json:"worklifeHorizon"` // horizon came from the work-life table
	Mode            ClaimMode            `json:"mode"`
	Ordering        UnemploymentOrdering `json:"ordering"`
	Worklife        WorklifeEstimate     `json:"worklife"`

	Years []YearRow `json:"years"`
}

// FirstYear returns the first projection row, or a zero row for an empty horizon
func (r *ProjectionResult) FirstYear() YearRow {
	if len(r.Years) == 0 {
		return YearRow{}
	}
	return r.Years[0]
}

// FinalYear returns the last projection row, or a zero row for an empty horizon
func (r *ProjectionResult) FinalYear() YearRow {
	if len(r.Years) == 0 {
		return YearRow{}
	}
	return r.Years[len(r.Years)-1]
}

// TotalSubtotal sums the undiscounted subtotals across all years
func (r *ProjectionResult) TotalSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, y := range r.Years {
		total = total.Add(y.Subtotal)
	}
	return total
}

// CalculationMetadata describes a single engine invocation for API consumers
type CalculationMetadata struct {
	CalculationID          string `json:"calculationId"`
	CalculationStartedAt   string `json:"calculationStartedAt"`
	CalculationCompletedAt string `json:"calculationCompletedAt"`
	CalculationDurationMs  int64  `json:"calculationDurationMs"`
}

// NewCalculationMetadata stamps a calculation that ran from start until now
func NewCalculationMetadata(id string, start time.Time) CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	return CalculationMetadata{
		CalculationID:          id,
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
	}
}
