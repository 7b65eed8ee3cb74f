package calculation

import (
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MinWorklifeAge and MaxWorklifeAge bound the work-life table; lookups clamp to this range
	MinWorklifeAge = 25
	MaxWorklifeAge = 70
)

// WorklifeRow is the expected remaining years in the workforce at an age
type WorklifeRow struct {
	Age            int             `json:"age"`
	RemainingYears decimal.Decimal `json:"remainingYears"`
	NominalExitAge int             `json:"nominalExitAge"`
}

// worklifeTable has one row per whole age from MinWorklifeAge to MaxWorklifeAge.
var worklifeTable = []WorklifeRow{
	{25, decimal.NewFromFloat(35.2), 60},
	{26, decimal.NewFromFloat(34.3), 60},
	{27, decimal.NewFromFloat(33.4), 60},
	{28, decimal.NewFromFloat(32.5), 61},
	{29, decimal.NewFromFloat(31.6), 61},
	{30, decimal.NewFromFloat(30.7), 61},
	{31, decimal.NewFromFloat(29.8), 61},
	{32, decimal.NewFromFloat(28.9), 61},
	{33, decimal.NewFromFloat(28.0), 61},
	{34, decimal.NewFromFloat(27.1), 61},
	{35, decimal.NewFromFloat(26.2), 61},
	{36, decimal.NewFromFloat(25.3), 61},
	{37, decimal.NewFromFloat(24.4), 61},
	{38, decimal.NewFromFloat(23.5), 62},
	{39, decimal.NewFromFloat(22.6), 62},
	{40, decimal.NewFromFloat(21.7), 62},
	{41, decimal.NewFromFloat(20.8), 62},
	{42, decimal.NewFromFloat(19.9), 62},
	{43, decimal.NewFromFloat(19.0), 62},
	{44, decimal.NewFromFloat(18.1), 62},
	{45, decimal.NewFromFloat(17.2), 62},
	{46, decimal.NewFromFloat(16.4), 62},
	{47, decimal.NewFromFloat(15.6), 63},
	{48, decimal.NewFromFloat(14.8), 63},
	{49, decimal.NewFromFloat(14.0), 63},
	{50, decimal.NewFromFloat(13.2), 63},
	{51, decimal.NewFromFloat(12.5), 64},
	{52, decimal.NewFromFloat(11.8), 64},
	{53, decimal.NewFromFloat(11.1), 64},
	{54, decimal.NewFromFloat(10.5), 65},
	{55, decimal.NewFromFloat(10.0), 65},
	{56, decimal.NewFromFloat(9.4), 65},
	{57, decimal.NewFromFloat(8.8), 66},
	{58, decimal.NewFromFloat(8.2), 66},
	{59, decimal.NewFromFloat(7.6), 67},
	{60, decimal.NewFromFloat(7.0), 67},
	{61, decimal.NewFromFloat(6.5), 68},
	{62, decimal.NewFromFloat(6.0), 68},
	{63, decimal.NewFromFloat(5.5), 69},
	{64, decimal.NewFromFloat(5.0), 69},
	{65, decimal.NewFromFloat(4.6), 70},
	{66, decimal.NewFromFloat(4.2), 70},
	{67, decimal.NewFromFloat(3.9), 71},
	{68, decimal.NewFromFloat(3.6), 72},
	{69, decimal.NewFromFloat(3.3), 72},
	{70, decimal.NewFromFloat(3.0), 73},
}

// WorklifeTable returns a copy of the work-life table
func WorklifeTable() []WorklifeRow {
	out := make([]WorklifeRow, len(worklifeTable))
	copy(out, worklifeTable)
	return out
}

// LookupWorklife clamps age into the table range, rounds it, and returns the
// rounded remaining years. The expected exit age is derived from the caller's
// unclamped age, so it can differ from the row's NominalExitAge near the bounds.
func LookupWorklife(age decimal.Decimal) domain.WorklifeEstimate {
	clamped := decimal.Max(decimal.NewFromInt(MinWorklifeAge), decimal.Min(age, decimal.NewFromInt(MaxWorklifeAge)))
	tableAge := int(clamped.Round(0).IntPart())

	row := worklifeTable[0]
	for _, r := range worklifeTable {
		if r.Age == tableAge {
			row = r
			break
		}
	}

	years := row.RemainingYears.Round(0)
	return domain.WorklifeEstimate{
		InputAge:        age,
		TableAge:        row.Age,
		RemainingYears:  row.RemainingYears,
		Years:           int(years.IntPart()),
		ExpectedExitAge: int(age.Add(years).Round(0).IntPart()),
		NominalExitAge:  row.NominalExitAge,
	}
}
