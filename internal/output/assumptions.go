package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Effective tax rate is resolved once from pre-loss base income and held for every year",
	"Personal consumption is measured against after-tax base income at the time of loss",
	"Dependents stop counting toward household size at age 23",
	"Earnings growth follows the age table through 51, then the configured fallback",
	"Each year is discounted at (1 + rate)^year; lump-sum offsets are already present values",
	"Net present value never goes below zero",
}
