package transform

import (
	"sort"
)

// Parameter names a numeric claim input that can be overridden
type Parameter string

const (
	ParamDiscountRate       Parameter = "discount_rate"
	ParamTaxRate            Parameter = "tax_rate"
	ParamConsumptionRate    Parameter = "consumption_rate"
	ParamGrowthRate         Parameter = "growth_rate"
	ParamGrowthFallback     Parameter = "growth_fallback"
	ParamUnemploymentFactor Parameter = "unemployment_factor"
	ParamMedicalGrowthRate  Parameter = "medical_growth_rate"
	ParamRetirementRate     Parameter = "retirement_rate"
)

var parameterDescriptions = map[Parameter]string{
	ParamDiscountRate:       "Annual discount rate applied to every projection year",
	ParamTaxRate:            "Effective tax rate held for every projection year",
	ParamConsumptionRate:    "Personal consumption share of after-tax base income",
	ParamGrowthRate:         "Fixed annual earnings growth replacing the age table",
	ParamGrowthFallback:     "Earnings growth for ages past the growth table",
	ParamUnemploymentFactor: "Share of income lost to expected unemployment",
	ParamMedicalGrowthRate:  "Annual growth of the medical benefit",
	ParamRetirementRate:     "Employer retirement contribution as a share of salary",
}

// IsValid reports whether p names a known parameter
func (p Parameter) IsValid() bool {
	_, ok := parameterDescriptions[p]
	return ok
}

// Description returns a human-readable description of the parameter
func (p Parameter) Description() string {
	return parameterDescriptions[p]
}

// Parameters returns every known parameter in name order
func Parameters() []Parameter {
	params := make([]Parameter, 0, len(parameterDescriptions))
	for p := range parameterDescriptions {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool { return params[i] < params[j] })
	return params
}
