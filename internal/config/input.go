package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ClaimFile is the on-disk shape of a claim. Enumerations are plain strings and
// overridable rates accept either "auto" or a number.
type ClaimFile struct {
	Name       string          `yaml:"name" json:"name"`
	Mode       string          `yaml:"mode" json:"mode"`
	StartAge   decimal.Decimal `yaml:"start_age" json:"start_age"`
	Horizon    HorizonSetting  `yaml:"horizon" json:"horizon"`
	BaseIncome decimal.Decimal `yaml:"base_income" json:"base_income"`

	TaxRate         RateSetting `yaml:"tax_rate" json:"tax_rate"`
	MaritalStatus   string      `yaml:"marital_status" json:"marital_status"`
	Dependents      []*int      `yaml:"dependents" json:"dependents"` // null = no dependent
	ConsumptionRate RateSetting `yaml:"consumption_rate" json:"consumption_rate"`

	GrowthRate     RateSetting      `yaml:"growth_rate" json:"growth_rate"`         // auto = age-indexed table
	GrowthFallback *decimal.Decimal `yaml:"growth_fallback" json:"growth_fallback"` // ages 52 and up

	RetirementRate    decimal.Decimal `yaml:"retirement_rate" json:"retirement_rate"`
	MedicalBase       decimal.Decimal `yaml:"medical_base" json:"medical_base"`
	MedicalGrowthRate decimal.Decimal `yaml:"medical_growth_rate" json:"medical_growth_rate"`

	UnemploymentFactor   decimal.Decimal `yaml:"unemployment_factor" json:"unemployment_factor"`
	UnemploymentOrdering string          `yaml:"unemployment_ordering" json:"unemployment_ordering"`

	DiscountRate RateSetting `yaml:"discount_rate" json:"discount_rate"`
	Offsets      OffsetsFile `yaml:"offsets" json:"offsets"`
}

// OffsetsFile holds the collateral offsets section of a claim file
type OffsetsFile struct {
	AnnualAmount decimal.Decimal `yaml:"annual_amount" json:"annual_amount"`
	Years        int             `yaml:"years" json:"years"`
	LumpSum      decimal.Decimal `yaml:"lump_sum" json:"lump_sum"`
}

// RateSetting is "auto" (or absent) or a fixed numeric rate
type RateSetting struct {
	Manual *decimal.Decimal
}

// Fixed returns a RateSetting with a manual value
func Fixed(rate decimal.Decimal) RateSetting {
	return RateSetting{Manual: &rate}
}

func (r *RateSetting) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" || strings.EqualFold(raw, "auto") {
		r.Manual = nil
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("rate must be \"auto\" or a number, got %q", raw)
	}
	r.Manual = &v
	return nil
}

// UnmarshalYAML accepts a scalar "auto" or number
func (r *RateSetting) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: rate must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		r.Manual = nil
		return nil
	}
	return r.parse(node.Value)
}

// UnmarshalJSON accepts "auto", null, a number, or a quoted number
func (r *RateSetting) UnmarshalJSON(data []byte) error {
	return r.parse(strings.Trim(string(data), `"`))
}

// MarshalYAML writes "auto" or the manual value
func (r RateSetting) MarshalYAML() (interface{}, error) {
	if r.Manual == nil {
		return "auto", nil
	}
	return r.Manual.String(), nil
}

// MarshalJSON writes "auto" or the manual value as a number
func (r RateSetting) MarshalJSON() ([]byte, error) {
	if r.Manual == nil {
		return []byte(`"auto"`), nil
	}
	return []byte(r.Manual.String()), nil
}

// Source converts the setting to the engine's tagged union
func (r RateSetting) Source() domain.RateSource {
	if r.Manual == nil {
		return domain.AutoRate()
	}
	return domain.ManualRate(*r.Manual)
}

// HorizonSetting is "worklife" (or absent) or an explicit number of years
type HorizonSetting struct {
	Years *int
}

func (h *HorizonSetting) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" || strings.EqualFold(raw, "worklife") || strings.EqualFold(raw, "auto") {
		h.Years = nil
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || !v.Equal(v.Truncate(0)) {
		return fmt.Errorf("horizon must be \"worklife\" or a whole number of years, got %q", raw)
	}
	years := int(v.IntPart())
	h.Years = &years
	return nil
}

// UnmarshalYAML accepts a scalar "worklife" or integer
func (h *HorizonSetting) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: horizon must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		h.Years = nil
		return nil
	}
	return h.parse(node.Value)
}

// UnmarshalJSON accepts "worklife", null, or an integer
func (h *HorizonSetting) UnmarshalJSON(data []byte) error {
	return h.parse(strings.Trim(string(data), `"`))
}

// MarshalYAML writes "worklife" or the year count
func (h HorizonSetting) MarshalYAML() (interface{}, error) {
	if h.Years == nil {
		return "worklife", nil
	}
	return *h.Years, nil
}

// MarshalJSON writes "worklife" or the year count
func (h HorizonSetting) MarshalJSON() ([]byte, error) {
	if h.Years == nil {
		return []byte(`"worklife"`), nil
	}
	return []byte(fmt.Sprintf("%d", *h.Years)), nil
}

// InputParser handles parsing of claim files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a claim from a YAML or JSON file and converts it to a projection config
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProjectionConfig, error) {
	claim, err := ip.LoadClaimFile(filename)
	if err != nil {
		return nil, err
	}
	return ip.ToProjectionConfig(claim)
}

// LoadClaimFile reads a claim file without converting it. Files ending in .json
// are decoded as JSON, everything else as YAML.
func (ip *InputParser) LoadClaimFile(filename string) (*ClaimFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return ip.ParseJSON(data)
	}
	return ip.ParseYAML(data)
}

// ParseYAML decodes a YAML claim
func (ip *InputParser) ParseYAML(data []byte) (*ClaimFile, error) {
	var claim ClaimFile
	if err := yaml.Unmarshal(data, &claim); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &claim, nil
}

// ParseJSON decodes a JSON claim
func (ip *InputParser) ParseJSON(data []byte) (*ClaimFile, error) {
	var claim ClaimFile
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &claim, nil
}

// ToProjectionConfig validates a claim and converts it to the engine's input
func (ip *InputParser) ToProjectionConfig(claim *ClaimFile) (*domain.ProjectionConfig, error) {
	if err := ip.ValidateClaim(claim); err != nil {
		return nil, fmt.Errorf("claim validation failed: %w", err)
	}

	cfg := &domain.ProjectionConfig{
		Name:                 claim.Name,
		Mode:                 domain.ClaimMode(claim.Mode),
		StartAge:             claim.StartAge,
		Horizon:              domain.WorklifeHorizon(),
		BaseIncome:           claim.BaseIncome,
		TaxRate:              claim.TaxRate.Source(),
		MaritalStatus:        domain.MaritalStatusSingle,
		ConsumptionRate:      claim.ConsumptionRate.Source(),
		RetirementRate:       claim.RetirementRate,
		MedicalBase:          claim.MedicalBase,
		MedicalGrowthRate:    claim.MedicalGrowthRate,
		UnemploymentFactor:   claim.UnemploymentFactor,
		UnemploymentOrdering: domain.OrderingBeforeMedical,
		DiscountRate:         claim.DiscountRate.Source(),
		Offsets: domain.Offsets{
			AnnualAmount: claim.Offsets.AnnualAmount,
			Years:        claim.Offsets.Years,
			LumpSum:      claim.Offsets.LumpSum,
		},
	}

	if claim.Horizon.Years != nil {
		cfg.Horizon = domain.FixedHorizon(*claim.Horizon.Years)
	}
	if claim.MaritalStatus != "" {
		cfg.MaritalStatus = domain.MaritalStatus(claim.MaritalStatus)
	}
	if claim.UnemploymentOrdering != "" {
		cfg.UnemploymentOrdering = domain.UnemploymentOrdering(claim.UnemploymentOrdering)
	}
	for i, age := range claim.Dependents {
		if age == nil {
			cfg.Dependents[i] = domain.NoDependent()
			continue
		}
		cfg.Dependents[i] = domain.DependentAged(*age)
	}

	fallback := calculation.DefaultGrowthFallback
	if claim.GrowthFallback != nil {
		fallback = *claim.GrowthFallback
	}
	if claim.GrowthRate.Manual != nil {
		cfg.Growth = domain.FixedGrowth(*claim.GrowthRate.Manual)
		cfg.Growth.Fallback = fallback
	} else {
		cfg.Growth = domain.AgeIndexedGrowth(fallback)
	}

	return cfg, nil
}

// ValidateClaim rejects unknown enumerations and structurally impossible values.
// Economic values (negative income, odd rates) are the caller's responsibility.
func (ip *InputParser) ValidateClaim(claim *ClaimFile) error {
	if claim == nil {
		return fmt.Errorf("claim is required")
	}

	switch domain.ClaimMode(claim.Mode) {
	case domain.ClaimModeInjury, domain.ClaimModeWrongfulDeath:
	case "":
		return fmt.Errorf("mode is required (injury or wrongful_death)")
	default:
		return fmt.Errorf("mode must be 'injury' or 'wrongful_death', got %q", claim.Mode)
	}

	switch domain.MaritalStatus(claim.MaritalStatus) {
	case "", domain.MaritalStatusSingle, domain.MaritalStatusMarried:
	default:
		return fmt.Errorf("marital_status must be 'single' or 'married', got %q", claim.MaritalStatus)
	}

	switch domain.UnemploymentOrdering(claim.UnemploymentOrdering) {
	case "", domain.OrderingBeforeMedical, domain.OrderingAfterMedical:
	default:
		return fmt.Errorf("unemployment_ordering must be 'before_medical' or 'after_medical', got %q", claim.UnemploymentOrdering)
	}

	if len(claim.Dependents) > domain.MaxDependents {
		return fmt.Errorf("at most %d dependents are supported, got %d", domain.MaxDependents, len(claim.Dependents))
	}
	for i, age := range claim.Dependents {
		if age != nil && *age < 0 {
			return fmt.Errorf("dependent %d age cannot be negative", i+1)
		}
	}

	if r := claim.DiscountRate.Manual; r != nil && r.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("discount_rate must be greater than -1, got %s", r.String())
	}
	if claim.Horizon.Years != nil && *claim.Horizon.Years < 0 {
		return fmt.Errorf("horizon cannot be negative")
	}
	if claim.Offsets.Years < 0 {
		return fmt.Errorf("offsets years cannot be negative")
	}

	return nil
}
