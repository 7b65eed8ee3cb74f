package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, cfg, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")

	err := os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0644)
	require.NoError(t, err)

	parser := NewInputParser()
	cfg, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, cfg, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_WrongfulDeath(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "wrongful_death.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Wrongful death at 55", cfg.Name)
	assert.Equal(t, domain.ClaimModeWrongfulDeath, cfg.Mode)
	assert.True(t, cfg.StartAge.Equal(decimal.NewFromInt(55)))
	assert.True(t, cfg.Horizon.UsesWorklife())
	assert.True(t, cfg.BaseIncome.Equal(decimal.NewFromInt(100000)))
	assert.False(t, cfg.TaxRate.IsManual())
	assert.False(t, cfg.ConsumptionRate.IsManual())
	assert.False(t, cfg.DiscountRate.IsManual())
	assert.Equal(t, domain.MaritalStatusMarried, cfg.MaritalStatus)
	require.False(t, cfg.Dependents[0].IsNone())
	assert.Equal(t, 10, *cfg.Dependents[0].Age)
	assert.True(t, cfg.Dependents[1].IsNone())
	assert.True(t, cfg.Growth.IsAgeIndexed())
	assert.True(t, cfg.Growth.Fallback.Equal(decimal.NewFromFloat(0.03)))
	assert.Equal(t, domain.OrderingBeforeMedical, cfg.UnemploymentOrdering)
	assert.True(t, cfg.Offsets.LumpSum.Equal(decimal.NewFromInt(25000)))
	assert.False(t, cfg.Offsets.HasPeriodic())
}

func TestInputParser_LoadFromFile_ManualOverrides(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "injury.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.ClaimModeInjury, cfg.Mode)
	assert.True(t, cfg.StartAge.Equal(decimal.RequireFromString("42.5")))
	require.False(t, cfg.Horizon.UsesWorklife())
	assert.Equal(t, 20, *cfg.Horizon.Years)
	require.True(t, cfg.TaxRate.IsManual())
	assert.True(t, cfg.TaxRate.Manual.Equal(decimal.RequireFromString("0.22")))
	require.True(t, cfg.DiscountRate.IsManual())
	assert.True(t, cfg.DiscountRate.Manual.Equal(decimal.RequireFromString("0.03")))
	require.False(t, cfg.Growth.IsAgeIndexed())
	assert.True(t, cfg.Growth.Fixed.Equal(decimal.RequireFromString("0.025")))
	assert.Equal(t, domain.OrderingAfterMedical, cfg.UnemploymentOrdering)
	assert.True(t, cfg.Offsets.HasPeriodic())
	assert.Equal(t, 5, cfg.Offsets.Years)
}

func TestInputParser_LoadFromFile_JSON(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "wrongful_death.json"))
	require.NoError(t, err)

	assert.Equal(t, "JSON claim", cfg.Name)
	assert.False(t, cfg.TaxRate.IsManual())
	require.True(t, cfg.ConsumptionRate.IsManual())
	assert.True(t, cfg.ConsumptionRate.Manual.Equal(decimal.RequireFromString("0.2")))
	require.True(t, cfg.DiscountRate.IsManual(), "quoted numbers are accepted")
	assert.True(t, cfg.DiscountRate.Manual.Equal(decimal.RequireFromString("0.025")))
	assert.Equal(t, 4, *cfg.Dependents[0].Age)
	assert.Equal(t, 7, *cfg.Dependents[1].Age)
	assert.Equal(t, domain.MaritalStatusSingle, cfg.MaritalStatus)
	assert.Equal(t, domain.OrderingBeforeMedical, cfg.UnemploymentOrdering, "ordering defaults to before_medical")
}

func TestInputParser_NullDependents(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name  string
		parse func([]byte) (*ClaimFile, error)
		data  string
	}{
		{"json", parser.ParseJSON, `{"mode": "wrongful_death", "start_age": 40, "base_income": 50000, "dependents": [null, 10]}`},
		{"yaml", parser.ParseYAML, "mode: wrongful_death\nstart_age: 40\nbase_income: 50000\ndependents: [~, 10]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := tt.parse([]byte(tt.data))
			require.NoError(t, err)
			require.Len(t, claim.Dependents, 2)
			assert.Nil(t, claim.Dependents[0])

			cfg, err := parser.ToProjectionConfig(claim)
			require.NoError(t, err)
			assert.True(t, cfg.Dependents[0].IsNone(), "null slot is no dependent")
			require.False(t, cfg.Dependents[1].IsNone())
			assert.Equal(t, 10, *cfg.Dependents[1].Age)
		})
	}

	claim, err := parser.ParseJSON([]byte(`{"mode": "wrongful_death", "start_age": 40, "base_income": 50000, "dependents": [null, null]}`))
	require.NoError(t, err)
	cfg, err := parser.ToProjectionConfig(claim)
	require.NoError(t, err)
	assert.True(t, cfg.Dependents[0].IsNone())
	assert.True(t, cfg.Dependents[1].IsNone())
}

func TestInputParser_ValidateClaim(t *testing.T) {
	one, two, three := 1, 2, 3
	negative := -1

	tests := []struct {
		name        string
		modify      func(c *ClaimFile)
		expectedErr string
	}{
		{"valid", func(c *ClaimFile) {}, ""},
		{"missing mode", func(c *ClaimFile) { c.Mode = "" }, "mode is required"},
		{"unknown mode", func(c *ClaimFile) { c.Mode = "personal_injury" }, "mode must be"},
		{"unknown marital status", func(c *ClaimFile) { c.MaritalStatus = "divorced" }, "marital_status must be"},
		{"unknown ordering", func(c *ClaimFile) { c.UnemploymentOrdering = "sometimes" }, "unemployment_ordering must be"},
		{"too many dependents", func(c *ClaimFile) { c.Dependents = []*int{&one, &two, &three} }, "at most 2 dependents"},
		{"negative dependent age", func(c *ClaimFile) { c.Dependents = []*int{nil, &negative} }, "dependent 2 age cannot be negative"},
		{"null dependents", func(c *ClaimFile) { c.Dependents = []*int{nil, nil} }, ""},
		{"discount rate of -100%", func(c *ClaimFile) { c.DiscountRate = Fixed(decimal.NewFromInt(-1)) }, "discount_rate must be greater than -1"},
		{"discount rate below -100%", func(c *ClaimFile) { c.DiscountRate = Fixed(decimal.RequireFromString("-1.5")) }, "discount_rate must be greater than -1"},
		{"negative discount rate", func(c *ClaimFile) { c.DiscountRate = Fixed(decimal.RequireFromString("-0.01")) }, ""},
		{"negative horizon", func(c *ClaimFile) { c.Horizon = HorizonSetting{Years: &negative} }, "horizon cannot be negative"},
		{"negative offset years", func(c *ClaimFile) { c.Offsets.Years = -2 }, "offsets years cannot be negative"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &ClaimFile{
				Mode:          "wrongful_death",
				MaritalStatus: "married",
				BaseIncome:    decimal.NewFromInt(50000),
				StartAge:      decimal.NewFromInt(40),
			}
			tt.modify(claim)

			err := parser.ValidateClaim(claim)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}

	assert.Error(t, parser.ValidateClaim(nil))
}

func TestRateSetting_YAML(t *testing.T) {
	tests := []struct {
		input    string
		manual   bool
		expected string
	}{
		{"rate: auto", false, ""},
		{"rate: AUTO", false, ""},
		{"rate: ~", false, ""},
		{"other: 1", false, ""},
		{"rate: 0.021", true, "0.021"},
		{"rate: \"0.3\"", true, "0.3"},
		{"rate: 0", true, "0"},
	}

	for _, tt := range tests {
		var doc struct {
			Rate RateSetting `yaml:"rate"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(tt.input), &doc), tt.input)
		assert.Equal(t, tt.manual, doc.Rate.Manual != nil, tt.input)
		if tt.manual {
			assert.True(t, doc.Rate.Manual.Equal(decimal.RequireFromString(tt.expected)), tt.input)
		}
	}

	var bad struct {
		Rate RateSetting `yaml:"rate"`
	}
	err := yaml.Unmarshal([]byte("rate: lots"), &bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate must be \"auto\" or a number")
}

func TestRateSetting_JSONRoundTrip(t *testing.T) {
	fixed := Fixed(decimal.RequireFromString("0.024"))
	data, err := json.Marshal(fixed)
	require.NoError(t, err)
	assert.Equal(t, "0.024", string(data))

	data, err = json.Marshal(RateSetting{})
	require.NoError(t, err)
	assert.Equal(t, `"auto"`, string(data))

	var decoded RateSetting
	require.NoError(t, json.Unmarshal([]byte("0.024"), &decoded))
	assert.True(t, decoded.Source().IsManual())
}

func TestHorizonSetting(t *testing.T) {
	var doc struct {
		Horizon HorizonSetting `yaml:"horizon"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("horizon: worklife"), &doc))
	assert.Nil(t, doc.Horizon.Years)

	require.NoError(t, yaml.Unmarshal([]byte("horizon: 15"), &doc))
	require.NotNil(t, doc.Horizon.Years)
	assert.Equal(t, 15, *doc.Horizon.Years)

	err := yaml.Unmarshal([]byte("horizon: 12.5"), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number of years")

	var h HorizonSetting
	require.NoError(t, json.Unmarshal([]byte(`"worklife"`), &h))
	assert.Nil(t, h.Years)
	require.NoError(t, json.Unmarshal([]byte(`8`), &h))
	assert.Equal(t, 8, *h.Years)
}
