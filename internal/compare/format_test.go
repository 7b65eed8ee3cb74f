package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseName:  "Base Claim",
		ClaimPath: "/path/to/claim.yaml",
		BaseResult: &ComparisonResult{
			VariantName:         "Base Claim",
			GrossPresentValue:   decimal.NewFromInt(1000000),
			OffsetsPresentValue: decimal.NewFromInt(150000),
			NetPresentValue:     decimal.NewFromInt(850000),
			Horizon:             10,
			Mode:                "wrongful_death",
			Ordering:            "before_medical",
		},
		AlternativeResults: []ComparisonResult{
			{
				VariantName:         "Base Claim_injury",
				Description:         "Injury claim with no personal consumption deduction",
				GrossPresentValue:   decimal.NewFromInt(1200000),
				OffsetsPresentValue: decimal.NewFromInt(150000),
				NetPresentValue:     decimal.NewFromInt(1050000),
				Horizon:             10,
				Mode:                "injury",
				Ordering:            "before_medical",
				GrossDiffFromBase:   decimal.NewFromInt(200000),
				NetDiffFromBase:     decimal.NewFromInt(200000),
				NetPctFromBase:      decimal.NewFromFloat(23.53),
			},
		},
		Recommendations: []string{
			"Highest Award: Base Claim_injury adds $200000 net present value over the base claim",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"VCF CLAIM VARIANT COMPARISON",
		"Base Claim: Base Claim",
		"Claim File: /path/to/claim.yaml",
		"Base Claim (base)",
		"Base Claim_injury",
		"$1,050,000.00",
		"+$200,000.00",
		"COMPARISON TO BASE",
		"OBSERVATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := sampleComparisonSet()
	compSet.AlternativeResults = []ComparisonResult{}
	compSet.Recommendations = []string{}

	result := formatter.Format(compSet)

	if !strings.Contains(result, "Base Claim (base)") {
		t.Error("Expected base claim in table")
	}

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Should not have a comparison section without variants")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.FormatCompact(sampleComparisonSet())
	expected := "Base: Base Claim $850,000.00 | Base Claim_injury: +$200,000.00"

	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}

	if records[0][0] != "Variant" {
		t.Errorf("Expected header row, got %v", records[0])
	}

	if records[1][1] != "base" || records[2][1] != "variant" {
		t.Errorf("Unexpected row types: %s, %s", records[1][1], records[2][1])
	}

	if records[2][10] != "200000.00" {
		t.Errorf("Expected net diff 200000.00, got %s", records[2][10])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(sampleComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if pretty && !strings.Contains(result, "\n  ") {
			t.Error("Expected indented JSON")
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}

		if decoded["baseName"] != "Base Claim" {
			t.Errorf("Expected baseName 'Base Claim', got %v", decoded["baseName"])
		}

		alternatives, ok := decoded["alternativeResults"].([]interface{})
		if !ok || len(alternatives) != 1 {
			t.Errorf("Expected one alternative, got %v", decoded["alternativeResults"])
		}
	}
}
