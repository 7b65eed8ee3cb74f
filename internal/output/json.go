package output

import (
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/goccy/go-json"
)

// JSONFormatter writes the full projection result as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no projection result to format")
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(data, '\n'), nil
}
