package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ClaimTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_ordering", createSetOrdering)
	registry.Register("set_mode", createSetMode)
	registry.Register("set_horizon", createSetHorizon)
	registry.Register("use_worklife", createUseWorklife)
	registry.Register("clear_offsets", createClearOffsets)
	registry.Register("set_rate", createSetParameter)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ClaimTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in name order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_rate:param=discount_rate,value=0.03"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ClaimTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createSetOrdering(params map[string]string) (ClaimTransform, error) {
	ordering, ok := params["ordering"]
	if !ok {
		return nil, fmt.Errorf("set_ordering requires 'ordering' parameter")
	}
	return &SetOrdering{Ordering: domain.UnemploymentOrdering(ordering)}, nil
}

func createSetMode(params map[string]string) (ClaimTransform, error) {
	mode, ok := params["mode"]
	if !ok {
		return nil, fmt.Errorf("set_mode requires 'mode' parameter")
	}
	return &SetMode{Mode: domain.ClaimMode(mode)}, nil
}

func createSetHorizon(params map[string]string) (ClaimTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("set_horizon requires 'years' parameter")
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &SetHorizon{Years: years}, nil
}

func createUseWorklife(params map[string]string) (ClaimTransform, error) {
	return &UseWorklifeHorizon{}, nil
}

func createClearOffsets(params map[string]string) (ClaimTransform, error) {
	return &ClearOffsets{}, nil
}

func createSetParameter(params map[string]string) (ClaimTransform, error) {
	param, ok := params["param"]
	if !ok {
		return nil, fmt.Errorf("set_rate requires 'param' parameter")
	}
	valueStr, ok := params["value"]
	if !ok {
		return nil, fmt.Errorf("set_rate requires 'value' parameter")
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return &SetParameter{Parameter: Parameter(param), Value: value}, nil
}
