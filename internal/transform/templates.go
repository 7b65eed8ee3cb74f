package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
)

// TemplateRegistry manages built-in claim variants
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ClaimTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in name order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the standard claim variants
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "before_medical",
		Description: "Apply unemployment to income before tax, consumption and medical",
		Transforms:  []ClaimTransform{&SetOrdering{Ordering: domain.OrderingBeforeMedical}},
	})

	registry.Register(Template{
		Name:        "after_medical",
		Description: "Apply unemployment to the final subtotal, medical included",
		Transforms:  []ClaimTransform{&SetOrdering{Ordering: domain.OrderingAfterMedical}},
	})

	registry.Register(Template{
		Name:        "injury",
		Description: "Injury claim with no personal consumption deduction",
		Transforms:  []ClaimTransform{&SetMode{Mode: domain.ClaimModeInjury}},
	})

	registry.Register(Template{
		Name:        "wrongful_death",
		Description: "Wrongful-death claim with the personal consumption deduction",
		Transforms:  []ClaimTransform{&SetMode{Mode: domain.ClaimModeWrongfulDeath}},
	})

	registry.Register(Template{
		Name:        "worklife_horizon",
		Description: "Horizon from the work-life table instead of a manual year count",
		Transforms:  []ClaimTransform{&UseWorklifeHorizon{}},
	})

	registry.Register(Template{
		Name:        "no_offsets",
		Description: "Gross present value with no collateral offsets",
		Transforms:  []ClaimTransform{&ClearOffsets{}},
	})

	return registry
}

// ApplyTemplate applies a template to a base claim
func ApplyTemplate(base *domain.ProjectionConfig, template Template) (*domain.ProjectionConfig, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Variants:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-18s %s\n", t.Name, t.Description))
	}
	return sb.String()
}
