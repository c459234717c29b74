package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in intervention variant templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []EffectTransform
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
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common effect variants
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Effect magnitude templates
	for _, s := range []struct {
		name   string
		factor string
		desc   string
	}{
		{"half_effect", "0.5", "Halve every effect magnitude"},
		{"conservative", "0.8", "Scale every effect magnitude to 80%"},
		{"optimistic", "1.2", "Scale every effect magnitude to 120%"},
		{"double_effect", "2", "Double every effect magnitude"},
	} {
		registry.Register(Template{
			Name:        s.name,
			Description: s.desc,
			Transforms:  []EffectTransform{&ScaleAllEffects{Factor: decimal.RequireFromString(s.factor)}},
		})
	}

	// Pathway exclusion templates
	for _, p := range []domain.Pathway{domain.PathwayCognitive, domain.PathwayKidney, domain.PathwayPhysical} {
		registry.Register(Template{
			Name:        "without_" + string(p),
			Description: fmt.Sprintf("Exclude the %s pathway", p),
			Transforms:  []EffectTransform{&DropPathway{Pathway: p}},
		})
	}

	registry.Register(Template{
		Name:        "no_hospital_effect",
		Description: "Assume no reduction in hospital visits",
		Transforms: []EffectTransform{
			&SetEffectValue{Effect: EffectHospitalVisitReduction, Value: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "longevity_only",
		Description: "Model only the longevity and healthcare utilization pathways",
		Transforms: []EffectTransform{
			&DropPathway{Pathway: domain.PathwayCognitive},
			&DropPathway{Pathway: domain.PathwayKidney},
			&DropPathway{Pathway: domain.PathwayPhysical},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base parameters
func ApplyTemplate(base domain.InterventionParameters, template Template) (domain.InterventionParameters, error) {
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
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  heis compare config.yaml --intervention klotho --with conservative,without_kidney\n")

	return sb.String()
}
