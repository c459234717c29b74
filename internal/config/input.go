package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file. Sections missing from
// the file keep their built-in defaults.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	file, err := readConfigFile(filename)
	if err != nil {
		return nil, err
	}

	config := DefaultConfiguration()
	if err := file.applyTo(config, true); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadFromFileWithInterventions loads a baseline configuration and merges the
// interventions defined in a second file. Interventions in the second file
// replace same-keyed ones.
func (ip *InputParser) LoadFromFileWithInterventions(baseFile, interventionsFile string) (*domain.Configuration, error) {
	base, err := readConfigFile(baseFile)
	if err != nil {
		return nil, err
	}
	extra, err := readConfigFile(interventionsFile)
	if err != nil {
		return nil, err
	}

	config := DefaultConfiguration()
	if err := base.applyTo(config, true); err != nil {
		return nil, err
	}
	if err := extra.applyInterventions(config, false); err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Segments) == 0 {
		return fmt.Errorf("at least one population segment is required")
	}
	for _, key := range config.SegmentKeys() {
		if err := config.Segments[key].Validate(); err != nil {
			return fmt.Errorf("invalid population segment %s: %w", key, err)
		}
	}

	if err := config.Economics.Validate(); err != nil {
		return fmt.Errorf("invalid economics: %w", err)
	}
	if err := config.Baselines.Validate(); err != nil {
		return fmt.Errorf("invalid healthcare baselines: %w", err)
	}
	if err := config.Modifiers.Validate(); err != nil {
		return fmt.Errorf("invalid impact modifiers: %w", err)
	}
	if !config.BaseLifeExpectancy.IsPositive() {
		return fmt.Errorf("base life expectancy must be positive")
	}

	if err := ip.validateProjection(config.Projection); err != nil {
		return fmt.Errorf("invalid projection settings: %w", err)
	}
	if err := ip.validatePlausibility(config.NationalTotals, config.Bounds); err != nil {
		return fmt.Errorf("invalid plausibility settings: %w", err)
	}

	if len(config.Interventions) == 0 {
		return fmt.Errorf("no interventions provided")
	}
	for _, key := range config.InterventionKeys() {
		intervention := config.Interventions[key]
		if intervention.Name == "" {
			return fmt.Errorf("intervention %s: name is required", key)
		}
		if err := intervention.Parameters.Validate(); err != nil {
			return fmt.Errorf("invalid intervention %s: %w", key, err)
		}
	}

	return nil
}

func (ip *InputParser) validateProjection(p domain.ProjectionSettings) error {
	if p.Years <= 0 || p.Years > 50 {
		return fmt.Errorf("projection years must be between 1 and 50")
	}
	if p.GrowthRate.IsNegative() || p.GrowthRate.GreaterThan(decimal.NewFromFloat(0.2)) {
		return fmt.Errorf("growth rate must be between 0 and 20%%")
	}
	switch p.Cumulation {
	case domain.CumulationScaled, domain.CumulationRunningSum:
	default:
		return fmt.Errorf("cumulation must be '%s' or '%s'", domain.CumulationScaled, domain.CumulationRunningSum)
	}
	return nil
}

func (ip *InputParser) validatePlausibility(totals domain.NationalTotals, bounds domain.PlausibilityBounds) error {
	if totals.GDP.IsNegative() || totals.MedicareSpending.IsNegative() {
		return fmt.Errorf("national totals cannot be negative")
	}
	for name, v := range map[string]decimal.Decimal{
		"max_healthcare_savings_share": bounds.MaxHealthcareSavingsShare,
		"max_gdp_share":                bounds.MaxGDPShare,
		"max_medicare_share":           bounds.MaxMedicareShare,
		"max_qaly_per_person":          bounds.MaxQALYPerPerson,
	} {
		if !v.IsPositive() {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

// BuildInputs resolves the calculation inputs for an intervention and
// segment and applies effect assignments of the form "name=value". Assigned
// values are range-checked.
func BuildInputs(config *domain.Configuration, interventionKey, segmentKey string, assignments []string) (domain.CalculationInputs, error) {
	in, err := config.Inputs(interventionKey, segmentKey)
	if err != nil {
		return domain.CalculationInputs{}, err
	}
	if len(assignments) == 0 {
		return in, nil
	}

	transforms := make([]transform.EffectTransform, 0, len(assignments))
	for _, a := range assignments {
		t, err := transform.ParseAssignment(a)
		if err != nil {
			return domain.CalculationInputs{}, err
		}
		transforms = append(transforms, t)
	}

	params, err := transform.ApplyTransforms(in.Intervention.Parameters, transforms)
	if err != nil {
		return domain.CalculationInputs{}, fmt.Errorf("failed to apply overrides to %s: %w", interventionKey, err)
	}
	return in.WithParameters(params), nil
}

func readConfigFile(filename string) (*configFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &file, nil
}
