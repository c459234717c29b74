package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// CumulationMode selects how cumulative projection values are derived
type CumulationMode string

const (
	// CumulationScaled multiplies the year's annual value by the elapsed year count.
	CumulationScaled CumulationMode = "scaled"
	// CumulationRunningSum sums annual values across elapsed years.
	CumulationRunningSum CumulationMode = "running_sum"
)

// ProjectionSettings are the default time-series projection options
type ProjectionSettings struct {
	Years      int             `yaml:"years" json:"years"`
	GrowthRate decimal.Decimal `yaml:"growth_rate" json:"growthRate"`
	Cumulation CumulationMode  `yaml:"cumulation" json:"cumulation"`
}

// NationalTotals are the national reference figures used by plausibility checks
type NationalTotals struct {
	GDP              decimal.Decimal `yaml:"gdp" json:"gdp"`
	MedicareSpending decimal.Decimal `yaml:"medicare_spending" json:"medicareSpending"`
}

// PlausibilityBounds are the ceilings above which results are flagged
type PlausibilityBounds struct {
	MaxHealthcareSavingsShare decimal.Decimal `yaml:"max_healthcare_savings_share" json:"maxHealthcareSavingsShare"`
	MaxGDPShare               decimal.Decimal `yaml:"max_gdp_share" json:"maxGdpShare"`
	MaxMedicareShare          decimal.Decimal `yaml:"max_medicare_share" json:"maxMedicareShare"`
	MaxQALYPerPerson          decimal.Decimal `yaml:"max_qaly_per_person" json:"maxQalyPerPerson"`
}

// DefaultNationalTotals returns US GDP of $25T and Medicare spending of $1T.
func DefaultNationalTotals() NationalTotals {
	return NationalTotals{
		GDP:              decimal.NewFromInt(25_000_000_000_000),
		MedicareSpending: decimal.NewFromInt(1_000_000_000_000),
	}
}

// DefaultPlausibilityBounds returns the standard ceilings.
func DefaultPlausibilityBounds() PlausibilityBounds {
	return PlausibilityBounds{
		MaxHealthcareSavingsShare: decimal.NewFromFloat(0.20),
		MaxGDPShare:               decimal.NewFromFloat(0.05),
		MaxMedicareShare:          decimal.NewFromFloat(0.25),
		MaxQALYPerPerson:          decimal.NewFromInt(20),
	}
}

// DefaultProjectionSettings returns a 10 year projection at 2% growth.
func DefaultProjectionSettings() ProjectionSettings {
	return ProjectionSettings{
		Years:      10,
		GrowthRate: decimal.NewFromFloat(0.02),
		Cumulation: CumulationScaled,
	}
}

// Configuration is the fully resolved set of baselines, population segments
// and intervention definitions.
type Configuration struct {
	Segments           map[string]PopulationParameters `json:"segments"`
	Economics          EconomicParameters              `json:"economics"`
	Baselines          HealthcareBaselines             `json:"baselines"`
	Modifiers          ImpactModifiers                 `json:"modifiers"`
	BaseLifeExpectancy decimal.Decimal                 `json:"baseLifeExpectancy"`
	NationalTotals     NationalTotals                  `json:"nationalTotals"`
	Bounds             PlausibilityBounds              `json:"bounds"`
	Projection         ProjectionSettings              `json:"projection"`
	Interventions      map[string]Intervention         `json:"interventions"`
}

// Intervention returns a copy of the named intervention.
func (c *Configuration) Intervention(key string) (Intervention, error) {
	i, ok := c.Interventions[key]
	if !ok {
		return Intervention{}, fmt.Errorf("unknown intervention %q (available: %v)", key, c.InterventionKeys())
	}
	return i.DeepCopy(), nil
}

// Segment returns the named population segment.
func (c *Configuration) Segment(key string) (PopulationParameters, error) {
	p, ok := c.Segments[key]
	if !ok {
		return PopulationParameters{}, fmt.Errorf("unknown population segment %q (available: %v)", key, c.SegmentKeys())
	}
	return p, nil
}

// InterventionKeys returns the intervention keys in sorted order.
func (c *Configuration) InterventionKeys() []string {
	keys := make([]string, 0, len(c.Interventions))
	for k := range c.Interventions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SegmentKeys returns the segment keys in sorted order.
func (c *Configuration) SegmentKeys() []string {
	keys := make([]string, 0, len(c.Segments))
	for k := range c.Segments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inputs resolves the calculation inputs for an intervention and segment.
func (c *Configuration) Inputs(interventionKey, segmentKey string) (CalculationInputs, error) {
	intervention, err := c.Intervention(interventionKey)
	if err != nil {
		return CalculationInputs{}, err
	}
	population, err := c.Segment(segmentKey)
	if err != nil {
		return CalculationInputs{}, err
	}
	return CalculationInputs{
		Intervention: intervention,
		Population:   population,
		Economics:    c.Economics,
		Baselines:    c.Baselines,
	}, nil
}

// CalculationInputs is everything the engine needs for one assessment
type CalculationInputs struct {
	Intervention Intervention         `json:"intervention"`
	Population   PopulationParameters `json:"population"`
	Economics    EconomicParameters   `json:"economics"`
	Baselines    HealthcareBaselines  `json:"baselines"`
}

// WithParameters returns a copy of the inputs using different intervention parameters.
func (in CalculationInputs) WithParameters(ip InterventionParameters) CalculationInputs {
	out := in
	out.Intervention = in.Intervention.DeepCopy()
	out.Intervention.Parameters = ip.DeepCopy()
	return out
}

// Validate checks every component of the inputs.
func (in CalculationInputs) Validate() error {
	var errs []error
	if err := in.Population.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("population: %w", err))
	}
	if err := in.Economics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("economics: %w", err))
	}
	if err := in.Baselines.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("healthcare baselines: %w", err))
	}
	if err := in.Intervention.Parameters.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("intervention %s: %w", in.Intervention.Key, err))
	}
	return errors.Join(errs...)
}
