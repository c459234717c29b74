package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestDefaultConfiguration_IsValid(t *testing.T) {
	config := DefaultConfiguration()

	require.NoError(t, NewInputParser().ValidateConfiguration(config))
	assert.Equal(t, []string{"follistatin", "klotho"}, config.InterventionKeys())
	assert.Equal(t, []string{"adult", "over_60", "total_us"}, config.SegmentKeys())
	assert.True(t, config.Segments["over_60"].Segment.MedicareEligible, "over_60 should be Medicare eligible")
	assert.False(t, config.Segments["adult"].Segment.MedicareEligible)

	follistatin := config.Interventions["follistatin"].Parameters
	assert.Nil(t, follistatin.Cognitive, "Follistatin has no cognitive pathway")
	assert.Nil(t, follistatin.Kidney, "Follistatin has no kidney pathway")
	require.NotNil(t, follistatin.Physical)
	assert.True(t, follistatin.Physical.MuscleMassChangeLb.Equal(decimal.NewFromInt(2)))
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [unclosed")

	config, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ExampleConfig(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(filepath.Join("..", "..", "heis.example.yaml"))
	require.NoError(t, err)

	klotho := config.Interventions["klotho"]
	assert.Equal(t, "Klotho", klotho.Name)
	assert.True(t, klotho.Parameters.Longevity.LifespanIncreaseYears.Equal(decimal.RequireFromString("1.582")),
		"Should convert 2%% of 79.1 years, got %s", klotho.Parameters.Longevity.LifespanIncreaseYears)

	expectedCost := DefaultConfiguration().Baselines.CostPerHospitalVisit
	assert.True(t, expectedCost.Equal(config.Baselines.CostPerHospitalVisit), "Should derive cost per hospital visit")
	assert.Equal(t, "over_60", config.Segments["over_60"].Segment.Key, "Should key segments by map key")
}

func TestInputParser_LoadFromFile_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
economics:
  annual_healthcare_cost: 10000
  annual_productivity: 70000
  discount_rate: 0.05
projection:
  years: 15
`)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, config.Economics.AnnualProductivity.Equal(decimal.NewFromInt(70000)))
	assert.Equal(t, 15, config.Projection.Years)
	assert.Equal(t, domain.CumulationScaled, config.Projection.Cumulation, "Should keep default cumulation")
	assert.Len(t, config.Segments, 3, "Should keep default segments")
	assert.Len(t, config.Interventions, 2, "Should keep default interventions")
}

func TestInputParser_LoadFromFile_LifespanUnits(t *testing.T) {
	path := writeConfig(t, `
base_life_expectancy: 80
interventions:
  gene:
    name: Gene Therapy
    effects:
      longevity:
        lifespan_increase_percent: 2.5
        healthspan_improvement: 50
`)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, config.Interventions, 1, "File interventions should replace defaults")
	years := config.Interventions["gene"].Parameters.Longevity.LifespanIncreaseYears
	assert.True(t, years.Equal(decimal.NewFromInt(2)), "2.5%% of 80 years should be 2 years, got %s", years)
}

func TestInputParser_LoadFromFile_BothLifespanUnits(t *testing.T) {
	path := writeConfig(t, `
interventions:
  gene:
    name: Gene Therapy
    effects:
      longevity:
        lifespan_increase_percent: 2.5
        lifespan_increase_years: 2
`)

	_, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestInputParser_LoadFromFile_ModifierOverrides(t *testing.T) {
	path := writeConfig(t, `
interventions:
  nootropic:
    name: Nootropic
    effects:
      cognitive:
        iq_increase: 3
        alzheimers_reduction: 5
    impact_modifiers:
      iq_to_gdp: 0.05
`)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	mods := config.Interventions["nootropic"].Parameters.Modifiers
	assert.True(t, mods.IQToGDP.Equal(decimal.RequireFromString("0.05")), "Should override iq_to_gdp")
	assert.True(t, mods.HealthQuality.Equal(DefaultModifiers().HealthQuality), "Should inherit other modifiers")
}

func TestInputParser_LoadFromFile_RangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "muscle change out of range",
			content: `
interventions:
  bad:
    name: Bad
    effects:
      physical:
        muscle_mass_change: 12
`,
			want: "invalid intervention bad",
		},
		{
			name: "target above total",
			content: `
population_segments:
  tiny:
    total_population: 100
    target_population: 101
    workforce_fraction: 0.5
`,
			want: "invalid population segment tiny",
		},
		{
			name: "discount rate",
			content: `
economics:
  annual_healthcare_cost: 12500
  annual_productivity: 68000
  discount_rate: 0.25
`,
			want: "invalid economics",
		},
		{
			name: "unknown cumulation",
			content: `
projection:
  cumulation: geometric
`,
			want: "cumulation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInputParser_ValidationErrorIsReachable(t *testing.T) {
	path := writeConfig(t, `
interventions:
  bad:
    name: Bad
    effects:
      kidney:
        egfr_improvement: 40
`)

	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)

	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve), "Should wrap a ValidationError")
	assert.Equal(t, "egfr_improvement", ve.Field)
}

func TestInputParser_LoadFromFileWithInterventions(t *testing.T) {
	base := writeConfig(t, `
projection:
  years: 20
`)
	extra := writeConfig(t, `
interventions:
  klotho:
    name: Klotho (revised)
    effects:
      healthcare:
        hospital_visit_reduction: 20
  senolytic:
    name: Senolytic
    effects:
      longevity:
        lifespan_increase_years: 1
        healthspan_improvement: 30
`)

	config, err := NewInputParser().LoadFromFileWithInterventions(base, extra)
	require.NoError(t, err)

	assert.Equal(t, 20, config.Projection.Years)
	assert.Equal(t, []string{"follistatin", "klotho", "senolytic"}, config.InterventionKeys())
	assert.Equal(t, "Klotho (revised)", config.Interventions["klotho"].Name, "Should override same-keyed interventions")
	assert.Nil(t, config.Interventions["klotho"].Parameters.Cognitive, "Override replaces the whole definition")
}

func TestBuildInputs(t *testing.T) {
	config := DefaultConfiguration()

	in, err := BuildInputs(config, "klotho", "over_60", []string{"iq_increase=4", "hospital_visit_reduction=20"})
	require.NoError(t, err)

	assert.True(t, in.Intervention.Parameters.Cognitive.IQIncrease.Equal(decimal.NewFromInt(4)))
	assert.True(t, in.Intervention.Parameters.Healthcare.HospitalVisitReductionPercent.Equal(decimal.NewFromInt(20)))
	assert.True(t, config.Interventions["klotho"].Parameters.Cognitive.IQIncrease.Equal(decimal.RequireFromString("2.5")),
		"Should not modify the configuration")

	_, err = BuildInputs(config, "klotho", "over_60", []string{"iq_increase=40"})
	assert.Error(t, err, "Should range-check assignments")

	_, err = BuildInputs(config, "follistatin", "adult", []string{"iq_increase=1"})
	assert.Error(t, err, "Should reject effects of absent pathways")

	_, err = BuildInputs(config, "klotho", "over_60", []string{"iq_increase"})
	assert.Error(t, err, "Should reject malformed assignments")

	_, err = BuildInputs(config, "unknown", "adult", nil)
	assert.Error(t, err)
}

func TestLifespanYearsFromPercent(t *testing.T) {
	years := LifespanYearsFromPercent(decimal.RequireFromString("2.5"), decimal.NewFromInt(80))
	assert.True(t, years.Equal(decimal.NewFromInt(2)))
}

func TestCostPerHospitalVisit(t *testing.T) {
	cost := CostPerHospitalVisit(decimal.NewFromInt(100), 1000, 50)
	assert.True(t, cost.Equal(decimal.NewFromInt(2000)))
	assert.True(t, CostPerHospitalVisit(decimal.NewFromInt(100), 1000, 0).IsZero())
}
