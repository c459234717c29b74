package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Validator, "Should initialize plausibility validator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestNewCalculationEngineWithConfig(t *testing.T) {
	config := &domain.Configuration{
		NationalTotals: domain.NationalTotals{GDP: d("1000"), MedicareSpending: d("100")},
		Bounds:         domain.DefaultPlausibilityBounds(),
	}
	engine := NewCalculationEngineWithConfig(config)
	assertDecimalEqual(t, d("1000"), engine.Validator.Totals.GDP, "configured GDP")

	fallback := NewCalculationEngineWithConfig(&domain.Configuration{})
	assert.Equal(t, domain.DefaultNationalTotals(), fallback.Validator.Totals, "Should keep defaults when unset")

	assert.NotNil(t, NewCalculationEngineWithConfig(nil).Validator)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_Assess(t *testing.T) {
	engine := NewCalculationEngine()
	in := klothoInputs(t)
	in.Intervention.Parameters.Physical = nil

	assessment, err := engine.Assess(in)
	require.NoError(t, err)

	assert.Equal(t, "klotho", assessment.Intervention)
	assert.Equal(t, "over_60", assessment.Segment)
	assert.Len(t, assessment.Pathways, 4, "Should omit the absent physical pathway")
	for _, r := range assessment.Pathways {
		assert.NotEqual(t, domain.PathwayPhysical, r.Pathway)
	}

	expected := CalculateImpact(in.Intervention.Parameters, in.Population, in.Economics, in.Baselines)
	assert.True(t, expected.Equal(assessment.Total), "Should aggregate every present pathway")
	assert.NotNil(t, assessment.Warnings)
}

func TestCalculationEngine_Assess_InvalidInputs(t *testing.T) {
	engine := NewCalculationEngine()
	in := klothoInputs(t)
	in.Population.TargetPopulation = in.Population.TotalPopulation + 1

	result, err := engine.Assess(in)

	assert.Error(t, err, "Should reject invalid inputs")
	assert.Nil(t, result, "Should return nil result")
	assert.Contains(t, err.Error(), "target_population")
}

func TestCalculationEngine_Assess_LogsWarnings(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Validator.Bounds.MaxQALYPerPerson = d("0.0001")

	assessment, err := engine.Assess(klothoInputs(t))
	require.NoError(t, err)

	require.NotEmpty(t, assessment.Warnings, "Should flag the tightened QALY bound")
	assert.Contains(t, logger.messages, "WARN: %s/%s: %s")
}

func TestCalculationEngine_RunAssessment(t *testing.T) {
	in := klothoInputs(t)
	config := &domain.Configuration{
		Segments:      map[string]domain.PopulationParameters{"over_60": in.Population},
		Economics:     in.Economics,
		Baselines:     in.Baselines,
		Interventions: map[string]domain.Intervention{"klotho": in.Intervention},
	}
	engine := NewCalculationEngine()

	assessment, err := engine.RunAssessment(context.Background(), config, "klotho", "over_60")
	require.NoError(t, err)
	assert.Equal(t, "klotho", assessment.Intervention)

	_, err = engine.RunAssessment(context.Background(), config, "follistatin", "over_60")
	assert.Error(t, err, "Should error for unknown intervention")
	assert.Contains(t, err.Error(), "unknown intervention")

	_, err = engine.RunAssessment(context.Background(), config, "klotho", "children")
	assert.Error(t, err, "Should error for unknown segment")
}

func TestCalculationEngine_Project(t *testing.T) {
	engine := NewCalculationEngine()

	assessment, points, err := engine.Project(klothoInputs(t), ProjectionOptions{Years: 5, GrowthRate: d("0.02")})
	require.NoError(t, err)

	require.Len(t, points, 5)
	assertDecimalEqual(t, assessment.Total.MedicareSavings, points[0].AnnualMedicareSavings, "first year medicare")
	assertDecimalEqual(t, assessment.Total.MedicareSavings, points[0].CumulativeMedicareSavings, "first year cumulative")

	_, _, err = engine.Project(klothoInputs(t), ProjectionOptions{Years: 0})
	assert.Error(t, err)
}

func TestCalculationEngine_RunScenarios_LogsThroughEngine(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	results, err := engine.RunScenarios(klothoInputs(t), d("1"), d("0.02"))
	require.NoError(t, err)

	assert.Len(t, results, 3)
	assert.Len(t, logger.messages, 3, "Should log one debug line per scenario")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
