package tui

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/tui/components"
)

// Keys of the scenario setting sliders.
const (
	settingEffectMultiplier = "effect_multiplier"
	settingGrowthRate       = "growth_rate"
	settingProjectionYears  = "projection_years"
)

var (
	multiplierMin  = decimal.RequireFromString("0.5")
	multiplierMax  = decimal.RequireFromString("2")
	multiplierStep = decimal.RequireFromString("0.1")
	growthMax      = decimal.RequireFromString("0.05")
	growthStep     = decimal.RequireFromString("0.005")
	yearsMin       = decimal.NewFromInt(1)
	yearsMax       = decimal.NewFromInt(30)
)

// modifierField is one adjustable impact modifier
type modifierField struct {
	name string
	max  decimal.Decimal
	step decimal.Decimal
	leaf func(m *domain.ImpactModifiers) *decimal.Decimal
}

var modifierFields = []modifierField{
	{"iq_to_gdp", decimal.RequireFromString("0.1"), decimal.RequireFromString("0.005"),
		func(m *domain.ImpactModifiers) *decimal.Decimal { return &m.IQToGDP }},
	{"kidney_to_medicare", decimal.NewFromInt(1), decimal.RequireFromString("0.05"),
		func(m *domain.ImpactModifiers) *decimal.Decimal { return &m.KidneyToMedicare }},
	{"alzheimers_to_medicare", decimal.NewFromInt(1), decimal.RequireFromString("0.05"),
		func(m *domain.ImpactModifiers) *decimal.Decimal { return &m.AlzheimersToMedicare }},
	{"health_quality", decimal.NewFromInt(1), decimal.RequireFromString("0.05"),
		func(m *domain.ImpactModifiers) *decimal.Decimal { return &m.HealthQuality }},
	{"lifespan_to_gdp", decimal.NewFromInt(1), decimal.RequireFromString("0.05"),
		func(m *domain.ImpactModifiers) *decimal.Decimal { return &m.LifespanToGDP }},
}

func lookupModifier(name string) (modifierField, bool) {
	for _, f := range modifierFields {
		if f.name == name {
			return f, true
		}
	}
	return modifierField{}, false
}

// newModifierSliders creates one slider per impact modifier.
func newModifierSliders(mods domain.ImpactModifiers) []*components.ParameterSlider {
	sliders := make([]*components.ParameterSlider, 0, len(modifierFields))
	for _, f := range modifierFields {
		s := components.NewParameterSlider(strings.ReplaceAll(f.name, "_", " "), *f.leaf(&mods), decimal.Zero, f.max, f.step)
		s.Effect = f.name
		sliders = append(sliders, s)
	}
	return sliders
}

// applyModifiers returns mods with every slider value in values applied.
func applyModifiers(mods domain.ImpactModifiers, values map[string]decimal.Decimal) (domain.ImpactModifiers, error) {
	for name, v := range values {
		f, ok := lookupModifier(name)
		if !ok {
			continue
		}
		*f.leaf(&mods) = v
	}
	if err := mods.Validate(); err != nil {
		return domain.ImpactModifiers{}, fmt.Errorf("impact modifiers: %w", err)
	}
	return mods, nil
}

// newSettingSliders creates the effect multiplier, growth and horizon sliders
// starting from the configured projection.
func newSettingSliders(p domain.ProjectionSettings) []*components.ParameterSlider {
	multiplier := components.NewParameterSlider("effect multiplier", decimal.NewFromInt(1), multiplierMin, multiplierMax, multiplierStep)
	multiplier.Effect = settingEffectMultiplier
	multiplier.Unit = "x"

	growth := components.NewParameterSlider("growth rate", p.GrowthRate, decimal.Zero, growthMax, growthStep)
	growth.Effect = settingGrowthRate
	growth.Unit = "/yr"

	years := components.NewParameterSlider("projection years", decimal.NewFromInt(int64(p.Years)), yearsMin, yearsMax, yearsMin)
	years.Effect = settingProjectionYears
	years.Unit = "years"

	return []*components.ParameterSlider{multiplier, growth, years}
}
