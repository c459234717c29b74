package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// fractionTolerance is how far group fractions may sum from 1.
var fractionTolerance = decimal.RequireFromString("0.001")

// AgeGroup is one stratum of the population
type AgeGroup struct {
	Label                   string          `yaml:"label" json:"label"`
	PopulationFraction      decimal.Decimal `yaml:"population_fraction" json:"populationFraction"`
	EffectivenessMultiplier decimal.Decimal `yaml:"effectiveness_multiplier" json:"effectivenessMultiplier"`
}

// AgeStratification weights an impact by how effective an intervention is in
// each age group
type AgeStratification struct {
	Groups []AgeGroup `yaml:"groups" json:"groups"`
}

// Discounting converts a future value to present value
type Discounting struct {
	Rate  decimal.Decimal
	Years int
}

// Factor returns 1/(1+rate)^years.
func (d Discounting) Factor() decimal.Decimal {
	if d.Years == 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromInt(1).Add(d.Rate).Pow(decimal.NewFromInt(int64(d.Years))))
}

// DefaultAgeStratification returns five age groups whose effectiveness
// declines with age.
func DefaultAgeStratification() AgeStratification {
	group := func(label, fraction, multiplier string) AgeGroup {
		return AgeGroup{
			Label:                   label,
			PopulationFraction:      decimal.RequireFromString(fraction),
			EffectivenessMultiplier: decimal.RequireFromString(multiplier),
		}
	}
	return AgeStratification{
		Groups: []AgeGroup{
			group("0-20", "0.25", "1.2"),
			group("21-40", "0.25", "1.1"),
			group("41-60", "0.25", "1.0"),
			group("61-80", "0.20", "0.9"),
			group("80+", "0.05", "0.8"),
		},
	}
}

// Validate checks that fractions lie in [0, 1] and sum to 1, and that every
// multiplier is positive.
func (s AgeStratification) Validate() error {
	if len(s.Groups) == 0 {
		return errors.New("at least one age group is required")
	}

	var errs []error
	sum := decimal.Zero
	for _, g := range s.Groups {
		sum = sum.Add(g.PopulationFraction)
		if g.PopulationFraction.IsNegative() || g.PopulationFraction.GreaterThan(decimal.NewFromInt(1)) {
			errs = append(errs, domain.NewValidationError("population_fraction", g.PopulationFraction, fmt.Sprintf("age group %s must be between 0 and 1", g.Label)))
		}
		if !g.EffectivenessMultiplier.IsPositive() {
			errs = append(errs, domain.NewValidationError("effectiveness_multiplier", g.EffectivenessMultiplier, fmt.Sprintf("age group %s must be positive", g.Label)))
		}
	}

	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(fractionTolerance) {
		errs = append(errs, fmt.Errorf("population fractions must sum to 1, got %s", sum.String()))
	}

	return errors.Join(errs...)
}

// EffectivenessFactor returns Σ fraction×multiplier.
func (s AgeStratification) EffectivenessFactor() decimal.Decimal {
	factor := decimal.Zero
	for _, g := range s.Groups {
		factor = factor.Add(g.PopulationFraction.Mul(g.EffectivenessMultiplier))
	}
	return factor
}

// Apply weights value by the effectiveness factor and, when discounting is
// given, by the discount factor.
func (s AgeStratification) Apply(value decimal.Decimal, discounting *Discounting) (decimal.Decimal, error) {
	if err := s.Validate(); err != nil {
		return decimal.Zero, err
	}
	result := value.Mul(s.EffectivenessFactor())
	if discounting != nil {
		if discounting.Years < 0 {
			return decimal.Zero, fmt.Errorf("discount years cannot be negative, got %d", discounting.Years)
		}
		result = result.Mul(discounting.Factor())
	}
	return result, nil
}

// ApplyToImpact applies the stratification to every metric of an impact.
func (s AgeStratification) ApplyToImpact(agg domain.AggregatedImpact, discounting *Discounting) (domain.AggregatedImpact, error) {
	if err := s.Validate(); err != nil {
		return domain.AggregatedImpact{}, err
	}
	if discounting != nil && discounting.Years < 0 {
		return domain.AggregatedImpact{}, fmt.Errorf("discount years cannot be negative, got %d", discounting.Years)
	}

	factor := s.EffectivenessFactor()
	if discounting != nil {
		factor = factor.Mul(discounting.Factor())
	}
	return agg.Map(func(v decimal.Decimal) decimal.Decimal { return v.Mul(factor) }), nil
}
