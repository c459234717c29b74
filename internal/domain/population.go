package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var workforceFractionRange = newRange("0", "1")

// PopulationSegment names the subset of the population an assessment targets.
// MedicareEligible marks segments whose members are predominantly covered by
// Medicare; it gates the Alzheimer's Medicare savings term.
type PopulationSegment struct {
	Key              string `yaml:"key" json:"key"`
	Description      string `yaml:"description" json:"description"`
	MedicareEligible bool   `yaml:"medicare_eligible" json:"medicareEligible"`
}

// PopulationParameters describes the population an intervention is applied to
type PopulationParameters struct {
	Segment               PopulationSegment `yaml:"segment" json:"segment"`
	TotalPopulation       int64             `yaml:"total_population" json:"totalPopulation"`
	TargetPopulation      int64             `yaml:"target_population" json:"targetPopulation"`
	MedicareBeneficiaries int64             `yaml:"medicare_beneficiaries" json:"medicareBeneficiaries"`
	WorkforceFraction     decimal.Decimal   `yaml:"workforce_fraction" json:"workforceFraction"`
}

// NewPopulationParameters builds validated population parameters.
func NewPopulationParameters(segment PopulationSegment, total, target, medicare int64, workforceFraction decimal.Decimal) (PopulationParameters, error) {
	p := PopulationParameters{
		Segment:               segment,
		TotalPopulation:       total,
		TargetPopulation:      target,
		MedicareBeneficiaries: medicare,
		WorkforceFraction:     workforceFraction,
	}
	if err := p.Validate(); err != nil {
		return PopulationParameters{}, err
	}
	return p, nil
}

// Validate checks population counts and the workforce fraction.
func (p PopulationParameters) Validate() error {
	var errs []error
	if p.TotalPopulation < 0 {
		errs = append(errs, NewValidationError("total_population", p.TotalPopulation, "cannot be negative"))
	}
	if p.TargetPopulation < 0 {
		errs = append(errs, NewValidationError("target_population", p.TargetPopulation, "cannot be negative"))
	} else if p.TargetPopulation > p.TotalPopulation {
		errs = append(errs, NewValidationError("target_population", p.TargetPopulation, "cannot exceed total_population"))
	}
	if p.MedicareBeneficiaries < 0 {
		errs = append(errs, NewValidationError("medicare_beneficiaries", p.MedicareBeneficiaries, "cannot be negative"))
	} else if p.MedicareBeneficiaries > p.TotalPopulation {
		errs = append(errs, NewValidationError("medicare_beneficiaries", p.MedicareBeneficiaries, "cannot exceed total_population"))
	}
	if err := workforceFractionRange.check("workforce_fraction", p.WorkforceFraction); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Total returns the total population as a decimal.
func (p PopulationParameters) Total() decimal.Decimal {
	return decimal.NewFromInt(p.TotalPopulation)
}

// Target returns the target population as a decimal.
func (p PopulationParameters) Target() decimal.Decimal {
	return decimal.NewFromInt(p.TargetPopulation)
}

// Medicare returns the Medicare beneficiary count as a decimal.
func (p PopulationParameters) Medicare() decimal.Decimal {
	return decimal.NewFromInt(p.MedicareBeneficiaries)
}
