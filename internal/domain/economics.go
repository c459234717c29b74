package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	discountRateRange = newRange("0", "0.2")
	iqToGDPRange      = newRange("0", "0.1")
	unitModifierRange = newRange("0", "1")
)

// EconomicParameters holds per-capita economic baselines
type EconomicParameters struct {
	AnnualHealthcareCost decimal.Decimal `yaml:"annual_healthcare_cost" json:"annualHealthcareCost"`
	AnnualProductivity   decimal.Decimal `yaml:"annual_productivity" json:"annualProductivity"`
	DiscountRate         decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
}

// NewEconomicParameters builds validated economic parameters.
func NewEconomicParameters(healthcareCost, productivity, discountRate decimal.Decimal) (EconomicParameters, error) {
	e := EconomicParameters{
		AnnualHealthcareCost: healthcareCost,
		AnnualProductivity:   productivity,
		DiscountRate:         discountRate,
	}
	if err := e.Validate(); err != nil {
		return EconomicParameters{}, err
	}
	return e, nil
}

// Validate checks economic parameter ranges.
func (e EconomicParameters) Validate() error {
	return errors.Join(
		checkPositive("annual_healthcare_cost", e.AnnualHealthcareCost),
		checkPositive("annual_productivity", e.AnnualProductivity),
		discountRateRange.check("discount_rate", e.DiscountRate),
	)
}

// HealthcareBaselines holds population-wide healthcare system totals and
// per-pound body composition savings.
type HealthcareBaselines struct {
	AnnualHospitalVisits int64           `yaml:"annual_hospital_visits" json:"annualHospitalVisits"`
	AnnualAlzheimersCost decimal.Decimal `yaml:"annual_alzheimers_cost" json:"annualAlzheimersCost"`
	AnnualCKDCost        decimal.Decimal `yaml:"annual_ckd_cost" json:"annualCkdCost"`
	SavingsPerLbMuscle   decimal.Decimal `yaml:"savings_per_lb_muscle" json:"savingsPerLbMuscle"`
	SavingsPerLbFat      decimal.Decimal `yaml:"savings_per_lb_fat" json:"savingsPerLbFat"`
	CostPerHospitalVisit decimal.Decimal `yaml:"cost_per_hospital_visit" json:"costPerHospitalVisit"`
}

// Validate checks healthcare baseline ranges.
func (h HealthcareBaselines) Validate() error {
	var errs []error
	if h.AnnualHospitalVisits <= 0 {
		errs = append(errs, NewValidationError("annual_hospital_visits", h.AnnualHospitalVisits, "must be greater than 0"))
	}
	errs = append(errs,
		checkNonNegative("annual_alzheimers_cost", h.AnnualAlzheimersCost),
		checkNonNegative("annual_ckd_cost", h.AnnualCKDCost),
		checkNonNegative("savings_per_lb_muscle", h.SavingsPerLbMuscle),
		checkNonNegative("savings_per_lb_fat", h.SavingsPerLbFat),
		checkPositive("cost_per_hospital_visit", h.CostPerHospitalVisit),
	)
	return errors.Join(errs...)
}

// HospitalVisits returns the annual hospital visit baseline as a decimal.
func (h HealthcareBaselines) HospitalVisits() decimal.Decimal {
	return decimal.NewFromInt(h.AnnualHospitalVisits)
}

// ImpactModifiers are the conversion coefficients from raw effect sizes to
// economic and health outcome units.
type ImpactModifiers struct {
	IQToGDP              decimal.Decimal `yaml:"iq_to_gdp" json:"iqToGdp"`
	KidneyToMedicare     decimal.Decimal `yaml:"kidney_to_medicare" json:"kidneyToMedicare"`
	AlzheimersToMedicare decimal.Decimal `yaml:"alzheimers_to_medicare" json:"alzheimersToMedicare"`
	HealthQuality        decimal.Decimal `yaml:"health_quality" json:"healthQuality"`
	LifespanToGDP        decimal.Decimal `yaml:"lifespan_to_gdp" json:"lifespanToGdp"`
}

// Validate checks modifier ranges. iq_to_gdp is bounded to [0, 0.1], the rest to [0, 1].
func (m ImpactModifiers) Validate() error {
	return errors.Join(
		iqToGDPRange.check("iq_to_gdp", m.IQToGDP),
		unitModifierRange.check("kidney_to_medicare", m.KidneyToMedicare),
		unitModifierRange.check("alzheimers_to_medicare", m.AlzheimersToMedicare),
		unitModifierRange.check("health_quality", m.HealthQuality),
		unitModifierRange.check("lifespan_to_gdp", m.LifespanToGDP),
	)
}
