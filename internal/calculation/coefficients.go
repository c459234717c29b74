package calculation

import "github.com/shopspring/decimal"

// QALY conversion coefficients per unit of effect.
var (
	qalyPerIQPoint             = decimal.RequireFromString("0.01")
	qalyPerAlzheimersReduction = decimal.RequireFromString("0.20")
	qalyPerEGFRUnit            = decimal.RequireFromString("0.01")
	qalyPerCKDReduction        = decimal.RequireFromString("0.30")
	qalyPerLbMuscle            = decimal.RequireFromString("0.001")
	qalyPerLbFat               = decimal.RequireFromString("0.0005")
	qalyPerHospitalReduction   = decimal.RequireFromString("0.10")
)

// percent converts a value in [0, 100] to a fraction.
func percent(v decimal.Decimal) decimal.Decimal {
	return v.Shift(-2)
}
