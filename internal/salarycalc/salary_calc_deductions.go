package salarycalc

import "math"

// TaxCalculator and InsuranceCalculator are the pluggable deduction
// schedules. Implementations take a gross amount in minor units and
// return the deduction in minor units.
type TaxCalculator interface {
	Calculate(gross int64) int64
}

type InsuranceCalculator interface {
	Calculate(gross int64) int64
}

// ProgressiveTaxCalculator2024 applies the 2024 withholding schedule:
// four bands with a cumulative amount at each band boundary.
type ProgressiveTaxCalculator2024 struct{}

func NewProgressiveTaxCalculator2024() ProgressiveTaxCalculator2024 {
	return ProgressiveTaxCalculator2024{}
}

func (ProgressiveTaxCalculator2024) Calculate(gross int64) int64 {
	switch {
	case gross <= 1_200_000:
		return 0
	case gross <= 4_600_000:
		return floorRate(gross-1_200_000, 0.06)
	case gross <= 8_800_000:
		return 204_000 + floorRate(gross-4_600_000, 0.15)
	default:
		return 834_000 + floorRate(gross-8_800_000, 0.24)
	}
}

// FlatInsuranceCalculator2024 withholds the combined 2024 social
// insurance rate of 9.145%.
type FlatInsuranceCalculator2024 struct{}

func NewFlatInsuranceCalculator2024() FlatInsuranceCalculator2024 {
	return FlatInsuranceCalculator2024{}
}

func (FlatInsuranceCalculator2024) Calculate(gross int64) int64 {
	return floorRate(gross, 0.09145)
}

func floorRate(amount int64, rate float64) int64 {
	return int64(math.Floor(float64(amount) * rate))
}
