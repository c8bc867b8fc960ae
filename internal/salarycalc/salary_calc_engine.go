package salarycalc

import (
	"fmt"
	"math"

	"go-academy/internal/salarymetrics"
	"go-academy/internal/salarypolicy"
)

const overtimeMultiplier = 1.5

const (
	studentMilestoneCount = 15
	studentMilestoneBonus = 200_000
	attendanceBonus       = 100_000
)

type CalculationOptions struct {
	EnableTax              bool
	EnableInsurance        bool
	EnablePerformanceBonus bool
}

func DefaultCalculationOptions() CalculationOptions {
	return CalculationOptions{
		EnableTax:              true,
		EnableInsurance:        true,
		EnablePerformanceBonus: true,
	}
}

// CalculationInput bundles everything a single engine invocation reads.
// The engine never mutates it.
type CalculationInput struct {
	Metrics            salarymetrics.MonthlyMetrics
	Policy             *salarypolicy.SalaryPolicy
	IncludeAdjustments bool
	PreviewMode        bool
}

type TierBreakdownEntry struct {
	MinAmount     int64   `json:"min_amount"`
	MaxAmount     *int64  `json:"max_amount"`
	Rate          float64 `json:"rate"`
	AppliedAmount int64   `json:"applied_amount"`
	Commission    int64   `json:"commission"`
}

// CalculationResult is the full output of one engine run. All monetary
// amounts are minor currency units and never negative.
type CalculationResult struct {
	StaffID    string                  `json:"staff_id"`
	Month      string                  `json:"month"`
	PolicyType salarypolicy.PolicyType `json:"policy_type"`

	BaseSalary        int64 `json:"base_salary"`
	CommissionSalary  int64 `json:"commission_salary"`
	OvertimeAllowance int64 `json:"overtime_allowance"`
	SpecialAllowances int64 `json:"special_allowances"`
	PerformanceBonus  int64 `json:"performance_bonus"`
	TotalAllowances   int64 `json:"total_allowances"`

	TaxDeduction       int64 `json:"tax_deduction"`
	InsuranceDeduction int64 `json:"insurance_deduction"`
	OtherDeductions    int64 `json:"other_deductions"`
	TotalDeductions    int64 `json:"total_deductions"`

	GrossSalary int64 `json:"gross_salary"`
	NetSalary   int64 `json:"net_salary"`

	MinimumApplied bool `json:"minimum_applied"`
	MaximumApplied bool `json:"maximum_applied"`

	TierBreakdown []TierBreakdownEntry      `json:"tier_breakdown,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
	DataQuality   salarymetrics.DataQuality `json:"data_quality,omitempty"`
}

// Engine is a stateless salary computation. The same input always
// produces the same result; tax and insurance schedules are injected so
// tenants can swap them without touching the arithmetic here.
type Engine struct {
	tax       TaxCalculator
	insurance InsuranceCalculator
}

func NewEngine(tax TaxCalculator, insurance InsuranceCalculator) *Engine {
	return &Engine{tax: tax, insurance: insurance}
}

func (e *Engine) Calculate(in CalculationInput, opts CalculationOptions) (*CalculationResult, error) {
	params, err := in.Policy.Params()
	if err != nil {
		return nil, err
	}

	result := &CalculationResult{
		StaffID:    in.Metrics.StaffID,
		Month:      in.Metrics.Month,
		PolicyType: in.Policy.Type,
	}

	pay := e.computePay(params, in.Metrics, result)

	result.BaseSalary = clampNonNegative(pay.base, "base salary", result)
	result.CommissionSalary = clampNonNegative(pay.commission, "commission", result)
	result.OvertimeAllowance = clampNonNegative(pay.overtime, "overtime allowance", result)
	result.TierBreakdown = pay.breakdown

	if in.IncludeAdjustments {
		result.SpecialAllowances = sumAllowances(in.Metrics.Adjustments, result.BaseSalary)
	}

	if opts.EnablePerformanceBonus {
		if in.Metrics.TotalStudents >= studentMilestoneCount {
			result.PerformanceBonus += studentMilestoneBonus
		}
		if in.Metrics.BonusEligible {
			result.PerformanceBonus += attendanceBonus
		}
	}

	result.TotalAllowances = result.SpecialAllowances + result.PerformanceBonus

	gross := result.BaseSalary + result.CommissionSalary + result.OvertimeAllowance + result.TotalAllowances

	if in.Policy.MinimumGuaranteed != nil && gross < *in.Policy.MinimumGuaranteed {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"guaranteed minimum applied: computed %d raised to %d", gross, *in.Policy.MinimumGuaranteed))
		gross = *in.Policy.MinimumGuaranteed
		result.MinimumApplied = true
	}

	if in.Policy.MaximumAmount != nil && gross > *in.Policy.MaximumAmount {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"maximum amount applied: computed %d capped at %d", gross, *in.Policy.MaximumAmount))
		gross = *in.Policy.MaximumAmount
		result.MaximumApplied = true
	}

	result.GrossSalary = gross

	if opts.EnableTax {
		result.TaxDeduction = e.tax.Calculate(gross)
	}
	if opts.EnableInsurance {
		result.InsuranceDeduction = e.insurance.Calculate(gross)
	}
	if in.IncludeAdjustments {
		result.OtherDeductions = sumDeductions(in.Metrics.Adjustments, result.BaseSalary)
	}

	result.TotalDeductions = result.TaxDeduction + result.InsuranceDeduction + result.OtherDeductions

	net := gross - result.TotalDeductions
	result.NetSalary = clampNonNegative(net, "net salary", result)

	return result, nil
}

type payComponents struct {
	base       int64
	commission int64
	overtime   int64
	breakdown  []TierBreakdownEntry
}

func (e *Engine) computePay(
	params salarypolicy.Params,
	metrics salarymetrics.MonthlyMetrics,
	result *CalculationResult,
) payComponents {
	switch p := params.(type) {
	case salarypolicy.FixedMonthlyParams:
		return payComponents{base: p.BaseAmount}

	case salarypolicy.FixedHourlyParams:
		return payComponents{
			base:     floorProduct(metrics.RegularHours, float64(p.HourlyRate)),
			overtime: floorProduct(metrics.OvertimeHours, float64(p.HourlyRate)*overtimeMultiplier),
		}

	case salarypolicy.CommissionParams:
		return payComponents{
			commission: floorProduct(basisValue(p.Basis, metrics), p.Rate/100),
		}

	case salarypolicy.TieredCommissionParams:
		commission, breakdown := tieredCommission(p.Tiers, metrics.TotalRevenue)
		return payComponents{commission: commission, breakdown: breakdown}

	case salarypolicy.StudentBasedParams:
		count := metrics.TotalStudents
		if p.MaxStudents != nil && count > *p.MaxStudents {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"student count %d capped at max_students %d", count, *p.MaxStudents))
			count = *p.MaxStudents
		}
		if p.MinStudents != nil && count < *p.MinStudents {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"student count %d raised to min_students %d", count, *p.MinStudents))
			count = *p.MinStudents
		}
		return payComponents{base: int64(count) * p.StudentRate}

	case salarypolicy.HybridParams:
		basis := basisValue(p.Basis, metrics)
		if p.PerformanceThreshold != nil {
			basis -= float64(*p.PerformanceThreshold)
			if basis < 0 {
				basis = 0
			}
		}
		return payComponents{
			base:       p.BaseAmount,
			commission: floorProduct(basis, p.Rate/100),
		}

	case salarypolicy.GuaranteedMinimumParams:
		if p.Sub == nil {
			// No secondary formula configured; the gross-stage floor
			// provides the whole pay.
			return payComponents{}
		}
		return e.computePay(p.Sub, metrics, result)
	}

	return payComponents{}
}

func tieredCommission(tiers []salarypolicy.Tier, revenue int64) (int64, []TierBreakdownEntry) {
	var total int64
	breakdown := make([]TierBreakdownEntry, 0, len(tiers))

	for _, tier := range tiers {
		if revenue <= tier.MinAmount {
			break
		}

		upper := revenue
		if tier.MaxAmount != nil && upper > *tier.MaxAmount {
			upper = *tier.MaxAmount
		}

		applied := upper - tier.MinAmount
		commission := floorProduct(float64(applied), tier.Rate/100)
		total += commission

		breakdown = append(breakdown, TierBreakdownEntry{
			MinAmount:     tier.MinAmount,
			MaxAmount:     tier.MaxAmount,
			Rate:          tier.Rate,
			AppliedAmount: applied,
			Commission:    commission,
		})
	}

	return total, breakdown
}

func basisValue(basis salarypolicy.CommissionBasis, metrics salarymetrics.MonthlyMetrics) float64 {
	switch basis {
	case salarypolicy.BasisRevenue:
		return float64(metrics.TotalRevenue)
	case salarypolicy.BasisStudents:
		return float64(metrics.TotalStudents)
	case salarypolicy.BasisHours:
		return metrics.TotalHours
	}
	return 0
}

func sumAllowances(adjustments []salarymetrics.Adjustment, base int64) int64 {
	var total int64
	for _, adj := range adjustments {
		if adj.Type != salarymetrics.AdjustmentAllowance {
			continue
		}
		total += adjustmentAmount(adj, base)
	}
	return total
}

func sumDeductions(adjustments []salarymetrics.Adjustment, base int64) int64 {
	var total int64
	for _, adj := range adjustments {
		if adj.Type != salarymetrics.AdjustmentDeduction {
			continue
		}
		total += adjustmentAmount(adj, base)
	}
	return total
}

func adjustmentAmount(adj salarymetrics.Adjustment, base int64) int64 {
	if adj.Percentage != nil {
		return floorProduct(float64(base), *adj.Percentage/100)
	}
	return adj.Amount
}

func clampNonNegative(v int64, component string, result *CalculationResult) int64 {
	if v >= 0 {
		return v
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf(
		"%s computed negative (%d); clamped to zero", component, v))
	return 0
}

func floorProduct(a, b float64) int64 {
	return int64(math.Floor(a * b))
}
