package salarycalc

import (
	"fmt"
	"math"
	"net/http"

	"go-academy/internal/shared/apperror"
)

const tierSumTolerance = 1e-6

// ValidateResult checks the engine output for internal consistency. A
// failure here is an engine defect, not a bad request: it blocks
// persistence and is surfaced as an inconsistent-result error so
// alerting can tell it apart from input validation.
func ValidateResult(result *CalculationResult) error {
	components := map[string]int64{
		"base_salary":         result.BaseSalary,
		"commission_salary":   result.CommissionSalary,
		"overtime_allowance":  result.OvertimeAllowance,
		"special_allowances":  result.SpecialAllowances,
		"performance_bonus":   result.PerformanceBonus,
		"total_allowances":    result.TotalAllowances,
		"tax_deduction":       result.TaxDeduction,
		"insurance_deduction": result.InsuranceDeduction,
		"other_deductions":    result.OtherDeductions,
		"total_deductions":    result.TotalDeductions,
		"gross_salary":        result.GrossSalary,
		"net_salary":          result.NetSalary,
	}
	for name, v := range components {
		if v < 0 {
			return inconsistent("%s is negative: %d", name, v)
		}
	}

	if result.NetSalary > result.GrossSalary {
		return inconsistent("net salary %d exceeds gross salary %d", result.NetSalary, result.GrossSalary)
	}

	// A cap below the computed base legitimately pushes gross under base.
	if !result.MaximumApplied && result.GrossSalary < result.BaseSalary {
		return inconsistent("gross salary %d is below base salary %d", result.GrossSalary, result.BaseSalary)
	}

	if len(result.TierBreakdown) > 0 {
		var sum int64
		for _, entry := range result.TierBreakdown {
			sum += entry.Commission
		}
		if math.Abs(float64(sum-result.CommissionSalary)) > tierSumTolerance {
			return inconsistent("tier breakdown sums to %d but commission is %d", sum, result.CommissionSalary)
		}
	}

	return nil
}

func inconsistent(format string, args ...any) error {
	return apperror.New(
		apperror.CodeInconsistentResult,
		fmt.Sprintf("calculation result failed consistency check: "+format, args...),
		http.StatusInternalServerError,
	)
}
