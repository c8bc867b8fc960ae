package salarypolicy

import (
	"fmt"
	"net/http"

	salarypolicyerrors "go-academy/internal/salarypolicy/errors"
	"go-academy/internal/shared/apperror"
)

func missingParam(t PolicyType, field string) error {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("%s is required for %s policies", field, t),
		http.StatusBadRequest,
	)
}

func invalidParam(format string, args ...any) error {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf(format, args...),
		http.StatusBadRequest,
	)
}

func unknownPolicyType(t PolicyType) error {
	return salarypolicyerrors.ErrUnknownPolicyType
}

// validatePolicy enforces the per-type required-field contract before a
// policy row is written. Every rejection names the offending rule.
func validatePolicy(p *SalaryPolicy) error {
	if !p.Type.Valid() {
		return unknownPolicyType(p.Type)
	}

	switch p.Type {
	case PolicyFixedMonthly:
		if p.BaseAmount == nil {
			return missingParam(p.Type, "base_amount")
		}
		if *p.BaseAmount <= 0 {
			return invalidParam("base_amount must be greater than zero")
		}

	case PolicyFixedHourly:
		if p.HourlyRate == nil {
			return missingParam(p.Type, "hourly_rate")
		}
		if *p.HourlyRate <= 0 {
			return invalidParam("hourly_rate must be greater than zero")
		}

	case PolicyCommission:
		if err := validateCommissionFields(p.Type, p.CommissionRate, p.CommissionBasis); err != nil {
			return err
		}

	case PolicyTieredCommission:
		if err := validateTiers(p.Tiers); err != nil {
			return err
		}

	case PolicyStudentBased:
		if p.StudentRate == nil {
			return missingParam(p.Type, "student_rate")
		}
		if *p.StudentRate <= 0 {
			return invalidParam("student_rate must be greater than zero")
		}
		if err := validateStudentBounds(p.MinStudents, p.MaxStudents); err != nil {
			return err
		}

	case PolicyHybrid:
		if p.BaseAmount == nil {
			return missingParam(p.Type, "base_amount")
		}
		if *p.BaseAmount <= 0 {
			return invalidParam("base_amount must be greater than zero")
		}
		if err := validateCommissionFields(p.Type, p.CommissionRate, p.CommissionBasis); err != nil {
			return err
		}
		if p.PerformanceThreshold != nil && *p.PerformanceThreshold < 0 {
			return invalidParam("performance_threshold must not be negative")
		}

	case PolicyGuaranteedMinimum:
		if p.MinimumGuaranteed == nil {
			return missingParam(p.Type, "minimum_guaranteed")
		}
		if *p.MinimumGuaranteed <= 0 {
			return invalidParam("minimum_guaranteed must be greater than zero")
		}
		// Secondary formula fields, when present, still obey their own rules.
		if p.CommissionRate != nil {
			if err := validateCommissionFields(p.Type, p.CommissionRate, p.CommissionBasis); err != nil {
				return err
			}
		}
		if p.HourlyRate != nil && *p.HourlyRate <= 0 {
			return invalidParam("hourly_rate must be greater than zero")
		}
		if p.StudentRate != nil && *p.StudentRate <= 0 {
			return invalidParam("student_rate must be greater than zero")
		}
	}

	return validateCommonBounds(p)
}

func validateCommissionFields(t PolicyType, rate *float64, basis *CommissionBasis) error {
	if rate == nil {
		return missingParam(t, "commission_rate")
	}
	if *rate <= 0 || *rate > 100 {
		return invalidParam("commission_rate must be in (0, 100]")
	}
	if basis == nil {
		return missingParam(t, "commission_basis")
	}
	if !basis.Valid() {
		return invalidParam("commission_basis must be one of revenue, students, hours")
	}
	return nil
}

func validateTiers(tiers []SalaryTier) error {
	if len(tiers) == 0 {
		return missingParam(PolicyTieredCommission, "tiers")
	}

	for i, tier := range tiers {
		if tier.CommissionRate <= 0 || tier.CommissionRate > 100 {
			return invalidParam("tier %d: commission_rate must be in (0, 100]", i+1)
		}
		if tier.MinAmount < 0 {
			return invalidParam("tier %d: min_amount must not be negative", i+1)
		}
		if tier.MaxAmount != nil && *tier.MaxAmount <= tier.MinAmount {
			return invalidParam("tier %d: max_amount must be greater than min_amount", i+1)
		}
		if tier.MaxAmount == nil && i != len(tiers)-1 {
			return invalidParam("tier %d: only the last tier may be open-ended", i+1)
		}
		if i > 0 {
			prev := tiers[i-1]
			if prev.MaxAmount == nil {
				return invalidParam("tier %d: only the last tier may be open-ended", i)
			}
			if tier.MinAmount < *prev.MaxAmount {
				return invalidParam("tier %d: ranges must be ascending and non-overlapping", i+1)
			}
		}
	}

	return nil
}

func validateStudentBounds(min, max *int) error {
	if min != nil && *min < 0 {
		return invalidParam("min_students must not be negative")
	}
	if max != nil && *max < 0 {
		return invalidParam("max_students must not be negative")
	}
	if min != nil && max != nil && *min > *max {
		return invalidParam("min_students must not exceed max_students")
	}
	return nil
}

func validateCommonBounds(p *SalaryPolicy) error {
	if p.MinimumGuaranteed != nil && *p.MinimumGuaranteed < 0 {
		return invalidParam("minimum_guaranteed must not be negative")
	}
	if p.MaximumAmount != nil && *p.MaximumAmount <= 0 {
		return invalidParam("maximum_amount must be greater than zero")
	}
	if p.MinimumGuaranteed != nil && p.MaximumAmount != nil && *p.MinimumGuaranteed > *p.MaximumAmount {
		return invalidParam("minimum_guaranteed must not exceed maximum_amount")
	}
	return nil
}
