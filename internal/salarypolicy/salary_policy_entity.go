package salarypolicy

import (
	"time"

	"github.com/google/uuid"
)

type PolicyType string

const (
	PolicyFixedMonthly      PolicyType = "fixed_monthly"
	PolicyFixedHourly       PolicyType = "fixed_hourly"
	PolicyCommission        PolicyType = "commission"
	PolicyTieredCommission  PolicyType = "tiered_commission"
	PolicyStudentBased      PolicyType = "student_based"
	PolicyHybrid            PolicyType = "hybrid"
	PolicyGuaranteedMinimum PolicyType = "guaranteed_minimum"
)

func (t PolicyType) Valid() bool {
	switch t {
	case PolicyFixedMonthly, PolicyFixedHourly, PolicyCommission,
		PolicyTieredCommission, PolicyStudentBased, PolicyHybrid,
		PolicyGuaranteedMinimum:
		return true
	}
	return false
}

type CommissionBasis string

const (
	BasisRevenue  CommissionBasis = "revenue"
	BasisStudents CommissionBasis = "students"
	BasisHours    CommissionBasis = "hours"
)

func (b CommissionBasis) Valid() bool {
	switch b {
	case BasisRevenue, BasisStudents, BasisHours:
		return true
	}
	return false
}

// SalaryPolicy stores every type's parameters as nullable columns; the
// write-time validation in this package guarantees that exactly the
// columns required by PolicyType are populated, so Params can build the
// typed variant without re-checking bounds.
//
// Monetary amounts are minor currency units.
type SalaryPolicy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Type      PolicyType `gorm:"column:policy_type"`
	IsActive  bool
	IsDefault bool

	BaseAmount           *int64
	HourlyRate           *int64
	CommissionRate       *float64
	CommissionBasis      *CommissionBasis
	StudentRate          *int64
	MinStudents          *int
	MaxStudents          *int
	PerformanceThreshold *int64
	MinimumGuaranteed    *int64
	MaximumAmount        *int64

	Tiers []SalaryTier `gorm:"foreignKey:PolicyID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryPolicy) TableName() string { return "salary_policies" }

// SalaryTier is one band of a tiered_commission policy. MaxAmount nil
// means the band is open-ended.
type SalaryTier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PolicyID       uuid.UUID `gorm:"type:uuid;index"`
	MinAmount      int64
	MaxAmount      *int64
	CommissionRate float64
	Position       int
}

func (SalaryTier) TableName() string { return "salary_policy_tiers" }

// PolicyAssignment links a staff member to the policy used when a
// calculation request does not name one explicitly. One row per staff
// member (uq_policy_assignment_staff).
type PolicyAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;index"`
	StaffID   uuid.UUID `gorm:"type:uuid"`
	PolicyID  uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PolicyAssignment) TableName() string { return "policy_assignments" }

// Params is the tagged union over policy types.
type Params interface {
	isParams()
}

type FixedMonthlyParams struct {
	BaseAmount int64
}

type FixedHourlyParams struct {
	HourlyRate int64
}

type CommissionParams struct {
	Rate  float64
	Basis CommissionBasis
}

type Tier struct {
	MinAmount int64
	MaxAmount *int64
	Rate      float64
}

type TieredCommissionParams struct {
	Tiers []Tier
}

type StudentBasedParams struct {
	StudentRate int64
	MinStudents *int
	MaxStudents *int
}

// HybridParams pays a fixed base plus commission. When
// PerformanceThreshold is set, commission applies only to the basis
// value in excess of the threshold.
type HybridParams struct {
	BaseAmount           int64
	Rate                 float64
	Basis                CommissionBasis
	PerformanceThreshold *int64
}

// GuaranteedMinimumParams floors whatever Sub computes at Minimum. Sub
// is nil when the policy carries no secondary formula; the minimum then
// is the pay.
type GuaranteedMinimumParams struct {
	Minimum int64
	Sub     Params
}

func (FixedMonthlyParams) isParams()      {}
func (FixedHourlyParams) isParams()       {}
func (CommissionParams) isParams()        {}
func (TieredCommissionParams) isParams()  {}
func (StudentBasedParams) isParams()      {}
func (HybridParams) isParams()            {}
func (GuaranteedMinimumParams) isParams() {}

// Params materializes the typed parameter set for the policy's type.
// Policies are validated at write time, so a missing column here points
// at data written outside this service and is reported as such.
func (p *SalaryPolicy) Params() (Params, error) {
	switch p.Type {
	case PolicyFixedMonthly:
		if p.BaseAmount == nil {
			return nil, missingParam(p.Type, "base_amount")
		}
		return FixedMonthlyParams{BaseAmount: *p.BaseAmount}, nil

	case PolicyFixedHourly:
		if p.HourlyRate == nil {
			return nil, missingParam(p.Type, "hourly_rate")
		}
		return FixedHourlyParams{HourlyRate: *p.HourlyRate}, nil

	case PolicyCommission:
		if p.CommissionRate == nil {
			return nil, missingParam(p.Type, "commission_rate")
		}
		if p.CommissionBasis == nil {
			return nil, missingParam(p.Type, "commission_basis")
		}
		return CommissionParams{Rate: *p.CommissionRate, Basis: *p.CommissionBasis}, nil

	case PolicyTieredCommission:
		if len(p.Tiers) == 0 {
			return nil, missingParam(p.Type, "tiers")
		}
		tiers := make([]Tier, len(p.Tiers))
		for i, t := range p.Tiers {
			tiers[i] = Tier{MinAmount: t.MinAmount, MaxAmount: t.MaxAmount, Rate: t.CommissionRate}
		}
		return TieredCommissionParams{Tiers: tiers}, nil

	case PolicyStudentBased:
		if p.StudentRate == nil {
			return nil, missingParam(p.Type, "student_rate")
		}
		return StudentBasedParams{
			StudentRate: *p.StudentRate,
			MinStudents: p.MinStudents,
			MaxStudents: p.MaxStudents,
		}, nil

	case PolicyHybrid:
		if p.BaseAmount == nil {
			return nil, missingParam(p.Type, "base_amount")
		}
		if p.CommissionRate == nil {
			return nil, missingParam(p.Type, "commission_rate")
		}
		basis := BasisRevenue
		if p.CommissionBasis != nil {
			basis = *p.CommissionBasis
		}
		return HybridParams{
			BaseAmount:           *p.BaseAmount,
			Rate:                 *p.CommissionRate,
			Basis:                basis,
			PerformanceThreshold: p.PerformanceThreshold,
		}, nil

	case PolicyGuaranteedMinimum:
		if p.MinimumGuaranteed == nil {
			return nil, missingParam(p.Type, "minimum_guaranteed")
		}
		sub, err := p.subFormula()
		if err != nil {
			return nil, err
		}
		return GuaranteedMinimumParams{Minimum: *p.MinimumGuaranteed, Sub: sub}, nil
	}

	return nil, unknownPolicyType(p.Type)
}

// subFormula picks the secondary formula of a guaranteed_minimum policy
// from whichever other-type columns are populated.
func (p *SalaryPolicy) subFormula() (Params, error) {
	switch {
	case p.HourlyRate != nil:
		return FixedHourlyParams{HourlyRate: *p.HourlyRate}, nil
	case p.CommissionRate != nil:
		if p.CommissionBasis == nil {
			return nil, missingParam(p.Type, "commission_basis")
		}
		return CommissionParams{Rate: *p.CommissionRate, Basis: *p.CommissionBasis}, nil
	case p.StudentRate != nil:
		return StudentBasedParams{
			StudentRate: *p.StudentRate,
			MinStudents: p.MinStudents,
			MaxStudents: p.MaxStudents,
		}, nil
	case p.BaseAmount != nil:
		return FixedMonthlyParams{BaseAmount: *p.BaseAmount}, nil
	}
	return nil, nil
}
