package salarycalc

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCalculated = "calculated"
	StatusApproved   = "approved"
	StatusPaid       = "paid"
)

// SalaryCalculation is the persisted result row, upserted on
// (tenant_id, staff_id, month). Details carries the full audit snapshot
// (metrics, policy, warnings, tier breakdown) as jsonb; the summary
// columns are denormalized for listing queries.
//
// Amounts are minor currency units.
type SalaryCalculation struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:idx_tenant_staff_month,unique"`
	StaffID  uuid.UUID `gorm:"type:uuid;not null;index:idx_tenant_staff_month,unique"`
	Month    string    `gorm:"type:varchar(7);not null;index:idx_tenant_staff_month,unique"`

	PolicyID   uuid.UUID `gorm:"type:uuid;not null"`
	PolicyType string    `gorm:"type:varchar(30);not null"`

	BaseSalary        int64 `gorm:"type:bigint;not null;default:0"`
	CommissionSalary  int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeAllowance int64 `gorm:"type:bigint;not null;default:0"`
	TotalAllowances   int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions   int64 `gorm:"type:bigint;not null;default:0"`
	GrossSalary       int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary         int64 `gorm:"type:bigint;not null;default:0"`

	DataQuality string `gorm:"type:varchar(10);not null;default:'full'"`
	Status      string `gorm:"type:varchar(20);not null;default:'calculated'"`

	Details []byte `gorm:"type:jsonb"`

	CalculatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt   *time.Time `gorm:"index"`
	PaidAt       *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryCalculation) TableName() string { return "salary_calculations" }
