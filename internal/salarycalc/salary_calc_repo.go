package salarycalc

import (
	"context"
	"database/sql"

	"go-academy/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_calc_repo.go -destination=mock/salary_calc_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Upsert(ctx context.Context, calc *SalaryCalculation) error
	FindAllByTenant(ctx context.Context, tenantID, month string, limit, offset int) ([]SalaryCalculation, int64, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*SalaryCalculation, error)
	FindByStaffAndMonth(ctx context.Context, tenantID, staffID, month string) (*SalaryCalculation, error)
	UpdateStatus(ctx context.Context, calc *SalaryCalculation) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Upsert is last-writer-wins on (tenant_id, staff_id, month); a recalc
// replaces the previous row and resets the workflow status.
func (r *repository) Upsert(ctx context.Context, calc *SalaryCalculation) error {
	query := `
INSERT INTO salary_calculations (
	id, tenant_id, staff_id, month,
	policy_id, policy_type,
	base_salary, commission_salary, overtime_allowance,
	total_allowances, total_deductions, gross_salary, net_salary,
	data_quality, status, details, calculated_by,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4,
	$5, $6,
	$7, $8, $9,
	$10, $11, $12, $13,
	$14, $15, $16, $17,
	NOW(), NOW()
)
ON CONFLICT (tenant_id, staff_id, month) DO UPDATE SET
	policy_id = EXCLUDED.policy_id,
	policy_type = EXCLUDED.policy_type,
	base_salary = EXCLUDED.base_salary,
	commission_salary = EXCLUDED.commission_salary,
	overtime_allowance = EXCLUDED.overtime_allowance,
	total_allowances = EXCLUDED.total_allowances,
	total_deductions = EXCLUDED.total_deductions,
	gross_salary = EXCLUDED.gross_salary,
	net_salary = EXCLUDED.net_salary,
	data_quality = EXCLUDED.data_quality,
	status = EXCLUDED.status,
	details = EXCLUDED.details,
	calculated_by = EXCLUDED.calculated_by,
	approved_by = NULL,
	approved_at = NULL,
	paid_at = NULL,
	updated_at = NOW()
RETURNING id
`

	args := []any{
		calc.ID, calc.TenantID, calc.StaffID, calc.Month,
		calc.PolicyID, calc.PolicyType,
		calc.BaseSalary, calc.CommissionSalary, calc.OvertimeAllowance,
		calc.TotalAllowances, calc.TotalDeductions, calc.GrossSalary, calc.NetSalary,
		calc.DataQuality, calc.Status, calc.Details, calc.CalculatedBy,
	}

	if r.tx != nil {
		return r.tx.QueryRowContext(ctx, query, args...).Scan(&calc.ID)
	}

	db, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return db.QueryRowContext(ctx, query, args...).Scan(&calc.ID)
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID, month string, limit, offset int) ([]SalaryCalculation, int64, error) {
	var calcs []SalaryCalculation
	var total int64

	base := r.db.WithContext(ctx).Model(&SalaryCalculation{}).Scopes(tenant.Scope(tenantID))
	if month != "" {
		base = base.Where("month = ?", month)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("month DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&calcs).Error

	return calcs, total, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*SalaryCalculation, error) {
	var calc SalaryCalculation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&calc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repository) FindByStaffAndMonth(ctx context.Context, tenantID, staffID, month string) (*SalaryCalculation, error) {
	var calc SalaryCalculation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&calc, "staff_id = ? AND month = ?", staffID, month).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repository) UpdateStatus(ctx context.Context, calc *SalaryCalculation) error {
	return r.db.WithContext(ctx).
		Model(&SalaryCalculation{}).
		Where("id = ?", calc.ID).
		Updates(map[string]any{
			"status":      calc.Status,
			"approved_by": calc.ApprovedBy,
			"approved_at": calc.ApprovedAt,
			"paid_at":     calc.PaidAt,
		}).Error
}
