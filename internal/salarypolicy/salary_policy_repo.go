package salarypolicy

import (
	"context"
	"database/sql"

	"go-academy/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_policy_repo.go -destination=mock/salary_policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, policy *SalaryPolicy) error
	FindAllByTenant(ctx context.Context, tenantID string, limit, offset int) ([]SalaryPolicy, int64, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*SalaryPolicy, error)
	FindByNameAndTenant(ctx context.Context, tenantID, name string) (*SalaryPolicy, error)
	FindDefaultByTenant(ctx context.Context, tenantID string) (*SalaryPolicy, error)
	Update(ctx context.Context, policy *SalaryPolicy) error
	ClearDefault(ctx context.Context, tenantID string) error
	Deactivate(ctx context.Context, tenantID, id string) error

	CreateAssignment(ctx context.Context, assignment *PolicyAssignment) error
	FindAssignmentByStaff(ctx context.Context, tenantID, staffID string) (*PolicyAssignment, error)
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

func (r *repository) Create(ctx context.Context, policy *SalaryPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string, limit, offset int) ([]SalaryPolicy, int64, error) {
	var policies []SalaryPolicy
	var total int64

	base := r.db.WithContext(ctx).Model(&SalaryPolicy{}).Scopes(tenant.Scope(tenantID))

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&policies).Error

	return policies, total, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*SalaryPolicy, error) {
	var policy SalaryPolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&policy, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) FindByNameAndTenant(ctx context.Context, tenantID, name string) (*SalaryPolicy, error) {
	var policy SalaryPolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&policy, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) FindDefaultByTenant(ctx context.Context, tenantID string) (*SalaryPolicy, error) {
	var policy SalaryPolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&policy, "is_default = ? AND is_active = ?", true, true).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) Update(ctx context.Context, policy *SalaryPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("policy_id = ?", policy.ID).Delete(&SalaryTier{}).Error; err != nil {
			return err
		}
		return tx.Save(policy).Error
	})
}

func (r *repository) ClearDefault(ctx context.Context, tenantID string) error {
	return r.db.WithContext(ctx).
		Model(&SalaryPolicy{}).
		Scopes(tenant.Scope(tenantID)).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func (r *repository) Deactivate(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Model(&SalaryPolicy{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *PolicyAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) FindAssignmentByStaff(ctx context.Context, tenantID, staffID string) (*PolicyAssignment, error) {
	var assignment PolicyAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&assignment, "staff_id = ?", staffID).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
