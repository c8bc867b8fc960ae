package staff

import (
	"context"
	"database/sql"

	"go-academy/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, member *Staff) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Staff, error)
	FindOptionsByTenant(ctx context.Context, tenantID string) ([]Staff, error)
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Staff, error)
	Update(ctx context.Context, member *Staff) error
	Delete(ctx context.Context, tenantID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, member *Staff) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Staff, error) {
	var members []Staff
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("full_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) FindOptionsByTenant(ctx context.Context, tenantID string) ([]Staff, error) {
	var members []Staff
	err := r.db.WithContext(ctx).
		Select("id", "tenant_id", "staff_number", "full_name", "email", "role", "hire_date", "status").
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", "active").
		Order("full_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Staff, error) {
	var member Staff
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&member, "id = ?", id).Error
	return &member, err
}

func (r *repository) Update(ctx context.Context, member *Staff) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Staff{}, "id = ?", id).Error
}
