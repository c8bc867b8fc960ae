package class

import (
	"context"
	"time"

	"go-academy/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=class_repo.go -destination=mock/class_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Class) error
	FindAllByTenant(ctx context.Context, tenantID string, staffID string, from, to *time.Time) ([]Class, error)
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Class, error)
	Update(ctx context.Context, c *Class) error
	Delete(ctx context.Context, tenantID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Class) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string, staffID string, from, to *time.Time) ([]Class, error) {
	var classes []Class
	query := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if from != nil {
		query = query.Where("scheduled_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("scheduled_at < ?", *to)
	}
	err := query.Order("scheduled_at DESC").Find(&classes).Error
	return classes, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Class, error) {
	var c Class
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Class) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Class{}, "id = ?", id).Error
}
