package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByStaffAndDate(ctx context.Context, tenantID, staffID string, date time.Time) (*Attendance, error)
	FindAllByTenant(ctx context.Context, tenantID string) ([]Attendance, error)
	FindAllByTenantAndStaff(ctx context.Context, tenantID, staffID string) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByStaffAndDate(ctx context.Context, tenantID, staffID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("staff_id = ?", staffID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("work_date DESC, check_in_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByTenantAndStaff(ctx context.Context, tenantID, staffID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("staff_id = ?", staffID).
		Order("work_date DESC, check_in_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
