package salarymetrics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ClassSummaryRow struct {
	TotalClasses     int
	CompletedClasses int
	CancelledClasses int
	TotalRevenue     int64
	TotalStudents    int
}

type AttendanceSummaryRow struct {
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
	RecordedDays  int
}

type PerformanceRow struct {
	BonusEligible  bool
	AttendanceRate float64
}

//go:generate mockgen -source=salary_metrics_repo.go -destination=mock/salary_metrics_repo_mock.go -package=mock
type Repository interface {
	StaffExists(ctx context.Context, tenantID, staffID string) (bool, error)
	ClassSummary(ctx context.Context, tenantID, staffID string, from, to time.Time) (*ClassSummaryRow, error)
	AttendanceSummary(ctx context.Context, tenantID, staffID string, from, to time.Time) (*AttendanceSummaryRow, error)
	PerformanceSummary(ctx context.Context, tenantID, staffID, month string) (*PerformanceRow, error)
	ListAdjustments(ctx context.Context, tenantID, staffID, month string) ([]Adjustment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) StaffExists(ctx context.Context, tenantID, staffID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("staff").
		Where("tenant_id = ? AND id = ?", tenantID, staffID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ClassSummary(ctx context.Context, tenantID, staffID string, from, to time.Time) (*ClassSummaryRow, error) {
	var row ClassSummaryRow
	query := `
SELECT
	COUNT(*) AS total_classes,
	COUNT(*) FILTER (WHERE status = 'completed') AS completed_classes,
	COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_classes,
	COALESCE(SUM(tuition_fee * student_count) FILTER (WHERE status = 'completed'), 0) AS total_revenue,
	COALESCE(SUM(student_count) FILTER (WHERE status = 'completed'), 0) AS total_students
FROM classes
WHERE tenant_id = ?
	AND staff_id = ?
	AND scheduled_at >= ?
	AND scheduled_at < ?
`
	err := r.db.WithContext(ctx).Raw(query, tenantID, staffID, from, to).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) AttendanceSummary(ctx context.Context, tenantID, staffID string, from, to time.Time) (*AttendanceSummaryRow, error) {
	var row AttendanceSummaryRow
	query := `
SELECT
	COALESCE(SUM(regular_hours + overtime_hours), 0) AS total_hours,
	COALESCE(SUM(regular_hours), 0) AS regular_hours,
	COALESCE(SUM(overtime_hours), 0) AS overtime_hours,
	COUNT(*) AS recorded_days
FROM attendances
WHERE tenant_id = ?
	AND staff_id = ?
	AND work_date >= ?
	AND work_date < ?
	AND check_out_at IS NOT NULL
`
	err := r.db.WithContext(ctx).Raw(query, tenantID, staffID, from, to).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) PerformanceSummary(ctx context.Context, tenantID, staffID, month string) (*PerformanceRow, error) {
	var row PerformanceRow
	err := r.db.WithContext(ctx).
		Table("staff_performance").
		Select("bonus_eligible, attendance_rate").
		Where("tenant_id = ? AND staff_id = ? AND month = ?", tenantID, staffID, month).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListAdjustments(ctx context.Context, tenantID, staffID, month string) ([]Adjustment, error) {
	var rows []Adjustment
	query := `
SELECT
	name,
	adjustment_type AS type,
	amount,
	percentage,
	taxable
FROM salary_adjustments
WHERE tenant_id = ?
	AND staff_id = ?
	AND month = ?
ORDER BY created_at ASC
`
	err := r.db.WithContext(ctx).Raw(query, tenantID, staffID, month).Scan(&rows).Error
	return rows, err
}
