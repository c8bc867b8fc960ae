package salarymetrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	salarymetricserrors "go-academy/internal/salarymetrics/errors"
	"go-academy/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// estimatedHoursPerClass is used when attendance records are missing and
// hours have to be estimated from completed classes.
const estimatedHoursPerClass = 2.0

//go:generate mockgen -source=salary_metrics_service.go -destination=mock/salary_metrics_service_mock.go -package=mock
type Service interface {
	Collect(ctx context.Context, tenantID, staffID, month string, opts CollectionOptions) (*CollectionResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Collect gathers the period facts for one staff member. Missing data
// sources degrade the data quality and append a warning rather than
// failing the call; only a missing staff record or an unparseable month
// is an error. Nothing is ever substituted silently.
func (s *service) Collect(
	ctx context.Context,
	tenantID, staffID, month string,
	opts CollectionOptions,
) (*CollectionResult, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("salarymetrics")

	from, to, err := monthRange(month)
	if err != nil {
		return nil, salarymetricserrors.ErrInvalidMonth
	}

	exists, err := s.repo.StaffExists(ctx, tenantID, staffID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, salarymetricserrors.ErrStaffNotFound
	}

	metrics := MonthlyMetrics{
		StaffID: staffID,
		Month:   month,
	}
	var warnings []string
	score := 100

	classes, err := s.repo.ClassSummary(ctx, tenantID, staffID, from, to)
	if err != nil {
		if !opts.FallbackToBasicMetrics {
			return nil, salarymetricserrors.ErrMetricsUnavailable
		}
		score -= 30
		warnings = append(warnings, "class records unavailable; revenue and student counts default to zero")
		classes = &ClassSummaryRow{}
	}

	metrics.TotalClasses = classes.TotalClasses
	metrics.CompletedClasses = classes.CompletedClasses
	metrics.CancelledClasses = classes.CancelledClasses
	metrics.TotalRevenue = classes.TotalRevenue
	metrics.TotalStudents = classes.TotalStudents

	if classes.TotalClasses == 0 {
		score -= 30
		warnings = append(warnings, fmt.Sprintf("no class records found for %s; revenue and student counts are zero", month))
	}

	if opts.IncludeAttendance {
		attendance, err := s.repo.AttendanceSummary(ctx, tenantID, staffID, from, to)
		if err != nil {
			if !opts.FallbackToBasicMetrics {
				return nil, salarymetricserrors.ErrMetricsUnavailable
			}
			attendance = &AttendanceSummaryRow{}
		}

		if attendance.RecordedDays == 0 {
			score -= 30
			metrics.RegularHours = float64(metrics.CompletedClasses) * estimatedHoursPerClass
			metrics.TotalHours = metrics.RegularHours
			warnings = append(warnings, fmt.Sprintf("no attendance records for %s; hours estimated from %d completed classes", month, metrics.CompletedClasses))
		} else {
			metrics.TotalHours = attendance.TotalHours
			metrics.RegularHours = attendance.RegularHours
			metrics.OvertimeHours = attendance.OvertimeHours

			if metrics.CompletedClasses > 0 && attendance.RecordedDays < metrics.CompletedClasses {
				score -= 15
				warnings = append(warnings, fmt.Sprintf("attendance covers %d of %d completed classes; hour totals may be low", attendance.RecordedDays, metrics.CompletedClasses))
			}
		}
	} else {
		score -= 20
		metrics.RegularHours = float64(metrics.CompletedClasses) * estimatedHoursPerClass
		metrics.TotalHours = metrics.RegularHours
		warnings = append(warnings, "attendance detail excluded; hours estimated from completed classes")
	}

	if opts.IncludePerformance {
		perf, err := s.repo.PerformanceSummary(ctx, tenantID, staffID, month)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			score -= 10
			warnings = append(warnings, fmt.Sprintf("no performance data for %s; bonus eligibility defaults to false", month))
		} else {
			metrics.BonusEligible = perf.BonusEligible
		}
	}

	adjustments, err := s.repo.ListAdjustments(ctx, tenantID, staffID, month)
	if err != nil {
		return nil, err
	}
	metrics.Adjustments = adjustments

	quality := qualityFromScore(score)
	log.Debug("metrics collected",
		zap.String("staff_id", staffID),
		zap.String("month", month),
		zap.Int("score", score),
		zap.String("data_quality", string(quality)),
		zap.Int("warnings", len(warnings)),
	)

	return &CollectionResult{
		Metrics: metrics,
		Details: CollectionDetails{
			DataQuality: quality,
			Warnings:    warnings,
			CollectedAt: time.Now().UTC(),
		},
	}, nil
}

func qualityFromScore(score int) DataQuality {
	switch {
	case score >= 90:
		return QualityFull
	case score >= 75:
		return QualityPartial
	default:
		return QualityEstimated
	}
}

func monthRange(month string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, 0), nil
}
