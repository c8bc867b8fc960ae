package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	attendanceerrors "go-academy/internal/attendance/errors"
	"go-academy/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hours past this daily threshold count as overtime.
const regularHoursPerDay = 8.0

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, tenantID, staffID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, tenantID, staffID string, req CheckOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, tenantID, actorID string, canReadAll bool) ([]AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) CheckIn(ctx context.Context, tenantID, staffID string, req CheckInRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByStaffAndDate(ctx, tenantID, staffID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:        uuid.New(),
		TenantID:  uuid.MustParse(tenantID),
		StaffID:   uuid.MustParse(staffID),
		WorkDate:  today,
		CheckInAt: now,
		Notes:     req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, tenantID, staffID string, req CheckOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByStaffAndDate(ctx, tenantID, staffID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoOpenAttendance
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOutAt != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOutAt = &now
	row.RegularHours, row.OvertimeHours = splitHours(row.CheckInAt, now)
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, tenantID, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByTenant(ctx, tenantID)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, apperror.New(apperror.CodeInvalidInput, "invalid actor id", 400)
		}
		rows, err = s.repo.FindAllByTenantAndStaff(ctx, tenantID, actorID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func splitHours(checkIn, checkOut time.Time) (regular, overtime float64) {
	worked := checkOut.Sub(checkIn).Hours()
	if worked <= 0 {
		return 0, 0
	}
	regular = worked
	if worked > regularHoursPerDay {
		regular = regularHoursPerDay
		overtime = worked - regularHoursPerDay
	}
	return roundHours(regular), roundHours(overtime)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID.String(),
		TenantID:      a.TenantID.String(),
		StaffID:       a.StaffID.String(),
		WorkDate:      a.WorkDate.Format("2006-01-02"),
		CheckInAt:     a.CheckInAt.Format(time.RFC3339),
		RegularHours:  a.RegularHours,
		OvertimeHours: a.OvertimeHours,
		Notes:         a.Notes,
	}
	if a.CheckOutAt != nil {
		v := a.CheckOutAt.Format(time.RFC3339)
		resp.CheckOutAt = &v
	}
	return resp
}
