package class

import (
	"context"
	"errors"
	"time"

	classerrors "go-academy/internal/class/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=class_service.go -destination=mock/class_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateClassRequest) (*ClassResponse, error)
	GetAll(ctx context.Context, tenantID string, staffID string, month string) ([]ClassResponse, error)
	GetByID(ctx context.Context, tenantID string, id string) (*ClassResponse, error)
	Update(ctx context.Context, tenantID string, id string, req UpdateClassRequest) (*ClassResponse, error)
	Complete(ctx context.Context, tenantID string, id string, req CompleteClassRequest) (*ClassResponse, error)
	Cancel(ctx context.Context, tenantID string, id string) (*ClassResponse, error)
	Delete(ctx context.Context, tenantID string, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("class.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("class.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateClassRequest) (*ClassResponse, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, classerrors.ErrInvalidScheduledAt
	}

	entity := &Class{
		ID:           uuid.New(),
		TenantID:     uuid.MustParse(tenantID),
		StaffID:      uuid.MustParse(req.StaffID),
		Name:         req.Name,
		Subject:      req.Subject,
		TuitionFee:   req.TuitionFee,
		StudentCount: req.StudentCount,
		Status:       StatusScheduled,
		ScheduledAt:  scheduledAt,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		s.logger.Error("failed to create class", zap.Error(err), zap.String("tenant_id", tenantID))
		return nil, err
	}

	s.logger.Info("class created",
		zap.String("class_id", entity.ID.String()),
		zap.String("tenant_id", tenantID),
		zap.String("staff_id", req.StaffID),
	)

	resp := mapToResponse(entity)
	return &resp, nil
}

func (s *service) GetAll(ctx context.Context, tenantID string, staffID string, month string) ([]ClassResponse, error) {
	var from, to *time.Time
	if month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, classerrors.ErrInvalidScheduledAt
		}
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}

	classes, err := s.repo.FindAllByTenant(ctx, tenantID, staffID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]ClassResponse, 0, len(classes))
	for i := range classes {
		resp = append(resp, mapToResponse(&classes[i]))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, tenantID string, id string) (*ClassResponse, error) {
	entity, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(entity)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, tenantID string, id string, req UpdateClassRequest) (*ClassResponse, error) {
	entity, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, classerrors.ErrInvalidScheduledAt
	}

	entity.Name = req.Name
	entity.Subject = req.Subject
	entity.TuitionFee = req.TuitionFee
	entity.StudentCount = req.StudentCount
	entity.ScheduledAt = scheduledAt

	if err := s.repo.Update(ctx, entity); err != nil {
		s.logger.Error("failed to update class", zap.Error(err), zap.String("class_id", id))
		return nil, err
	}

	resp := mapToResponse(entity)
	return &resp, nil
}

func (s *service) Complete(ctx context.Context, tenantID string, id string, req CompleteClassRequest) (*ClassResponse, error) {
	entity, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if entity.Status != StatusScheduled {
		return nil, classerrors.ErrClassNotScheduled
	}

	entity.Status = StatusCompleted
	if req.StudentCount != nil {
		entity.StudentCount = *req.StudentCount
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		s.logger.Error("failed to complete class", zap.Error(err), zap.String("class_id", id))
		return nil, err
	}

	s.logger.Info("class completed",
		zap.String("class_id", id),
		zap.String("tenant_id", tenantID),
		zap.Int("student_count", entity.StudentCount),
	)

	resp := mapToResponse(entity)
	return &resp, nil
}

func (s *service) Cancel(ctx context.Context, tenantID string, id string) (*ClassResponse, error) {
	entity, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if entity.Status != StatusScheduled {
		return nil, classerrors.ErrClassNotScheduled
	}

	entity.Status = StatusCancelled
	if err := s.repo.Update(ctx, entity); err != nil {
		s.logger.Error("failed to cancel class", zap.Error(err), zap.String("class_id", id))
		return nil, err
	}

	resp := mapToResponse(entity)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, tenantID string, id string) error {
	if _, err := s.find(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *service) find(ctx context.Context, tenantID string, id string) (*Class, error) {
	entity, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classerrors.ErrClassNotFound
		}
		return nil, err
	}
	return entity, nil
}

func mapToResponse(entity *Class) ClassResponse {
	return ClassResponse{
		ID:           entity.ID.String(),
		TenantID:     entity.TenantID.String(),
		StaffID:      entity.StaffID.String(),
		Name:         entity.Name,
		Subject:      entity.Subject,
		TuitionFee:   entity.TuitionFee,
		StudentCount: entity.StudentCount,
		Status:       entity.Status,
		ScheduledAt:  entity.ScheduledAt.Format(time.RFC3339),
	}
}
