package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-academy/internal/events"
	"go-academy/internal/messaging/kafka"
	"go-academy/internal/shared/contextutil"
	"go-academy/internal/shared/counter"
	stafferrors "go-academy/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const StaffOptionsKeyPrefix = "staff:options:"

func GetStaffOptionsKey(tenantID string) string {
	return StaffOptionsKeyPrefix + tenantID
}

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]StaffResponse, error)
	GetOptions(ctx context.Context, tenantID string) ([]StaffResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (StaffResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreateStaffRequest,
) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create staff requested",
		zap.String("request_id", rid),
		zap.String("tenant_id", tenantID),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create staff begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.StaffNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, tenantID, "staff_number")
		if err != nil {
			s.logger.Error("create staff generate number failed", zap.Error(err))
			return StaffResponse{}, err
		}
		req.StaffNumber = fmt.Sprintf("STF-%06d", nextVal)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	member := &Staff{
		ID:          uuid.New(),
		TenantID:    uuid.MustParse(tenantID),
		StaffNumber: req.StaffNumber,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		HireDate:    hireDate,
		Status:      status,
	}

	if err := qtx.Create(ctx, member); err != nil {
		s.logger.Error("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.StaffCreatedEvent{
			EventType:  "staff_created",
			StaffID:    member.ID.String(),
			TenantID:   tenantID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return StaffResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "staff",
			AggregateID:   member.ID.String(),
			EventType:     event.EventType,
			Topic:         events.StaffCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create staff outbox persist failed",
				zap.String("staff_id", member.ID.String()),
				zap.Error(err),
			)
			return StaffResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx, tenantID)

	s.logger.Info("create staff success",
		zap.String("request_id", rid),
		zap.String("staff_id", member.ID.String()),
	)

	return mapToResponse(*member), nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID string,
) ([]StaffResponse, error) {
	members, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("get all staff failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(members), nil
}

func (s *service) GetOptions(ctx context.Context, tenantID string) ([]StaffResponse, error) {
	cacheKey := GetStaffOptionsKey(tenantID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []StaffResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when a form with a staff
	// picker is opened by many admins at once.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		members, err := s.repo.FindOptionsByTenant(ctx, tenantID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(members)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]StaffResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (StaffResponse, error) {
	member, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("get staff by id failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*member), nil
}

func (s *service) Update(
	ctx context.Context,
	tenantID, id string,
	req UpdateStaffRequest,
) (StaffResponse, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update staff begin tx failed", zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	member, err := qtx.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("update staff fetch existing failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	member.FullName = req.FullName
	member.Email = req.Email
	member.Phone = req.Phone
	member.Role = req.Role
	member.HireDate = hireDate
	if req.StaffNumber != "" {
		member.StaffNumber = req.StaffNumber
	}
	if req.Status != "" {
		member.Status = req.Status
	}

	if err := qtx.Update(ctx, member); err != nil {
		s.logger.Error("update staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update staff commit failed", zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx, tenantID)

	s.logger.Info("update staff success", zap.String("staff_id", id))

	return mapToResponse(*member), nil
}

func (s *service) Delete(
	ctx context.Context,
	tenantID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete staff begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("delete staff failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete staff commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx, tenantID)

	s.logger.Info("delete staff success", zap.String("staff_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, tenantID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetStaffOptionsKey(tenantID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate staff options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(member Staff) StaffResponse {
	return StaffResponse{
		ID:          member.ID.String(),
		TenantID:    member.TenantID.String(),
		StaffNumber: member.StaffNumber,
		FullName:    member.FullName,
		Email:       member.Email,
		Phone:       member.Phone,
		Role:        member.Role,
		HireDate:    member.HireDate.Format("2006-01-02"),
		Status:      member.Status,
	}
}

func mapToListResponse(members []Staff) []StaffResponse {
	res := make([]StaffResponse, len(members))
	for i, m := range members {
		res[i] = mapToResponse(m)
	}
	return res
}
