package staff_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-academy/internal/events"
	"go-academy/internal/messaging/kafka"
	"go-academy/internal/staff"
	stafferrors "go-academy/internal/staff/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStaffRepository struct {
	withTxFn              func(tx *sql.Tx) staff.Repository
	createFn              func(ctx context.Context, member *staff.Staff) error
	findAllByTenantFn     func(ctx context.Context, tenantID string) ([]staff.Staff, error)
	findOptionsByTenantFn func(ctx context.Context, tenantID string) ([]staff.Staff, error)
	findByIDAndTenantFn   func(ctx context.Context, tenantID, id string) (*staff.Staff, error)
	updateFn              func(ctx context.Context, member *staff.Staff) error
	deleteFn              func(ctx context.Context, tenantID, id string) error
}

func (f *fakeStaffRepository) WithTx(tx *sql.Tx) staff.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeStaffRepository) Create(ctx context.Context, member *staff.Staff) error {
	if f.createFn != nil {
		return f.createFn(ctx, member)
	}
	return nil
}

func (f *fakeStaffRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]staff.Staff, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeStaffRepository) FindOptionsByTenant(ctx context.Context, tenantID string) ([]staff.Staff, error) {
	if f.findOptionsByTenantFn != nil {
		return f.findOptionsByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeStaffRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*staff.Staff, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStaffRepository) Update(ctx context.Context, member *staff.Staff) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, member)
	}
	return nil
}

func (f *fakeStaffRepository) Delete(ctx context.Context, tenantID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, tenantID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, tenantID, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, tenantID, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, tenantID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	withTxFn   func(tx *sql.Tx) kafka.OutboxRepository
	createFn   func(ctx context.Context, event kafka.OutboxEvent) error
	listFn     func(ctx context.Context, limit int) ([]kafka.OutboxEvent, error)
	markSentFn func(ctx context.Context, id string) error
	markFailFn func(ctx context.Context, id, reason string) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	if f.markSentFn != nil {
		return f.markSentFn(ctx, id)
	}
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, reason string) error {
	if f.markFailFn != nil {
		return f.markFailFn(ctx, id, reason)
	}
	return nil
}

func validCreateRequest() staff.CreateStaffRequest {
	return staff.CreateStaffRequest{
		FullName: "Kim Jiwon",
		Email:    "jiwon.kim@academy.test",
		Phone:    "010-1234-5678",
		Role:     "instructor",
		HireDate: "2025-09-01",
	}
}

func TestStaffService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("generates a staff number and writes the outbox event in one tx", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(staff.GetStaffOptionsKey(tenantID)).SetVal(1)

		var created *staff.Staff
		repo := &fakeStaffRepository{
			createFn: func(ctx context.Context, member *staff.Staff) error {
				created = member
				return nil
			},
		}
		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, tenantID, counterType string) (int64, error) {
				assert.Equal(t, "staff_number", counterType)
				return 42, nil
			},
		}
		var enqueued *kafka.OutboxEvent
		outboxRepo := &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				enqueued = &event
				return nil
			},
		}

		svc := staff.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo, rdb)

		resp, err := svc.Create(ctx, tenantID, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, "STF-000042", resp.StaffNumber)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, created.ID.String(), resp.ID)

		assert.NotNil(t, enqueued)
		assert.Equal(t, "staff", enqueued.AggregateType)
		assert.Equal(t, created.ID.String(), enqueued.AggregateID)
		assert.Equal(t, events.StaffCreatedTopic, enqueued.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, enqueued.Status)

		var event events.StaffCreatedEvent
		assert.NoError(t, json.Unmarshal(enqueued.Payload, &event))
		assert.Equal(t, created.ID.String(), event.StaffID)
		assert.Equal(t, tenantID, event.TenantID)

		assert.NoError(t, dbMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("explicit staff number is kept", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, tenantID, counterType string) (int64, error) {
				t.Fatal("counter must not be consumed when a staff number is provided")
				return 0, nil
			},
		}

		svc := staff.NewServiceWithOutbox(db, &fakeStaffRepository{}, counterRepo, nil, nil)

		req := validCreateRequest()
		req.StaffNumber = "STF-CUSTOM-1"
		resp, err := svc.Create(ctx, tenantID, req)

		assert.NoError(t, err)
		assert.Equal(t, "STF-CUSTOM-1", resp.StaffNumber)
	})

	t.Run("invalid hire date", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := staff.NewServiceWithOutbox(db, &fakeStaffRepository{}, &fakeCounterRepository{}, nil, nil)

		req := validCreateRequest()
		req.HireDate = "01-09-2025"
		_, err = svc.Create(ctx, tenantID, req)

		assert.ErrorIs(t, err, stafferrors.ErrInvalidHireDate)
	})
}

func TestStaffService_GetOptions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	cacheKey := staff.GetStaffOptionsKey(tenantID)

	member := staff.Staff{
		ID:          uuid.New(),
		TenantID:    uuid.MustParse(tenantID),
		StaffNumber: "STF-000001",
		FullName:    "Kim Jiwon",
		Email:       "jiwon.kim@academy.test",
		Role:        "instructor",
		HireDate:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:      "active",
	}

	t.Run("cache miss falls through to the repository and fills the cache", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

		repo := &fakeStaffRepository{
			findOptionsByTenantFn: func(ctx context.Context, tenantID string) ([]staff.Staff, error) {
				return []staff.Staff{member}, nil
			},
		}

		svc := staff.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, nil, rdb)

		resp, err := svc.GetOptions(ctx, tenantID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "STF-000001", resp[0].StaffNumber)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit never touches the repository", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		cached, err := json.Marshal([]staff.StaffResponse{{ID: member.ID.String(), FullName: member.FullName}})
		assert.NoError(t, err)

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).SetVal(string(cached))

		repo := &fakeStaffRepository{
			findOptionsByTenantFn: func(ctx context.Context, tenantID string) ([]staff.Staff, error) {
				t.Fatal("repository must not be queried on a cache hit")
				return nil, nil
			},
		}

		svc := staff.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, nil, rdb)

		resp, err := svc.GetOptions(ctx, tenantID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Kim Jiwon", resp[0].FullName)
	})
}

func TestStaffService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("existing member", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		existing := &staff.Staff{
			ID:          uuid.New(),
			TenantID:    uuid.MustParse(tenantID),
			StaffNumber: "STF-000007",
			FullName:    "Kim Jiwon",
			Email:       "jiwon.kim@academy.test",
			Role:        "instructor",
			HireDate:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Status:      "active",
		}
		repo := &fakeStaffRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*staff.Staff, error) {
				return existing, nil
			},
		}

		svc := staff.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, nil, nil)

		req := staff.UpdateStaffRequest{
			FullName: "Kim Jiwon",
			Email:    "jiwon.kim@academy.test",
			Role:     "manager",
			HireDate: "2025-09-01",
		}
		resp, err := svc.Update(ctx, tenantID, existing.ID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
		assert.Equal(t, "STF-000007", resp.StaffNumber)
	})

	t.Run("unknown member", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		svc := staff.NewServiceWithOutbox(db, &fakeStaffRepository{}, &fakeCounterRepository{}, nil, nil)

		req := staff.UpdateStaffRequest{
			FullName: "Kim Jiwon",
			Email:    "jiwon.kim@academy.test",
			Role:     "instructor",
			HireDate: "2025-09-01",
		}
		_, err = svc.Update(ctx, tenantID, uuid.NewString(), req)

		assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
	})
}

func TestStaffService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel(staff.GetStaffOptionsKey(tenantID)).SetVal(1)

	var deletedID string
	repo := &fakeStaffRepository{
		deleteFn: func(ctx context.Context, tenantID, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := staff.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, nil, rdb)

	id := uuid.NewString()
	assert.NoError(t, svc.Delete(ctx, tenantID, id))
	assert.Equal(t, id, deletedID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
