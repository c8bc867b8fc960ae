package class_test

import (
	"context"
	"testing"
	"time"

	"go-academy/internal/class"
	classerrors "go-academy/internal/class/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeClassRepository struct {
	createFn            func(ctx context.Context, c *class.Class) error
	findAllByTenantFn   func(ctx context.Context, tenantID, staffID string, from, to *time.Time) ([]class.Class, error)
	findByIDAndTenantFn func(ctx context.Context, tenantID, id string) (*class.Class, error)
	updateFn            func(ctx context.Context, c *class.Class) error
	deleteFn            func(ctx context.Context, tenantID, id string) error
}

func (f *fakeClassRepository) Create(ctx context.Context, c *class.Class) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeClassRepository) FindAllByTenant(ctx context.Context, tenantID, staffID string, from, to *time.Time) ([]class.Class, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID, staffID, from, to)
	}
	return nil, nil
}

func (f *fakeClassRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*class.Class, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClassRepository) Update(ctx context.Context, c *class.Class) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeClassRepository) Delete(ctx context.Context, tenantID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, tenantID, id)
	}
	return nil
}

func scheduledClass(tenantID string) *class.Class {
	return &class.Class{
		ID:           uuid.New(),
		TenantID:     uuid.MustParse(tenantID),
		StaffID:      uuid.New(),
		Name:         "Algebra II",
		Subject:      "math",
		TuitionFee:   300_000,
		StudentCount: 12,
		Status:       class.StatusScheduled,
		ScheduledAt:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestClassService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("valid request", func(t *testing.T) {
		var created *class.Class
		repo := &fakeClassRepository{
			createFn: func(ctx context.Context, c *class.Class) error {
				created = c
				return nil
			},
		}
		svc := class.NewService(repo)

		resp, err := svc.Create(ctx, tenantID, class.CreateClassRequest{
			StaffID:      uuid.NewString(),
			Name:         "Algebra II",
			Subject:      "math",
			TuitionFee:   300_000,
			StudentCount: 12,
			ScheduledAt:  "2026-03-10T09:00:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, class.StatusScheduled, created.Status)
		assert.Equal(t, "Algebra II", resp.Name)
		assert.Equal(t, "2026-03-10T09:00:00Z", resp.ScheduledAt)
	})

	t.Run("malformed scheduled_at", func(t *testing.T) {
		svc := class.NewService(&fakeClassRepository{})

		_, err := svc.Create(ctx, tenantID, class.CreateClassRequest{
			StaffID:     uuid.NewString(),
			Name:        "Algebra II",
			ScheduledAt: "2026-03-10",
		})

		assert.ErrorIs(t, err, classerrors.ErrInvalidScheduledAt)
	})
}

func TestClassService_GetAll(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("month filter resolves to a calendar range", func(t *testing.T) {
		repo := &fakeClassRepository{
			findAllByTenantFn: func(ctx context.Context, tenantID, staffID string, from, to *time.Time) ([]class.Class, error) {
				assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *from)
				assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *to)
				return []class.Class{*scheduledClass(tenantID)}, nil
			},
		}
		svc := class.NewService(repo)

		resp, err := svc.GetAll(ctx, tenantID, "", "2026-03")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("no month means no range filter", func(t *testing.T) {
		repo := &fakeClassRepository{
			findAllByTenantFn: func(ctx context.Context, tenantID, staffID string, from, to *time.Time) ([]class.Class, error) {
				assert.Nil(t, from)
				assert.Nil(t, to)
				return nil, nil
			},
		}
		svc := class.NewService(repo)

		_, err := svc.GetAll(ctx, tenantID, "", "")
		assert.NoError(t, err)
	})

	t.Run("malformed month", func(t *testing.T) {
		svc := class.NewService(&fakeClassRepository{})

		_, err := svc.GetAll(ctx, tenantID, "", "March 2026")
		assert.ErrorIs(t, err, classerrors.ErrInvalidScheduledAt)
	})
}

func TestClassService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("complete a scheduled class with a final headcount", func(t *testing.T) {
		existing := scheduledClass(tenantID)
		var updated *class.Class
		repo := &fakeClassRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*class.Class, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, c *class.Class) error {
				updated = c
				return nil
			},
		}
		svc := class.NewService(repo)

		finalCount := 10
		resp, err := svc.Complete(ctx, tenantID, existing.ID.String(), class.CompleteClassRequest{StudentCount: &finalCount})

		assert.NoError(t, err)
		assert.Equal(t, class.StatusCompleted, updated.Status)
		assert.Equal(t, 10, resp.StudentCount)
	})

	t.Run("complete keeps the headcount when none is given", func(t *testing.T) {
		existing := scheduledClass(tenantID)
		repo := &fakeClassRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*class.Class, error) {
				return existing, nil
			},
		}
		svc := class.NewService(repo)

		resp, err := svc.Complete(ctx, tenantID, existing.ID.String(), class.CompleteClassRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 12, resp.StudentCount)
	})

	t.Run("only scheduled classes can be completed", func(t *testing.T) {
		existing := scheduledClass(tenantID)
		existing.Status = class.StatusCancelled
		repo := &fakeClassRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*class.Class, error) {
				return existing, nil
			},
		}
		svc := class.NewService(repo)

		_, err := svc.Complete(ctx, tenantID, existing.ID.String(), class.CompleteClassRequest{})
		assert.ErrorIs(t, err, classerrors.ErrClassNotScheduled)
	})

	t.Run("cancel a scheduled class", func(t *testing.T) {
		existing := scheduledClass(tenantID)
		repo := &fakeClassRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*class.Class, error) {
				return existing, nil
			},
		}
		svc := class.NewService(repo)

		resp, err := svc.Cancel(ctx, tenantID, existing.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, class.StatusCancelled, resp.Status)
	})

	t.Run("cancel a completed class is rejected", func(t *testing.T) {
		existing := scheduledClass(tenantID)
		existing.Status = class.StatusCompleted
		repo := &fakeClassRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*class.Class, error) {
				return existing, nil
			},
		}
		svc := class.NewService(repo)

		_, err := svc.Cancel(ctx, tenantID, existing.ID.String())
		assert.ErrorIs(t, err, classerrors.ErrClassNotScheduled)
	})

	t.Run("unknown class id", func(t *testing.T) {
		svc := class.NewService(&fakeClassRepository{})

		_, err := svc.GetByID(ctx, tenantID, uuid.NewString())
		assert.ErrorIs(t, err, classerrors.ErrClassNotFound)
	})
}
