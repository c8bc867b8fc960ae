package salarypolicy_test

import (
	"context"
	"database/sql"
	"testing"

	"go-academy/internal/salarypolicy"
	salarypolicyerrors "go-academy/internal/salarypolicy/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePolicyRepository struct {
	withTxFn                func(tx *sql.Tx) salarypolicy.Repository
	createFn                func(ctx context.Context, policy *salarypolicy.SalaryPolicy) error
	findAllByTenantFn       func(ctx context.Context, tenantID string, limit, offset int) ([]salarypolicy.SalaryPolicy, int64, error)
	findByIDAndTenantFn     func(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error)
	findByNameAndTenantFn   func(ctx context.Context, tenantID, name string) (*salarypolicy.SalaryPolicy, error)
	findDefaultByTenantFn   func(ctx context.Context, tenantID string) (*salarypolicy.SalaryPolicy, error)
	updateFn                func(ctx context.Context, policy *salarypolicy.SalaryPolicy) error
	clearDefaultFn          func(ctx context.Context, tenantID string) error
	deactivateFn            func(ctx context.Context, tenantID, id string) error
	createAssignmentFn      func(ctx context.Context, assignment *salarypolicy.PolicyAssignment) error
	findAssignmentByStaffFn func(ctx context.Context, tenantID, staffID string) (*salarypolicy.PolicyAssignment, error)
}

func (f *fakePolicyRepository) WithTx(tx *sql.Tx) salarypolicy.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePolicyRepository) Create(ctx context.Context, policy *salarypolicy.SalaryPolicy) error {
	if f.createFn != nil {
		return f.createFn(ctx, policy)
	}
	return nil
}

func (f *fakePolicyRepository) FindAllByTenant(ctx context.Context, tenantID string, limit, offset int) ([]salarypolicy.SalaryPolicy, int64, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakePolicyRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) FindByNameAndTenant(ctx context.Context, tenantID, name string) (*salarypolicy.SalaryPolicy, error) {
	if f.findByNameAndTenantFn != nil {
		return f.findByNameAndTenantFn(ctx, tenantID, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) FindDefaultByTenant(ctx context.Context, tenantID string) (*salarypolicy.SalaryPolicy, error) {
	if f.findDefaultByTenantFn != nil {
		return f.findDefaultByTenantFn(ctx, tenantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) Update(ctx context.Context, policy *salarypolicy.SalaryPolicy) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, policy)
	}
	return nil
}

func (f *fakePolicyRepository) ClearDefault(ctx context.Context, tenantID string) error {
	if f.clearDefaultFn != nil {
		return f.clearDefaultFn(ctx, tenantID)
	}
	return nil
}

func (f *fakePolicyRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	if f.deactivateFn != nil {
		return f.deactivateFn(ctx, tenantID, id)
	}
	return nil
}

func (f *fakePolicyRepository) CreateAssignment(ctx context.Context, assignment *salarypolicy.PolicyAssignment) error {
	if f.createAssignmentFn != nil {
		return f.createAssignmentFn(ctx, assignment)
	}
	return nil
}

func (f *fakePolicyRepository) FindAssignmentByStaff(ctx context.Context, tenantID, staffID string) (*salarypolicy.PolicyAssignment, error) {
	if f.findAssignmentByStaffFn != nil {
		return f.findAssignmentByStaffFn(ctx, tenantID, staffID)
	}
	return nil, gorm.ErrRecordNotFound
}

func setupPolicyService(t *testing.T, repo *fakePolicyRepository) (salarypolicy.Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return salarypolicy.NewService(db, repo), mock, func() { db.Close() }
}

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestPolicyService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("valid policy is persisted", func(t *testing.T) {
		var created *salarypolicy.SalaryPolicy
		repo := &fakePolicyRepository{
			createFn: func(ctx context.Context, policy *salarypolicy.SalaryPolicy) error {
				created = policy
				return nil
			},
		}
		svc, mock, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(ctx, tenantID, salarypolicy.CreatePolicyRequest{
			Name:            "Instructor commission",
			Type:            "commission",
			CommissionRate:  float64Ptr(10),
			CommissionBasis: strPtr("revenue"),
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, created.IsActive)
		assert.Equal(t, "commission", resp.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid parameters never reach the repository", func(t *testing.T) {
		repo := &fakePolicyRepository{
			createFn: func(ctx context.Context, policy *salarypolicy.SalaryPolicy) error {
				t.Fatal("create must not be called")
				return nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		_, err := svc.Create(ctx, tenantID, salarypolicy.CreatePolicyRequest{
			Name:           "broken",
			Type:           "commission",
			CommissionRate: float64Ptr(150),
		})

		assert.Error(t, err)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findByNameAndTenantFn: func(ctx context.Context, tenantID, name string) (*salarypolicy.SalaryPolicy, error) {
				return &salarypolicy.SalaryPolicy{ID: uuid.New(), Name: name}, nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		_, err := svc.Create(ctx, tenantID, salarypolicy.CreatePolicyRequest{
			Name:       "Standard monthly",
			Type:       "fixed_monthly",
			BaseAmount: int64Ptr(3_000_000),
		})

		assert.ErrorIs(t, err, salarypolicyerrors.ErrPolicyNameAlreadyExists)
	})

	t.Run("new default clears the previous one in the same transaction", func(t *testing.T) {
		cleared := false
		repo := &fakePolicyRepository{
			clearDefaultFn: func(ctx context.Context, tenantID string) error {
				cleared = true
				return nil
			},
		}
		svc, mock, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectCommit()

		_, err := svc.Create(ctx, tenantID, salarypolicy.CreatePolicyRequest{
			Name:       "Default monthly",
			Type:       "fixed_monthly",
			BaseAmount: int64Ptr(3_000_000),
			IsDefault:  true,
		})

		assert.NoError(t, err)
		assert.True(t, cleared)
	})
}

func TestPolicyService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	policyID := uuid.New()

	existing := func() *salarypolicy.SalaryPolicy {
		base := int64(3_000_000)
		return &salarypolicy.SalaryPolicy{
			ID:         policyID,
			TenantID:   uuid.MustParse(tenantID),
			Name:       "Standard monthly",
			Type:       salarypolicy.PolicyFixedMonthly,
			IsActive:   true,
			BaseAmount: &base,
		}
	}

	t.Run("not found", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		_, err := svc.Update(ctx, tenantID, policyID.String(), salarypolicy.UpdatePolicyRequest{
			Name:       "renamed",
			BaseAmount: int64Ptr(3_500_000),
		})

		assert.ErrorIs(t, err, salarypolicyerrors.ErrPolicyNotFound)
	})

	t.Run("renaming to an existing name is rejected", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error) {
				return existing(), nil
			},
			findByNameAndTenantFn: func(ctx context.Context, tenantID, name string) (*salarypolicy.SalaryPolicy, error) {
				return &salarypolicy.SalaryPolicy{ID: uuid.New(), Name: name}, nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		_, err := svc.Update(ctx, tenantID, policyID.String(), salarypolicy.UpdatePolicyRequest{
			Name:       "Taken name",
			BaseAmount: int64Ptr(3_500_000),
		})

		assert.ErrorIs(t, err, salarypolicyerrors.ErrPolicyNameAlreadyExists)
	})

	t.Run("keeping own name is allowed", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error) {
				return existing(), nil
			},
			findByNameAndTenantFn: func(ctx context.Context, tenantID, name string) (*salarypolicy.SalaryPolicy, error) {
				return existing(), nil
			},
		}
		svc, mock, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Update(ctx, tenantID, policyID.String(), salarypolicy.UpdatePolicyRequest{
			Name:       "Standard monthly",
			BaseAmount: int64Ptr(3_500_000),
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3_500_000), *resp.BaseAmount)
	})
}

func TestPolicyService_Deactivate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	policyID := uuid.NewString()

	t.Run("existing policy is deactivated", func(t *testing.T) {
		deactivated := false
		repo := &fakePolicyRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error) {
				return &salarypolicy.SalaryPolicy{ID: uuid.MustParse(policyID)}, nil
			},
			deactivateFn: func(ctx context.Context, tenantID, id string) error {
				deactivated = true
				return nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		assert.NoError(t, svc.Deactivate(ctx, tenantID, policyID))
		assert.True(t, deactivated)
	})

	t.Run("unknown policy", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		err := svc.Deactivate(ctx, tenantID, policyID)
		assert.ErrorIs(t, err, salarypolicyerrors.ErrPolicyNotFound)
	})
}

func TestPolicyService_AssignDefault(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	staffID := uuid.NewString()
	defaultPolicyID := uuid.New()

	t.Run("assigns the tenant default", func(t *testing.T) {
		var saved *salarypolicy.PolicyAssignment
		repo := &fakePolicyRepository{
			findDefaultByTenantFn: func(ctx context.Context, tenantID string) (*salarypolicy.SalaryPolicy, error) {
				return &salarypolicy.SalaryPolicy{ID: defaultPolicyID, IsDefault: true, IsActive: true}, nil
			},
			createAssignmentFn: func(ctx context.Context, assignment *salarypolicy.PolicyAssignment) error {
				saved = assignment
				return nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		resp, err := svc.AssignDefault(ctx, tenantID, staffID)

		assert.NoError(t, err)
		assert.Equal(t, defaultPolicyID.String(), resp.PolicyID)
		assert.Equal(t, staffID, saved.StaffID.String())
	})

	t.Run("no default configured", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		_, err := svc.AssignDefault(ctx, tenantID, staffID)
		assert.ErrorIs(t, err, salarypolicyerrors.ErrNoDefaultPolicy)
	})
}

func TestPolicyService_ResolveForStaff(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	staffID := uuid.NewString()
	policyID := uuid.New()

	t.Run("explicit policy id wins", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error) {
				assert.Equal(t, policyID.String(), id)
				return &salarypolicy.SalaryPolicy{ID: policyID}, nil
			},
			findAssignmentByStaffFn: func(ctx context.Context, tenantID, staffID string) (*salarypolicy.PolicyAssignment, error) {
				t.Fatal("assignment lookup must not run when a policy id is given")
				return nil, nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		policy, err := svc.ResolveForStaff(ctx, tenantID, staffID, policyID.String())

		assert.NoError(t, err)
		assert.Equal(t, policyID, policy.ID)
	})

	t.Run("falls back to the staff assignment", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findAssignmentByStaffFn: func(ctx context.Context, tenantID, staffID string) (*salarypolicy.PolicyAssignment, error) {
				return &salarypolicy.PolicyAssignment{PolicyID: policyID}, nil
			},
			findByIDAndTenantFn: func(ctx context.Context, tenantID, id string) (*salarypolicy.SalaryPolicy, error) {
				return &salarypolicy.SalaryPolicy{ID: policyID}, nil
			},
		}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		policy, err := svc.ResolveForStaff(ctx, tenantID, staffID, "")

		assert.NoError(t, err)
		assert.Equal(t, policyID, policy.ID)
	})

	t.Run("no assignment", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		svc, _, cleanup := setupPolicyService(t, repo)
		defer cleanup()

		_, err := svc.ResolveForStaff(ctx, tenantID, staffID, "")
		assert.ErrorIs(t, err, salarypolicyerrors.ErrNoPolicyForStaff)
	})
}
