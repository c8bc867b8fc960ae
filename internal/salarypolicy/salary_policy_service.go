package salarypolicy

import (
	"context"
	"database/sql"
	"errors"

	salarypolicyerrors "go-academy/internal/salarypolicy/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_policy_service.go -destination=mock/salary_policy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreatePolicyRequest) (PolicyResponse, error)
	GetAll(ctx context.Context, tenantID string, page, pageSize int) ([]PolicyResponse, int64, error)
	GetByID(ctx context.Context, tenantID, id string) (PolicyResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	Deactivate(ctx context.Context, tenantID, id string) error

	AssignDefault(ctx context.Context, tenantID, staffID string) (AssignmentResponse, error)
	ResolveForStaff(ctx context.Context, tenantID, staffID, policyID string) (*SalaryPolicy, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreatePolicyRequest,
) (PolicyResponse, error) {
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return PolicyResponse{}, err
	}

	policy := entityFromCreate(tenantUUID, req)
	if err := validatePolicy(policy); err != nil {
		return PolicyResponse{}, err
	}

	if err := s.checkNameAvailable(ctx, tenantID, req.Name, ""); err != nil {
		return PolicyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if policy.IsDefault {
		if err := qtx.ClearDefault(ctx, tenantID); err != nil {
			return PolicyResponse{}, err
		}
	}

	if err := qtx.Create(ctx, policy); err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PolicyResponse{}, err
	}

	return mapToResponse(*policy), nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID string,
	page, pageSize int,
) ([]PolicyResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	policies, total, err := s.repo.FindAllByTenant(ctx, tenantID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}

	res := make([]PolicyResponse, len(policies))
	for i, policy := range policies {
		res[i] = mapToResponse(policy)
	}
	return res, total, nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (PolicyResponse, error) {
	policy, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*policy), nil
}

func (s *service) Update(
	ctx context.Context,
	tenantID, id string,
	req UpdatePolicyRequest,
) (PolicyResponse, error) {
	existing, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}

	applyUpdate(existing, req)
	if err := validatePolicy(existing); err != nil {
		return PolicyResponse{}, err
	}

	if err := s.checkNameAvailable(ctx, tenantID, existing.Name, id); err != nil {
		return PolicyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if existing.IsDefault {
		if err := qtx.ClearDefault(ctx, tenantID); err != nil {
			return PolicyResponse{}, err
		}
	}

	if err := qtx.Update(ctx, existing); err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PolicyResponse{}, err
	}

	return mapToResponse(*existing), nil
}

// Deactivate flips the activation flag; policies are never physically
// deleted because calculation results keep referencing them.
func (s *service) Deactivate(
	ctx context.Context,
	tenantID, id string,
) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) AssignDefault(
	ctx context.Context,
	tenantID, staffID string,
) (AssignmentResponse, error) {
	def, err := s.repo.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, salarypolicyerrors.ErrNoDefaultPolicy
		}
		return AssignmentResponse{}, err
	}

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	staffUUID, err := uuid.Parse(staffID)
	if err != nil {
		return AssignmentResponse{}, err
	}

	assignment := &PolicyAssignment{
		ID:       uuid.New(),
		TenantID: tenantUUID,
		StaffID:  staffUUID,
		PolicyID: def.ID,
	}

	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	return AssignmentResponse{
		ID:       assignment.ID.String(),
		StaffID:  assignment.StaffID.String(),
		PolicyID: assignment.PolicyID.String(),
	}, nil
}

// ResolveForStaff returns the policy to evaluate for a calculation
// request: the explicitly named one, or the staff member's assignment
// when policyID is empty. Cross-tenant reads fail closed as not found.
func (s *service) ResolveForStaff(
	ctx context.Context,
	tenantID, staffID, policyID string,
) (*SalaryPolicy, error) {
	if policyID != "" {
		policy, err := s.repo.FindByIDAndTenant(ctx, tenantID, policyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		return policy, nil
	}

	assignment, err := s.repo.FindAssignmentByStaff(ctx, tenantID, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salarypolicyerrors.ErrNoPolicyForStaff
		}
		return nil, err
	}

	policy, err := s.repo.FindByIDAndTenant(ctx, tenantID, assignment.PolicyID.String())
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return policy, nil
}

func (s *service) checkNameAvailable(ctx context.Context, tenantID, name, selfID string) error {
	existing, err := s.repo.FindByNameAndTenant(ctx, tenantID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if selfID != "" && existing.ID.String() == selfID {
		return nil
	}
	return salarypolicyerrors.ErrPolicyNameAlreadyExists
}

func entityFromCreate(tenantID uuid.UUID, req CreatePolicyRequest) *SalaryPolicy {
	policy := &SalaryPolicy{
		ID:                   uuid.New(),
		TenantID:             tenantID,
		Name:                 req.Name,
		Type:                 PolicyType(req.Type),
		IsActive:             true,
		IsDefault:            req.IsDefault,
		BaseAmount:           req.BaseAmount,
		HourlyRate:           req.HourlyRate,
		CommissionRate:       req.CommissionRate,
		StudentRate:          req.StudentRate,
		MinStudents:          req.MinStudents,
		MaxStudents:          req.MaxStudents,
		PerformanceThreshold: req.PerformanceThreshold,
		MinimumGuaranteed:    req.MinimumGuaranteed,
		MaximumAmount:        req.MaximumAmount,
	}

	if req.CommissionBasis != nil {
		basis := CommissionBasis(*req.CommissionBasis)
		policy.CommissionBasis = &basis
	}

	policy.Tiers = tiersFromInput(policy.ID, req.Tiers)
	return policy
}

func applyUpdate(policy *SalaryPolicy, req UpdatePolicyRequest) {
	policy.Name = req.Name
	if req.IsActive != nil {
		policy.IsActive = *req.IsActive
	}
	if req.IsDefault != nil {
		policy.IsDefault = *req.IsDefault
	}

	policy.BaseAmount = req.BaseAmount
	policy.HourlyRate = req.HourlyRate
	policy.CommissionRate = req.CommissionRate
	policy.StudentRate = req.StudentRate
	policy.MinStudents = req.MinStudents
	policy.MaxStudents = req.MaxStudents
	policy.PerformanceThreshold = req.PerformanceThreshold
	policy.MinimumGuaranteed = req.MinimumGuaranteed
	policy.MaximumAmount = req.MaximumAmount

	policy.CommissionBasis = nil
	if req.CommissionBasis != nil {
		basis := CommissionBasis(*req.CommissionBasis)
		policy.CommissionBasis = &basis
	}

	policy.Tiers = tiersFromInput(policy.ID, req.Tiers)
}

func tiersFromInput(policyID uuid.UUID, inputs []TierInput) []SalaryTier {
	if len(inputs) == 0 {
		return nil
	}
	tiers := make([]SalaryTier, len(inputs))
	for i, in := range inputs {
		tiers[i] = SalaryTier{
			ID:             uuid.New(),
			PolicyID:       policyID,
			MinAmount:      in.MinAmount,
			MaxAmount:      in.MaxAmount,
			CommissionRate: in.CommissionRate,
			Position:       i + 1,
		}
	}
	return tiers
}

func mapToResponse(policy SalaryPolicy) PolicyResponse {
	res := PolicyResponse{
		ID:                   policy.ID.String(),
		Name:                 policy.Name,
		Type:                 string(policy.Type),
		IsActive:             policy.IsActive,
		IsDefault:            policy.IsDefault,
		BaseAmount:           policy.BaseAmount,
		HourlyRate:           policy.HourlyRate,
		CommissionRate:       policy.CommissionRate,
		StudentRate:          policy.StudentRate,
		MinStudents:          policy.MinStudents,
		MaxStudents:          policy.MaxStudents,
		PerformanceThreshold: policy.PerformanceThreshold,
		MinimumGuaranteed:    policy.MinimumGuaranteed,
		MaximumAmount:        policy.MaximumAmount,
		CreatedAt:            policy.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:            policy.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if policy.CommissionBasis != nil {
		basis := string(*policy.CommissionBasis)
		res.CommissionBasis = &basis
	}

	for _, tier := range policy.Tiers {
		res.Tiers = append(res.Tiers, TierResponse{
			MinAmount:      tier.MinAmount,
			MaxAmount:      tier.MaxAmount,
			CommissionRate: tier.CommissionRate,
		})
	}

	return res
}
