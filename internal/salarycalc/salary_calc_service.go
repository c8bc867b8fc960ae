package salarycalc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-academy/internal/events"
	"go-academy/internal/messaging/kafka"
	salarycalcerrors "go-academy/internal/salarycalc/errors"
	"go-academy/internal/salarymetrics"
	"go-academy/internal/salarypolicy"
	"go-academy/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_calc_service.go -destination=mock/salary_calc_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, tenantID, actorID string, req CalculateSalaryRequest) (CalculationResponse, error)
	GetAll(ctx context.Context, tenantID, month string, page, pageSize int) ([]CalculationSummaryResponse, int64, error)
	GetByID(ctx context.Context, tenantID, id string) (CalculationResponse, error)
	Approve(ctx context.Context, tenantID, actorID, id string) (CalculationSummaryResponse, error)
	MarkAsPaid(ctx context.Context, tenantID, actorID, id string) (CalculationSummaryResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	policies salarypolicy.Service
	metrics  salarymetrics.Service
	outbox   kafka.OutboxRepository
	engine   *Engine
}

func NewService(
	db *sql.DB,
	repo Repository,
	policies salarypolicy.Service,
	metrics salarymetrics.Service,
	outbox kafka.OutboxRepository,
	engine *Engine,
) Service {
	return &service{
		db:       db,
		repo:     repo,
		policies: policies,
		metrics:  metrics,
		outbox:   outbox,
		engine:   engine,
	}
}

// Calculate runs the full flow: collect metrics, resolve the policy,
// run the engine, validate, then upsert and emit salary.calculated.
// In preview mode nothing is persisted.
func (s *service) Calculate(
	ctx context.Context,
	tenantID, actorID string,
	req CalculateSalaryRequest,
) (CalculationResponse, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("salarycalc.service")

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return CalculationResponse{}, salarycalcerrors.ErrInvalidStaffID
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return CalculationResponse{}, salarycalcerrors.ErrInvalidMonthFormat
	}

	collected, err := s.metrics.Collect(ctx, tenantID, req.StaffID, req.Month, salarymetrics.DefaultCollectionOptions())
	if err != nil {
		return CalculationResponse{}, err
	}

	policy, err := s.policies.ResolveForStaff(ctx, tenantID, req.StaffID, req.PolicyID)
	if err != nil {
		return CalculationResponse{}, err
	}
	if !policy.IsActive {
		return CalculationResponse{}, salarycalcerrors.ErrPolicyInactive
	}

	includeAdjustments := req.IncludeAdjustments == nil || *req.IncludeAdjustments
	opts := optionsFromRequest(req)

	result, err := s.engine.Calculate(CalculationInput{
		Metrics:            collected.Metrics,
		Policy:             policy,
		IncludeAdjustments: includeAdjustments,
		PreviewMode:        req.PreviewMode,
	}, opts)
	if err != nil {
		return CalculationResponse{}, err
	}

	result.DataQuality = collected.Details.DataQuality
	result.Warnings = append(append([]string{}, collected.Details.Warnings...), result.Warnings...)

	if err := ValidateResult(result); err != nil {
		log.Error("calculation failed consistency check",
			zap.String("staff_id", req.StaffID),
			zap.String("month", req.Month),
			zap.String("policy_type", string(policy.Type)),
			zap.Error(err),
		)
		return CalculationResponse{}, err
	}

	resp := responseFromResult(result, policy.ID.String())
	resp.Preview = req.PreviewMode
	resp.MetricsCollectedAt = collected.Details.CollectedAt

	if req.PreviewMode {
		return resp, nil
	}

	calc, err := s.rowFromResult(tenantID, actorID, staffID, policy, collected, result, includeAdjustments, opts)
	if err != nil {
		return CalculationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CalculationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, calc); err != nil {
		return CalculationResponse{}, err
	}

	if err := s.enqueueCalculatedEvent(ctx, tx, calc); err != nil {
		return CalculationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CalculationResponse{}, err
	}

	log.Info("salary calculated",
		zap.String("calculation_id", calc.ID.String()),
		zap.String("staff_id", req.StaffID),
		zap.String("month", req.Month),
		zap.String("policy_type", string(policy.Type)),
		zap.String("data_quality", string(result.DataQuality)),
		zap.Int64("net_salary", result.NetSalary),
	)

	resp.ID = calc.ID.String()
	resp.Status = calc.Status
	return resp, nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID, month string,
	page, pageSize int,
) ([]CalculationSummaryResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	calcs, total, err := s.repo.FindAllByTenant(ctx, tenantID, month, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	res := make([]CalculationSummaryResponse, len(calcs))
	for i, calc := range calcs {
		res[i] = summaryFromRow(calc)
	}
	return res, total, nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (CalculationResponse, error) {
	calc, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return CalculationResponse{}, mapNotFound(err)
	}

	var snapshot detailsSnapshot
	if len(calc.Details) > 0 {
		if err := json.Unmarshal(calc.Details, &snapshot); err != nil {
			return CalculationResponse{}, err
		}
	}

	if snapshot.Result != nil {
		resp := responseFromResult(snapshot.Result, calc.PolicyID.String())
		resp.ID = calc.ID.String()
		resp.Status = calc.Status
		return resp, nil
	}

	// Older rows without a snapshot fall back to the summary columns.
	return CalculationResponse{
		ID:                calc.ID.String(),
		StaffID:           calc.StaffID.String(),
		Month:             calc.Month,
		PolicyID:          calc.PolicyID.String(),
		PolicyType:        calc.PolicyType,
		BaseSalary:        calc.BaseSalary,
		CommissionSalary:  calc.CommissionSalary,
		OvertimeAllowance: calc.OvertimeAllowance,
		TotalAllowances:   calc.TotalAllowances,
		TotalDeductions:   calc.TotalDeductions,
		GrossSalary:       calc.GrossSalary,
		NetSalary:         calc.NetSalary,
		DataQuality:       calc.DataQuality,
		Status:            calc.Status,
	}, nil
}

func (s *service) Approve(
	ctx context.Context,
	tenantID, actorID, id string,
) (CalculationSummaryResponse, error) {
	calc, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return CalculationSummaryResponse{}, mapNotFound(err)
	}

	if calc.Status != StatusCalculated {
		return CalculationSummaryResponse{}, salarycalcerrors.ErrNotApprovable
	}

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return CalculationSummaryResponse{}, err
	}

	now := time.Now().UTC()
	calc.Status = StatusApproved
	calc.ApprovedBy = &actor
	calc.ApprovedAt = &now

	if err := s.repo.UpdateStatus(ctx, calc); err != nil {
		return CalculationSummaryResponse{}, err
	}

	return summaryFromRow(*calc), nil
}

func (s *service) MarkAsPaid(
	ctx context.Context,
	tenantID, actorID, id string,
) (CalculationSummaryResponse, error) {
	calc, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return CalculationSummaryResponse{}, mapNotFound(err)
	}

	if calc.Status != StatusApproved {
		return CalculationSummaryResponse{}, salarycalcerrors.ErrNotPayable
	}

	now := time.Now().UTC()
	calc.Status = StatusPaid
	calc.PaidAt = &now

	if err := s.repo.UpdateStatus(ctx, calc); err != nil {
		return CalculationSummaryResponse{}, err
	}

	return summaryFromRow(*calc), nil
}

func (s *service) rowFromResult(
	tenantID, actorID string,
	staffID uuid.UUID,
	policy *salarypolicy.SalaryPolicy,
	collected *salarymetrics.CollectionResult,
	result *CalculationResult,
	includeAdjustments bool,
	opts CalculationOptions,
) (*SalaryCalculation, error) {
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, err
	}

	details, err := json.Marshal(detailsSnapshot{
		Metrics:            collected.Metrics,
		CollectionWarnings: collected.Details.Warnings,
		MetricsCollectedAt: collected.Details.CollectedAt,
		PolicySnapshot:     policy,
		Options:            opts,
		IncludeAdjustments: includeAdjustments,
		Result:             result,
	})
	if err != nil {
		return nil, err
	}

	return &SalaryCalculation{
		ID:                uuid.New(),
		TenantID:          tenantUUID,
		StaffID:           staffID,
		Month:             result.Month,
		PolicyID:          policy.ID,
		PolicyType:        string(policy.Type),
		BaseSalary:        result.BaseSalary,
		CommissionSalary:  result.CommissionSalary,
		OvertimeAllowance: result.OvertimeAllowance,
		TotalAllowances:   result.TotalAllowances,
		TotalDeductions:   result.TotalDeductions,
		GrossSalary:       result.GrossSalary,
		NetSalary:         result.NetSalary,
		DataQuality:       string(result.DataQuality),
		Status:            StatusCalculated,
		Details:           details,
		CalculatedBy:      actorUUID,
	}, nil
}

func (s *service) enqueueCalculatedEvent(ctx context.Context, tx *sql.Tx, calc *SalaryCalculation) error {
	event := events.SalaryCalculatedEvent{
		EventType:     "salary.calculated",
		CalculationID: calc.ID.String(),
		TenantID:      calc.TenantID.String(),
		StaffID:       calc.StaffID.String(),
		Month:         calc.Month,
		PolicyType:    calc.PolicyType,
		NetSalary:     calc.NetSalary,
		CalculatedBy:  calc.CalculatedBy.String(),
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "salary_calculation",
		AggregateID:   calc.ID.String(),
		EventType:     event.EventType,
		Topic:         events.SalaryCalculatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func optionsFromRequest(req CalculateSalaryRequest) CalculationOptions {
	opts := DefaultCalculationOptions()
	if req.EnableTax != nil {
		opts.EnableTax = *req.EnableTax
	}
	if req.EnableInsurance != nil {
		opts.EnableInsurance = *req.EnableInsurance
	}
	if req.EnablePerformanceBonus != nil {
		opts.EnablePerformanceBonus = *req.EnablePerformanceBonus
	}
	return opts
}

func responseFromResult(result *CalculationResult, policyID string) CalculationResponse {
	return CalculationResponse{
		StaffID:            result.StaffID,
		Month:              result.Month,
		PolicyID:           policyID,
		PolicyType:         string(result.PolicyType),
		BaseSalary:         result.BaseSalary,
		CommissionSalary:   result.CommissionSalary,
		OvertimeAllowance:  result.OvertimeAllowance,
		SpecialAllowances:  result.SpecialAllowances,
		PerformanceBonus:   result.PerformanceBonus,
		TotalAllowances:    result.TotalAllowances,
		TaxDeduction:       result.TaxDeduction,
		InsuranceDeduction: result.InsuranceDeduction,
		OtherDeductions:    result.OtherDeductions,
		TotalDeductions:    result.TotalDeductions,
		GrossSalary:        result.GrossSalary,
		NetSalary:          result.NetSalary,
		TierBreakdown:      result.TierBreakdown,
		DataQuality:        string(result.DataQuality),
		Warnings:           result.Warnings,
	}
}

func summaryFromRow(calc SalaryCalculation) CalculationSummaryResponse {
	return CalculationSummaryResponse{
		ID:          calc.ID.String(),
		StaffID:     calc.StaffID.String(),
		Month:       calc.Month,
		PolicyType:  calc.PolicyType,
		GrossSalary: calc.GrossSalary,
		NetSalary:   calc.NetSalary,
		DataQuality: calc.DataQuality,
		Status:      calc.Status,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarycalcerrors.ErrCalculationNotFound
	}
	return err
}
