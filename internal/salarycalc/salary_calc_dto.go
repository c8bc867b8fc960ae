package salarycalc

import (
	"time"

	"go-academy/internal/salarymetrics"
	"go-academy/internal/salarypolicy"
)

type CalculateSalaryRequest struct {
	StaffID  string `json:"staff_id" binding:"required"`
	Month    string `json:"month" binding:"required"`
	PolicyID string `json:"policy_id"`

	IncludeAdjustments *bool `json:"include_adjustments"`
	PreviewMode        bool  `json:"preview_mode"`

	EnableTax              *bool `json:"enable_tax"`
	EnableInsurance        *bool `json:"enable_insurance"`
	EnablePerformanceBonus *bool `json:"enable_performance_bonus"`
}

type CalculationResponse struct {
	ID         string `json:"id,omitempty"`
	StaffID    string `json:"staff_id"`
	Month      string `json:"month"`
	PolicyID   string `json:"policy_id"`
	PolicyType string `json:"policy_type"`

	BaseSalary        int64 `json:"base_salary"`
	CommissionSalary  int64 `json:"commission_salary"`
	OvertimeAllowance int64 `json:"overtime_allowance"`
	SpecialAllowances int64 `json:"special_allowances"`
	PerformanceBonus  int64 `json:"performance_bonus"`
	TotalAllowances   int64 `json:"total_allowances"`

	TaxDeduction       int64 `json:"tax_deduction"`
	InsuranceDeduction int64 `json:"insurance_deduction"`
	OtherDeductions    int64 `json:"other_deductions"`
	TotalDeductions    int64 `json:"total_deductions"`

	GrossSalary int64 `json:"gross_salary"`
	NetSalary   int64 `json:"net_salary"`

	TierBreakdown      []TierBreakdownEntry `json:"tier_breakdown,omitempty"`
	DataQuality        string               `json:"data_quality"`
	Warnings           []string             `json:"warnings,omitempty"`
	MetricsCollectedAt time.Time            `json:"metrics_collected_at"`

	Status  string `json:"status,omitempty"`
	Preview bool   `json:"preview"`
}

type CalculationSummaryResponse struct {
	ID          string `json:"id"`
	StaffID     string `json:"staff_id"`
	Month       string `json:"month"`
	PolicyType  string `json:"policy_type"`
	GrossSalary int64  `json:"gross_salary"`
	NetSalary   int64  `json:"net_salary"`
	DataQuality string `json:"data_quality"`
	Status      string `json:"status"`
}

// detailsSnapshot is the audit payload stored in the jsonb column: the
// exact metrics and policy the engine saw, plus the full result.
type detailsSnapshot struct {
	Metrics            salarymetrics.MonthlyMetrics `json:"metrics"`
	CollectionWarnings []string                     `json:"collection_warnings,omitempty"`
	MetricsCollectedAt time.Time                    `json:"metrics_collected_at"`
	PolicySnapshot     *salarypolicy.SalaryPolicy   `json:"policy"`
	Options            CalculationOptions           `json:"options"`
	IncludeAdjustments bool                         `json:"include_adjustments"`
	Result             *CalculationResult           `json:"result"`
}
