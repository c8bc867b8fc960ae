package salarypolicy

type TierInput struct {
	MinAmount      int64   `json:"min_amount"`
	MaxAmount      *int64  `json:"max_amount"`
	CommissionRate float64 `json:"commission_rate" binding:"required"`
}

type CreatePolicyRequest struct {
	Name      string `json:"name" binding:"required"`
	Type      string `json:"policy_type" binding:"required"`
	IsDefault bool   `json:"is_default"`

	BaseAmount           *int64   `json:"base_amount"`
	HourlyRate           *int64   `json:"hourly_rate"`
	CommissionRate       *float64 `json:"commission_rate"`
	CommissionBasis      *string  `json:"commission_basis"`
	StudentRate          *int64   `json:"student_rate"`
	MinStudents          *int     `json:"min_students"`
	MaxStudents          *int     `json:"max_students"`
	PerformanceThreshold *int64   `json:"performance_threshold"`
	MinimumGuaranteed    *int64   `json:"minimum_guaranteed"`
	MaximumAmount        *int64   `json:"maximum_amount"`

	Tiers []TierInput `json:"tiers"`
}

type UpdatePolicyRequest struct {
	Name      string `json:"name" binding:"required"`
	IsActive  *bool  `json:"is_active"`
	IsDefault *bool  `json:"is_default"`

	BaseAmount           *int64   `json:"base_amount"`
	HourlyRate           *int64   `json:"hourly_rate"`
	CommissionRate       *float64 `json:"commission_rate"`
	CommissionBasis      *string  `json:"commission_basis"`
	StudentRate          *int64   `json:"student_rate"`
	MinStudents          *int     `json:"min_students"`
	MaxStudents          *int     `json:"max_students"`
	PerformanceThreshold *int64   `json:"performance_threshold"`
	MinimumGuaranteed    *int64   `json:"minimum_guaranteed"`
	MaximumAmount        *int64   `json:"maximum_amount"`

	Tiers []TierInput `json:"tiers"`
}

type TierResponse struct {
	MinAmount      int64   `json:"min_amount"`
	MaxAmount      *int64  `json:"max_amount"`
	CommissionRate float64 `json:"commission_rate"`
}

type PolicyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"policy_type"`
	IsActive  bool   `json:"is_active"`
	IsDefault bool   `json:"is_default"`

	BaseAmount           *int64   `json:"base_amount,omitempty"`
	HourlyRate           *int64   `json:"hourly_rate,omitempty"`
	CommissionRate       *float64 `json:"commission_rate,omitempty"`
	CommissionBasis      *string  `json:"commission_basis,omitempty"`
	StudentRate          *int64   `json:"student_rate,omitempty"`
	MinStudents          *int     `json:"min_students,omitempty"`
	MaxStudents          *int     `json:"max_students,omitempty"`
	PerformanceThreshold *int64   `json:"performance_threshold,omitempty"`
	MinimumGuaranteed    *int64   `json:"minimum_guaranteed,omitempty"`
	MaximumAmount        *int64   `json:"maximum_amount,omitempty"`

	Tiers []TierResponse `json:"tiers,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type AssignmentResponse struct {
	ID       string `json:"id"`
	StaffID  string `json:"staff_id"`
	PolicyID string `json:"policy_id"`
}
