package salarymetrics

import "time"

type DataQuality string

const (
	QualityFull      DataQuality = "full"
	QualityPartial   DataQuality = "partial"
	QualityEstimated DataQuality = "estimated"
)

type AdjustmentType string

const (
	AdjustmentAllowance AdjustmentType = "allowance"
	AdjustmentDeduction AdjustmentType = "deduction"
)

// Adjustment is one ad-hoc allowance or deduction line item. Either
// Amount (minor units) or Percentage (of base salary) is set.
type Adjustment struct {
	Name       string
	Type       AdjustmentType
	Amount     int64
	Percentage *float64
	Taxable    bool
}

// MonthlyMetrics holds the period facts a policy is evaluated against.
// Monetary amounts are minor currency units, hours are fractional.
type MonthlyMetrics struct {
	StaffID string
	Month   string

	TotalRevenue  int64
	TotalStudents int

	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64

	TotalClasses     int
	CompletedClasses int
	CancelledClasses int

	BonusEligible bool

	Adjustments []Adjustment
}

type CollectionOptions struct {
	IncludeAttendance      bool
	IncludePerformance     bool
	IncludeClassDetails    bool
	FallbackToBasicMetrics bool
}

func DefaultCollectionOptions() CollectionOptions {
	return CollectionOptions{
		IncludeAttendance:      true,
		IncludePerformance:     true,
		IncludeClassDetails:    true,
		FallbackToBasicMetrics: true,
	}
}

type CollectionDetails struct {
	DataQuality DataQuality
	Warnings    []string
	CollectedAt time.Time
}

type CollectionResult struct {
	Metrics MonthlyMetrics
	Details CollectionDetails
}
