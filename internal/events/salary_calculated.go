package events

import "time"

const SalaryCalculatedTopic = "academy.salary.calculated.v1"

type SalaryCalculatedEvent struct {
	EventType     string    `json:"event_type"`
	CalculationID string    `json:"calculation_id"`
	TenantID      string    `json:"tenant_id"`
	StaffID       string    `json:"staff_id"`
	Month         string    `json:"month"`
	PolicyType    string    `json:"policy_type"`
	NetSalary     int64     `json:"net_salary"`
	CalculatedBy  string    `json:"calculated_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
