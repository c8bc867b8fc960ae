package events

import "time"

const StaffCreatedTopic = "academy.staff.lifecycle.v1"

type StaffCreatedEvent struct {
	EventType  string    `json:"event_type"`
	StaffID    string    `json:"staff_id"`
	TenantID   string    `json:"tenant_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
