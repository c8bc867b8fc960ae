package class

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Class struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;index:idx_classes_tenant_staff"`
	StaffID      uuid.UUID `gorm:"type:uuid;index:idx_classes_tenant_staff"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Subject      string    `gorm:"type:varchar(60)"`
	TuitionFee   int64     `gorm:"not null;default:0"`
	StudentCount int       `gorm:"not null;default:0"`
	Status       string    `gorm:"type:varchar(20);not null;default:'scheduled'"`
	ScheduledAt  time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Class) TableName() string { return "classes" }
