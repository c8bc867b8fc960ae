package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	TenantID      uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	StaffID       uuid.UUID  `gorm:"column:staff_id;type:uuid;not null;index"`
	WorkDate      time.Time  `gorm:"column:work_date;type:date;not null;index"`
	CheckInAt     time.Time  `gorm:"column:check_in_at;type:timestamptz;not null"`
	CheckOutAt    *time.Time `gorm:"column:check_out_at;type:timestamptz"`
	RegularHours  float64    `gorm:"column:regular_hours;not null;default:0"`
	OvertimeHours float64    `gorm:"column:overtime_hours;not null;default:0"`
	Notes         *string    `gorm:"column:notes;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
