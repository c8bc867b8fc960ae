package staff

import (
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	StaffNumber string    `gorm:"uniqueIndex:uq_staff_number"`
	FullName    string
	Email       string `gorm:"uniqueIndex:uq_staff_email"`
	Phone       string
	Role        string
	HireDate    time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Staff) TableName() string { return "staff" }
