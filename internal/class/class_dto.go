package class

type CreateClassRequest struct {
	StaffID      string `json:"staff_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required,min=2,max=120"`
	Subject      string `json:"subject" binding:"max=60"`
	TuitionFee   int64  `json:"tuition_fee" binding:"min=0"`
	StudentCount int    `json:"student_count" binding:"min=0"`
	ScheduledAt  string `json:"scheduled_at" binding:"required"`
}

type UpdateClassRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=120"`
	Subject      string `json:"subject" binding:"max=60"`
	TuitionFee   int64  `json:"tuition_fee" binding:"min=0"`
	StudentCount int    `json:"student_count" binding:"min=0"`
	ScheduledAt  string `json:"scheduled_at" binding:"required"`
}

type CompleteClassRequest struct {
	StudentCount *int `json:"student_count" binding:"omitempty,min=0"`
}

type ClassResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id"`
	StaffID      string `json:"staff_id"`
	Name         string `json:"name"`
	Subject      string `json:"subject,omitempty"`
	TuitionFee   int64  `json:"tuition_fee"`
	StudentCount int    `json:"student_count"`
	Status       string `json:"status"`
	ScheduledAt  string `json:"scheduled_at"`
}
