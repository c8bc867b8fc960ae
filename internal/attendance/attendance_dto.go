package attendance

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	StaffID       string  `json:"staff_id"`
	WorkDate      string  `json:"work_date"`
	CheckInAt     string  `json:"check_in_at"`
	CheckOutAt    *string `json:"check_out_at,omitempty"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	Notes         *string `json:"notes,omitempty"`
}
