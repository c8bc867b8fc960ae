package staff

type CreateStaffRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"required,oneof=instructor admin manager"`
	HireDate    string `json:"hire_date" binding:"required"`
	StaffNumber string `json:"staff_number"`
	Status      string `json:"status"`
}

type UpdateStaffRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"required,oneof=instructor admin manager"`
	HireDate    string `json:"hire_date" binding:"required"`
	StaffNumber string `json:"staff_number"`
	Status      string `json:"status"`
}

type StaffResponse struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	StaffNumber string `json:"staff_number"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Role        string `json:"role"`
	HireDate    string `json:"hire_date"`
	Status      string `json:"status"`
}
