package dto

// CreateStaffRequest adds a staff member to the attribution roster.
type CreateStaffRequest struct {
	Name string `json:"name" validate:"required"`
}

// StaffStatusRequest activates or deactivates a staff member.
type StaffStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
