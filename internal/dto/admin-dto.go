package dto

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin superadmin"`
}

// UpdateAdminRequest is a PATCH-style body; nil fields are left untouched.
type UpdateAdminRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin superadmin"`
	IsActive *bool   `json:"isActive,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}
