package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Account is a staff identity. PasswordHash never leaves the server;
// the JSON tag is the sanitization the API contract relies on.
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"type:varchar(200)" json:"name"`
	Role         string    `gorm:"type:varchar(20);not null;default:admin" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperadmin
}
