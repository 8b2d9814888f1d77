package domain

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// InterestAreas is the fixed set accepted on submission.
var InterestAreas = []string{"foreign-policy", "governance", "climate", "peace", "culture"}

// Application is a single applicant submission. Status is only ever
// changed through the review operation, which stamps ReviewedBy/ReviewedAt.
type Application struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FullName     string     `gorm:"type:varchar(200);not null" json:"fullName"`
	Email        string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"type:varchar(50);not null" json:"phone"`
	Institution  string     `gorm:"type:varchar(200);not null" json:"institution"`
	Position     string     `gorm:"type:varchar(200)" json:"position,omitempty"`
	InterestArea string     `gorm:"type:varchar(50);not null" json:"interestArea"`
	Experience   string     `gorm:"type:text;not null" json:"experience"`
	Motivation   string     `gorm:"type:text;not null" json:"motivation"`
	ResumeURL    string     `json:"resume,omitempty"`
	ResumeRef    string     `json:"-"`
	Status       string     `gorm:"type:varchar(20);not null;default:pending;index:idx_applications_status_created,priority:1" json:"status"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	ReviewedBy   string     `gorm:"type:varchar(200)" json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `gorm:"index:idx_applications_status_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}

func ValidInterestArea(area string) bool {
	for _, a := range InterestAreas {
		if a == area {
			return true
		}
	}
	return false
}
