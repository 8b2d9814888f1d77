package dto

// Events published to the broker for the mail service to pick up.

const (
	EventApplicationSubmitted = "application.submitted"
	EventApplicationReviewed  = "application.reviewed"
	EventAdminBootstrap       = "admin.bootstrap"
)

type ApplicationSubmittedEvent struct {
	ApplicationID uint   `json:"application_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	InterestArea  string `json:"interest_area"`
	SubmittedAt   string `json:"submitted_at"`
}

type ApplicationReviewedEvent struct {
	ApplicationID uint   `json:"application_id"`
	Email         string `json:"email"`
	Status        string `json:"status"`
	ReviewedBy    string `json:"reviewed_by"`
	ReviewedAt    string `json:"reviewed_at"`
}

type AdminBootstrapEvent struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}
