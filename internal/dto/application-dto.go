package dto

import "github.com/yigaglobal/fellowship_service/internal/domain"

type SubmitApplicationRequest struct {
	FullName     string `json:"fullName" form:"fullName" validate:"required"`
	Email        string `json:"email" form:"email" validate:"required,email"`
	Phone        string `json:"phone" form:"phone" validate:"required"`
	Institution  string `json:"institution" form:"institution" validate:"required"`
	Position     string `json:"position,omitempty" form:"position"`
	InterestArea string `json:"interestArea" form:"interestArea" validate:"required"`
	Experience   string `json:"experience" form:"experience" validate:"required"`
	Motivation   string `json:"motivation" form:"motivation" validate:"required"`
}

type ReviewRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending approved rejected"`
	Notes  *string `json:"notes,omitempty"`
}

// ListApplicationsQuery mirrors the dashboard query string. Page/Limit of
// zero means the caller wants the whole filtered list.
type ListApplicationsQuery struct {
	Status string `query:"status"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// ListApplicationsResponse covers both deployment modes: TotalPages and
// CurrentPage are only set when pagination was requested.
type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"totalPages,omitempty"`
	CurrentPage  int                  `json:"currentPage,omitempty"`
}

type InterestCount struct {
	InterestArea string `json:"interestArea"`
	Count        int64  `json:"count"`
}

type StatsResponse struct {
	Total      int64           `json:"total"`
	Pending    int64           `json:"pending"`
	Approved   int64           `json:"approved"`
	Rejected   int64           `json:"rejected"`
	ByInterest []InterestCount `json:"byInterest"`
	Recent     int64           `json:"recent"`
}
