package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/dto"
	"github.com/yigaglobal/fellowship_service/internal/interfaces"
	"github.com/yigaglobal/fellowship_service/internal/repository"
)

const resumeFolder = "fellowship/resumes"

const defaultPageSize = 10

// ResumeUpload is a validated, size-limited file read from the submission
// form. Validation of size and extension happens at the transport edge.
type ResumeUpload struct {
	Filename string
	Data     []byte
}

type ApplicationService interface {
	Submit(ctx context.Context, input dto.SubmitApplicationRequest, resume *ResumeUpload) (*domain.Application, error)
	List(ctx context.Context, q dto.ListApplicationsQuery) (*dto.ListApplicationsResponse, error)
	Get(ctx context.Context, id uint) (*domain.Application, error)
	Review(ctx context.Context, id uint, input dto.ReviewRequest, reviewer string) (*domain.Application, error)
	Remove(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type applicationService struct {
	repo     repository.ApplicationRepository
	storage  interfaces.FileStorage
	producer interfaces.ProducerHandler
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	storage interfaces.FileStorage,
	producer interfaces.ProducerHandler,
) ApplicationService {
	return &applicationService{
		repo:     repo,
		storage:  storage,
		producer: producer,
	}
}

func (s *applicationService) Submit(ctx context.Context, input dto.SubmitApplicationRequest, resume *ResumeUpload) (*domain.Application, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	ve := domain.NewValidationError()
	if strings.TrimSpace(input.FullName) == "" {
		ve.Add("fullName", "full name is required")
	}
	if email == "" {
		ve.Add("email", "email is required")
	} else if !strings.Contains(email[1:], "@") {
		ve.Add("email", "email is invalid")
	}
	if strings.TrimSpace(input.Phone) == "" {
		ve.Add("phone", "phone is required")
	}
	if strings.TrimSpace(input.Institution) == "" {
		ve.Add("institution", "institution is required")
	}
	if input.InterestArea == "" {
		ve.Add("interestArea", "interest area is required")
	} else if !domain.ValidInterestArea(input.InterestArea) {
		ve.Add("interestArea", "unrecognized interest area")
	}
	if strings.TrimSpace(input.Experience) == "" {
		ve.Add("experience", "experience is required")
	}
	if strings.TrimSpace(input.Motivation) == "" {
		ve.Add("motivation", "motivation is required")
	}
	if !ve.Empty() {
		return nil, ve
	}

	err := withStore(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing != nil && existing.ID != 0 {
			return domain.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var stored *interfaces.StoredFile
	if resume != nil && s.storage != nil {
		name := "resume-" + uuid.NewString() + strings.ToLower(filepath.Ext(resume.Filename))
		stored, err = s.storage.UploadBytes(ctx, resumeFolder, name, resume.Data)
		if err != nil {
			log.Printf("resume upload error: %v", err)
			return nil, errors.New("failed to store resume")
		}
	}

	app := &domain.Application{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Institution:  strings.TrimSpace(input.Institution),
		Position:     strings.TrimSpace(input.Position),
		InterestArea: input.InterestArea,
		Experience:   strings.TrimSpace(input.Experience),
		Motivation:   strings.TrimSpace(input.Motivation),
		Status:       domain.StatusPending,
	}
	if stored != nil {
		app.ResumeRef = stored.Ref
		app.ResumeURL = stored.URL
	}

	err = withStore(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.repo.Create(ctx, app)
		return err
	})
	if err != nil {
		// the record owns the file; if the record never existed, drop it
		if stored != nil {
			if delErr := s.storage.Delete(ctx, stored.Ref); delErr != nil {
				log.Printf("orphaned resume cleanup error: %v", delErr)
			}
		}
		return nil, err
	}

	if s.producer != nil {
		payload, _ := json.Marshal(dto.ApplicationSubmittedEvent{
			ApplicationID: app.ID,
			FullName:      app.FullName,
			Email:         app.Email,
			InterestArea:  app.InterestArea,
			SubmittedAt:   app.CreatedAt.Format(time.RFC3339),
		})
		_ = s.producer.PublishMessage([]byte(dto.EventApplicationSubmitted), payload)
	}

	return app, nil
}

func (s *applicationService) List(ctx context.Context, q dto.ListApplicationsQuery) (*dto.ListApplicationsResponse, error) {
	filter := repository.ListFilter{
		Status: q.Status,
		Search: q.Search,
	}

	paginated := q.Page > 0 || q.Limit > 0
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if paginated {
		if limit < 1 {
			limit = defaultPageSize
		}
		filter.Limit = limit
		filter.Offset = (page - 1) * limit
	}

	var (
		apps  []domain.Application
		total int64
	)
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		apps, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ListApplicationsResponse{
		Applications: apps,
		Total:        total,
	}
	if paginated {
		resp.CurrentPage = page
		resp.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return resp, nil
}

func (s *applicationService) Get(ctx context.Context, id uint) (*domain.Application, error) {
	var app *domain.Application
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Review(ctx context.Context, id uint, input dto.ReviewRequest, reviewer string) (*domain.Application, error) {
	if !domain.ValidStatus(input.Status) {
		ve := domain.NewValidationError()
		ve.Add("status", "status must be pending, approved or rejected")
		return nil, ve
	}
	if strings.TrimSpace(reviewer) == "" {
		return nil, errors.New("missing reviewer identity")
	}

	var app *domain.Application
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.repo.UpdateReview(ctx, id, input.Status, input.Notes, reviewer)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		payload, _ := json.Marshal(dto.ApplicationReviewedEvent{
			ApplicationID: app.ID,
			Email:         app.Email,
			Status:        app.Status,
			ReviewedBy:    app.ReviewedBy,
			ReviewedAt:    app.ReviewedAt.Format(time.RFC3339),
		})
		_ = s.producer.PublishMessage([]byte(dto.EventApplicationReviewed), payload)
	}

	return app, nil
}

func (s *applicationService) Remove(ctx context.Context, id uint) error {
	var app *domain.Application
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	// best-effort release; the record is already gone
	if app.ResumeRef != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, app.ResumeRef); err != nil {
			log.Printf("resume release error for application %d: %v", id, err)
		}
	}
	return nil
}

func (s *applicationService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}

	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		if stats.Total, err = s.repo.CountAll(ctx); err != nil {
			return err
		}
		if stats.Pending, err = s.repo.CountByStatus(ctx, domain.StatusPending); err != nil {
			return err
		}
		if stats.Approved, err = s.repo.CountByStatus(ctx, domain.StatusApproved); err != nil {
			return err
		}
		if stats.Rejected, err = s.repo.CountByStatus(ctx, domain.StatusRejected); err != nil {
			return err
		}

		buckets, err := s.repo.CountByInterest(ctx)
		if err != nil {
			return err
		}
		stats.ByInterest = make([]dto.InterestCount, 0, len(buckets))
		for _, b := range buckets {
			stats.ByInterest = append(stats.ByInterest, dto.InterestCount{
				InterestArea: b.InterestArea,
				Count:        b.Count,
			})
		}

		thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
		stats.Recent, err = s.repo.CountCreatedSince(ctx, thirtyDaysAgo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
