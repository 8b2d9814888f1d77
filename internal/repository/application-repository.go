package repository

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yigaglobal/fellowship_service/internal/domain"
	"gorm.io/gorm"
)

// ListFilter narrows the application listing. Status "all" (or empty) means
// no status filter; Limit 0 means no pagination.
type ListFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type InterestBucket struct {
	InterestArea string
	Count        int64
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByEmail(ctx context.Context, email string) (*domain.Application, error)
	FindByID(ctx context.Context, id uint) (*domain.Application, error)
	List(ctx context.Context, f ListFilter) ([]domain.Application, int64, error)
	UpdateReview(ctx context.Context, id uint, status string, notes *string, reviewedBy string) (*domain.Application, error)
	Delete(ctx context.Context, id uint) (*domain.Application, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByInterest(ctx context.Context) ([]InterestBucket, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, errors.New("nil application")
	}

	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		log.Printf("create application error: %v", err)
		return nil, translateErr(err)
	}

	return app, nil
}

func (r *applicationRepository) FindByEmail(ctx context.Context, email string) (*domain.Application, error) {
	app := &domain.Application{}

	if err := r.db.WithContext(ctx).First(app, "email = ?", email).Error; err != nil {
		return nil, translateErr(err)
	}

	return app, nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*domain.Application, error) {
	app := &domain.Application{}

	if err := r.db.WithContext(ctx).First(app, id).Error; err != nil {
		return nil, translateErr(err)
	}

	return app, nil
}

func (r *applicationRepository) List(ctx context.Context, f ListFilter) ([]domain.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{})

	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(institution) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("count applications error: %v", err)
		return nil, 0, translateErr(err)
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var apps []domain.Application
	if err := q.Find(&apps).Error; err != nil {
		log.Printf("list applications error: %v", err)
		return nil, 0, translateErr(err)
	}
	return apps, total, nil
}

// UpdateReview is the single status-mutating write. The UPDATE ... WHERE id
// runs inside a transaction so a concurrent delete never observes a partial
// review stamp.
func (r *applicationRepository) UpdateReview(ctx context.Context, id uint, status string, notes *string, reviewedBy string) (*domain.Application, error) {
	now := time.Now()

	updates := map[string]any{
		"status":      status,
		"reviewed_by": reviewedBy,
		"reviewed_at": now,
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	app := &domain.Application{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Application{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(app, id).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("review application error: %v", err)
		}
		return nil, translateErr(err)
	}
	return app, nil
}

// Delete removes the row and returns the deleted record so the caller can
// release the stored resume.
func (r *applicationRepository) Delete(ctx context.Context, id uint) (*domain.Application, error) {
	app := &domain.Application{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(app, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Application{}, id).Error
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("delete application error: %v", err)
		}
		return nil, translateErr(err)
	}
	return app, nil
}

func (r *applicationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Application{}).Count(&count).Error; err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

func (r *applicationRepository) CountByInterest(ctx context.Context) ([]InterestBucket, error) {
	var buckets []InterestBucket
	err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Select("interest_area, COUNT(*) AS count").
		Group("interest_area").
		Scan(&buckets).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return buckets, nil
}

func (r *applicationRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}
