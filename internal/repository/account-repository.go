package repository

import (
	"context"
	"errors"
	"log"

	"github.com/yigaglobal/fellowship_service/internal/domain"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id uint) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, acc *domain.Account) error
	Delete(ctx context.Context, id uint) error
	CountActiveSuperadmins(ctx context.Context) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	if acc == nil {
		return nil, errors.New("nil account")
	}

	if err := r.db.WithContext(ctx).Create(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		log.Printf("create account error: %v", err)
		return nil, translateErr(err)
	}

	return acc, nil
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := r.db.WithContext(ctx).First(acc, "username = ?", username).Error; err != nil {
		return nil, translateErr(err)
	}

	return acc, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := r.db.WithContext(ctx).First(acc, id).Error; err != nil {
		return nil, translateErr(err)
	}

	return acc, nil
}

// List returns every account, superadmins first, newest first within a role.
func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var accs []domain.Account

	err := r.db.WithContext(ctx).
		Order("role DESC, created_at DESC").
		Find(&accs).Error
	if err != nil {
		log.Printf("list accounts error: %v", err)
		return nil, translateErr(err)
	}
	return accs, nil
}

func (r *accountRepository) Save(ctx context.Context, acc *domain.Account) error {
	if acc == nil {
		return errors.New("nil account")
	}

	if err := r.db.WithContext(ctx).Save(acc).Error; err != nil {
		log.Printf("save account error: %v", err)
		return translateErr(err)
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Account{}, id)
	if res.Error != nil {
		log.Printf("delete account error: %v", res.Error)
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) CountActiveSuperadmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("role = ? AND is_active = ?", domain.RoleSuperadmin, true).
		Count(&count).Error
	if err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}
