package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/dto"
	"github.com/yigaglobal/fellowship_service/internal/helper"
	"github.com/yigaglobal/fellowship_service/internal/helper/utils"
	"github.com/yigaglobal/fellowship_service/internal/interfaces"
	"github.com/yigaglobal/fellowship_service/internal/repository"
)

type AccountService interface {
	// Auth
	Login(ctx context.Context, username, password string) (*domain.Account, error)
	GetByID(ctx context.Context, id uint) (*domain.Account, error)

	// Admin management
	List(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, input dto.CreateAdminRequest) (*domain.Account, error)
	Update(ctx context.Context, callerID, targetID uint, input dto.UpdateAdminRequest) (*domain.Account, error)
	ToggleActive(ctx context.Context, callerID, targetID uint) (*domain.Account, error)
	Delete(ctx context.Context, callerID, targetID uint) error

	// Startup
	EnsureBootstrap(ctx context.Context, username, password, name string) error
}

type accountService struct {
	repo     repository.AccountRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler
}

func NewAccountService(
	repo repository.AccountRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
) AccountService {
	return &accountService{
		repo:     repo,
		auth:     auth,
		producer: producer,
	}
}

// Login deliberately reports every failure path the same way so callers
// cannot probe which usernames exist or are disabled.
func (s *accountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredential
	}

	var acc *domain.Account
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, domain.ErrInvalidCredential
	}

	if !acc.IsActive {
		return nil, domain.ErrInvalidCredential
	}

	if err := s.auth.VerifyPassword(password, acc.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	return acc, nil
}

func (s *accountService) GetByID(ctx context.Context, id uint) (*domain.Account, error) {
	var acc *domain.Account
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *accountService) List(ctx context.Context) ([]domain.Account, error) {
	var accs []domain.Account
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		accs, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accs, nil
}

func (s *accountService) Create(ctx context.Context, input dto.CreateAdminRequest) (*domain.Account, error) {
	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = domain.RoleAdmin
	}

	ve := domain.NewValidationError()
	if username == "" {
		ve.Add("username", "username is required")
	}
	if name == "" {
		ve.Add("name", "name is required")
	}
	if !domain.ValidRole(role) {
		ve.Add("role", "role must be admin or superadmin")
	}
	if !ve.Empty() {
		return nil, ve
	}

	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// duplicate check up front; the unique index is the backstop under
	// concurrent creates
	err = withStore(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err == nil && existing != nil && existing.ID != 0 {
			return domain.ErrDuplicateUsername
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{
		Username:     username,
		PasswordHash: hashed,
		Name:         name,
		Role:         role,
		IsActive:     true,
	}

	err = withStore(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.Create(ctx, acc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *accountService) Update(ctx context.Context, callerID, targetID uint, input dto.UpdateAdminRequest) (*domain.Account, error) {
	if targetID == callerID {
		return nil, domain.ErrSelfModification
	}

	acc, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && !domain.ValidRole(*input.Role) {
		ve := domain.NewValidationError()
		ve.Add("role", "role must be admin or superadmin")
		return nil, ve
	}

	// a patch that would demote or deactivate the last active superadmin
	// breaks the standing invariant, same as deleting it
	demotes := input.Role != nil && *input.Role != domain.RoleSuperadmin
	deactivates := input.IsActive != nil && !*input.IsActive
	if acc.Role == domain.RoleSuperadmin && acc.IsActive && (demotes || deactivates) {
		if err := s.guardLastSuperadmin(ctx); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		n := strings.TrimSpace(*input.Name)
		if n == "" {
			ve := domain.NewValidationError()
			ve.Add("name", "name cannot be empty")
			return nil, ve
		}
		acc.Name = n
	}
	if input.Role != nil {
		acc.Role = *input.Role
	}
	if input.IsActive != nil {
		acc.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashed, err := s.auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		acc.PasswordHash = hashed
	}

	err = withStore(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, acc)
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *accountService) ToggleActive(ctx context.Context, callerID, targetID uint) (*domain.Account, error) {
	if targetID == callerID {
		return nil, domain.ErrSelfModification
	}

	acc, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// only deactivating an active superadmin can violate the invariant
	if acc.Role == domain.RoleSuperadmin && acc.IsActive {
		if err := s.guardLastSuperadmin(ctx); err != nil {
			return nil, err
		}
	}

	acc.IsActive = !acc.IsActive
	err = withStore(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, acc)
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *accountService) Delete(ctx context.Context, callerID, targetID uint) error {
	if targetID == callerID {
		return domain.ErrSelfModification
	}

	acc, err := s.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if acc.Role == domain.RoleSuperadmin {
		if err := s.guardLastSuperadmin(ctx); err != nil {
			return err
		}
	}

	return withStore(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, targetID)
	})
}

func (s *accountService) guardLastSuperadmin(ctx context.Context) error {
	var count int64
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		count, err = s.repo.CountActiveSuperadmins(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if count <= 1 {
		return domain.ErrLastSuperadmin
	}
	return nil
}

// EnsureBootstrap creates the initial superadmin when none is active yet.
// It is idempotent and safe to run on every startup. When no password is
// supplied a random one is generated and logged once so operators rotate it.
func (s *accountService) EnsureBootstrap(ctx context.Context, username, password, name string) error {
	var count int64
	err := withStore(ctx, func(ctx context.Context) error {
		var err error
		count, err = s.repo.CountActiveSuperadmins(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	generated := false
	if password == "" {
		password, err = utils.RandomToken(9)
		if err != nil {
			return errors.New("failed to generate bootstrap password")
		}
		generated = true
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}

	acc := &domain.Account{
		Username:     username,
		PasswordHash: hashed,
		Name:         name,
		Role:         domain.RoleSuperadmin,
		IsActive:     true,
	}
	err = withStore(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.Create(ctx, acc)
		return err
	})
	if err != nil {
		// another instance may have bootstrapped concurrently
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil
		}
		return err
	}

	if generated {
		log.Printf("BOOTSTRAP: superadmin %q created with generated password %q - rotate it immediately", username, password)
	} else {
		log.Printf("BOOTSTRAP: superadmin %q created with the configured password - rotate it after first login", username)
	}

	if s.producer != nil {
		payload, _ := json.Marshal(dto.AdminBootstrapEvent{
			Username:  acc.Username,
			CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		})
		_ = s.producer.PublishMessage([]byte(dto.EventAdminBootstrap), payload)
	}

	return nil
}
