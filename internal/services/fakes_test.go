package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/interfaces"
	"github.com/yigaglobal/fellowship_service/internal/repository"
)

// --- account repo fake ---

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]domain.Account

	failWith error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, accounts: map[uint]domain.Account{}}
}

func (f *fakeAccountRepo) seed(acc domain.Account) domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc.ID = f.nextID
	f.nextID++
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now()
	}
	f.accounts[acc.ID] = acc
	return acc
}

func (f *fakeAccountRepo) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == acc.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	acc.ID = f.nextID
	f.nextID++
	acc.CreatedAt = time.Now()
	f.accounts[acc.ID] = *acc
	return acc, nil
}

func (f *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role > out[j].Role
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeAccountRepo) Save(ctx context.Context, acc *domain.Account) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[acc.ID]; !ok {
		return domain.ErrNotFound
	}
	f.accounts[acc.ID] = *acc
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uint) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) CountActiveSuperadmins(ctx context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.accounts {
		if a.Role == domain.RoleSuperadmin && a.IsActive {
			n++
		}
	}
	return n, nil
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

// --- application repo fake ---

type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID uint
	apps   map[uint]domain.Application

	failWith error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, apps: map[uint]domain.Application{}}
}

func (f *fakeApplicationRepo) seed(app domain.Application) domain.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	app.ID = f.nextID
	f.nextID++
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().Add(time.Duration(app.ID) * time.Second)
	}
	f.apps[app.ID] = app
	return app
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.Email == app.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	app.ID = f.nextID
	f.nextID++
	app.CreatedAt = time.Now().Add(time.Duration(app.ID) * time.Second)
	f.apps[app.ID] = *app
	return app, nil
}

func (f *fakeApplicationRepo) FindByEmail(ctx context.Context, email string) (*domain.Application, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.Email == email {
			cp := a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeApplicationRepo) FindByID(ctx context.Context, id uint) (*domain.Application, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (f *fakeApplicationRepo) matches(a domain.Application, filter repository.ListFilter) bool {
	if filter.Status != "" && filter.Status != "all" && a.Status != filter.Status {
		return false
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(a.FullName), needle) &&
			!strings.Contains(strings.ToLower(a.Email), needle) &&
			!strings.Contains(strings.ToLower(a.Institution), needle) {
			return false
		}
	}
	return true
}

func (f *fakeApplicationRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.Application, int64, error) {
	if f.failWith != nil {
		return nil, 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Application
	for _, a := range f.apps {
		if f.matches(a, filter) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	total := int64(len(out))
	if filter.Limit > 0 {
		if filter.Offset >= len(out) {
			out = nil
		} else {
			end := filter.Offset + filter.Limit
			if end > len(out) {
				end = len(out)
			}
			out = out[filter.Offset:end]
		}
	}
	return out, total, nil
}

func (f *fakeApplicationRepo) UpdateReview(ctx context.Context, id uint, status string, notes *string, reviewedBy string) (*domain.Application, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	a.Status = status
	a.ReviewedBy = reviewedBy
	a.ReviewedAt = &now
	if notes != nil {
		a.Notes = *notes
	}
	f.apps[id] = a
	cp := a
	return &cp, nil
}

func (f *fakeApplicationRepo) Delete(ctx context.Context, id uint) (*domain.Application, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(f.apps, id)
	cp := a
	return &cp, nil
}

func (f *fakeApplicationRepo) CountAll(ctx context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.apps)), nil
}

func (f *fakeApplicationRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.apps {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) CountByInterest(ctx context.Context) ([]repository.InterestBucket, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, a := range f.apps {
		counts[a.InterestArea]++
	}
	out := make([]repository.InterestBucket, 0, len(counts))
	for area, n := range counts {
		out = append(out, repository.InterestBucket{InterestArea: area, Count: n})
	}
	return out, nil
}

func (f *fakeApplicationRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.apps {
		if !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

var _ repository.ApplicationRepository = (*fakeApplicationRepo)(nil)

// --- storage fake ---

type fakeStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	uploads  int
	deletes  []string
	uploadEr error
	deleteEr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (f *fakeStorage) UploadBytes(ctx context.Context, folder, filename string, b []byte) (*interfaces.StoredFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadEr != nil {
		return nil, f.uploadEr
	}
	ref := folder + "/" + filename
	f.files[ref] = b
	f.uploads++
	return &interfaces.StoredFile{Ref: ref, URL: "https://files.example/" + ref}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, ref)
	if f.deleteEr != nil {
		return f.deleteEr
	}
	delete(f.files, ref)
	return nil
}

var _ interfaces.FileStorage = (*fakeStorage)(nil)

// --- producer fake ---

type publishedEvent struct {
	Key   string
	Value string
}

type fakeProducer struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Key: string(key), Value: string(value)})
	return nil
}

func (f *fakeProducer) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Key)
	}
	return out
}
