package usecases_test

import (
	"context"
	"sync"
	"time"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	return m.Called(ctx, match).Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id string) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) List(ctx context.Context) ([]*entities.Match, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) ListByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entities.Match, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) ListStartedBefore(ctx context.Context, t time.Time) ([]*entities.Match, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) AddParticipants(ctx context.Context, matchID string, userIDs []uuid.UUID) error {
	return m.Called(ctx, matchID, userIDs).Error(0)
}

func (m *MockMatchRepository) UpdateStatus(ctx context.Context, id string, status entities.MatchStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockMatchRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, submission *entities.PaymentSubmission) error {
	return m.Called(ctx, submission).Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentSubmission), args.Error(1)
}

func (m *MockPaymentRepository) GetLatestByUserAndMatch(ctx context.Context, userID uuid.UUID, matchID string) (*entities.PaymentSubmission, error) {
	args := m.Called(ctx, userID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentSubmission), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentSubmission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentSubmission), args.Error(1)
}

func (m *MockPaymentRepository) ListByStatus(ctx context.Context, status entities.PaymentStatus, limit, offset int) ([]*entities.PaymentSubmission, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentSubmission), args.Int(1), args.Error(2)
}

func (m *MockPaymentRepository) List(ctx context.Context, limit, offset int) ([]*entities.PaymentSubmission, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentSubmission), args.Int(1), args.Error(2)
}

func (m *MockPaymentRepository) Transition(ctx context.Context, id uuid.UUID, from, to entities.PaymentStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockPaymentRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveProfile(ctx context.Context, userID uuid.UUID, profile *entities.UserProfile) error {
	return m.Called(ctx, userID, profile).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// fakeUnitOfWork runs the function without a transaction. Used with the
// stateful fake repo where mutations are already atomic under its mutex.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	return f(ctx)
}

// fakeMatchRepo is a stateful in-memory MatchRepository. Unlike the mocks it
// models real read-modify-write interleavings, which the concurrency tests
// depend on.
type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[string]*entities.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*entities.Match)}
}

func (f *fakeMatchRepo) snapshot(m *entities.Match) *entities.Match {
	cp := *m
	cp.Participants = append([]uuid.UUID(nil), m.Participants...)
	return &cp
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *entities.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.matches[match.ID]; ok {
		return domainerrors.ErrDuplicateID
	}
	f.matches[match.ID] = f.snapshot(match)
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id string) (*entities.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return f.snapshot(m), nil
}

func (f *fakeMatchRepo) List(ctx context.Context) ([]*entities.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.Match, 0, len(f.matches))
	for _, m := range f.matches {
		out = append(out, f.snapshot(m))
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Match
	for _, m := range f.matches {
		if m.Status == status {
			out = append(out, f.snapshot(m))
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entities.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Match
	for _, m := range f.matches {
		if m.HasParticipant(userID) {
			out = append(out, f.snapshot(m))
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListStartedBefore(ctx context.Context, t time.Time) ([]*entities.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Match
	for _, m := range f.matches {
		if m.Status == entities.MatchStatusOpen && !m.StartTime.After(t) {
			out = append(out, f.snapshot(m))
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) AddParticipants(ctx context.Context, matchID string, userIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[matchID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	m.Participants = append(m.Participants, userIDs...)
	return nil
}

func (f *fakeMatchRepo) UpdateStatus(ctx context.Context, id string, status entities.MatchStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.matches[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(f.matches, id)
	return nil
}
