package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spotcontest/api/internal/domain"
)

type competitionRepoMock struct {
	mock.Mock
}

func (m *competitionRepoMock) Create(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	args := m.Called(ctx, competition)
	if fn, ok := args.Get(0).(func(context.Context, domain.Competition) (domain.Competition, error)); ok {
		return fn(ctx, competition)
	}
	return args.Get(0).(domain.Competition), args.Error(1)
}

func (m *competitionRepoMock) FindByID(ctx context.Context, id string) (domain.Competition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Competition), args.Error(1)
}

func (m *competitionRepoMock) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *competitionRepoMock) UpdateFinalJudge(ctx context.Context, id string, coord domain.Coordinate, setAt time.Time) (domain.Competition, error) {
	args := m.Called(ctx, id, coord, setAt)
	return args.Get(0).(domain.Competition), args.Error(1)
}

type entryRepoMock struct {
	mock.Mock
}

func (m *entryRepoMock) CreateCheckoutSummary(ctx context.Context, summary domain.CheckoutSummary) (domain.CheckoutSummary, error) {
	args := m.Called(ctx, summary)
	if fn, ok := args.Get(0).(func(context.Context, domain.CheckoutSummary) (domain.CheckoutSummary, error)); ok {
		return fn(ctx, summary)
	}
	return args.Get(0).(domain.CheckoutSummary), args.Error(1)
}

func (m *entryRepoMock) FindCheckoutSummariesByCompetition(ctx context.Context, competitionID string) ([]domain.CheckoutSummary, error) {
	args := m.Called(ctx, competitionID)
	return args.Get(0).([]domain.CheckoutSummary), args.Error(1)
}

func (m *entryRepoMock) SaveTicketSubmission(ctx context.Context, submission domain.TicketSubmission) (domain.TicketSubmission, error) {
	args := m.Called(ctx, submission)
	if fn, ok := args.Get(0).(func(context.Context, domain.TicketSubmission) (domain.TicketSubmission, error)); ok {
		return fn(ctx, submission)
	}
	return args.Get(0).(domain.TicketSubmission), args.Error(1)
}

func (m *entryRepoMock) FindTicketSubmissionsByParticipant(ctx context.Context, competitionID, participantID string) ([]domain.TicketSubmission, error) {
	args := m.Called(ctx, competitionID, participantID)
	return args.Get(0).([]domain.TicketSubmission), args.Error(1)
}

type resultRepoMock struct {
	mock.Mock
}

func (m *resultRepoMock) Upsert(ctx context.Context, result domain.CompetitionResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *resultRepoMock) FindByCompetitionID(ctx context.Context, competitionID string) (domain.CompetitionResult, error) {
	args := m.Called(ctx, competitionID)
	return args.Get(0).(domain.CompetitionResult), args.Error(1)
}

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) ObserveComputation(outcome string, elapsed time.Duration, candidates int) {
	m.Called(outcome, elapsed, candidates)
}

// memoryResultStore keeps one result per competition, like the real store.
type memoryResultStore struct {
	mu      sync.Mutex
	results map[string]domain.CompetitionResult
	writes  int
}

func newMemoryResultStore() *memoryResultStore {
	return &memoryResultStore{results: map[string]domain.CompetitionResult{}}
}

func (s *memoryResultStore) Upsert(_ context.Context, result domain.CompetitionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[result.CompetitionID] = result
	s.writes++

	return nil
}

func (s *memoryResultStore) FindByCompetitionID(_ context.Context, competitionID string) (domain.CompetitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[competitionID]
	if !ok {
		return domain.CompetitionResult{}, ErrResultNotFound
	}

	return result, nil
}
