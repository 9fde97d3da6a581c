package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/repository"
)

var (
	ErrCompetitionNotFound = repository.ErrCompetitionNotFound
	ErrCompetitionExists   = repository.ErrCompetitionExists
	ErrInvalidCoordinate   = errors.New("coordinate must be finite and within [0, 1]")
)

type CompetitionRepository interface {
	Create(ctx context.Context, competition domain.Competition) (domain.Competition, error)
	FindByID(ctx context.Context, id string) (domain.Competition, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateFinalJudge(ctx context.Context, id string, coord domain.Coordinate, setAt time.Time) (domain.Competition, error)
}

type CompetitionService struct {
	repo               CompetitionRepository
	defaultWinnerCount int
	now                func() time.Time
}

func NewCompetitionService(repo CompetitionRepository, defaultWinnerCount int) *CompetitionService {
	if defaultWinnerCount <= 0 || defaultWinnerCount > domain.DefaultWinnerCount {
		defaultWinnerCount = domain.DefaultWinnerCount
	}

	return &CompetitionService{
		repo:               repo,
		defaultWinnerCount: defaultWinnerCount,
		now:                time.Now,
	}
}

func (s *CompetitionService) CreateCompetition(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	competition.ID = uuid.NewString()
	if competition.WinnerCount <= 0 || competition.WinnerCount > domain.DefaultWinnerCount {
		competition.WinnerCount = s.defaultWinnerCount
	}
	competition.FinalJudge = nil
	competition.FinalJudgeSetAt = nil

	created, err := s.repo.Create(ctx, competition)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CompetitionService) GetCompetition(ctx context.Context, id string) (domain.Competition, error) {
	competition, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return competition, nil
}

// SetFinalJudgeCoordinate overwrites the judged position. Stored results are
// left untouched until the next computation.
func (s *CompetitionService) SetFinalJudgeCoordinate(ctx context.Context, id string, coord domain.Coordinate) (domain.Competition, error) {
	if !coord.IsValid() {
		return domain.Competition{}, ErrInvalidCoordinate
	}

	updated, err := s.repo.UpdateFinalJudge(ctx, id, coord, s.now().UTC())
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.repo.UpdateFinalJudge -> %w", err)
	}

	return updated, nil
}
