package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/repository/dao"
)

var (
	ErrCompetitionExists   = dao.ErrCompetitionExists
	ErrCompetitionNotFound = dao.ErrCompetitionNotFound
)

type CompetitionDAO interface {
	Insert(ctx context.Context, competition dao.Competition) (dao.Competition, error)
	FindByID(ctx context.Context, id string) (dao.Competition, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateFinalJudge(ctx context.Context, id string, x, y float64, setAt time.Time) (dao.Competition, error)
}

type CompetitionRepository struct {
	dao CompetitionDAO
}

func NewCompetitionRepository(dao CompetitionDAO) *CompetitionRepository {
	return &CompetitionRepository{
		dao: dao,
	}
}

func (r *CompetitionRepository) Create(ctx context.Context, competition domain.Competition) (domain.Competition, error) {
	created, err := r.dao.Insert(ctx, dao.Competition{
		ID:          competition.ID,
		Name:        competition.Name,
		ImageURL:    competition.ImageURL,
		WinnerCount: competition.WinnerCount,
	})
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CompetitionRepository) FindByID(ctx context.Context, id string) (domain.Competition, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CompetitionRepository) Exists(ctx context.Context, id string) (bool, error) {
	exists, err := r.dao.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return exists, nil
}

func (r *CompetitionRepository) UpdateFinalJudge(ctx context.Context, id string, coord domain.Coordinate, setAt time.Time) (domain.Competition, error) {
	updated, err := r.dao.UpdateFinalJudge(ctx, id, coord.X, coord.Y, setAt)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.UpdateFinalJudge -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CompetitionRepository) daoToDomain(c dao.Competition) domain.Competition {
	competition := domain.Competition{
		ID:              c.ID,
		Name:            c.Name,
		ImageURL:        c.ImageURL,
		WinnerCount:     c.WinnerCount,
		FinalJudgeSetAt: c.FinalJudgeSetAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	// Both halves must be present; a half-written coordinate counts as unset.
	if c.FinalJudgeX != nil && c.FinalJudgeY != nil {
		competition.FinalJudge = &domain.Coordinate{X: *c.FinalJudgeX, Y: *c.FinalJudgeY}
	}

	return competition
}
