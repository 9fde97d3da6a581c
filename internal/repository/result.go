package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/repository/dao"
)

var (
	ErrResultNotFound = dao.ErrResultNotFound
)

type ResultDAO interface {
	Upsert(ctx context.Context, result dao.CompetitionResult) error
	FindByCompetitionID(ctx context.Context, competitionID string) (dao.CompetitionResult, error)
}

type ResultRepository struct {
	dao ResultDAO
}

func NewResultRepository(dao ResultDAO) *ResultRepository {
	return &ResultRepository{
		dao: dao,
	}
}

// Upsert stores result as the only result of its competition.
func (r *ResultRepository) Upsert(ctx context.Context, result domain.CompetitionResult) error {
	row, err := r.domainToDao(result)
	if err != nil {
		return err
	}

	if err = r.dao.Upsert(ctx, row); err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}

func (r *ResultRepository) FindByCompetitionID(ctx context.Context, competitionID string) (domain.CompetitionResult, error) {
	found, err := r.dao.FindByCompetitionID(ctx, competitionID)
	if err != nil {
		return domain.CompetitionResult{}, fmt.Errorf("r.dao.FindByCompetitionID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *ResultRepository) domainToDao(result domain.CompetitionResult) (dao.CompetitionResult, error) {
	winners := make([]dao.Winner, 0, len(result.Winners))
	for _, w := range result.Winners {
		winner := dao.Winner{
			TicketID:         w.TicketID,
			TicketNumber:     w.TicketNumber,
			ParticipantID:    w.ParticipantID,
			UserID:           w.UserID,
			ParticipantName:  w.ParticipantName,
			ParticipantPhone: w.ParticipantPhone,
			Distance:         w.Distance,
		}
		if w.Marker != nil {
			winner.Marker = &dao.Marker{ID: w.Marker.ID, X: w.Marker.X, Y: w.Marker.Y}
		}
		winners = append(winners, winner)
	}

	data, err := json.Marshal(winners)
	if err != nil {
		return dao.CompetitionResult{}, fmt.Errorf("json.Marshal winners -> %w", err)
	}

	return dao.CompetitionResult{
		CompetitionID: result.CompetitionID,
		FinalJudgeX:   result.FinalJudgeX,
		FinalJudgeY:   result.FinalJudgeY,
		Winners:       datatypes.JSON(data),
		ComputedAt:    result.ComputedAt,
	}, nil
}

func (r *ResultRepository) daoToDomain(row dao.CompetitionResult) (domain.CompetitionResult, error) {
	var stored []dao.Winner
	if err := json.Unmarshal(row.Winners, &stored); err != nil {
		return domain.CompetitionResult{}, fmt.Errorf("json.Unmarshal winners -> %w", err)
	}

	winners := make([]domain.ScoredTicket, 0, len(stored))
	for _, w := range stored {
		winner := domain.ScoredTicket{
			TicketID:         w.TicketID,
			TicketNumber:     w.TicketNumber,
			ParticipantID:    w.ParticipantID,
			UserID:           w.UserID,
			ParticipantName:  w.ParticipantName,
			ParticipantPhone: w.ParticipantPhone,
			Distance:         w.Distance,
		}
		if w.Marker != nil {
			winner.Marker = &domain.Marker{ID: w.Marker.ID, X: w.Marker.X, Y: w.Marker.Y}
		}
		winners = append(winners, winner)
	}

	return domain.CompetitionResult{
		CompetitionID: row.CompetitionID,
		FinalJudgeX:   row.FinalJudgeX,
		FinalJudgeY:   row.FinalJudgeY,
		Winners:       winners,
		ComputedAt:    row.ComputedAt.UTC(),
	}, nil
}
