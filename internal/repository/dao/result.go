package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrResultNotFound = errors.New("competition result not found")
)

// CompetitionResult is replaced as a whole on every computation.
type CompetitionResult struct {
	CompetitionID string         `gorm:"primaryKey;size:36"`
	FinalJudgeX   float64        `gorm:"not null"`
	FinalJudgeY   float64        `gorm:"not null"`
	Winners       datatypes.JSON `gorm:"not null"`
	ComputedAt    time.Time      `gorm:"not null"`
}

// Winner is the stored form of a ranked ticket. Distances keep full precision.
type Winner struct {
	TicketID         string  `json:"ticketId"`
	TicketNumber     int     `json:"ticketNumber"`
	ParticipantID    string  `json:"participantId"`
	UserID           *string `json:"userId"`
	ParticipantName  string  `json:"participantName"`
	ParticipantPhone string  `json:"participantPhone"`
	Distance         float64 `json:"distance"`
	Marker           *Marker `json:"marker"`
}

type Marker struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type ResultDAO struct {
	db *gorm.DB
}

func NewResultDAO(db *gorm.DB) *ResultDAO {
	return &ResultDAO{
		db: db,
	}
}

func (d *ResultDAO) Upsert(ctx context.Context, result CompetitionResult) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"final_judge_x", "final_judge_y", "winners", "computed_at"}),
	}).Create(&result).Error
}

func (d *ResultDAO) FindByCompetitionID(ctx context.Context, competitionID string) (CompetitionResult, error) {
	var result CompetitionResult

	err := d.db.WithContext(ctx).Take(&result, "competition_id = ?", competitionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompetitionResult{}, ErrResultNotFound
		}

		return CompetitionResult{}, err
	}

	return result, nil
}
