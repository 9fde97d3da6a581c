package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrCompetitionExists   = errors.New("competition already exists")
	ErrCompetitionNotFound = errors.New("competition not found")
)

type Competition struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	ImageURL    string
	WinnerCount int `gorm:"not null;default:3"`

	FinalJudgeX     *float64
	FinalJudgeY     *float64
	FinalJudgeSetAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CompetitionDAO struct {
	db *gorm.DB
}

func NewCompetitionDAO(db *gorm.DB) *CompetitionDAO {
	return &CompetitionDAO{
		db: db,
	}
}

func (d *CompetitionDAO) Insert(ctx context.Context, competition Competition) (Competition, error) {
	result := d.db.WithContext(ctx).Create(&competition)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Competition{}, ErrCompetitionExists
		}

		return Competition{}, result.Error
	}

	return competition, nil
}

func (d *CompetitionDAO) FindByID(ctx context.Context, id string) (Competition, error) {
	var competition Competition

	result := d.db.WithContext(ctx).Take(&competition, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Competition{}, ErrCompetitionNotFound
		}

		return Competition{}, result.Error
	}

	return competition, nil
}

func (d *CompetitionDAO) Exists(ctx context.Context, id string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Competition{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// UpdateFinalJudge overwrites the judged coordinate of a competition.
func (d *CompetitionDAO) UpdateFinalJudge(ctx context.Context, id string, x, y float64, setAt time.Time) (Competition, error) {
	result := d.db.WithContext(ctx).Model(&Competition{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"final_judge_x":      x,
			"final_judge_y":      y,
			"final_judge_set_at": setAt,
		})
	if result.Error != nil {
		return Competition{}, result.Error
	}

	if result.RowsAffected == 0 {
		return Competition{}, ErrCompetitionNotFound
	}

	return d.FindByID(ctx, id)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}
