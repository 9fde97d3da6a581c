package response

import (
	"time"

	"github.com/spotcontest/api/internal/domain"
)

type Marker struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

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

type CompetitionResult struct {
	CompetitionID string   `json:"competitionId"`
	FinalJudgeX   float64  `json:"finalJudgeX"`
	FinalJudgeY   float64  `json:"finalJudgeY"`
	ComputedAt    string   `json:"computedAt"`
	Winners       []Winner `json:"winners"`
}

// NewCompetitionResult is the only place distances get rounded.
func NewCompetitionResult(result domain.CompetitionResult, precision int) CompetitionResult {
	winners := make([]Winner, 0, len(result.Winners))
	for _, w := range result.Winners {
		winner := Winner{
			TicketID:         w.TicketID,
			TicketNumber:     w.TicketNumber,
			ParticipantID:    w.ParticipantID,
			UserID:           w.UserID,
			ParticipantName:  w.ParticipantName,
			ParticipantPhone: w.ParticipantPhone,
			Distance:         domain.RoundDistance(w.Distance, precision),
		}
		if w.Marker != nil {
			winner.Marker = &Marker{ID: w.Marker.ID, X: w.Marker.X, Y: w.Marker.Y}
		}
		winners = append(winners, winner)
	}

	return CompetitionResult{
		CompetitionID: result.CompetitionID,
		FinalJudgeX:   result.FinalJudgeX,
		FinalJudgeY:   result.FinalJudgeY,
		ComputedAt:    result.ComputedAt.UTC().Format(time.RFC3339Nano),
		Winners:       winners,
	}
}
