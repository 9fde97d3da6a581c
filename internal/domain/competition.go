package domain

import "time"

type Competition struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	WinnerCount     int         `json:"winnerCount"`
	FinalJudge      *Coordinate `json:"finalJudge"`
	FinalJudgeSetAt *time.Time  `json:"finalJudgeSetAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (c Competition) HasFinalJudge() bool {
	return c.FinalJudge != nil
}
