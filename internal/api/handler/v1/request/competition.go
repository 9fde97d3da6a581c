package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spotcontest/api/internal/domain"
)

type CreateCompetitionRequest struct {
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	WinnerCount int    `json:"winnerCount"`
}

func (req *CreateCompetitionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.WinnerCount, validation.Min(0), validation.Max(domain.DefaultWinnerCount)),
	)
}

// SetFinalJudgeRequest uses pointers so that a missing axis is told apart
// from zero.
type SetFinalJudgeRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (req *SetFinalJudgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.X, validation.NotNil, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&req.Y, validation.NotNil, validation.Min(0.0), validation.Max(1.0)),
	)
}
