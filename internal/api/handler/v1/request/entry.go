package request

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spotcontest/api/internal/domain"
)

var (
	errMissingParticipant = errors.New("participantId or participant.id is required")
)

// CheckoutSummaryRequest keeps participant and tickets loosely typed; they are
// stored as received and coerced when winners are computed.
type CheckoutSummaryRequest struct {
	ParticipantID string          `json:"participantId"`
	UserID        string          `json:"userId"`
	Participant   domain.Identity `json:"participant"`
	Tickets       json.RawMessage `json:"tickets"`
}

func (req *CheckoutSummaryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ParticipantID, validation.By(func(any) error {
			if req.ParticipantID == "" && req.Participant.ID == "" {
				return errMissingParticipant
			}
			return nil
		}), validation.Length(0, 128)),
		validation.Field(&req.UserID, validation.Length(0, 128)),
	)
}

func (req *CheckoutSummaryRequest) ToDomain() domain.CheckoutSummary {
	summary := domain.CheckoutSummary{
		ParticipantID: req.ParticipantID,
		UserID:        req.UserID,
		Participant:   req.Participant,
	}

	if len(req.Tickets) > 0 {
		var tickets []domain.RawTicket
		if err := json.Unmarshal(req.Tickets, &tickets); err == nil {
			summary.Tickets = tickets
		}
	}

	return summary
}

type TicketSubmissionRequest struct {
	TicketID     string          `json:"ticketId"`
	TicketNumber int             `json:"ticketNumber"`
	Markers      json.RawMessage `json:"markers"`
}

func (req *TicketSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketID, validation.Length(0, 128)),
		validation.Field(&req.TicketNumber, validation.Required, validation.Min(1)),
	)
}

func (req *TicketSubmissionRequest) ToDomain() domain.TicketSubmission {
	return domain.TicketSubmission{
		TicketID:     req.TicketID,
		TicketNumber: req.TicketNumber,
		Markers:      domain.DecodeRawMarkers(req.Markers),
	}
}
