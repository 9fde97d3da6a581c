package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spotcontest/api/internal/domain"
)

var (
	ErrMissingParticipant = errors.New("participant id is required")
)

type EntryRepository interface {
	CreateCheckoutSummary(ctx context.Context, summary domain.CheckoutSummary) (domain.CheckoutSummary, error)
	FindCheckoutSummariesByCompetition(ctx context.Context, competitionID string) ([]domain.CheckoutSummary, error)
	SaveTicketSubmission(ctx context.Context, submission domain.TicketSubmission) (domain.TicketSubmission, error)
	FindTicketSubmissionsByParticipant(ctx context.Context, competitionID, participantID string) ([]domain.TicketSubmission, error)
}

// EntryService records what participants hand in. Payloads are stored as
// received; normalization only happens when winners are computed.
type EntryService struct {
	competitions CompetitionRepository
	repo         EntryRepository
}

func NewEntryService(competitions CompetitionRepository, repo EntryRepository) *EntryService {
	return &EntryService{
		competitions: competitions,
		repo:         repo,
	}
}

func (s *EntryService) RecordCheckoutSummary(ctx context.Context, competitionID string, summary domain.CheckoutSummary) (domain.CheckoutSummary, error) {
	if err := s.ensureCompetition(ctx, competitionID); err != nil {
		return domain.CheckoutSummary{}, err
	}

	summary.CompetitionID = competitionID
	if summary.EffectiveParticipantID() == "" {
		return domain.CheckoutSummary{}, ErrMissingParticipant
	}
	summary.ParticipantID = summary.EffectiveParticipantID()

	created, err := s.repo.CreateCheckoutSummary(ctx, summary)
	if err != nil {
		return domain.CheckoutSummary{}, fmt.Errorf("s.repo.CreateCheckoutSummary -> %w", err)
	}

	return created, nil
}

// RecordTicketSubmission stores the marker set of one ticket, replacing the
// previous one recorded for the same participant and ticket number.
func (s *EntryService) RecordTicketSubmission(ctx context.Context, competitionID, participantID string, submission domain.TicketSubmission) (domain.TicketSubmission, error) {
	if participantID == "" {
		return domain.TicketSubmission{}, ErrMissingParticipant
	}

	if err := s.ensureCompetition(ctx, competitionID); err != nil {
		return domain.TicketSubmission{}, err
	}

	submission.CompetitionID = competitionID
	submission.ParticipantID = participantID

	saved, err := s.repo.SaveTicketSubmission(ctx, submission)
	if err != nil {
		return domain.TicketSubmission{}, fmt.Errorf("s.repo.SaveTicketSubmission -> %w", err)
	}

	return saved, nil
}

func (s *EntryService) ensureCompetition(ctx context.Context, competitionID string) error {
	exists, err := s.competitions.Exists(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("s.competitions.Exists -> %w", err)
	}

	if !exists {
		return ErrCompetitionNotFound
	}

	return nil
}
