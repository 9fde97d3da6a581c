package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/repository/dao"
)

type EntryDAO interface {
	InsertCheckoutSummary(ctx context.Context, summary dao.CheckoutSummary) (dao.CheckoutSummary, error)
	FindCheckoutSummariesByCompetition(ctx context.Context, competitionID string) ([]dao.CheckoutSummary, error)
	UpsertTicketSubmission(ctx context.Context, submission dao.TicketSubmission) (dao.TicketSubmission, error)
	FindTicketSubmissionsByParticipant(ctx context.Context, competitionID, participantID string) ([]dao.TicketSubmission, error)
}

// EntryRepository reads and writes the two sources of participant markers.
// Stored payloads are decoded leniently: a malformed row is returned with
// empty fields rather than failing the whole read.
type EntryRepository struct {
	dao EntryDAO
}

func NewEntryRepository(dao EntryDAO) *EntryRepository {
	return &EntryRepository{
		dao: dao,
	}
}

func (r *EntryRepository) CreateCheckoutSummary(ctx context.Context, summary domain.CheckoutSummary) (domain.CheckoutSummary, error) {
	participant, err := json.Marshal(summary.Participant)
	if err != nil {
		return domain.CheckoutSummary{}, fmt.Errorf("json.Marshal participant -> %w", err)
	}

	tickets, err := json.Marshal(nonNilTickets(summary.Tickets))
	if err != nil {
		return domain.CheckoutSummary{}, fmt.Errorf("json.Marshal tickets -> %w", err)
	}

	row := dao.CheckoutSummary{
		ID:            uuid.NewString(),
		CompetitionID: summary.CompetitionID,
		ParticipantID: summary.ParticipantID,
		Participant:   datatypes.JSON(participant),
		Tickets:       datatypes.JSON(tickets),
	}
	if summary.UserID != "" {
		row.UserID = &summary.UserID
	}

	created, err := r.dao.InsertCheckoutSummary(ctx, row)
	if err != nil {
		return domain.CheckoutSummary{}, fmt.Errorf("r.dao.InsertCheckoutSummary -> %w", err)
	}

	return r.checkoutDaoToDomain(created), nil
}

func (r *EntryRepository) FindCheckoutSummariesByCompetition(ctx context.Context, competitionID string) ([]domain.CheckoutSummary, error) {
	rows, err := r.dao.FindCheckoutSummariesByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCheckoutSummariesByCompetition -> %w", err)
	}

	summaries := make([]domain.CheckoutSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, r.checkoutDaoToDomain(row))
	}

	return summaries, nil
}

func (r *EntryRepository) SaveTicketSubmission(ctx context.Context, submission domain.TicketSubmission) (domain.TicketSubmission, error) {
	markers, err := json.Marshal(nonNilMarkers(submission.Markers))
	if err != nil {
		return domain.TicketSubmission{}, fmt.Errorf("json.Marshal markers -> %w", err)
	}

	saved, err := r.dao.UpsertTicketSubmission(ctx, dao.TicketSubmission{
		ID:            uuid.NewString(),
		CompetitionID: submission.CompetitionID,
		ParticipantID: submission.ParticipantID,
		TicketNumber:  submission.TicketNumber,
		TicketID:      submission.TicketID,
		Markers:       datatypes.JSON(markers),
	})
	if err != nil {
		return domain.TicketSubmission{}, fmt.Errorf("r.dao.UpsertTicketSubmission -> %w", err)
	}

	return r.submissionDaoToDomain(saved), nil
}

func (r *EntryRepository) FindTicketSubmissionsByParticipant(ctx context.Context, competitionID, participantID string) ([]domain.TicketSubmission, error) {
	rows, err := r.dao.FindTicketSubmissionsByParticipant(ctx, competitionID, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTicketSubmissionsByParticipant -> %w", err)
	}

	submissions := make([]domain.TicketSubmission, 0, len(rows))
	for _, row := range rows {
		submissions = append(submissions, r.submissionDaoToDomain(row))
	}

	return submissions, nil
}

func (r *EntryRepository) checkoutDaoToDomain(s dao.CheckoutSummary) domain.CheckoutSummary {
	summary := domain.CheckoutSummary{
		ID:            s.ID,
		CompetitionID: s.CompetitionID,
		ParticipantID: s.ParticipantID,
		CreatedAt:     s.CreatedAt,
	}

	if s.UserID != nil {
		summary.UserID = *s.UserID
	}

	if len(s.Participant) > 0 {
		// Identity decoding never fails; malformed blocks become empty strings.
		_ = json.Unmarshal(s.Participant, &summary.Participant)
	}

	if len(s.Tickets) > 0 {
		if err := json.Unmarshal(s.Tickets, &summary.Tickets); err != nil {
			zap.L().Debug("ignoring malformed checkout tickets",
				zap.String("checkout_summary_id", s.ID),
				zap.Error(err))
			summary.Tickets = nil
		}
	}

	return summary
}

func (r *EntryRepository) submissionDaoToDomain(s dao.TicketSubmission) domain.TicketSubmission {
	submission := domain.TicketSubmission{
		ID:            s.ID,
		CompetitionID: s.CompetitionID,
		ParticipantID: s.ParticipantID,
		TicketID:      s.TicketID,
		TicketNumber:  s.TicketNumber,
		UpdatedAt:     s.UpdatedAt,
	}

	if len(s.Markers) > 0 {
		submission.Markers = domain.DecodeRawMarkers(s.Markers)
	}

	return submission
}

func nonNilTickets(tickets []domain.RawTicket) []domain.RawTicket {
	if tickets == nil {
		return []domain.RawTicket{}
	}

	return tickets
}

func nonNilMarkers(markers []domain.RawMarker) []domain.RawMarker {
	if markers == nil {
		return []domain.RawMarker{}
	}

	return markers
}
