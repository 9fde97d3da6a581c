package dao

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutSummary keeps the participant block and tickets exactly as the
// checkout flow sent them.
type CheckoutSummary struct {
	ID            string `gorm:"primaryKey;size:36"`
	CompetitionID string `gorm:"index;not null;size:36"`
	ParticipantID string `gorm:"index"`
	UserID        *string
	Participant   datatypes.JSON
	Tickets       datatypes.JSON
	CreatedAt     time.Time `gorm:"not null"`
}

// TicketSubmission holds the latest markers of one ticket. There is at most
// one row per competition, participant and ticket number.
type TicketSubmission struct {
	ID            string `gorm:"primaryKey;size:36"`
	CompetitionID string `gorm:"uniqueIndex:idx_ticket_submission;not null;size:36"`
	ParticipantID string `gorm:"uniqueIndex:idx_ticket_submission;not null"`
	TicketNumber  int    `gorm:"uniqueIndex:idx_ticket_submission;not null"`
	TicketID      string
	Markers       datatypes.JSON
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

type EntryDAO struct {
	db *gorm.DB
}

func NewEntryDAO(db *gorm.DB) *EntryDAO {
	return &EntryDAO{
		db: db,
	}
}

func (d *EntryDAO) InsertCheckoutSummary(ctx context.Context, summary CheckoutSummary) (CheckoutSummary, error) {
	result := d.db.WithContext(ctx).Create(&summary)
	if result.Error != nil {
		return CheckoutSummary{}, result.Error
	}

	return summary, nil
}

func (d *EntryDAO) FindCheckoutSummariesByCompetition(ctx context.Context, competitionID string) ([]CheckoutSummary, error) {
	var summaries []CheckoutSummary

	result := d.db.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("created_at ASC").Order("id ASC").
		Find(&summaries)
	if result.Error != nil {
		return nil, result.Error
	}

	return summaries, nil
}

// UpsertTicketSubmission replaces the stored markers of a ticket, keyed by
// competition, participant and ticket number.
func (d *EntryDAO) UpsertTicketSubmission(ctx context.Context, submission TicketSubmission) (TicketSubmission, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "competition_id"},
			{Name: "participant_id"},
			{Name: "ticket_number"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"ticket_id", "markers", "updated_at"}),
	}).Create(&submission)
	if result.Error != nil {
		return TicketSubmission{}, result.Error
	}

	var stored TicketSubmission
	err := d.db.WithContext(ctx).
		Take(&stored, "competition_id = ? AND participant_id = ? AND ticket_number = ?",
			submission.CompetitionID, submission.ParticipantID, submission.TicketNumber).Error
	if err != nil {
		return TicketSubmission{}, err
	}

	return stored, nil
}

func (d *EntryDAO) FindTicketSubmissionsByParticipant(ctx context.Context, competitionID, participantID string) ([]TicketSubmission, error) {
	var submissions []TicketSubmission

	result := d.db.WithContext(ctx).
		Where("competition_id = ? AND participant_id = ?", competitionID, participantID).
		Order("ticket_number ASC").
		Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}
