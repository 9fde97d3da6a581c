package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Identity is the participant block of a checkout summary. Fields that are
// missing or not strings decode as empty strings.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (i *Identity) UnmarshalJSON(data []byte) error {
	*i = Identity{}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	i.ID, _ = fields["id"].(string)
	i.Name, _ = fields["name"].(string)
	i.Phone, _ = fields["phone"].(string)

	return nil
}

// CheckoutSummary is the snapshot of a participant's tickets taken at checkout.
// It decides who takes part in a competition.
type CheckoutSummary struct {
	ID            string      `json:"id"`
	CompetitionID string      `json:"competitionId"`
	ParticipantID string      `json:"participantId"`
	UserID        string      `json:"userId,omitempty"`
	Participant   Identity    `json:"participant"`
	Tickets       []RawTicket `json:"tickets"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// TicketSubmission is the live marker state of one ticket, recorded by the
// entry flow.
type TicketSubmission struct {
	ID            string      `json:"id"`
	CompetitionID string      `json:"competitionId"`
	ParticipantID string      `json:"participantId"`
	TicketID      string      `json:"ticketId,omitempty"`
	TicketNumber  int         `json:"ticketNumber"`
	Markers       []RawMarker `json:"markers"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type ParticipantRecord struct {
	ParticipantID string
	UserID        *string
	Name          string
	Phone         string
	Tickets       []Ticket
}

// EffectiveParticipantID is the id used to look up submissions and to build
// fallback ticket and marker ids. It is empty when the summary carries no
// participant id at all.
func (s CheckoutSummary) EffectiveParticipantID() string {
	if s.ParticipantID != "" {
		return s.ParticipantID
	}

	return s.Participant.ID
}

// fallbackIDBase names the tickets of a summary without participant id after
// the checkout row, or its position when the row has no id either, so that
// two such summaries never share ticket ids.
func (s CheckoutSummary) fallbackIDBase(position int) string {
	if id := s.EffectiveParticipantID(); id != "" {
		return id
	}
	if s.ID != "" {
		return s.ID
	}

	return "checkout-" + strconv.Itoa(position+1)
}

// ReconcileParticipants merges checkout summaries with ticket submissions.
// Summaries enumerate participants and tickets; a ticket whose checkout
// markers normalize to nothing takes its markers from the submission with the
// same ticket id, or failing that the same ticket number. Submissions for
// tickets absent from the summary are ignored, as are all submissions when
// the summary has no participant id. submissions is keyed by participant id
// and is never modified.
func ReconcileParticipants(summaries []CheckoutSummary, submissions map[string][]TicketSubmission) []ParticipantRecord {
	records := make([]ParticipantRecord, 0, len(summaries))
	for position, summary := range summaries {
		participantID := summary.EffectiveParticipantID()
		idBase := summary.fallbackIDBase(position)

		record := ParticipantRecord{
			ParticipantID: participantID,
			UserID:        resolveUserID(summary.UserID, participantID),
			Name:          summary.Participant.Name,
			Phone:         summary.Participant.Phone,
			Tickets:       make([]Ticket, 0, len(summary.Tickets)),
		}

		var byID map[string]TicketSubmission
		var byNumber map[int]TicketSubmission
		if participantID != "" {
			byID, byNumber = indexSubmissions(submissions[participantID])
		}

		for i, raw := range summary.Tickets {
			number := raw.TicketNumber
			if number <= 0 {
				number = i + 1
			}

			prefix := idBase + ":" + strconv.Itoa(number)
			markers := NormalizeMarkers(raw.Markers, prefix)

			sub, found := byID[raw.TicketID]
			if raw.TicketID == "" || !found {
				sub, found = byNumber[number]
			}

			if len(markers) == 0 && found {
				markers = NormalizeMarkers(sub.Markers, prefix)
			}

			ticketID := raw.TicketID
			if ticketID == "" && found {
				ticketID = sub.TicketID
			}
			if ticketID == "" {
				ticketID = prefix
			}

			record.Tickets = append(record.Tickets, Ticket{
				TicketID:     ticketID,
				TicketNumber: number,
				Markers:      markers,
			})
		}

		records = append(records, record)
	}

	return records
}

// BuildCandidates scores every ticket that has at least one marker.
func BuildCandidates(records []ParticipantRecord, judge Coordinate) []ScoredTicket {
	candidates := []ScoredTicket{}
	for _, record := range records {
		for _, ticket := range record.Tickets {
			marker, distance, ok := ClosestMarker(ticket.Markers, judge)
			if !ok {
				continue
			}

			candidates = append(candidates, ScoredTicket{
				TicketID:         ticket.TicketID,
				TicketNumber:     ticket.TicketNumber,
				ParticipantID:    record.ParticipantID,
				UserID:           record.UserID,
				ParticipantName:  record.Name,
				ParticipantPhone: record.Phone,
				Distance:         distance,
				Marker:           &marker,
			})
		}
	}

	return candidates
}

func resolveUserID(userID, participantID string) *string {
	switch {
	case userID != "":
		return &userID
	case participantID != "":
		return &participantID
	default:
		return nil
	}
}

func indexSubmissions(subs []TicketSubmission) (map[string]TicketSubmission, map[int]TicketSubmission) {
	byID := make(map[string]TicketSubmission, len(subs))
	byNumber := make(map[int]TicketSubmission, len(subs))
	for _, sub := range subs {
		if sub.TicketID != "" {
			if _, dup := byID[sub.TicketID]; !dup {
				byID[sub.TicketID] = sub
			}
		}
		if sub.TicketNumber > 0 {
			if _, dup := byNumber[sub.TicketNumber]; !dup {
				byNumber[sub.TicketNumber] = sub
			}
		}
	}

	return byID, byNumber
}
