package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotcontest/api/internal/domain"
)

func TestNewCompetitionResult(t *testing.T) {
	userID := "A"
	result := domain.CompetitionResult{
		CompetitionID: "c1",
		FinalJudgeX:   0.5,
		FinalJudgeY:   0.5,
		ComputedAt:    time.Date(2026, 6, 1, 14, 0, 0, 123456789, time.FixedZone("CEST", 2*60*60)),
		Winners: []domain.ScoredTicket{
			{TicketID: "T1", TicketNumber: 1, ParticipantID: "A", UserID: &userID, Distance: 0.010000000000000009, Marker: &domain.Marker{ID: "a1", X: 0.5, Y: 0.51}},
			{TicketID: "T2", TicketNumber: 1, ParticipantID: "B", Distance: 0.14142135623730953},
		},
	}

	data, err := json.Marshal(NewCompetitionResult(result, 6))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"competitionId": "c1",
		"finalJudgeX": 0.5,
		"finalJudgeY": 0.5,
		"computedAt": "2026-06-01T12:00:00.123456789Z",
		"winners": [
			{"ticketId":"T1","ticketNumber":1,"participantId":"A","userId":"A","participantName":"","participantPhone":"","distance":0.01,"marker":{"id":"a1","x":0.5,"y":0.51}},
			{"ticketId":"T2","ticketNumber":1,"participantId":"B","userId":null,"participantName":"","participantPhone":"","distance":0.141421,"marker":null}
		]
	}`, string(data))

	// the domain value keeps full precision
	assert.Equal(t, 0.010000000000000009, result.Winners[0].Distance)
}

func TestNewCompetitionResult_EmptyWinners(t *testing.T) {
	data, err := json.Marshal(NewCompetitionResult(domain.CompetitionResult{CompetitionID: "c1"}, 6))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"winners":[]`)
}
