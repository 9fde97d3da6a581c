package domain

import (
	"math"
	"sort"
	"time"
)

const (
	// DefaultWinnerCount is also the most winners a competition can have.
	DefaultWinnerCount       = 3
	DefaultDistancePrecision = 6
)

// ScoredTicket is a ticket's best marker and its distance to the final judge
// coordinate.
type ScoredTicket struct {
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
	CompetitionID string         `json:"competitionId"`
	FinalJudgeX   float64        `json:"finalJudgeX"`
	FinalJudgeY   float64        `json:"finalJudgeY"`
	Winners       []ScoredTicket `json:"winners"`
	ComputedAt    time.Time      `json:"computedAt"`
}

// RankWinners orders candidates by distance (stable), keeps the first
// occurrence of each ticket id and returns at most limit of them. A limit
// outside 1..DefaultWinnerCount means DefaultWinnerCount. The input slice is
// not reordered.
func RankWinners(candidates []ScoredTicket, limit int) []ScoredTicket {
	if limit <= 0 || limit > DefaultWinnerCount {
		limit = DefaultWinnerCount
	}

	sorted := make([]ScoredTicket, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	winners := make([]ScoredTicket, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, c := range sorted {
		if len(winners) == limit {
			break
		}

		if _, dup := seen[c.TicketID]; dup {
			continue
		}

		seen[c.TicketID] = struct{}{}
		winners = append(winners, c)
	}

	return winners
}

// RoundDistance rounds half away from zero to the given number of decimal
// places. It is meant for presentation only.
func RoundDistance(d float64, places int) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return d
	}

	p := math.Pow10(places)

	return math.Round(d*p) / p
}
