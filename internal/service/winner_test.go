package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/metrics"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func judgedCompetition(id string, x, y float64) domain.Competition {
	return domain.Competition{
		ID:          id,
		Name:        "Spot the ball",
		WinnerCount: domain.DefaultWinnerCount,
		FinalJudge:  &domain.Coordinate{X: x, Y: y},
	}
}

func summary(participantID, name string, tickets ...domain.RawTicket) domain.CheckoutSummary {
	return domain.CheckoutSummary{
		CompetitionID: "c1",
		ParticipantID: participantID,
		Participant:   domain.Identity{ID: participantID, Name: name},
		Tickets:       tickets,
	}
}

func ticket(id string, number int, markers ...domain.RawMarker) domain.RawTicket {
	return domain.RawTicket{TicketID: id, TicketNumber: number, Markers: markers}
}

func marker(id string, x, y any) domain.RawMarker {
	return domain.RawMarker{"id": id, "x": x, "y": y}
}

func newWinnerService(comps *competitionRepoMock, entries *entryRepoMock, results ResultRepository, rec ComputationRecorder) *WinnerService {
	svc := NewWinnerService(comps, entries, results, rec)
	svc.now = func() time.Time { return fixedNow }

	return svc
}

func TestWinnerService_ComputeAndStore_EndToEnd(t *testing.T) {
	ctx := context.Background()

	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0.5, 0.5), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		summary("A", "Alice", ticket("T1", 1, marker("a1", 0.5, 0.51))),
		summary("B", "Bob", ticket("T2", 1, marker("b1", 0.6, 0.6))),
		summary("C", "Carol", ticket("T3", 1)),
	}, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", mock.Anything).Return([]domain.TicketSubmission(nil), nil)

	results := &resultRepoMock{}
	results.On("Upsert", mock.Anything, mock.AnythingOfType("domain.CompetitionResult")).Return(nil)

	rec := &recorderMock{}
	rec.On("ObserveComputation", metrics.OutcomeStored, mock.Anything, 2).Return()

	result, err := newWinnerService(comps, entries, results, rec).ComputeAndStore(ctx, "c1")
	require.NoError(t, err)

	require.Len(t, result.Winners, 2)
	assert.Equal(t, "T1", result.Winners[0].TicketID)
	assert.Equal(t, 0.01, domain.RoundDistance(result.Winners[0].Distance, 6))
	assert.Equal(t, "T2", result.Winners[1].TicketID)
	assert.Equal(t, 0.141421, domain.RoundDistance(result.Winners[1].Distance, 6))
	assert.Equal(t, 0.5, result.FinalJudgeX)
	assert.Equal(t, 0.5, result.FinalJudgeY)
	assert.Equal(t, fixedNow, result.ComputedAt)

	results.AssertCalled(t, "Upsert", mock.Anything, result)
	entries.AssertNumberOfCalls(t, "FindTicketSubmissionsByParticipant", 3)
	rec.AssertExpectations(t)
}

func TestWinnerService_ComputeAndStore_NoSummaries(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0.25, 0.75), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{}, nil)

	store := newMemoryResultStore()

	result, err := newWinnerService(comps, entries, store, nil).ComputeAndStore(context.Background(), "c1")
	require.NoError(t, err)

	assert.NotNil(t, result.Winners)
	assert.Empty(t, result.Winners)
	assert.Equal(t, 0.25, result.FinalJudgeX)
	assert.Equal(t, 0.75, result.FinalJudgeY)
	assert.False(t, result.ComputedAt.IsZero())
	assert.Equal(t, 1, store.writes)
	entries.AssertNotCalled(t, "FindTicketSubmissionsByParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestWinnerService_ComputeAndStore_FinalJudgeNotSet(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(domain.Competition{ID: "c1", WinnerCount: 3}, nil)

	entries := &entryRepoMock{}
	results := &resultRepoMock{}

	rec := &recorderMock{}
	rec.On("ObserveComputation", metrics.OutcomeNoCoordinate, mock.Anything, -1).Return()

	_, err := newWinnerService(comps, entries, results, rec).ComputeAndStore(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrFinalJudgeNotSet)

	results.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	entries.AssertNotCalled(t, "FindCheckoutSummariesByCompetition", mock.Anything, mock.Anything)
	rec.AssertExpectations(t)
}

func TestWinnerService_ComputeAndStore_UnknownCompetition(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "nope").Return(domain.Competition{}, ErrCompetitionNotFound)

	results := &resultRepoMock{}

	_, err := newWinnerService(comps, &entryRepoMock{}, results, nil).ComputeAndStore(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCompetitionNotFound)
	results.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestWinnerService_ComputeAndStore_StoreFailure(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0, 0), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		summary("A", "Alice", ticket("T1", 1, marker("m1", 0.3, 0.4))),
	}, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", "A").Return([]domain.TicketSubmission{}, nil)

	dbErr := errors.New("connection reset")
	results := &resultRepoMock{}
	results.On("Upsert", mock.Anything, mock.Anything).Return(dbErr)

	rec := &recorderMock{}
	rec.On("ObserveComputation", metrics.OutcomeStoreFailed, mock.Anything, 1).Return()

	result, err := newWinnerService(comps, entries, results, rec).ComputeAndStore(context.Background(), "c1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResultNotStored)
	assert.ErrorIs(t, err, dbErr)

	require.Len(t, result.Winners, 1)
	assert.Equal(t, 0.5, result.Winners[0].Distance)
	assert.Equal(t, "c1", result.CompetitionID)
	rec.AssertExpectations(t)
}

func TestWinnerService_ComputeAndStore_Idempotent(t *testing.T) {
	ctx := context.Background()

	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0.5, 0.5), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		summary("A", "Alice",
			ticket("T1", 1, marker("a1", 0.1, 0.1)),
			ticket("T2", 2, marker("a2", 0.45, 0.5)),
		),
		summary("B", "Bob", ticket("T3", 1, marker("b1", 0.9, 0.2), marker("b2", 0.52, 0.52))),
		summary("D", "Dan", ticket("T4", 1, marker("d1", 0.5, 0.7))),
	}, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", mock.Anything).Return([]domain.TicketSubmission{}, nil)

	store := newMemoryResultStore()
	svc := newWinnerService(comps, entries, store, nil)

	first, err := svc.ComputeAndStore(ctx, "c1")
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.Add(time.Minute) }
	second, err := svc.ComputeAndStore(ctx, "c1")
	require.NoError(t, err)

	if diff := cmp.Diff(first.Winners, second.Winners); diff != "" {
		t.Errorf("winners differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"T3", "T2", "T4"}, ticketIDs(second.Winners))

	stored, err := store.FindByCompetitionID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, second, stored)
	assert.Len(t, store.results, 1)
	assert.Equal(t, 2, store.writes)
}

func TestWinnerService_ComputeAndStore_SubmissionFallback(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0.5, 0.5), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		summary("A", "Alice", ticket("", 1)),
		summary("A", "Alice", ticket("", 2, marker("x", 0.9, 0.9))),
	}, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", "A").Return([]domain.TicketSubmission{
		{ParticipantID: "A", TicketID: "live-1", TicketNumber: 1, Markers: []domain.RawMarker{marker("s1", "0.5", "0.6")}},
	}, nil).Once()

	result, err := newWinnerService(comps, entries, newMemoryResultStore(), nil).ComputeAndStore(context.Background(), "c1")
	require.NoError(t, err)

	require.Len(t, result.Winners, 2)
	assert.Equal(t, "live-1", result.Winners[0].TicketID)
	assert.Equal(t, &domain.Marker{ID: "s1", X: 0.5, Y: 0.6}, result.Winners[0].Marker)
	assert.Equal(t, "A:2", result.Winners[1].TicketID)
	entries.AssertNumberOfCalls(t, "FindTicketSubmissionsByParticipant", 1)
}

func TestWinnerService_ComputeAndStore_MalformedIdentity(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0.5, 0.5), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		{CompetitionID: "c1", ParticipantID: "anon", Tickets: []domain.RawTicket{ticket("", 1, marker("m1", 0.2, 0.2), marker("m2", "NaN", 0.3))}},
	}, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", "anon").Return([]domain.TicketSubmission{}, nil)

	result, err := newWinnerService(comps, entries, newMemoryResultStore(), nil).ComputeAndStore(context.Background(), "c1")
	require.NoError(t, err)

	require.Len(t, result.Winners, 1)
	w := result.Winners[0]
	assert.Equal(t, "", w.ParticipantName)
	assert.Equal(t, "", w.ParticipantPhone)
	require.NotNil(t, w.UserID)
	assert.Equal(t, "anon", *w.UserID)
	assert.Equal(t, "m1", w.Marker.ID)
}

func TestWinnerService_ComputeAndStore_SummariesWithoutParticipantID(t *testing.T) {
	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(judgedCompetition("c1", 0.5, 0.5), nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		{ID: "row-1", CompetitionID: "c1", Tickets: []domain.RawTicket{ticket("", 1, marker("a", 0.5, 0.52))}},
		{ID: "row-2", CompetitionID: "c1", Tickets: []domain.RawTicket{ticket("", 1, marker("b", 0.5, 0.51))}},
	}, nil)

	result, err := newWinnerService(comps, entries, newMemoryResultStore(), nil).ComputeAndStore(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"row-2:1", "row-1:1"}, ticketIDs(result.Winners))
	entries.AssertNotCalled(t, "FindTicketSubmissionsByParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestWinnerService_ComputeAndStore_WinnerCount(t *testing.T) {
	comp := judgedCompetition("c1", 0, 0)
	comp.WinnerCount = 1

	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(comp, nil)

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return([]domain.CheckoutSummary{
		summary("A", "Alice", ticket("T1", 1, marker("a", 0.2, 0.2))),
		summary("B", "Bob", ticket("T2", 1, marker("b", 0.1, 0.1))),
	}, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", mock.Anything).Return([]domain.TicketSubmission{}, nil)

	result, err := newWinnerService(comps, entries, newMemoryResultStore(), nil).ComputeAndStore(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"T2"}, ticketIDs(result.Winners))
}

func TestWinnerService_ComputeAndStore_StoredWinnerCountAboveThree(t *testing.T) {
	comp := judgedCompetition("c1", 0, 0)
	comp.WinnerCount = 7

	comps := &competitionRepoMock{}
	comps.On("FindByID", mock.Anything, "c1").Return(comp, nil)

	var summaries []domain.CheckoutSummary
	for _, p := range []string{"A", "B", "C", "D", "E"} {
		summaries = append(summaries, summary(p, p, ticket("T"+p, 1, marker("m", 0.1, 0.1))))
	}

	entries := &entryRepoMock{}
	entries.On("FindCheckoutSummariesByCompetition", mock.Anything, "c1").Return(summaries, nil)
	entries.On("FindTicketSubmissionsByParticipant", mock.Anything, "c1", mock.Anything).Return([]domain.TicketSubmission{}, nil)

	result, err := newWinnerService(comps, entries, newMemoryResultStore(), nil).ComputeAndStore(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"TA", "TB", "TC"}, ticketIDs(result.Winners))
}

func TestWinnerService_GetResult(t *testing.T) {
	ctx := context.Background()
	store := newMemoryResultStore()

	comps := &competitionRepoMock{}
	comps.On("Exists", mock.Anything, "c1").Return(true, nil)
	comps.On("Exists", mock.Anything, "nope").Return(false, nil)
	comps.On("Exists", mock.Anything, "broken").Return(false, errors.New("connection reset"))

	svc := newWinnerService(comps, &entryRepoMock{}, store, nil)

	_, err := svc.GetResult(ctx, "c1")
	assert.ErrorIs(t, err, ErrResultNotFound)
	assert.NotErrorIs(t, err, ErrCompetitionNotFound)

	_, err = svc.GetResult(ctx, "nope")
	assert.ErrorIs(t, err, ErrCompetitionNotFound)
	assert.NotErrorIs(t, err, ErrResultNotFound)

	_, err = svc.GetResult(ctx, "broken")
	assert.EqualError(t, err, "s.competitions.Exists -> connection reset")

	want := domain.CompetitionResult{CompetitionID: "c1", Winners: []domain.ScoredTicket{}, ComputedAt: fixedNow}
	require.NoError(t, store.Upsert(ctx, want))

	got, err := svc.GetResult(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, store.writes)
}

func ticketIDs(winners []domain.ScoredTicket) []string {
	ids := make([]string, 0, len(winners))
	for _, w := range winners {
		ids = append(ids, w.TicketID)
	}

	return ids
}
