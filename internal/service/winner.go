package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/metrics"
	"github.com/spotcontest/api/internal/repository"
)

var (
	ErrResultNotFound   = repository.ErrResultNotFound
	ErrFinalJudgeNotSet = errors.New("final judge coordinate not set")
	ErrResultNotStored  = errors.New("result computed but not stored")
)

type ResultRepository interface {
	Upsert(ctx context.Context, result domain.CompetitionResult) error
	FindByCompetitionID(ctx context.Context, competitionID string) (domain.CompetitionResult, error)
}

type ComputationRecorder interface {
	ObserveComputation(outcome string, elapsed time.Duration, candidates int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveComputation(string, time.Duration, int) {}

// WinnerService computes and stores the winners of a competition. Entry
// stores are only read; the result store is the single write.
type WinnerService struct {
	competitions CompetitionRepository
	entries      EntryRepository
	results      ResultRepository
	recorder     ComputationRecorder
	now          func() time.Time
}

func NewWinnerService(competitions CompetitionRepository, entries EntryRepository, results ResultRepository, recorder ComputationRecorder) *WinnerService {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &WinnerService{
		competitions: competitions,
		entries:      entries,
		results:      results,
		recorder:     recorder,
		now:          time.Now,
	}
}

// ComputeAndStore ranks every scored ticket of the competition against its
// final judge coordinate and replaces the stored result.
//
// It fails with ErrFinalJudgeNotSet, without writing, when the coordinate is
// missing. When the write fails the computed result is still returned along
// with an error matching ErrResultNotStored.
func (s *WinnerService) ComputeAndStore(ctx context.Context, competitionID string) (domain.CompetitionResult, error) {
	start := s.now()

	competition, err := s.competitions.FindByID(ctx, competitionID)
	if err != nil {
		s.recorder.ObserveComputation(metrics.OutcomeError, s.now().Sub(start), -1)
		return domain.CompetitionResult{}, fmt.Errorf("s.competitions.FindByID -> %w", err)
	}

	if !competition.HasFinalJudge() {
		s.recorder.ObserveComputation(metrics.OutcomeNoCoordinate, s.now().Sub(start), -1)
		return domain.CompetitionResult{}, ErrFinalJudgeNotSet
	}
	judge := *competition.FinalJudge

	candidates, err := s.collectCandidates(ctx, competitionID, judge)
	if err != nil {
		s.recorder.ObserveComputation(metrics.OutcomeError, s.now().Sub(start), -1)
		return domain.CompetitionResult{}, err
	}

	result := domain.CompetitionResult{
		CompetitionID: competitionID,
		FinalJudgeX:   judge.X,
		FinalJudgeY:   judge.Y,
		Winners:       domain.RankWinners(candidates, competition.WinnerCount),
		ComputedAt:    s.now().UTC(),
	}

	if err = s.results.Upsert(ctx, result); err != nil {
		zap.L().Error("failed to store competition result",
			zap.String("competition_id", competitionID),
			zap.Int("winners", len(result.Winners)),
			zap.Error(err))
		s.recorder.ObserveComputation(metrics.OutcomeStoreFailed, s.now().Sub(start), len(candidates))

		return result, fmt.Errorf("%w: s.results.Upsert -> %w", ErrResultNotStored, err)
	}

	elapsed := s.now().Sub(start)
	s.recorder.ObserveComputation(metrics.OutcomeStored, elapsed, len(candidates))
	zap.L().Info("competition result computed",
		zap.String("competition_id", competitionID),
		zap.Int("candidates", len(candidates)),
		zap.Int("winners", len(result.Winners)),
		zap.Duration("elapsed", elapsed))

	return result, nil
}

// GetResult returns the stored result without computing anything. A missing
// result is reported as ErrCompetitionNotFound when the competition itself
// does not exist.
func (s *WinnerService) GetResult(ctx context.Context, competitionID string) (domain.CompetitionResult, error) {
	result, err := s.results.FindByCompetitionID(ctx, competitionID)
	if err != nil {
		if !errors.Is(err, ErrResultNotFound) {
			return domain.CompetitionResult{}, fmt.Errorf("s.results.FindByCompetitionID -> %w", err)
		}

		exists, existsErr := s.competitions.Exists(ctx, competitionID)
		if existsErr != nil {
			return domain.CompetitionResult{}, fmt.Errorf("s.competitions.Exists -> %w", existsErr)
		}
		if !exists {
			return domain.CompetitionResult{}, ErrCompetitionNotFound
		}

		return domain.CompetitionResult{}, fmt.Errorf("s.results.FindByCompetitionID -> %w", err)
	}

	return result, nil
}

func (s *WinnerService) collectCandidates(ctx context.Context, competitionID string, judge domain.Coordinate) ([]domain.ScoredTicket, error) {
	summaries, err := s.entries.FindCheckoutSummariesByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("s.entries.FindCheckoutSummariesByCompetition -> %w", err)
	}

	submissions := make(map[string][]domain.TicketSubmission)
	for _, summary := range summaries {
		participantID := summary.EffectiveParticipantID()
		if participantID == "" {
			continue
		}
		if _, ok := submissions[participantID]; ok {
			continue
		}

		subs, err := s.entries.FindTicketSubmissionsByParticipant(ctx, competitionID, participantID)
		if err != nil {
			return nil, fmt.Errorf("s.entries.FindTicketSubmissionsByParticipant -> %w", err)
		}
		submissions[participantID] = subs
	}

	records := domain.ReconcileParticipants(summaries, submissions)

	return domain.BuildCandidates(records, judge), nil
}
