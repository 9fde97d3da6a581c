package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/puzpuzpuz/xsync/v2"

	"github.com/spotcontest/api/internal/api/handler/v1/response"
	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/service"
)

type WinnerService interface {
	ComputeAndStore(ctx context.Context, competitionID string) (domain.CompetitionResult, error)
	GetResult(ctx context.Context, competitionID string) (domain.CompetitionResult, error)
}

// computeLock is held while a competition's result is computed. refs counts
// the requests holding or waiting on it and is only touched inside
// MapOf.Compute.
type computeLock struct {
	mu   sync.Mutex
	refs int
}

// ResultHandler serializes computations per competition so that two admin
// clicks do not race on the same result row.
type ResultHandler struct {
	svc       WinnerService
	precision int
	locks     *xsync.MapOf[string, *computeLock]
}

func NewResultHandler(svc WinnerService, precision int) *ResultHandler {
	return &ResultHandler{
		svc:       svc,
		precision: precision,
		locks:     xsync.NewMapOf[*computeLock](),
	}
}

func (h *ResultHandler) acquire(competitionID string) *computeLock {
	lock, _ := h.locks.Compute(competitionID, func(old *computeLock, loaded bool) (*computeLock, bool) {
		if !loaded {
			old = &computeLock{}
		}
		old.refs++

		return old, false
	})
	lock.mu.Lock()

	return lock
}

// release drops the entry once no request holds or waits on it.
func (h *ResultHandler) release(competitionID string, lock *computeLock) {
	lock.mu.Unlock()
	h.locks.Compute(competitionID, func(old *computeLock, loaded bool) (*computeLock, bool) {
		old.refs--

		return old, old.refs == 0
	})
}

// HandleComputeResult godoc
// @Summary      Compute and store the winners
// @Tags         results
// @Produce      json
// @Param        competitionID path string true "Competition ID"
// @Success      200      {object}   response.CompetitionResult
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /competitions/{competitionID}/results [post]
// @Security     BearerAuth
func (h *ResultHandler) HandleComputeResult(ctx *gin.Context) {
	competitionID := ctx.Param("competitionID")

	lock := h.acquire(competitionID)
	result, err := h.svc.ComputeAndStore(ctx.Request.Context(), competitionID)
	h.release(competitionID, lock)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompetitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("competition", "id", competitionID))
		case errors.Is(err, service.ErrFinalJudgeNotSet):
			response.RenderErr(ctx, response.ErrFinalJudgeNotSet(competitionID))
		case errors.Is(err, service.ErrResultNotStored):
			response.RenderErr(ctx, response.ErrResultNotStored(err, response.NewCompetitionResult(result, h.precision)))
		default:
			err = fmt.Errorf("v1.HandleComputeResult -> h.svc.ComputeAndStore -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewCompetitionResult(result, h.precision))
}

// HandleGetResult godoc
// @Summary      Get the stored winners
// @Tags         results
// @Produce      json
// @Param        competitionID path string true "Competition ID"
// @Success      200      {object}   response.CompetitionResult
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions/{competitionID}/results [get]
func (h *ResultHandler) HandleGetResult(ctx *gin.Context) {
	competitionID := ctx.Param("competitionID")

	result, err := h.svc.GetResult(ctx.Request.Context(), competitionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompetitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("competition", "id", competitionID))
		case errors.Is(err, service.ErrResultNotFound):
			response.RenderErr(ctx, response.ErrResultNotComputed(competitionID))
		default:
			err = fmt.Errorf("v1.HandleGetResult -> h.svc.GetResult -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewCompetitionResult(result, h.precision))
}
