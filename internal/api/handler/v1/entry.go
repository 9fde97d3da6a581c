package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotcontest/api/internal/api/handler/v1/request"
	"github.com/spotcontest/api/internal/api/handler/v1/response"
	"github.com/spotcontest/api/internal/domain"
	"github.com/spotcontest/api/internal/service"
)

type EntryService interface {
	RecordCheckoutSummary(ctx context.Context, competitionID string, summary domain.CheckoutSummary) (domain.CheckoutSummary, error)
	RecordTicketSubmission(ctx context.Context, competitionID, participantID string, submission domain.TicketSubmission) (domain.TicketSubmission, error)
}

type EntryHandler struct {
	svc EntryService
}

func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

// HandleRecordCheckoutSummary godoc
// @Summary      Record a checkout summary
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        competitionID path string true "Competition ID"
// @Param        request   body      request.CheckoutSummaryRequest true "request body"
// @Success      201      {object}   domain.CheckoutSummary
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions/{competitionID}/checkout-summaries [post]
func (h *EntryHandler) HandleRecordCheckoutSummary(ctx *gin.Context) {
	competitionID := ctx.Param("competitionID")

	var req request.CheckoutSummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.RecordCheckoutSummary(ctx.Request.Context(), competitionID, req.ToDomain())
	if err != nil {
		h.renderErr(ctx, competitionID, fmt.Errorf("v1.HandleRecordCheckoutSummary -> h.svc.RecordCheckoutSummary -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleRecordTicketSubmission godoc
// @Summary      Save the live markers of a ticket
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        competitionID path string true "Competition ID"
// @Param        participantID path string true "Participant ID"
// @Param        request   body      request.TicketSubmissionRequest true "request body"
// @Success      200      {object}   domain.TicketSubmission
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions/{competitionID}/participants/{participantID}/tickets [put]
func (h *EntryHandler) HandleRecordTicketSubmission(ctx *gin.Context) {
	competitionID := ctx.Param("competitionID")
	participantID := ctx.Param("participantID")

	var req request.TicketSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.RecordTicketSubmission(ctx.Request.Context(), competitionID, participantID, req.ToDomain())
	if err != nil {
		h.renderErr(ctx, competitionID, fmt.Errorf("v1.HandleRecordTicketSubmission -> h.svc.RecordTicketSubmission -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

func (h *EntryHandler) renderErr(ctx *gin.Context, competitionID string, err error) {
	switch {
	case errors.Is(err, service.ErrCompetitionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("competition", "id", competitionID))
	case errors.Is(err, service.ErrMissingParticipant):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrMissingParticipant))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
