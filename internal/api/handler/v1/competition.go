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

type CompetitionService interface {
	CreateCompetition(ctx context.Context, competition domain.Competition) (domain.Competition, error)
	GetCompetition(ctx context.Context, id string) (domain.Competition, error)
	SetFinalJudgeCoordinate(ctx context.Context, id string, coord domain.Coordinate) (domain.Competition, error)
}

type CompetitionHandler struct {
	svc CompetitionService
}

func NewCompetitionHandler(svc CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{
		svc: svc,
	}
}

// HandleCreateCompetition godoc
// @Summary      Create a competition
// @Tags         competitions
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateCompetitionRequest true "request body"
// @Success      201      {object}   domain.Competition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions [post]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleCreateCompetition(ctx *gin.Context) {
	var req request.CreateCompetitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateCompetition(ctx.Request.Context(), domain.Competition{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		WinnerCount: req.WinnerCount,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompetitionExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrCompetitionExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCompetition -> h.svc.CreateCompetition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetCompetition godoc
// @Summary      Get a competition
// @Tags         competitions
// @Produce      json
// @Param        competitionID path string true "Competition ID"
// @Success      200      {object}   domain.Competition
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions/{competitionID} [get]
func (h *CompetitionHandler) HandleGetCompetition(ctx *gin.Context) {
	id := ctx.Param("competitionID")

	competition, err := h.svc.GetCompetition(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCompetitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competition", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetCompetition -> h.svc.GetCompetition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, competition)
}

// HandleSetFinalJudge godoc
// @Summary      Set the final judge coordinate
// @Tags         competitions
// @Accept       json
// @Produce      json
// @Param        competitionID path string true "Competition ID"
// @Param        request   body      request.SetFinalJudgeRequest true "request body"
// @Success      200      {object}   domain.Competition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions/{competitionID}/final-judge [put]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleSetFinalJudge(ctx *gin.Context) {
	id := ctx.Param("competitionID")

	var req request.SetFinalJudgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.SetFinalJudgeCoordinate(ctx.Request.Context(), id, domain.Coordinate{X: *req.X, Y: *req.Y})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCoordinate):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCoordinate))
		case errors.Is(err, service.ErrCompetitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("competition", "id", id))
		default:
			err = fmt.Errorf("v1.HandleSetFinalJudge -> h.svc.SetFinalJudgeCoordinate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
