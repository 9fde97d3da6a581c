package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CodeBadRequest        = "bad_request"
	CodeUnauthorized      = "unauthorized"
	CodePermissionDenied  = "permission_denied"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInternal          = "internal"
	CodeFinalJudgeNotSet  = "final_judge_not_set"
	CodeResultNotComputed = "result_not_computed"
	CodeResultNotStored   = "result_not_stored"
)

type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	Code       string `json:"code"`
	ErrorText  string `json:"error,omitempty"`
	Result     any    `json:"result,omitempty"`
}

// RenderErr logs server side failures and aborts the request with err.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(err.StatusText,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err))
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func newErr(status int, code string, err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Code:           code,
	}
	if err != nil {
		e.ErrorText = err.Error()
	}

	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, CodeBadRequest, err)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, CodeUnauthorized, err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, CodeUnauthorized, err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, CodePermissionDenied, err)
}

func ErrNotFound(resource, field string, value any) *Err {
	return newErr(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s with %s %v not found", resource, field, value))
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, CodeConflict, err)
}

// ErrInternalServerError keeps the cause out of the response body.
func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, CodeInternal, err)
	e.ErrorText = ""

	return e
}

func ErrFinalJudgeNotSet(competitionID string) *Err {
	return newErr(http.StatusConflict, CodeFinalJudgeNotSet,
		fmt.Errorf("final judge coordinate not set for competition %s", competitionID))
}

func ErrResultNotComputed(competitionID string) *Err {
	return newErr(http.StatusNotFound, CodeResultNotComputed,
		fmt.Errorf("no result computed yet for competition %s", competitionID))
}

// ErrResultNotStored carries the computed result so the caller can retry the
// write without recomputing.
func ErrResultNotStored(err error, result CompetitionResult) *Err {
	e := newErr(http.StatusServiceUnavailable, CodeResultNotStored, err)
	e.ErrorText = "result computed but could not be stored"
	e.Result = result

	return e
}
