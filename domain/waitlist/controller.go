package waitlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/clixs/waitlist-api/config/router"
	apperrors "github.com/clixs/waitlist-api/pkg/errors"
)

// NewWaitlistController serves POST /waitlist and its /api/waitlist alias.
// Responses use the public {"success":true} / {"error":...} shape rather than
// the internal envelope.
func NewWaitlistController(service WaitlistService) *router.RESTController {
	return router.NewRESTController(
		"WaitlistController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			handler := submitWaitlistHandler(service)

			rs.AddPostHandler(c, nil, "waitlist", handler)
			rs.AddPostHandler(c, nil, "api/waitlist", handler)
		},
	)
}

func submitWaitlistHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) (result *router.ServiceResult) {
		logger := router.GetLogger(ctx)

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Waitlist submission panicked", "panic", fmt.Sprint(r))
				result = errorResult(errSubmissionFailed)
			}
		}()

		req, err := bindSubmitRequest(ctx)
		if err != nil {
			logger.Error("Failed to decode waitlist submission", "error", err)
			return errorResult(apperrors.NewInternalServerError("decode waitlist submission", err))
		}

		response, err := service.Submit(ctx.Request.Context(), req)
		if err != nil {
			if !apperrors.IsValidationError(err) {
				logger.Error("Waitlist submission failed", "error", err)
			}
			return errorResult(err)
		}

		return router.JSONResult(http.StatusOK, response)
	}
}

func errorResult(err error) *router.ServiceResult {
	return router.JSONResult(
		apperrors.HTTPStatusCode(err),
		ErrorResponse{Error: apperrors.GetHumanReadableMessage(err)},
	)
}

var errNullBody = errors.New("request body is JSON null")

// bindSubmitRequest decodes the body. Well-formed JSON that is not an object
// ([], "x", 1) carries no email and is left for validation to reject. Bodies
// that cannot be parsed at all, or are null, are errors.
func bindSubmitRequest(ctx *router.RequestContext) (*SubmitRequest, error) {
	var req SubmitRequest
	err := ctx.ShouldBindBodyWith(&req, binding.JSON)

	raw, ok := ctx.Get(gin.BodyBytesKey)
	if !ok {
		return nil, err
	}
	body, _ := raw.([]byte)
	trimmed := bytes.TrimSpace(body)

	switch {
	case err == nil && bytes.Equal(trimmed, []byte("null")):
		return nil, errNullBody
	case err == nil:
		return &req, nil
	case len(trimmed) > 0 && trimmed[0] != '{' && json.Valid(trimmed):
		return &SubmitRequest{}, nil
	default:
		return nil, err
	}
}
