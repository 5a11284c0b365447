package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/service"
)

type TotalizeService interface {
	Authorize(ctx context.Context, eventID uint, token, password string) (domain.Event, error)
	Summary(ctx context.Context, eventID uint) (domain.Summary, error)
	LookupCode(ctx context.Context, eventID uint, code string) (domain.CodeLookup, error)
}

// GrantIssuer stores a totalize grant for the caller and returns it.
type GrantIssuer interface {
	Issue(ctx *gin.Context, eventID uint) (string, time.Time, error)
}

type TotalizeHandler struct {
	svc    TotalizeService
	grants GrantIssuer
}

func NewTotalizeHandler(svc TotalizeService, grants GrantIssuer) *TotalizeHandler {
	return &TotalizeHandler{
		svc:    svc,
		grants: grants,
	}
}

// HandleAuthorize godoc
// @Summary      Unlock the totalize view
// @Description  Checks the totalize token and password of the event and grants access for a limited time.
// @Tags         totalize
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                          true  "Event ID"
// @Param        request  body      request.TotalizeAuthRequest  true  "request body"
// @Success      200      {object}  response.TotalizeAuthResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/totalize/auth [post]
func (h *TotalizeHandler) HandleAuthorize(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.TotalizeAuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, err := h.svc.Authorize(ctx.Request.Context(), eventID, req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrTotalizeDenied) || errors.Is(err, service.ErrNotFound) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleAuthorize -> h.svc.Authorize -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, expiresAt, err := h.grants.Issue(ctx, eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleAuthorize -> h.grants.Issue -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TotalizeAuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// HandleSummary godoc
// @Summary      Totalize summary
// @Description  Stamp counts per spot, hourly stamps per spot, goal count and hourly goals.
// @Tags         totalize
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Summary
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/totalize [get]
// @Security BearerAuth
func (h *TotalizeHandler) HandleSummary(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleLookupCode godoc
// @Summary      Look up an achievement code
// @Description  Dashes and spaces are ignored, so "1234-5678" and "12345678" are the same code.
// @Tags         totalize
// @Produce      json
// @Param        eventID  path      int     true  "Event ID"
// @Param        code     path      string  true  "Achievement code"
// @Success      200      {object}  domain.CodeLookup
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/totalize/codes/{code} [get]
// @Security BearerAuth
func (h *TotalizeHandler) HandleLookupCode(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	code := ctx.Param("code")
	if err := request.ValidateAchievementCode(code); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lookup, err := h.svc.LookupCode(ctx.Request.Context(), eventID, code)
	if err != nil {
		err = fmt.Errorf("v1.HandleLookupCode -> h.svc.LookupCode -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lookup)
}
