package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/service"
)

type RallyService interface {
	ScanPage(ctx context.Context, eventID, spotID uint, token string) (service.ScanPage, error)
	Stamp(ctx context.Context, in service.StampInput) (service.StampOutcome, error)
	Achievement(ctx context.Context, eventID uint, visitor domain.Visitor) (string, error)
	StampGoalStatus(ctx context.Context, eventID uint, visitor domain.Visitor) (bool, error)
	Progress(ctx context.Context, eventID uint, visitor domain.Visitor) (service.Progress, error)
	GoalPage(ctx context.Context, eventID uint, goalToken string) (service.GoalPage, error)
	GoalStatus(ctx context.Context, eventID uint, goalToken string, visitor domain.Visitor) (service.GoalStatus, error)
	Finalize(ctx context.Context, eventID uint, goalToken string, visitor domain.Visitor) (service.FinalizeOutcome, error)
}

type RallyHandler struct {
	svc       RallyService
	ipHashKey []byte
}

func NewRallyHandler(svc RallyService, ipHashKey string) *RallyHandler {
	return &RallyHandler{
		svc:       svc,
		ipHashKey: []byte(ipHashKey),
	}
}

func (h *RallyHandler) visitor(ctx *gin.Context, visitorID string) domain.Visitor {
	return domain.Visitor{
		SessionKey: visitorID,
		UserAgent:  ctx.Request.UserAgent(),
		IPHash:     cryptoutil.HashIP(h.ipHashKey, ctx.ClientIP()),
	}
}

// refusal maps expected refusals to the message shown to the participant.
func refusal(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrEventNotStarted):
		return "The event has not started yet.", true
	case errors.Is(err, service.ErrEventEnded):
		return "The event has ended.", true
	case errors.Is(err, service.ErrSessionBlocked):
		return "This device can no longer take part in the event.", true
	case errors.Is(err, service.ErrRequirementsNotMet):
		return "Some required spots have not been stamped yet.", true
	}

	return "", false
}

func resultMessage(result domain.ScanResult) string {
	switch result {
	case domain.ScanSuccess:
		return "Stamped!"
	case domain.ScanDuplicate:
		return "This spot is already stamped."
	case domain.ScanAlreadyGoaled:
		return "You have already reached the goal."
	default:
		return ""
	}
}

// renderServiceErr renders errors that are not refusals.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.RenderErr(ctx, response.ErrInvalidLink())
	case errors.Is(err, service.ErrInvalidSessionKey):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %s", param)))
		return 0, false
	}

	return uint(id), true
}

// HandleScanPage godoc
// @Summary      Spot page data
// @Description  Returns the event, the scanned spot and the spot map for a spot QR link.
// @Tags         rally
// @Produce      json
// @Param        eventID  path      int     true  "Event ID"
// @Param        spotID   path      int     true  "Spot ID"
// @Param        t        query     string  true  "Spot token"
// @Success      200      {object}  service.ScanPage
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/spots/{spotID} [get]
func (h *RallyHandler) HandleScanPage(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}
	spotID, ok := parseID(ctx, "spotID")
	if !ok {
		return
	}

	page, err := h.svc.ScanPage(ctx.Request.Context(), eventID, spotID, ctx.Query("t"))
	if err != nil {
		if msg, ok := refusal(err); ok {
			ctx.JSON(http.StatusOK, response.Outcome{Message: msg})
			return
		}
		renderServiceErr(ctx, "v1.HandleScanPage -> h.svc.ScanPage", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleStamp godoc
// @Summary      Stamp a spot
// @Description  Records a stamp for the visitor. A repeated scan reports result 1, a scan after the goal result 5.
// @Tags         rally
// @Accept       json
// @Produce      json
// @Param        request  body      request.StampRequest  true  "request body"
// @Success      200      {object}  response.StampResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stamps [post]
func (h *RallyHandler) HandleStamp(ctx *gin.Context) {
	var req request.StampRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	out, err := h.svc.Stamp(ctx.Request.Context(), service.StampInput{
		EventID: req.EventID,
		SpotID:  req.SpotID,
		Token:   req.Token,
		Visitor: h.visitor(ctx, req.VisitorID),
	})
	if err != nil {
		if msg, ok := refusal(err); ok {
			ctx.JSON(http.StatusOK, response.StampResponse{
				Outcome: response.Outcome{Message: msg},
			})
			return
		}
		renderServiceErr(ctx, "v1.HandleStamp -> h.svc.Stamp", err)
		return
	}

	result := int(out.Result)
	ctx.JSON(http.StatusOK, response.StampResponse{
		Outcome: response.Outcome{Success: true, Message: resultMessage(out.Result)},
		Stamped: out.Stamped,
		Result:  &result,
	})
}

// HandleAchievement godoc
// @Summary      Achievement code
// @Description  Returns the visitor's achievement code once every required spot is stamped.
// @Tags         rally
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                     true  "Event ID"
// @Param        request  body      request.VisitorRequest  true  "request body"
// @Success      200      {object}  response.AchievementResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/achievement [post]
func (h *RallyHandler) HandleAchievement(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.VisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	code, err := h.svc.Achievement(ctx.Request.Context(), eventID, h.visitor(ctx, req.VisitorID))
	if err != nil {
		if msg, ok := refusal(err); ok {
			ctx.JSON(http.StatusOK, response.AchievementResponse{Outcome: response.Outcome{Message: msg}})
			return
		}
		renderServiceErr(ctx, "v1.HandleAchievement -> h.svc.Achievement", err)
		return
	}

	ctx.JSON(http.StatusOK, response.AchievementResponse{
		Outcome: response.Outcome{Success: true},
		Code:    code,
	})
}

// HandleStampGoalStatus godoc
// @Summary      Goal flag for the stamp page
// @Tags         rally
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                     true  "Event ID"
// @Param        request  body      request.VisitorRequest  true  "request body"
// @Success      200      {object}  response.StampGoalStatusResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/goal-status [post]
func (h *RallyHandler) HandleStampGoalStatus(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.VisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	goaled, err := h.svc.StampGoalStatus(ctx.Request.Context(), eventID, h.visitor(ctx, req.VisitorID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleStampGoalStatus -> h.svc.StampGoalStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, response.StampGoalStatusResponse{Goaled: goaled})
}

// HandleProgress godoc
// @Summary      Visitor progress
// @Description  Returns the spot map with the visitor's stamps as recorded on the server.
// @Tags         rally
// @Produce      json
// @Param        eventID     path      int     true  "Event ID"
// @Param        visitor_id  query     string  true  "Visitor ID"
// @Success      200         {object}  service.Progress
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /events/{eventID}/progress [get]
func (h *RallyHandler) HandleProgress(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.VisitorRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	progress, err := h.svc.Progress(ctx.Request.Context(), eventID, h.visitor(ctx, req.VisitorID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleProgress -> h.svc.Progress", err)
		return
	}

	ctx.JSON(http.StatusOK, progress)
}

// HandleGoalPage godoc
// @Summary      Goal page data
// @Tags         goal
// @Produce      json
// @Param        eventID  path      int     true  "Event ID"
// @Param        t        query     string  true  "Goal token"
// @Success      200      {object}  service.GoalPage
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/goal [get]
func (h *RallyHandler) HandleGoalPage(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	page, err := h.svc.GoalPage(ctx.Request.Context(), eventID, ctx.Query("t"))
	if err != nil {
		if msg, ok := refusal(err); ok {
			ctx.JSON(http.StatusOK, response.Outcome{Message: msg})
			return
		}
		renderServiceErr(ctx, "v1.HandleGoalPage -> h.svc.GoalPage", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleGoalStatus godoc
// @Summary      Goal status
// @Description  Reports whether the visitor has reached the goal, with the code if so.
// @Tags         goal
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                  true  "Event ID"
// @Param        request  body      request.GoalRequest  true  "request body"
// @Success      200      {object}  service.GoalStatus
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/goal/status [post]
func (h *RallyHandler) HandleGoalStatus(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	status, err := h.svc.GoalStatus(ctx.Request.Context(), eventID, req.Token, h.visitor(ctx, req.VisitorID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGoalStatus -> h.svc.GoalStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// HandleFinalize godoc
// @Summary      Reach the goal
// @Description  Marks the visitor as goaled if every required spot is stamped. Repeating the call returns the same code.
// @Tags         goal
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                  true  "Event ID"
// @Param        request  body      request.GoalRequest  true  "request body"
// @Success      200      {object}  response.FinalizeResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/goal [post]
func (h *RallyHandler) HandleFinalize(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	out, err := h.svc.Finalize(ctx.Request.Context(), eventID, req.Token, h.visitor(ctx, req.VisitorID))
	if err != nil {
		if msg, ok := refusal(err); ok {
			ctx.JSON(http.StatusOK, response.FinalizeResponse{Outcome: response.Outcome{Message: msg}})
			return
		}
		renderServiceErr(ctx, "v1.HandleFinalize -> h.svc.Finalize", err)
		return
	}

	msg := "Congratulations, you reached the goal!"
	if out.AlreadyGoaled {
		msg = resultMessage(domain.ScanAlreadyGoaled)
	}

	ctx.JSON(http.StatusOK, response.FinalizeResponse{
		Outcome:       response.Outcome{Success: true, Message: msg},
		Code:          out.Code,
		GoaledAt:      &out.GoaledAt,
		AlreadyGoaled: out.AlreadyGoaled,
	})
}
