package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/service"
)

type DraftService interface {
	Save(ctx context.Context, draft domain.EventDraft) (domain.EventDraft, error)
	Get(ctx context.Context, id string) (domain.EventDraft, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (domain.CreatedEvent, error)
}

type DraftHandler struct {
	svc DraftService
}

func NewDraftHandler(svc DraftService) *DraftHandler {
	return &DraftHandler{
		svc: svc,
	}
}

// HandleSaveDraft godoc
// @Summary      Save an event draft
// @Description  Creates a draft, or overwrites the draft with the given id. Drafts expire when left untouched.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        request  body      request.SaveDraftRequest  true  "request body"
// @Success      201      {object}  domain.EventDraft
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /drafts [post]
func (h *DraftHandler) HandleSaveDraft(ctx *gin.Context) {
	var req request.SaveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draft, err := h.svc.Save(ctx.Request.Context(), req.ToDraft())
	if err != nil {
		err = fmt.Errorf("v1.HandleSaveDraft -> h.svc.Save -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, draft)
}

// HandleGetDraft godoc
// @Summary      Get an event draft
// @Tags         drafts
// @Produce      json
// @Param        draftID  path      string  true  "Draft ID"
// @Success      200      {object}  domain.EventDraft
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /drafts/{draftID} [get]
func (h *DraftHandler) HandleGetDraft(ctx *gin.Context) {
	draftID := ctx.Param("draftID")

	draft, err := h.svc.Get(ctx.Request.Context(), draftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("draft", "id", draftID))
			return
		}

		err = fmt.Errorf("v1.HandleGetDraft -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, draft)
}

// HandleDeleteDraft godoc
// @Summary      Discard an event draft
// @Tags         drafts
// @Param        draftID  path  string  true  "Draft ID"
// @Success      204
// @Failure      500      {object}  response.Err
// @Router       /drafts/{draftID} [delete]
func (h *DraftHandler) HandleDeleteDraft(ctx *gin.Context) {
	if err := h.svc.Delete(ctx.Request.Context(), ctx.Param("draftID")); err != nil {
		err = fmt.Errorf("v1.HandleDeleteDraft -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePublishDraft godoc
// @Summary      Publish an event draft
// @Description  Creates the event. The response holds every token and the totalize password; they are not shown again.
// @Tags         drafts
// @Produce      json
// @Param        draftID  path      string  true  "Draft ID"
// @Success      201      {object}  domain.CreatedEvent
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /drafts/{draftID}/publish [post]
func (h *DraftHandler) HandlePublishDraft(ctx *gin.Context) {
	draftID := ctx.Param("draftID")

	created, err := h.svc.Publish(ctx.Request.Context(), draftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("draft", "id", draftID))
			return
		}
		if errors.Is(err, service.ErrInvalidEvent) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePublishDraft -> h.svc.Publish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}
