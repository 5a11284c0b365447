package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/qmikke-api/internal/domain"
)

type TokenVerifier interface {
	Verify(ctx context.Context, kind domain.TokenKind, eventID uint, secret string, spotID uint) (bool, error)
}

type PosterRenderer interface {
	SpotPNG(eventID, spotID uint, token string) ([]byte, error)
	GoalPNG(eventID uint, token string) ([]byte, error)
}

// PosterHandler renders printable QR codes. The caller must already hold the token being
// encoded, so posters cannot be produced for links that would not work.
type PosterHandler struct {
	verifier TokenVerifier
	renderer PosterRenderer
}

func NewPosterHandler(verifier TokenVerifier, renderer PosterRenderer) *PosterHandler {
	return &PosterHandler{
		verifier: verifier,
		renderer: renderer,
	}
}

func (h *PosterHandler) check(ctx *gin.Context, kind domain.TokenKind, eventID uint, token string, spotID uint) bool {
	ok, err := h.verifier.Verify(ctx.Request.Context(), kind, eventID, token, spotID)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.PosterHandler -> h.verifier.Verify -> %w", err)))
		return false
	}
	if !ok {
		response.RenderErr(ctx, response.ErrInvalidLink())
		return false
	}

	return true
}

// HandleSpotQR godoc
// @Summary      Spot poster QR code
// @Tags         posters
// @Produce      png
// @Param        eventID  path      int     true  "Event ID"
// @Param        spotID   path      int     true  "Spot ID"
// @Param        t        query     string  true  "Spot token"
// @Success      200      {file}    binary
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/spots/{spotID}/qr [get]
func (h *PosterHandler) HandleSpotQR(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}
	spotID, ok := parseID(ctx, "spotID")
	if !ok {
		return
	}

	token := ctx.Query("t")
	if !h.check(ctx, domain.TokenSpot, eventID, token, spotID) {
		return
	}

	png, err := h.renderer.SpotPNG(eventID, spotID, token)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleSpotQR -> h.renderer.SpotPNG -> %w", err)))
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// HandleGoalQR godoc
// @Summary      Goal poster QR code
// @Tags         posters
// @Produce      png
// @Param        eventID  path      int     true  "Event ID"
// @Param        t        query     string  true  "Goal token"
// @Success      200      {file}    binary
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/goal/qr [get]
func (h *PosterHandler) HandleGoalQR(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "eventID")
	if !ok {
		return
	}

	token := ctx.Query("t")
	if !h.check(ctx, domain.TokenGoal, eventID, token, 0) {
		return
	}

	png, err := h.renderer.GoalPNG(eventID, token)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleGoalQR -> h.renderer.GoalPNG -> %w", err)))
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}
