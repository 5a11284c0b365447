package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

var errWindowInverted = errors.New("valid_to must not be before valid_from")

type DraftSpotRequest struct {
	SpotName    string `json:"spot_name"`
	Description string `json:"description"`
	IsRequired  bool   `json:"is_required"`
}

func (req DraftSpotRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.SpotName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

// SaveDraftRequest saves a draft. Drafts may be incomplete; completeness is checked on publish.
type SaveDraftRequest struct {
	ID         string             `json:"id"`
	EventTitle string             `json:"event_title"`
	ValidFrom  *time.Time         `json:"valid_from"`
	ValidTo    *time.Time         `json:"valid_to"`
	Spots      []DraftSpotRequest `json:"spots"`
}

func (req *SaveDraftRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.EventTitle, validation.Length(0, 200)),
		validation.Field(&req.Spots, validation.Length(0, 200)),
	)
	if err != nil {
		return err
	}

	if req.ValidFrom != nil && req.ValidTo != nil && req.ValidTo.Before(*req.ValidFrom) {
		return errWindowInverted
	}

	return nil
}

func (req *SaveDraftRequest) ToDraft() domain.EventDraft {
	draft := domain.EventDraft{
		ID:         req.ID,
		EventTitle: req.EventTitle,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
	}
	for _, s := range req.Spots {
		draft.Spots = append(draft.Spots, domain.DraftSpot{
			SpotName:    s.SpotName,
			Description: s.Description,
			IsRequired:  s.IsRequired,
		})
	}

	return draft
}
