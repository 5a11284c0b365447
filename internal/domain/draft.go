package domain

import "time"

// EventDraft is an event being composed by an organizer before it is published.
type EventDraft struct {
	ID         string      `json:"id"`
	EventTitle string      `json:"event_title"`
	ValidFrom  *time.Time  `json:"valid_from,omitempty"`
	ValidTo    *time.Time  `json:"valid_to,omitempty"`
	Spots      []DraftSpot `json:"spots"`
	SavedAt    time.Time   `json:"saved_at"`
}

type DraftSpot struct {
	SpotName    string `json:"spot_name"`
	Description string `json:"description,omitempty"`
	IsRequired  bool   `json:"is_required"`
}

func (d EventDraft) ToNewEvent() NewEvent {
	spots := make([]NewSpot, 0, len(d.Spots))
	for _, s := range d.Spots {
		spots = append(spots, NewSpot{
			Name:        s.SpotName,
			Description: s.Description,
			IsRequired:  s.IsRequired,
		})
	}

	return NewEvent{
		Title:    d.EventTitle,
		StartsAt: d.ValidFrom,
		EndsAt:   d.ValidTo,
		Spots:    spots,
	}
}
