package qrcode

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

var ErrInvalidSize = errors.New("invalid size: must be between 64 and 2048 pixels")

// EncodeFunc matches qrcode.Encode so tests can swap the encoder out.
type EncodeFunc func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// PosterGenerator renders the QR codes printed on spot and goal posters.
type PosterGenerator struct {
	publicURL string
	size      int
	encode    EncodeFunc
}

func NewPosterGenerator(publicURL string, size int) *PosterGenerator {
	return &PosterGenerator{
		publicURL: publicURL,
		size:      size,
		encode:    qrcode.Encode,
	}
}

// WithEncoder returns a copy of g that encodes with fn.
func (g *PosterGenerator) WithEncoder(fn EncodeFunc) *PosterGenerator {
	cp := *g
	cp.encode = fn
	return &cp
}

// SpotURL is the link a participant opens by scanning the poster of a spot.
func (g *PosterGenerator) SpotURL(eventID, spotID uint, token string) string {
	return fmt.Sprintf("%s/events/%d/spots/%d?t=%s", g.publicURL, eventID, spotID, url.QueryEscape(token))
}

func (g *PosterGenerator) GoalURL(eventID uint, token string) string {
	return fmt.Sprintf("%s/events/%d/goal?t=%s", g.publicURL, eventID, url.QueryEscape(token))
}

func (g *PosterGenerator) SpotPNG(eventID, spotID uint, token string) ([]byte, error) {
	return g.png(g.SpotURL(eventID, spotID, token))
}

func (g *PosterGenerator) GoalPNG(eventID uint, token string) ([]byte, error) {
	return g.png(g.GoalURL(eventID, token))
}

func (g *PosterGenerator) png(content string) ([]byte, error) {
	if g.size < 64 || g.size > 2048 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, g.size)
	}

	png, err := g.encode(content, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("g.encode -> %w", err)
	}

	return png, nil
}
