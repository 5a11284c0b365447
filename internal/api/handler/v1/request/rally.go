package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	// Exactly eight digits, optionally grouped with dashes or spaces.
	achievementCodePattern = `^(?=(?:[^0-9]*[0-9]){8}[^0-9]*$)[0-9][0-9\- ]*[0-9]$`
	visitorIDMaxLen        = 64
	tokenMaxLen            = 128
)

var (
	achievementCodeExp = regexp2.MustCompile(achievementCodePattern, regexp2.None)

	errInvalidAchievementCode = errors.New("the code must contain exactly 8 digits")
)

// StampRequest is posted by the participant page right after a spot QR code was opened.
type StampRequest struct {
	EventID   uint   `json:"event_id"`
	SpotID    uint   `json:"spot_id"`
	Token     string `json:"token"`
	VisitorID string `json:"visitor_id"`
}

func (req *StampRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.SpotID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Token, validation.Required, validation.Length(1, tokenMaxLen)),
		validation.Field(&req.VisitorID, validation.Required, validation.Length(1, visitorIDMaxLen), is.PrintableASCII),
	)
}

type VisitorRequest struct {
	VisitorID string `json:"visitor_id" form:"visitor_id"`
}

func (req *VisitorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VisitorID, validation.Required, validation.Length(1, visitorIDMaxLen), is.PrintableASCII),
	)
}

type GoalRequest struct {
	Token     string `json:"token"`
	VisitorID string `json:"visitor_id"`
}

func (req *GoalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required, validation.Length(1, tokenMaxLen)),
		validation.Field(&req.VisitorID, validation.Required, validation.Length(1, visitorIDMaxLen), is.PrintableASCII),
	)
}

type TotalizeAuthRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (req *TotalizeAuthRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required, validation.Length(1, tokenMaxLen)),
		validation.Field(&req.Password, validation.Required, validation.Length(1, 128)),
	)
}

// ValidateAchievementCode accepts codes as typed by staff, e.g. "1234-5678".
func ValidateAchievementCode(raw string) error {
	ok, err := achievementCodeExp.MatchString(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidAchievementCode
	}

	return nil
}
