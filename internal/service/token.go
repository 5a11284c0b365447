package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository"
)

type TokenEventRepository interface {
	FindSecrets(ctx context.Context, eventID uint) (domain.EventSecrets, error)
	FindSpotTokenHash(ctx context.Context, eventID, spotID uint) (string, error)
}

// TokenVerifier checks presented secrets against stored hashes. Raw secrets are never compared.
type TokenVerifier struct {
	repo TokenEventRepository
}

func NewTokenVerifier(repo TokenEventRepository) *TokenVerifier {
	return &TokenVerifier{
		repo: repo,
	}
}

// Verify reports whether secret matches the stored hash of kind for the event.
// spotID is only read for domain.TokenSpot. An unknown event or spot yields false, not an error.
func (v *TokenVerifier) Verify(ctx context.Context, kind domain.TokenKind, eventID uint, secret string, spotID uint) (bool, error) {
	if secret == "" {
		return false, nil
	}

	var stored string
	switch kind {
	case domain.TokenSpot:
		hash, err := v.repo.FindSpotTokenHash(ctx, eventID, spotID)
		if err != nil {
			if errors.Is(err, repository.ErrSpotNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("v.repo.FindSpotTokenHash -> %w", err)
		}
		stored = hash

	case domain.TokenGoal, domain.TokenTotalize, domain.TokenTotalizePassword:
		secrets, err := v.repo.FindSecrets(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("v.repo.FindSecrets -> %w", err)
		}
		switch kind {
		case domain.TokenGoal:
			stored = secrets.GoalTokenHash
		case domain.TokenTotalize:
			stored = secrets.TotalizeTokenHash
		default:
			stored = secrets.TotalizePasswordHash
		}

	default:
		return false, nil
	}

	if stored == "" {
		return false, nil
	}

	return cryptoutil.EqualHash(cryptoutil.Sha256Hex(secret), stored), nil
}
