package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/metrics"
	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
)

type StampRepository interface {
	TryStamp(ctx context.Context, a domain.ScanAttempt, tokenHash string) (bool, domain.ScanResult, error)
	CreateScanLog(ctx context.Context, log domain.ScanLog) error
	FindStampedSpotIDs(ctx context.Context, eventID, sessionID uint) (domain.SpotSet, error)
	FindScanLogs(ctx context.Context, eventID, sessionID uint) ([]domain.ScanLog, error)
}

// StampLedger grants at most one stamp per (event, spot, session) and audits every attempt.
type StampLedger struct {
	repo StampRepository
}

func NewStampLedger(repo StampRepository) *StampLedger {
	return &StampLedger{
		repo: repo,
	}
}

// TryStamp re-verifies the presented token, refuses goaled sessions, and records the stamp.
// The decision and its audit row commit together.
func (l *StampLedger) TryStamp(ctx context.Context, a domain.ScanAttempt) (bool, domain.ScanResult, error) {
	stamped, result, err := l.repo.TryStamp(ctx, a, cryptoutil.Sha256Hex(a.PresentedToken))
	if err != nil {
		return false, 0, fmt.Errorf("l.repo.TryStamp -> %w", err)
	}

	metrics.ObserveScan(result.String())

	return stamped, result, nil
}

// Record audits an attempt that was rejected before reaching the ledger.
func (l *StampLedger) Record(ctx context.Context, a domain.ScanAttempt, result domain.ScanResult) error {
	err := l.repo.CreateScanLog(ctx, domain.ScanLog{
		EventID:      a.EventID,
		SpotID:       a.SpotID,
		SessionID:    a.SessionID,
		ScannedAt:    a.ScannedAt,
		Result:       result,
		RawTokenHash: cryptoutil.Sha256Hex(a.PresentedToken),
	})
	if err != nil {
		return fmt.Errorf("l.repo.CreateScanLog -> %w", err)
	}

	metrics.ObserveScan(result.String())

	return nil
}

// StampedSpotIDs reads committed stamps only.
func (l *StampLedger) StampedSpotIDs(ctx context.Context, eventID, sessionID uint) (domain.SpotSet, error) {
	held, err := l.repo.FindStampedSpotIDs(ctx, eventID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("l.repo.FindStampedSpotIDs -> %w", err)
	}

	return held, nil
}

// ScanHistory returns the audit rows of a session in scan order.
func (l *StampLedger) ScanHistory(ctx context.Context, eventID, sessionID uint) ([]domain.ScanLog, error) {
	logs, err := l.repo.FindScanLogs(ctx, eventID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("l.repo.FindScanLogs -> %w", err)
	}

	return logs, nil
}
