package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
)

type StampDAO interface {
	TryStamp(ctx context.Context, a dao.StampAttempt) (bool, int, error)
	InsertScanLog(ctx context.Context, log dao.StampScanLog) error
	FindSpotIDsBySession(ctx context.Context, eventID, sessionID uint) ([]uint, error)
	FindScanLogs(ctx context.Context, eventID, sessionID uint) ([]dao.StampScanLog, error)
}

type StampRepository struct {
	dao StampDAO
}

func NewStampRepository(dao StampDAO) *StampRepository {
	return &StampRepository{
		dao: dao,
	}
}

func (r *StampRepository) TryStamp(ctx context.Context, a domain.ScanAttempt, tokenHash string) (bool, domain.ScanResult, error) {
	stamped, result, err := r.dao.TryStamp(ctx, dao.StampAttempt{
		EventID:   a.EventID,
		SpotID:    a.SpotID,
		SessionID: a.SessionID,
		ScannedAt: a.ScannedAt,
		TokenHash: tokenHash,
	})
	if err != nil {
		return false, 0, fmt.Errorf("r.dao.TryStamp -> %w", err)
	}

	return stamped, domain.ScanResult(result), nil
}

func (r *StampRepository) CreateScanLog(ctx context.Context, log domain.ScanLog) error {
	err := r.dao.InsertScanLog(ctx, dao.StampScanLog{
		EventID:      log.EventID,
		SpotID:       log.SpotID,
		SessionID:    log.SessionID,
		ScannedAt:    log.ScannedAt,
		Result:       int(log.Result),
		RawTokenHash: log.RawTokenHash,
	})
	if err != nil {
		return fmt.Errorf("r.dao.InsertScanLog -> %w", err)
	}

	return nil
}

func (r *StampRepository) FindStampedSpotIDs(ctx context.Context, eventID, sessionID uint) (domain.SpotSet, error) {
	ids, err := r.dao.FindSpotIDsBySession(ctx, eventID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSpotIDsBySession -> %w", err)
	}

	return domain.NewSpotSet(ids...), nil
}

func (r *StampRepository) FindScanLogs(ctx context.Context, eventID, sessionID uint) ([]domain.ScanLog, error) {
	found, err := r.dao.FindScanLogs(ctx, eventID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindScanLogs -> %w", err)
	}

	logs := make([]domain.ScanLog, 0, len(found))
	for _, l := range found {
		logs = append(logs, domain.ScanLog{
			ID:           l.ID,
			EventID:      l.EventID,
			SpotID:       l.SpotID,
			SessionID:    l.SessionID,
			ScannedAt:    l.ScannedAt,
			Result:       domain.ScanResult(l.Result),
			RawTokenHash: l.RawTokenHash,
		})
	}

	return logs, nil
}
