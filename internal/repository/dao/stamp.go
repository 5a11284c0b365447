package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scan results as stored in stamp_scan_logs.result.
const (
	ScanSuccess       = 0
	ScanDuplicate     = 1
	ScanInvalidToken  = 2
	ScanAlreadyGoaled = 5
)

type Stamp struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint `gorm:"not null;uniqueIndex:ux_stamps_event_session_spot,priority:1"`
	SessionID uint `gorm:"not null;uniqueIndex:ux_stamps_event_session_spot,priority:2"`
	SpotID    uint `gorm:"not null;uniqueIndex:ux_stamps_event_session_spot,priority:3;index"`

	StampedAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// StampScanLog is append-only. One row per scan attempt, whatever the outcome.
type StampScanLog struct {
	ID uint `gorm:"primaryKey"`

	EventID      uint      `gorm:"not null;index"`
	SpotID       uint      `gorm:"not null"`
	SessionID    uint      `gorm:"not null;index"`
	ScannedAt    time.Time `gorm:"not null"`
	Result       int       `gorm:"not null"`
	RawTokenHash string    `gorm:"size:64"`

	CreatedAt time.Time `gorm:"not null"`
}

type StampAttempt struct {
	EventID   uint
	SpotID    uint
	SessionID uint
	ScannedAt time.Time
	TokenHash string
}

type StampDAO struct {
	db *gorm.DB
}

func NewStampDAO(db *gorm.DB) *StampDAO {
	return &StampDAO{
		db: db,
	}
}

// TryStamp decides and audits a scan in a single transaction. The unique index on
// (event_id, session_id, spot_id) arbitrates concurrent attempts: a skipped insert is a duplicate.
func (d *StampDAO) TryStamp(ctx context.Context, a StampAttempt) (bool, int, error) {
	var (
		stamped bool
		outcome int
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stamped = false

		var spots int64
		if err := tx.Model(&Spot{}).
			Where("id = ? AND event_id = ? AND qr_token_hash = ? AND is_active = ?", a.SpotID, a.EventID, a.TokenHash, true).
			Count(&spots).Error; err != nil {
			return err
		}

		switch {
		case spots == 0:
			outcome = ScanInvalidToken
		default:
			var goaled int64
			if err := tx.Model(&Goal{}).
				Where("event_id = ? AND session_id = ? AND goaled_at IS NOT NULL", a.EventID, a.SessionID).
				Count(&goaled).Error; err != nil {
				return err
			}
			if goaled > 0 {
				outcome = ScanAlreadyGoaled
				break
			}

			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&Stamp{
				EventID:   a.EventID,
				SessionID: a.SessionID,
				SpotID:    a.SpotID,
				StampedAt: a.ScannedAt,
			})
			if result.Error != nil {
				return result.Error
			}

			stamped = result.RowsAffected == 1
			outcome = ScanDuplicate
			if stamped {
				outcome = ScanSuccess
			}
		}

		return tx.Create(&StampScanLog{
			EventID:      a.EventID,
			SpotID:       a.SpotID,
			SessionID:    a.SessionID,
			ScannedAt:    a.ScannedAt,
			Result:       outcome,
			RawTokenHash: a.TokenHash,
		}).Error
	})
	if err != nil {
		return false, 0, err
	}

	return stamped, outcome, nil
}

func (d *StampDAO) InsertScanLog(ctx context.Context, log StampScanLog) error {
	return d.db.WithContext(ctx).Create(&log).Error
}

func (d *StampDAO) FindSpotIDsBySession(ctx context.Context, eventID, sessionID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&Stamp{}).
		Where("event_id = ? AND session_id = ?", eventID, sessionID).
		Order("spot_id").
		Pluck("spot_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *StampDAO) FindScanLogs(ctx context.Context, eventID, sessionID uint) ([]StampScanLog, error) {
	var logs []StampScanLog

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND session_id = ?", eventID, sessionID).
		Order("id").
		Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}
