package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantSession struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint   `gorm:"not null;uniqueIndex:ux_sessions_event_key,priority:1"`
	SessionKey string `gorm:"size:64;not null;uniqueIndex:ux_sessions_event_key,priority:2"`

	FirstSeenAt time.Time `gorm:"not null"`
	LastSeenAt  time.Time `gorm:"not null"`
	UserAgent   string    `gorm:"size:512"`
	IPHash      string    `gorm:"size:64"`
	IsBlocked   bool      `gorm:"not null"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

// Upsert inserts the session or refreshes last_seen_at and user_agent of the existing row.
// last_seen_at never moves backwards. first_seen_at, ip_hash and is_blocked are kept.
func (d *SessionDAO) Upsert(ctx context.Context, s ParticipantSession) (ParticipantSession, error) {
	db := d.db.WithContext(ctx)

	row := s
	row.ID = 0
	row.IsBlocked = false
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "session_key"}},
		DoUpdates: clause.Set{
			{
				Column: clause.Column{Name: "last_seen_at"},
				Value: gorm.Expr("CASE WHEN excluded.last_seen_at > participant_sessions.last_seen_at " +
					"THEN excluded.last_seen_at ELSE participant_sessions.last_seen_at END"),
			},
			{
				Column: clause.Column{Name: "user_agent"},
				Value:  gorm.Expr("excluded.user_agent"),
			},
		},
	}).Create(&row)
	if result.Error != nil {
		return ParticipantSession{}, result.Error
	}

	return d.FindByKey(ctx, s.EventID, s.SessionKey)
}

func (d *SessionDAO) FindByKey(ctx context.Context, eventID uint, sessionKey string) (ParticipantSession, error) {
	var s ParticipantSession

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND session_key = ?", eventID, sessionKey).
		First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ParticipantSession{}, ErrSessionNotFound
		}

		return ParticipantSession{}, result.Error
	}

	return s, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (ParticipantSession, error) {
	var s ParticipantSession

	result := d.db.WithContext(ctx).First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ParticipantSession{}, ErrSessionNotFound
		}

		return ParticipantSession{}, result.Error
	}

	return s, nil
}
