package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Event{},
		&Spot{},
		&Reward{},
		&RewardRequiredSpot{},
		&ParticipantSession{},
		&Stamp{},
		&StampScanLog{},
		&Goal{},
	)
}
