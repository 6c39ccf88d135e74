package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	User   User

	Entity   string `gorm:"size:50;not null"` // "asset", "incident", "evaluation" и т.п.
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "close", "status_change" и т.п.
	Details  string `gorm:"type:text"`
}
