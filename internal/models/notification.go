package models

import (
	"time"
)

type NotificationType string

const (
	NotifyInfo     NotificationType = "info"
	NotifyWarning  NotificationType = "warning"
	NotifyCritical NotificationType = "critical"
	NotifySuccess  NotificationType = "success"
)

type Notification struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint `gorm:"not null;index"`
	User   User

	Title   string           `gorm:"size:255;not null"`
	Message string           `gorm:"type:text;not null"`
	Type    NotificationType `gorm:"type:varchar(16);not null;default:'info'"`
	Read    bool             `gorm:"not null;default:false"`
}
