package models

import (
	"time"

	"gorm.io/gorm"
)

type IncidentSeverity string
type IncidentStatus string

const (
	IncidentLow      IncidentSeverity = "low"
	IncidentMedium   IncidentSeverity = "medium"
	IncidentHigh     IncidentSeverity = "high"
	IncidentCritical IncidentSeverity = "critical"

	IncidentOpen   IncidentStatus = "open"
	IncidentClosed IncidentStatus = "closed"
)

type Incident struct {
	gorm.Model
	AssetID uint `gorm:"not null;index"`
	Asset   Asset

	Title       string           `gorm:"size:255;not null"`
	Description string           `gorm:"type:text"`
	Severity    IncidentSeverity `gorm:"type:varchar(20);not null"`
	Status      IncidentStatus   `gorm:"type:varchar(20);not null;default:'open'"`
	RootCause   string           `gorm:"type:text"` // заполняется при закрытии
	DetectedAt  time.Time        `gorm:"not null"`
}
