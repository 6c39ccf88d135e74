package models

import "gorm.io/gorm"

type VulnStatus string

const (
	VulnOpen      VulnStatus = "open"
	VulnMitigated VulnStatus = "mitigated"
	VulnAccepted  VulnStatus = "accepted"
)

type Vulnerability struct {
	gorm.Model
	AssetID uint `gorm:"not null;index"`
	Asset   Asset

	Description string     `gorm:"type:text;not null"`
	Severity    float64    `gorm:"not null"` // CVSS, 0..10
	Status      VulnStatus `gorm:"type:varchar(20);not null;default:'open'"`
}
