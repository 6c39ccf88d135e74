package models

import "gorm.io/gorm"

type AssetType string

const (
	AssetServer      AssetType = "server"
	AssetApplication AssetType = "application"
	AssetNetwork     AssetType = "network"
	AssetStation     AssetType = "station"
	AssetWorkstation AssetType = "workstation"
)

type Classification string

const (
	ClassPublic       Classification = "public"
	ClassInternal     Classification = "internal"
	ClassRestricted   Classification = "restricted"
	ClassConfidential Classification = "confidential"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskOrder — порядок уровней для сравнения "риск вырос / упал"
var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank возвращает позицию уровня в шкале low < medium < high < critical.
// Неизвестное значение считаем минимальным.
func (l RiskLevel) Rank() int {
	return riskOrder[l]
}

type Asset struct {
	gorm.Model
	Name           string         `gorm:"size:255;not null"`
	Type           AssetType      `gorm:"type:varchar(50);not null"`
	Classification Classification `gorm:"type:varchar(50)"`
	Location       string         `gorm:"size:255"`

	// Оценки по шкале 1..5
	Criticality     int `gorm:"not null"`
	Confidentiality int `gorm:"not null"`
	Integrity       int `gorm:"not null"`
	Availability    int `gorm:"not null"`

	// Владелец — слабая ссылка, актив может быть без владельца
	OwnerID *uint
	Owner   *User

	// Расчётные поля — пишет только риск-движок
	InherentRisk     float64   `gorm:"default:0"`
	ResidualRisk     float64   `gorm:"default:0"`
	AvgEffectiveness float64   `gorm:"default:0"`
	RiskLevel        RiskLevel `gorm:"type:varchar(16);default:'low'"`

	Vulnerabilities []Vulnerability
	Incidents       []Incident
	Evaluations     []AssetControl
}
