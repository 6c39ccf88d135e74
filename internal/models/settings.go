package models

import "gorm.io/gorm"

// Пороги классификации остаточного риска по умолчанию
const (
	DefaultThresholdLow    = 1.5
	DefaultThresholdMedium = 3.5
	DefaultThresholdHigh   = 4.5
)

// SystemSettings — единственная строка с настройками организации
type SystemSettings struct {
	gorm.Model
	CompanyName string `gorm:"size:255"`
	NIT         string `gorm:"size:32"`
	LogoURL     string `gorm:"size:512"`

	ThresholdLow    float64 `gorm:"not null;default:1.5"`
	ThresholdMedium float64 `gorm:"not null;default:3.5"`
	ThresholdHigh   float64 `gorm:"not null;default:4.5"`
}
