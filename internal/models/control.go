package models

import (
	"time"

	"gorm.io/gorm"
)

// Каталог контролей безопасности (библиотека, не привязана к активам)
type Control struct {
	gorm.Model
	Code      string `gorm:"size:32;uniqueIndex;not null"` // Например: A.5.1, A.8.8
	Name      string `gorm:"size:255;not null"`
	Framework string `gorm:"size:128"` // ISO 27001:2022, NIST и т.п.
	Category  string `gorm:"size:128"`

	Evaluations []AssetControl
}

// Зрелость внедрения контроля (шкала CMM)
type Maturity string

const (
	MaturityNonexistent Maturity = "nonexistent"
	MaturityInitial     Maturity = "initial"
	MaturityRepeatable  Maturity = "repeatable"
	MaturityDefined     Maturity = "defined"
	MaturityManaged     Maturity = "managed"
	MaturityOptimized   Maturity = "optimized"
)

var maturityOrder = map[Maturity]int{
	MaturityNonexistent: 0,
	MaturityInitial:     1,
	MaturityRepeatable:  2,
	MaturityDefined:     3,
	MaturityManaged:     4,
	MaturityOptimized:   5,
}

// Rank возвращает позицию зрелости в шкале nonexistent < ... < optimized.
func (m Maturity) Rank() int {
	return maturityOrder[m]
}

// AssetControl — оценка конкретного контроля на конкретном активе
type AssetControl struct {
	gorm.Model
	AssetID   uint `gorm:"not null;index"`
	ControlID uint `gorm:"not null;index"`

	Asset   Asset
	Control Control

	Maturity      Maturity  `gorm:"type:varchar(20);not null;default:'nonexistent'"`
	Effectiveness float64   `gorm:"not null;default:0"` // 0..100
	Evidence      string    `gorm:"type:text"`
	Comments      string    `gorm:"type:text"`
	EvaluatedAt   time.Time `gorm:"not null"`
}
