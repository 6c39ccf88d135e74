package models

import "time"

// RiskSnapshot — срез показателей за календарный день, только добавление.
// Уникальный индекс по дате защищает от двойной вставки при конкурентном
// первом чтении дня.
type RiskSnapshot struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Date           time.Time `gorm:"uniqueIndex;not null"` // усечена до дня, UTC
	AverageRisk    float64   `gorm:"not null"`
	OpenIncidents  int64     `gorm:"not null"`
	CriticalAssets int64     `gorm:"not null"`
}
