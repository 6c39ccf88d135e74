package reports

import (
	"math"
	"time"

	"riskboard/internal/models"
)

// Store — чтение и добавление дневных срезов.
type Store interface {
	// SnapshotByDate ищет срез за день (дата усечена до суток, UTC).
	// (nil, nil), если среза нет.
	SnapshotByDate(date time.Time) (*models.RiskSnapshot, error)
	// InsertSnapshot вставляет срез; при конфликте по дате вставка
	// игнорируется, а в s подгружается уже существующая строка.
	InsertSnapshot(s *models.RiskSnapshot) error
	// RiskTotals — средний остаточный риск по активам, число открытых
	// инцидентов и число активов с criticality = 5.
	RiskTotals() (avgResidual float64, openIncidents, criticalAssets int64, err error)
	RecentSnapshots(limit int) ([]models.RiskSnapshot, error)
}

// EnsureDailySnapshot лениво создаёт срез за текущий день: первый запрос дня,
// не нашедший среза, пишет его; существующий срез не пересоздаётся.
func EnsureDailySnapshot(store Store, now time.Time) (*models.RiskSnapshot, error) {
	day := Day(now)

	existing, err := store.SnapshotByDate(day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	avg, openIncidents, criticalAssets, err := store.RiskTotals()
	if err != nil {
		return nil, err
	}

	s := &models.RiskSnapshot{
		Date:           day,
		AverageRisk:    math.Round(avg*100) / 100,
		OpenIncidents:  openIncidents,
		CriticalAssets: criticalAssets,
	}
	if err := store.InsertSnapshot(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Trend возвращает последние limit срезов, от новых к старым.
func Trend(store Store, limit int) ([]models.RiskSnapshot, error) {
	return store.RecentSnapshots(limit)
}

// Day усекает момент времени до календарного дня в UTC.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
