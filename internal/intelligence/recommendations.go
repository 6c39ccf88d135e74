package intelligence

import (
	"fmt"
	"sort"
	"time"

	"riskboard/internal/models"
)

type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Пороги правил
const (
	minCriticality  = 4
	minVulnSeverity = 4.0
	staleAfter      = 7 * 24 * time.Hour

	maxCriticalAssets = 3
	maxStaleIncidents = 2
)

type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	EntityID    uint     `json:"entityId,omitempty"`
	ActionLabel string   `json:"actionLabel"`
	ActionURL   string   `json:"actionUrl"`
}

// Store — выборки для правил рекомендаций.
type Store interface {
	// Активы с criticality >= min и без единой оценки контролей
	UnprotectedCriticalAssets(minCriticality, limit int) ([]models.Asset, error)
	// Открытые инциденты, обнаруженные не позже olderThan
	StaleOpenIncidents(olderThan time.Time, limit int) ([]models.Incident, error)
	// Число открытых уязвимостей с severity >= minSeverity
	OpenSevereVulnCount(minSeverity float64) (int64, error)
}

// GetRecommendations собирает советы по трём независимым правилам и сортирует
// их по убыванию приоритета (при равном приоритете порядок правил сохраняется).
// Чистое чтение, состояние не меняет.
func GetRecommendations(store Store, now time.Time) ([]Recommendation, error) {
	var recs []Recommendation

	// 1. Критичные активы без контролей
	assets, err := store.UnprotectedCriticalAssets(minCriticality, maxCriticalAssets)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		recs = append(recs, Recommendation{
			ID:          fmt.Sprintf("crit-asset-%d", a.ID),
			Title:       "Критичный актив без контролей",
			Description: fmt.Sprintf("Актив «%s» имеет высокую критичность, но ни одного назначенного контроля. Это повышает остаточный риск.", a.Name),
			Priority:    PriorityHigh,
			EntityID:    a.ID,
			ActionLabel: "Назначить контроль",
			ActionURL:   "/controls",
		})
	}

	// 2. Давно открытые инциденты
	incidents, err := store.StaleOpenIncidents(now.Add(-staleAfter), maxStaleIncidents)
	if err != nil {
		return nil, err
	}
	for _, inc := range incidents {
		recs = append(recs, Recommendation{
			ID:          fmt.Sprintf("stale-inc-%d", inc.ID),
			Title:       "Зависший инцидент",
			Description: fmt.Sprintf("Инцидент «%s» открыт более 7 дней. Эскалируйте или закройте его.", inc.Title),
			Priority:    PriorityMedium,
			EntityID:    inc.ID,
			ActionLabel: "Открыть инцидент",
			ActionURL:   "/incidents",
		})
	}

	// 3. Сводка по критичным уязвимостям — одна запись на все
	vulnCount, err := store.OpenSevereVulnCount(minVulnSeverity)
	if err != nil {
		return nil, err
	}
	if vulnCount > 0 {
		recs = append(recs, Recommendation{
			ID:          "vuln-crit-summary",
			Title:       fmt.Sprintf("Критичных уязвимостей: %d", vulnCount),
			Description: "Есть незакрытые уязвимости высокой серьёзности. Приоритезируйте установку исправлений.",
			Priority:    PriorityHigh,
			ActionLabel: "К уязвимостям",
			ActionURL:   "/vulnerabilities",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	return recs, nil
}
