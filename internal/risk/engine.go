package risk

import (
	"log"
	"math"

	"riskboard/internal/models"
)

// Thresholds — границы классификации остаточного риска.
// Порядок low < medium < high проверяется при сохранении настроек,
// здесь значения принимаются как есть.
type Thresholds struct {
	Low    float64
	Medium float64
	High   float64
}

// DefaultThresholds — запасной вариант, когда настроек в БД ещё нет.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Low:    models.DefaultThresholdLow,
		Medium: models.DefaultThresholdMedium,
		High:   models.DefaultThresholdHigh,
	}
}

// Result — расчётные поля, которые движок пишет на актив.
type Result struct {
	InherentRisk     float64
	ResidualRisk     float64
	AvgEffectiveness float64
	RiskLevel        models.RiskLevel
}

// Store — доступ движка к хранилищу. Интерфейс передаётся явно,
// чтобы в тестах подменять его дублем, а не трогать глобальное соединение.
type Store interface {
	// AssetForRisk загружает актив вместе с ОТКРЫТЫМИ уязвимостями,
	// ОТКРЫТЫМИ инцидентами и всеми оценками контролей.
	// Возвращает (nil, nil), если актива нет.
	AssetForRisk(assetID uint) (*models.Asset, error)
	SaveAssetRisk(assetID uint, res Result) error
	RiskThresholds() (Thresholds, error)
	CreateNotification(n *models.Notification) error
}

// Recompute пересчитывает риск актива и сохраняет результат.
// Если актива нет — молча выходит. При одинаковых входных данных
// повторный вызов даёт тот же результат.
func Recompute(store Store, assetID uint) (*Result, error) {
	asset, err := store.AssetForRisk(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}

	// Воздействие: среднее четырёх оценок, шкала 1..5
	impact := float64(asset.Criticality+asset.Confidentiality+asset.Integrity+asset.Availability) / 4

	// Вероятность: открытые уязвимости и инциденты, каждая часть с потолком 5,
	// итог не меньше 1 — даже у "чистого" актива вероятность ненулевая
	pVuln := math.Min(float64(len(asset.Vulnerabilities))*0.5, 5)
	pIncident := math.Min(float64(len(asset.Incidents))*1.5, 5)
	probability := math.Max((pVuln+pIncident)/2, 1)

	inherent := probability * impact

	// Эффективность: среднее по всем оценкам контролей, 0 если оценок нет
	var effectiveness float64
	if len(asset.Evaluations) > 0 {
		for _, ev := range asset.Evaluations {
			effectiveness += ev.Effectiveness
		}
		effectiveness /= float64(len(asset.Evaluations))
	}

	residual := inherent * (1 - effectiveness/100)

	th, err := store.RiskThresholds()
	if err != nil {
		return nil, err
	}
	level := Classify(residual, th)

	res := Result{
		InherentRisk:     round2(inherent),
		ResidualRisk:     round2(residual),
		AvgEffectiveness: round2(effectiveness),
		RiskLevel:        level,
	}

	// Старый уровень читаем ДО записи
	oldLevel := asset.RiskLevel

	if err := store.SaveAssetRisk(asset.ID, res); err != nil {
		return nil, err
	}

	// Оповещение — в фоне: сбой алерта не должен ронять пересчёт
	go func(id uint, name string, ownerID *uint) {
		if err := CheckRiskAlerts(store, id, name, ownerID, level, oldLevel); err != nil {
			log.Printf("risk alert for asset %d failed: %v", id, err)
		}
	}(asset.ID, asset.Name, asset.OwnerID)

	return &res, nil
}

// Classify сопоставляет остаточный риск с уровнем по порогам.
func Classify(residual float64, th Thresholds) models.RiskLevel {
	switch {
	case residual > th.High:
		return models.RiskCritical
	case residual > th.Medium:
		return models.RiskHigh
	case residual > th.Low:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
