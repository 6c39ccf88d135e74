package risk

import (
	"fmt"
	"log"

	"riskboard/internal/models"
)

// CheckRiskAlerts решает, нужно ли оповещение после пересчёта риска.
// Срабатывает только при строгом РОСТЕ уровня и только если новый уровень
// high или critical. Снижение уровня не тревожим.
func CheckRiskAlerts(store Store, assetID uint, assetName string, ownerID *uint, newLevel, oldLevel models.RiskLevel) error {
	if newLevel == oldLevel {
		return nil
	}
	if newLevel.Rank() <= oldLevel.Rank() {
		return nil
	}
	if newLevel != models.RiskHigh && newLevel != models.RiskCritical {
		return nil
	}

	if ownerID == nil {
		// У актива нет владельца — оповещать некого.
		// Эскалация на группу администраторов пока не предусмотрена.
		log.Printf("risk alert dropped: asset %d (%s) has no owner", assetID, assetName)
		return nil
	}

	typ := models.NotifyWarning
	if newLevel == models.RiskCritical {
		typ = models.NotifyCritical
	}

	n := &models.Notification{
		UserID: *ownerID,
		Title:  "Эскалация риска",
		Message: fmt.Sprintf(
			"Актив «%s» повысил уровень риска с %s до %s. Требуется немедленная проверка.",
			assetName, oldLevel, newLevel,
		),
		Type: typ,
	}
	return store.CreateNotification(n)
}
