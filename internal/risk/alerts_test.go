package risk

import (
	"testing"

	"riskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRiskAlerts_MediumToHigh(t *testing.T) {
	store := newFakeStore(nil)
	owner := uint(3)

	err := CheckRiskAlerts(store, 1, "Сервер мониторинга", &owner, models.RiskHigh, models.RiskMedium)
	require.NoError(t, err)

	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, owner, n.UserID)
	assert.Equal(t, models.NotifyWarning, n.Type)
	assert.Contains(t, n.Message, "Сервер мониторинга")
	assert.Contains(t, n.Message, string(models.RiskMedium))
	assert.Contains(t, n.Message, string(models.RiskHigh))
}

func TestCheckRiskAlerts_MediumToCriticalSkippingHigh(t *testing.T) {
	store := newFakeStore(nil)
	owner := uint(3)

	err := CheckRiskAlerts(store, 1, "БД СИГ", &owner, models.RiskCritical, models.RiskMedium)
	require.NoError(t, err)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, models.NotifyCritical, store.notifications[0].Type)
}

func TestCheckRiskAlerts_DecreaseNeverAlerts(t *testing.T) {
	store := newFakeStore(nil)
	owner := uint(3)

	err := CheckRiskAlerts(store, 1, "Сервер", &owner, models.RiskMedium, models.RiskHigh)
	require.NoError(t, err)
	assert.Empty(t, store.notifications)
}

func TestCheckRiskAlerts_SameLevelIsNoop(t *testing.T) {
	store := newFakeStore(nil)
	owner := uint(3)

	err := CheckRiskAlerts(store, 1, "Сервер", &owner, models.RiskHigh, models.RiskHigh)
	require.NoError(t, err)
	assert.Empty(t, store.notifications)
}

func TestCheckRiskAlerts_IncreaseBelowHighIsSilent(t *testing.T) {
	store := newFakeStore(nil)
	owner := uint(3)

	err := CheckRiskAlerts(store, 1, "Сервер", &owner, models.RiskMedium, models.RiskLow)
	require.NoError(t, err)
	assert.Empty(t, store.notifications)
}

func TestCheckRiskAlerts_NoOwnerDropsSilently(t *testing.T) {
	store := newFakeStore(nil)

	err := CheckRiskAlerts(store, 1, "Сервер", nil, models.RiskCritical, models.RiskLow)
	require.NoError(t, err)
	assert.Empty(t, store.notifications)
}
