package intelligence

import (
	"testing"
	"time"

	"riskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	assets    []models.Asset
	incidents []models.Incident
	vulnCount int64

	gotMinCriticality int
	gotAssetLimit     int
	gotOlderThan      time.Time
	gotIncidentLimit  int
	gotMinSeverity    float64
}

func (f *fakeStore) UnprotectedCriticalAssets(minCriticality, limit int) ([]models.Asset, error) {
	f.gotMinCriticality = minCriticality
	f.gotAssetLimit = limit
	return f.assets, nil
}

func (f *fakeStore) StaleOpenIncidents(olderThan time.Time, limit int) ([]models.Incident, error) {
	f.gotOlderThan = olderThan
	f.gotIncidentLimit = limit
	return f.incidents, nil
}

func (f *fakeStore) OpenSevereVulnCount(minSeverity float64) (int64, error) {
	f.gotMinSeverity = minSeverity
	return f.vulnCount, nil
}

func namedAsset(id uint, name string) models.Asset {
	a := models.Asset{Name: name}
	a.ID = id
	return a
}

func namedIncident(id uint, title string) models.Incident {
	inc := models.Incident{Title: title}
	inc.ID = id
	return inc
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestGetRecommendations_Empty(t *testing.T) {
	recs, err := GetRecommendations(&fakeStore{}, now)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestGetRecommendations_QueryParameters(t *testing.T) {
	store := &fakeStore{}
	_, err := GetRecommendations(store, now)
	require.NoError(t, err)

	assert.Equal(t, 4, store.gotMinCriticality)
	assert.Equal(t, 3, store.gotAssetLimit)
	assert.Equal(t, 2, store.gotIncidentLimit)
	assert.Equal(t, 4.0, store.gotMinSeverity)
	assert.Equal(t, now.Add(-7*24*time.Hour), store.gotOlderThan)
}

func TestGetRecommendations_PriorityOrder(t *testing.T) {
	store := &fakeStore{
		assets:    []models.Asset{namedAsset(1, "БД СИГ")},
		incidents: []models.Incident{namedIncident(5, "Фишинговая рассылка")},
		vulnCount: 4,
	}

	recs, err := GetRecommendations(store, now)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// high раньше medium; при равном приоритете порядок правил сохраняется
	assert.Equal(t, "crit-asset-1", recs[0].ID)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "vuln-crit-summary", recs[1].ID)
	assert.Equal(t, PriorityHigh, recs[1].Priority)
	assert.Equal(t, "stale-inc-5", recs[2].ID)
	assert.Equal(t, PriorityMedium, recs[2].Priority)
}

func TestGetRecommendations_CriticalAssetRule(t *testing.T) {
	store := &fakeStore{
		assets: []models.Asset{namedAsset(1, "БД СИГ"), namedAsset(2, "Радиосеть")},
	}

	recs, err := GetRecommendations(store, now)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Contains(t, recs[0].Description, "БД СИГ")
	assert.Equal(t, uint(1), recs[0].EntityID)
	assert.Contains(t, recs[1].Description, "Радиосеть")
}

func TestGetRecommendations_NoVulnSummaryWhenZero(t *testing.T) {
	store := &fakeStore{vulnCount: 0}

	recs, err := GetRecommendations(store, now)
	require.NoError(t, err)

	for _, r := range recs {
		assert.NotEqual(t, "vuln-crit-summary", r.ID)
	}
}

func TestGetRecommendations_VulnSummaryNamesCount(t *testing.T) {
	store := &fakeStore{vulnCount: 9}

	recs, err := GetRecommendations(store, now)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Contains(t, recs[0].Title, "9")
	assert.Equal(t, PriorityHigh, recs[0].Priority)
}
