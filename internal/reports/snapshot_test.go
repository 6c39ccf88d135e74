package reports

import (
	"testing"
	"time"

	"riskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	existing *models.RiskSnapshot
	inserted []models.RiskSnapshot

	avgResidual    float64
	openIncidents  int64
	criticalAssets int64
	totalsCalled   bool

	snaps    []models.RiskSnapshot
	gotLimit int
}

func (f *fakeStore) SnapshotByDate(date time.Time) (*models.RiskSnapshot, error) {
	if f.existing != nil && f.existing.Date.Equal(date) {
		return f.existing, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertSnapshot(s *models.RiskSnapshot) error {
	f.inserted = append(f.inserted, *s)
	return nil
}

func (f *fakeStore) RiskTotals() (float64, int64, int64, error) {
	f.totalsCalled = true
	return f.avgResidual, f.openIncidents, f.criticalAssets, nil
}

func (f *fakeStore) RecentSnapshots(limit int) ([]models.RiskSnapshot, error) {
	f.gotLimit = limit
	return f.snaps, nil
}

var testNow = time.Date(2026, 3, 10, 15, 42, 11, 0, time.UTC)

func TestEnsureDailySnapshot_CreatesLazily(t *testing.T) {
	store := &fakeStore{avgResidual: 3.14159, openIncidents: 4, criticalAssets: 2}

	snap, err := EnsureDailySnapshot(store, testNow)
	require.NoError(t, err)
	require.NotNil(t, snap)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, Day(testNow), snap.Date)
	assert.Equal(t, 3.14, snap.AverageRisk)
	assert.Equal(t, int64(4), snap.OpenIncidents)
	assert.Equal(t, int64(2), snap.CriticalAssets)
}

func TestEnsureDailySnapshot_ExistingNotRegenerated(t *testing.T) {
	existing := &models.RiskSnapshot{
		Date:        Day(testNow),
		AverageRisk: 2.5,
	}
	existing.ID = 11
	store := &fakeStore{existing: existing, avgResidual: 9.99}

	snap, err := EnsureDailySnapshot(store, testNow)
	require.NoError(t, err)

	assert.Equal(t, uint(11), snap.ID)
	assert.Equal(t, 2.5, snap.AverageRisk)
	assert.Empty(t, store.inserted)
	assert.False(t, store.totalsCalled)
}

func TestEnsureDailySnapshot_NextDayCreatesNew(t *testing.T) {
	existing := &models.RiskSnapshot{Date: Day(testNow)}
	store := &fakeStore{existing: existing}

	nextDay := testNow.Add(24 * time.Hour)
	snap, err := EnsureDailySnapshot(store, nextDay)
	require.NoError(t, err)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, Day(nextDay), snap.Date)
}

func TestDay_TruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 3, 10, 2, 30, 0, 0, loc) // 2026-03-09 21:30 UTC

	day := Day(local)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), day)
}

func TestTrend_PassesLimit(t *testing.T) {
	store := &fakeStore{snaps: []models.RiskSnapshot{{AverageRisk: 1}, {AverageRisk: 2}}}

	snaps, err := Trend(store, 30)
	require.NoError(t, err)

	assert.Equal(t, 30, store.gotLimit)
	assert.Len(t, snaps, 2)
}
