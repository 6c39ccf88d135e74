package risk

import (
	"sync"
	"testing"
	"time"

	"riskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu         sync.Mutex
	asset      *models.Asset
	thresholds Thresholds

	saved         []Result
	notifications []models.Notification
	notified      chan struct{}
}

func newFakeStore(asset *models.Asset) *fakeStore {
	return &fakeStore{
		asset:      asset,
		thresholds: DefaultThresholds(),
		notified:   make(chan struct{}, 1),
	}
}

func (f *fakeStore) AssetForRisk(assetID uint) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.asset == nil || f.asset.ID != assetID {
		return nil, nil
	}
	cp := *f.asset
	return &cp, nil
}

func (f *fakeStore) SaveAssetRisk(assetID uint, res Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, res)
	f.asset.InherentRisk = res.InherentRisk
	f.asset.ResidualRisk = res.ResidualRisk
	f.asset.AvgEffectiveness = res.AvgEffectiveness
	f.asset.RiskLevel = res.RiskLevel
	return nil
}

func (f *fakeStore) RiskThresholds() (Thresholds, error) {
	return f.thresholds, nil
}

func (f *fakeStore) CreateNotification(n *models.Notification) error {
	f.mu.Lock()
	f.notifications = append(f.notifications, *n)
	f.mu.Unlock()
	select {
	case f.notified <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeStore) savedResults() []Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Result, len(f.saved))
	copy(out, f.saved)
	return out
}

func testAsset(dims [4]int, openVulns, openIncidents int, effs []float64) *models.Asset {
	a := &models.Asset{
		Name:            "Сервер мониторинга",
		Type:            models.AssetServer,
		Criticality:     dims[0],
		Confidentiality: dims[1],
		Integrity:       dims[2],
		Availability:    dims[3],
		RiskLevel:       models.RiskLow,
	}
	a.ID = 1
	for i := 0; i < openVulns; i++ {
		a.Vulnerabilities = append(a.Vulnerabilities, models.Vulnerability{Status: models.VulnOpen})
	}
	for i := 0; i < openIncidents; i++ {
		a.Incidents = append(a.Incidents, models.Incident{Status: models.IncidentOpen})
	}
	for _, e := range effs {
		a.Evaluations = append(a.Evaluations, models.AssetControl{Effectiveness: e})
	}
	return a
}

func TestRecompute_ProbabilityFloor(t *testing.T) {
	// без открытых находок вероятность ровно 1, риск равен воздействию
	store := newFakeStore(testAsset([4]int{2, 4, 3, 1}, 0, 0, nil))

	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.NotNil(t, res)

	impact := (2.0 + 4.0 + 3.0 + 1.0) / 4.0
	assert.InDelta(t, impact, res.InherentRisk, 0.001)
	assert.Equal(t, res.InherentRisk, res.ResidualRisk)
}

func TestRecompute_WorkedExample(t *testing.T) {
	// impact 4.75, pVuln 1.0, pIncident 1.5, probability 1.25, inherent 5.9375
	store := newFakeStore(testAsset([4]int{5, 4, 5, 5}, 2, 1, nil))

	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 5.94, res.InherentRisk)
	assert.Equal(t, 5.94, res.ResidualRisk)
	assert.Equal(t, 0.0, res.AvgEffectiveness)
	assert.Equal(t, models.RiskCritical, res.RiskLevel)
}

func TestRecompute_ControlsReduceResidual(t *testing.T) {
	store := newFakeStore(testAsset([4]int{4, 4, 4, 4}, 0, 0, []float64{50, 100}))

	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 75.0, res.AvgEffectiveness)
	assert.Equal(t, 4.0, res.InherentRisk)
	assert.Equal(t, 1.0, res.ResidualRisk)
	assert.Less(t, res.ResidualRisk, res.InherentRisk)
	assert.Equal(t, models.RiskLow, res.RiskLevel)
}

func TestRecompute_NoControlsMeansResidualEqualsInherent(t *testing.T) {
	store := newFakeStore(testAsset([4]int{3, 3, 3, 3}, 4, 2, nil))

	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, res.InherentRisk, res.ResidualRisk)
}

func TestRecompute_ProbabilityCaps(t *testing.T) {
	// обе части вероятности упираются в потолок 5
	store := newFakeStore(testAsset([4]int{1, 1, 1, 1}, 30, 10, nil))

	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.NotNil(t, res)

	// probability = max((5+5)/2, 1) = 5, impact = 1
	assert.Equal(t, 5.0, res.InherentRisk)
}

func TestRecompute_Idempotent(t *testing.T) {
	store := newFakeStore(testAsset([4]int{5, 4, 5, 5}, 2, 1, []float64{40}))

	first, err := Recompute(store, 1)
	require.NoError(t, err)
	second, err := Recompute(store, 1)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)

	saved := store.savedResults()
	require.Len(t, saved, 2)
	assert.Equal(t, saved[0], saved[1])
}

func TestRecompute_MonotoneInOpenVulns(t *testing.T) {
	prev := -1.0
	for vulns := 0; vulns <= 12; vulns++ {
		store := newFakeStore(testAsset([4]int{3, 3, 3, 3}, vulns, 1, nil))
		res, err := Recompute(store, 1)
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.GreaterOrEqual(t, res.InherentRisk, prev, "vulns=%d", vulns)
		prev = res.InherentRisk
	}
}

func TestRecompute_AssetNotFound(t *testing.T) {
	store := newFakeStore(nil)

	res, err := Recompute(store, 42)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, store.savedResults())
}

func TestRecompute_UsesConfiguredThresholds(t *testing.T) {
	store := newFakeStore(testAsset([4]int{5, 5, 5, 5}, 0, 0, nil))
	store.thresholds = Thresholds{Low: 10, Medium: 20, High: 30}

	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.NotNil(t, res)

	// остаточный риск 5 ниже даже нижнего порога
	assert.Equal(t, models.RiskLow, res.RiskLevel)
}

func TestRecompute_DispatchesAlert(t *testing.T) {
	owner := uint(7)
	asset := testAsset([4]int{5, 5, 5, 5}, 0, 0, nil)
	asset.OwnerID = &owner
	store := newFakeStore(asset)

	// residual 5 > 4.5 при дефолтных порогах, уровень low -> critical
	res, err := Recompute(store, 1)
	require.NoError(t, err)
	require.Equal(t, models.RiskCritical, res.RiskLevel)

	select {
	case <-store.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("alert was not dispatched")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.notifications, 1)
	assert.Equal(t, owner, store.notifications[0].UserID)
	assert.Equal(t, models.NotifyCritical, store.notifications[0].Type)
}

func TestClassify_Boundaries(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, models.RiskLow, Classify(1.5, th))
	assert.Equal(t, models.RiskMedium, Classify(1.51, th))
	assert.Equal(t, models.RiskMedium, Classify(3.5, th))
	assert.Equal(t, models.RiskHigh, Classify(3.51, th))
	assert.Equal(t, models.RiskHigh, Classify(4.5, th))
	assert.Equal(t, models.RiskCritical, Classify(4.51, th))
}
