package database

import (
	"testing"
	"time"

	"riskboard/internal/models"
	"riskboard/internal/risk"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return NewStore(gdb), mock
}

func TestRiskThresholds_DefaultsWhenNoSettings(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "system_settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	th, err := store.RiskThresholds()
	require.NoError(t, err)

	assert.Equal(t, risk.DefaultThresholds(), th)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRiskThresholds_FromSettingsRow(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "threshold_low", "threshold_medium", "threshold_high"}).
		AddRow(1, 2.0, 3.0, 4.0)
	mock.ExpectQuery(`SELECT (.+) FROM "system_settings"`).WillReturnRows(rows)

	th, err := store.RiskThresholds()
	require.NoError(t, err)

	assert.Equal(t, risk.Thresholds{Low: 2.0, Medium: 3.0, High: 4.0}, th)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenSevereVulnCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "vulnerabilities"`).
		WithArgs("open", 4.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := store.OpenSevereVulnCount(4.0)
	require.NoError(t, err)

	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAssetRisk(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "assets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.SaveAssetRisk(7, risk.Result{
		InherentRisk:     5.94,
		ResidualRisk:     5.94,
		AvgEffectiveness: 0,
		RiskLevel:        models.RiskCritical,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotByDate_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "risk_snapshots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	snap, err := store.SnapshotByDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}
