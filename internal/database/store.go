package database

import (
	"errors"
	"time"

	"riskboard/internal/models"
	"riskboard/internal/risk"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store — реализация интерфейсов движков поверх gorm. Движкам соединение
// передаётся явно (в тестах вместо Store подставляются дубли).
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// ====== risk.Store ======

func (s *Store) AssetForRisk(assetID uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.
		Preload("Vulnerabilities", "status = ?", models.VulnOpen).
		Preload("Incidents", "status = ?", models.IncidentOpen).
		Preload("Evaluations").
		First(&asset, assetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Store) SaveAssetRisk(assetID uint, res risk.Result) error {
	return s.DB.Model(&models.Asset{}).
		Where("id = ?", assetID).
		Updates(map[string]interface{}{
			"inherent_risk":     res.InherentRisk,
			"residual_risk":     res.ResidualRisk,
			"avg_effectiveness": res.AvgEffectiveness,
			"risk_level":        res.RiskLevel,
		}).Error
}

// RiskThresholds читает пороги из настроек; если строки настроек ещё нет,
// возвращает дефолты, а не ошибку.
func (s *Store) RiskThresholds() (risk.Thresholds, error) {
	var settings models.SystemSettings
	err := s.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return risk.DefaultThresholds(), nil
	}
	if err != nil {
		return risk.Thresholds{}, err
	}
	return risk.Thresholds{
		Low:    settings.ThresholdLow,
		Medium: settings.ThresholdMedium,
		High:   settings.ThresholdHigh,
	}, nil
}

func (s *Store) CreateNotification(n *models.Notification) error {
	return s.DB.Create(n).Error
}

// ====== compliance.Store ======

func (s *Store) FrameworkWithCoverage(frameworkID uint) (*models.Framework, error) {
	var fw models.Framework
	err := s.DB.
		Preload("Requirements.Controls.Evaluations").
		First(&fw, frameworkID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fw, nil
}

// ====== intelligence.Store ======

func (s *Store) UnprotectedCriticalAssets(minCriticality, limit int) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.DB.
		Where("criticality >= ?", minCriticality).
		Where("NOT EXISTS (SELECT 1 FROM asset_controls ac WHERE ac.asset_id = assets.id AND ac.deleted_at IS NULL)").
		Order("criticality desc, id asc").
		Limit(limit).
		Find(&assets).Error
	return assets, err
}

func (s *Store) StaleOpenIncidents(olderThan time.Time, limit int) ([]models.Incident, error) {
	var incidents []models.Incident
	err := s.DB.
		Where("status = ? AND detected_at <= ?", models.IncidentOpen, olderThan).
		Order("detected_at asc").
		Limit(limit).
		Find(&incidents).Error
	return incidents, err
}

func (s *Store) OpenSevereVulnCount(minSeverity float64) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Vulnerability{}).
		Where("status = ? AND severity >= ?", models.VulnOpen, minSeverity).
		Count(&count).Error
	return count, err
}

// ====== reports.Store ======

func (s *Store) SnapshotByDate(date time.Time) (*models.RiskSnapshot, error) {
	var snap models.RiskSnapshot
	err := s.DB.Where("date = ?", date).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// InsertSnapshot вставляет срез; конкурентную двойную вставку гасит
// уникальный индекс по дате плюс ON CONFLICT DO NOTHING. Если вставку
// перегнал другой запрос, подгружаем его строку.
func (s *Store) InsertSnapshot(snap *models.RiskSnapshot) error {
	result := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(snap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.DB.Where("date = ?", snap.Date).First(snap).Error
	}
	return nil
}

func (s *Store) RiskTotals() (float64, int64, int64, error) {
	var avg float64
	if err := s.DB.Model(&models.Asset{}).
		Select("COALESCE(AVG(residual_risk), 0)").
		Scan(&avg).Error; err != nil {
		return 0, 0, 0, err
	}

	var openIncidents int64
	if err := s.DB.Model(&models.Incident{}).
		Where("status = ?", models.IncidentOpen).
		Count(&openIncidents).Error; err != nil {
		return 0, 0, 0, err
	}

	var criticalAssets int64
	if err := s.DB.Model(&models.Asset{}).
		Where("criticality = ?", 5).
		Count(&criticalAssets).Error; err != nil {
		return 0, 0, 0, err
	}

	return avg, openIncidents, criticalAssets, nil
}

func (s *Store) RecentSnapshots(limit int) ([]models.RiskSnapshot, error) {
	var snaps []models.RiskSnapshot
	err := s.DB.Order("date desc").Limit(limit).Find(&snaps).Error
	return snaps, err
}
