package handlers

import (
	"log"
	"net/http"
	"time"

	"riskboard/internal/database"
	"riskboard/internal/intelligence"
	"riskboard/internal/models"
	"riskboard/internal/reports"

	"github.com/gin-gonic/gin"
)

// ====== ДАШБОРД ======

func GetDashboardStats(c *gin.Context) {
	db := database.DB

	var totalAssets, criticalAssets, openVulns, openIncidents, highPriorityIncidents int64

	if err := db.Model(&models.Asset{}).Count(&totalAssets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения статистики"})
		return
	}
	db.Model(&models.Asset{}).Where("criticality = ?", 5).Count(&criticalAssets)
	db.Model(&models.Vulnerability{}).Where("status = ?", models.VulnOpen).Count(&openVulns)
	db.Model(&models.Incident{}).Where("status = ?", models.IncidentOpen).Count(&openIncidents)
	db.Model(&models.Incident{}).
		Where("status = ? AND severity = ?", models.IncidentOpen, models.IncidentCritical).
		Count(&highPriorityIncidents)

	var recentIncidents []models.Incident
	db.Preload("Asset").Order("detected_at desc").Limit(5).Find(&recentIncidents)

	var avgRisk float64
	db.Model(&models.Asset{}).Select("COALESCE(AVG(residual_risk), 0)").Scan(&avgRisk)

	store := database.NewStore(db)

	// ленивый дневной срез: первое чтение дня создаёт его
	snapshot, err := reports.EnsureDailySnapshot(store, time.Now())
	if err != nil {
		// срез вспомогательный, дашборд из-за него не роняем
		log.Printf("daily snapshot failed: %v", err)
	}

	trend, err := reports.Trend(store, 30)
	if err != nil {
		log.Printf("risk trend failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"totalAssets":           totalAssets,
		"criticalAssets":        criticalAssets,
		"openVulnerabilities":   openVulns,
		"activeIncidents":       openIncidents,
		"highPriorityIncidents": highPriorityIncidents,
		"recentIncidents":       recentIncidents,
		"avgRisk":               avgRisk,
		"snapshot":              snapshot,
		"trend":                 trend,
	})
}

func GetRecommendations(c *gin.Context) {
	recs, err := intelligence.GetRecommendations(database.NewStore(database.DB), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка формирования рекомендаций"})
		return
	}
	if recs == nil {
		recs = []intelligence.Recommendation{}
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
