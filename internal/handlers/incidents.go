package handlers

import (
	"net/http"
	"strings"
	"time"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== ИНЦИДЕНТЫ ======

func ListIncidents(c *gin.Context) {
	var incidents []models.Incident
	if err := database.DB.
		Preload("Asset").
		Order("detected_at desc").
		Find(&incidents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения инцидентов"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidents": incidents})
}

type incidentForm struct {
	AssetID     uint   `json:"assetId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func CreateIncident(c *gin.Context) {
	var form incidentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	form.Title = strings.TrimSpace(form.Title)
	if len(form.Title) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Заголовок инцидента должен быть не короче 3 символов"})
		return
	}

	severity := models.IncidentSeverity(form.Severity)
	switch severity {
	case models.IncidentLow, models.IncidentMedium, models.IncidentHigh, models.IncidentCritical:
		// ок
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверная серьёзность"})
		return
	}

	var asset models.Asset
	if err := database.DB.First(&asset, form.AssetID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Актив не найден"})
		return
	}

	incident := models.Incident{
		AssetID:     asset.ID,
		Title:       form.Title,
		Description: strings.TrimSpace(form.Description),
		Severity:    severity,
		Status:      models.IncidentOpen,
		DetectedAt:  time.Now(),
	}

	if err := database.DB.Create(&incident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения инцидента в БД"})
		return
	}

	// новый открытый инцидент меняет вероятность
	if err := recompute(asset.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "incident", incident.ID, "create", "Зарегистрирован инцидент: "+incident.Title)
	c.JSON(http.StatusCreated, gin.H{"incident": incident})
}

type closeIncidentForm struct {
	RootCause string `json:"rootCause"`
}

func CloseIncident(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var incident models.Incident
	if err := database.DB.First(&incident, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Инцидент не найден"})
		return
	}

	if incident.Status == models.IncidentClosed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Инцидент уже закрыт"})
		return
	}

	var form closeIncidentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	incident.Status = models.IncidentClosed
	incident.RootCause = strings.TrimSpace(form.RootCause)

	if err := database.DB.Save(&incident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения инцидента в БД"})
		return
	}

	// закрытие инцидента обязано снять его вклад в риск
	if err := recompute(incident.AssetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "incident", incident.ID, "close", "Закрыт инцидент: "+incident.Title)
	c.JSON(http.StatusOK, gin.H{"incident": incident})
}
