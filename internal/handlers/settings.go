package handlers

import (
	"errors"
	"net/http"
	"strings"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ====== НАСТРОЙКИ ======

func GetSettings(c *gin.Context) {
	var settings models.SystemSettings
	err := database.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// строки ещё нет — отдаём дефолты, не ошибку
		c.JSON(http.StatusOK, gin.H{
			"companyName":     "",
			"nit":             "",
			"logoUrl":         "",
			"thresholdLow":    models.DefaultThresholdLow,
			"thresholdMedium": models.DefaultThresholdMedium,
			"thresholdHigh":   models.DefaultThresholdHigh,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения настроек"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companyName":     settings.CompanyName,
		"nit":             settings.NIT,
		"logoUrl":         settings.LogoURL,
		"thresholdLow":    settings.ThresholdLow,
		"thresholdMedium": settings.ThresholdMedium,
		"thresholdHigh":   settings.ThresholdHigh,
	})
}

type settingsForm struct {
	CompanyName     string  `json:"companyName"`
	NIT             string  `json:"nit"`
	LogoURL         string  `json:"logoUrl"`
	ThresholdLow    float64 `json:"thresholdLow"`
	ThresholdMedium float64 `json:"thresholdMedium"`
	ThresholdHigh   float64 `json:"thresholdHigh"`
}

func UpdateSettings(c *gin.Context) {
	var form settingsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	// пороги валидируем при записи: чтение их не перепроверяет
	if !(form.ThresholdLow < form.ThresholdMedium && form.ThresholdMedium < form.ThresholdHigh) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Пороги должны строго возрастать: low < medium < high"})
		return
	}

	var settings models.SystemSettings
	err := database.DB.First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения настроек"})
		return
	}

	settings.CompanyName = strings.TrimSpace(form.CompanyName)
	settings.NIT = strings.TrimSpace(form.NIT)
	settings.LogoURL = strings.TrimSpace(form.LogoURL)
	settings.ThresholdLow = form.ThresholdLow
	settings.ThresholdMedium = form.ThresholdMedium
	settings.ThresholdHigh = form.ThresholdHigh

	if err := database.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения настроек"})
		return
	}

	audit(c, "settings", settings.ID, "update", "Изменены настройки системы")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
