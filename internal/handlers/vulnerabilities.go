package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== УЯЗВИМОСТИ ======

func ListVulnerabilities(c *gin.Context) {
	var vulns []models.Vulnerability
	if err := database.DB.
		Preload("Asset").
		Order("severity desc, created_at desc").
		Find(&vulns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения уязвимостей"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vulnerabilities": vulns})
}

type vulnerabilityForm struct {
	AssetID     uint    `json:"assetId"`
	Description string  `json:"description"`
	Severity    float64 `json:"severity"`
}

func CreateVulnerability(c *gin.Context) {
	var form vulnerabilityForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	form.Description = strings.TrimSpace(form.Description)
	if form.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Опишите уязвимость"})
		return
	}
	if form.Severity < 0 || form.Severity > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Серьёзность должна быть в диапазоне 0..10"})
		return
	}

	var asset models.Asset
	if err := database.DB.First(&asset, form.AssetID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Актив не найден"})
		return
	}

	vuln := models.Vulnerability{
		AssetID:     asset.ID,
		Description: form.Description,
		Severity:    form.Severity,
		Status:      models.VulnOpen,
	}

	if err := database.DB.Create(&vuln).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения уязвимости в БД"})
		return
	}

	// новая открытая уязвимость меняет вероятность
	if err := recompute(asset.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "vulnerability", vuln.ID, "create",
		fmt.Sprintf("Зарегистрирована уязвимость (severity %.1f) на активе %s", vuln.Severity, asset.Name))
	c.JSON(http.StatusCreated, gin.H{"vulnerability": vuln})
}

type vulnerabilityStatusForm struct {
	Status string `json:"status"`
}

func UpdateVulnerabilityStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var vuln models.Vulnerability
	if err := database.DB.First(&vuln, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Уязвимость не найдена"})
		return
	}

	var form vulnerabilityStatusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	status := models.VulnStatus(form.Status)
	switch status {
	case models.VulnOpen, models.VulnMitigated, models.VulnAccepted:
		// ок
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный статус"})
		return
	}

	vuln.Status = status
	if err := database.DB.Save(&vuln).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения уязвимости в БД"})
		return
	}

	if err := recompute(vuln.AssetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "vulnerability", vuln.ID, "status_change", "Статус уязвимости: "+string(status))
	c.JSON(http.StatusOK, gin.H{"vulnerability": vuln})
}
