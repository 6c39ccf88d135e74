package handlers

import (
	"net/http"

	"riskboard/internal/compliance"
	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== СООТВЕТСТВИЕ ФРЕЙМВОРКАМ ======

func ListFrameworks(c *gin.Context) {
	var frameworks []models.Framework
	if err := database.DB.
		Preload("Requirements").
		Order("name asc").
		Find(&frameworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения фреймворков"})
		return
	}

	type fwSummary struct {
		ID                uint   `json:"id"`
		Name              string `json:"name"`
		Description       string `json:"description"`
		RequirementsCount int    `json:"requirementsCount"`
	}

	out := make([]fwSummary, 0, len(frameworks))
	for _, fw := range frameworks {
		out = append(out, fwSummary{
			ID:                fw.ID,
			Name:              fw.Name,
			Description:       fw.Description,
			RequirementsCount: len(fw.Requirements),
		})
	}

	c.JSON(http.StatusOK, gin.H{"frameworks": out})
}

func GetComplianceStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := compliance.GetStatus(database.NewStore(database.DB), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта соответствия"})
		return
	}

	c.JSON(http.StatusOK, status)
}
