package handlers

import (
	"net/http"
	"strings"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(c *gin.Context) {
	query := database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(100)

	// необязательные фильтры по сущности и действию
	if entity := strings.TrimSpace(c.Query("entity")); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if action := strings.TrimSpace(c.Query("action")); action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения журнала аудита"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
