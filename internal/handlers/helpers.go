package handlers

import (
	"net/http"
	"strconv"

	"riskboard/internal/database"
	"riskboard/internal/models"
	"riskboard/internal/risk"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (models.User, bool) {
	uVal, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	u, ok := uVal.(models.User)
	return u, ok
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный ID"})
		return 0, false
	}
	return uint(id64), true
}

// recompute пересчитывает риск актива после изменения связанных сущностей.
// Ошибка хранилища отдаётся вызывающему — это не алертинг, её не глотаем.
func recompute(assetID uint) error {
	_, err := risk.Recompute(database.NewStore(database.DB), assetID)
	return err
}

func audit(c *gin.Context, entity string, entityID uint, action, details string) {
	if u, ok := currentUser(c); ok {
		database.CreateAuditLog(u.ID, entity, entityID, action, details)
	}
}
