package server

import (
	"net/http"

	"riskboard/internal/config"
	"riskboard/internal/handlers"
	"riskboard/internal/middleware"
	"riskboard/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("riskboard_session", store))

	r.Use(middleware.InjectUser(cfg.DevMode))

	// AUTH
	r.POST("/auth/register", handlers.Register)
	r.POST("/auth/login", handlers.Login)
	r.POST("/auth/logout", handlers.Logout)

	auth := r.Group("/api")
	auth.Use(middleware.RequireAuth())

	editors := middleware.RequireRole(models.RoleAdmin, models.RoleAnalyst)

	// АКТИВЫ
	auth.GET("/assets", handlers.ListAssets)
	auth.GET("/assets/:id", handlers.GetAsset)
	auth.POST("/assets", editors, handlers.CreateAsset)
	auth.PUT("/assets/:id", editors, handlers.UpdateAsset)

	// УЯЗВИМОСТИ
	auth.GET("/vulnerabilities", handlers.ListVulnerabilities)
	auth.POST("/vulnerabilities", editors, handlers.CreateVulnerability)
	auth.PUT("/vulnerabilities/:id/status", editors, handlers.UpdateVulnerabilityStatus)

	// ИНЦИДЕНТЫ
	auth.GET("/incidents", handlers.ListIncidents)
	auth.POST("/incidents", editors, handlers.CreateIncident)
	auth.POST("/incidents/:id/close", editors, handlers.CloseIncident)

	// КОНТРОЛИ И ОЦЕНКИ
	auth.GET("/controls", handlers.ListControlsAndEvaluations)
	auth.POST("/evaluations", editors, handlers.CreateEvaluation)
	auth.PUT("/evaluations/:id", editors, handlers.UpdateEvaluation)

	// СООТВЕТСТВИЕ
	auth.GET("/frameworks", handlers.ListFrameworks)
	auth.GET("/frameworks/:id/compliance", handlers.GetComplianceStatus)

	// ДАШБОРД И РЕКОМЕНДАЦИИ
	auth.GET("/dashboard", handlers.GetDashboardStats)
	auth.GET("/recommendations", handlers.GetRecommendations)

	// УВЕДОМЛЕНИЯ
	auth.GET("/notifications", handlers.MyNotifications)
	auth.POST("/notifications/:id/read", handlers.MarkNotificationRead)
	auth.POST("/notifications/read-all", handlers.MarkAllNotificationsRead)

	// НАСТРОЙКИ
	auth.GET("/settings", handlers.GetSettings)
	auth.PUT("/settings",
		middleware.RequireRole(models.RoleAdmin),
		handlers.UpdateSettings,
	)

	// АУДИТ
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin, models.RoleViewer),
		handlers.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
