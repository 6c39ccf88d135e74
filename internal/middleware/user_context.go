package middleware

import (
	"log"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser кладёт текущего пользователя в контекст запроса.
// devMode — явный флаг для локальной разработки: вместо сессии подставляется
// первый админ из БД, о чём пишется предупреждение в лог. Молчаливого
// fallback-а в боевом режиме нет.
func InjectUser(devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if devMode {
			var admin models.User
			if err := database.DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err == nil {
				log.Printf("DEV_MODE: injecting admin identity %s for %s %s", admin.Email, c.Request.Method, c.Request.URL.Path)
				c.Set("CurrentUser", admin)
			}
			c.Next()
			return
		}

		sess := sessions.Default(c)
		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.First(&user, uid).Error; err == nil {
					c.Set("CurrentUser", user)
				}
			}
		}

		c.Next()
	}
}
