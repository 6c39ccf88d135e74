package handlers

import (
	"fmt"
	"net/http"
	"time"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== КОНТРОЛИ И ОЦЕНКИ ======

func ListControlsAndEvaluations(c *gin.Context) {
	var controls []models.Control
	var evaluations []models.AssetControl

	if err := database.DB.Order("code asc").Find(&controls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения контролей"})
		return
	}
	if err := database.DB.
		Preload("Control").
		Preload("Asset").
		Order("evaluated_at desc").
		Find(&evaluations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения оценок"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"controls": controls, "evaluations": evaluations})
}

func validMaturity(m models.Maturity) bool {
	switch m {
	case models.MaturityNonexistent, models.MaturityInitial, models.MaturityRepeatable,
		models.MaturityDefined, models.MaturityManaged, models.MaturityOptimized:
		return true
	}
	return false
}

type evaluationForm struct {
	AssetID       uint    `json:"assetId"`
	ControlID     uint    `json:"controlId"`
	Maturity      string  `json:"maturity"`
	Effectiveness float64 `json:"effectiveness"`
	Evidence      string  `json:"evidence"`
	Comments      string  `json:"comments"`
}

func CreateEvaluation(c *gin.Context) {
	var form evaluationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	maturity := models.Maturity(form.Maturity)
	if !validMaturity(maturity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверная зрелость"})
		return
	}
	if form.Effectiveness < 0 || form.Effectiveness > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Эффективность должна быть в диапазоне 0..100"})
		return
	}

	var asset models.Asset
	if err := database.DB.First(&asset, form.AssetID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Актив не найден"})
		return
	}
	var control models.Control
	if err := database.DB.First(&control, form.ControlID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Контроль не найден"})
		return
	}

	eval := models.AssetControl{
		AssetID:       asset.ID,
		ControlID:     control.ID,
		Maturity:      maturity,
		Effectiveness: form.Effectiveness,
		Evidence:      form.Evidence,
		Comments:      form.Comments,
		EvaluatedAt:   time.Now(),
	}

	if err := database.DB.Create(&eval).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения оценки в БД"})
		return
	}

	// внедрённый контроль снижает остаточный риск
	if err := recompute(asset.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "evaluation", eval.ID, "create",
		fmt.Sprintf("Оценка контроля %s на активе %s (maturity=%s)", control.Code, asset.Name, maturity))
	c.JSON(http.StatusCreated, gin.H{"evaluation": eval})
}

type evaluationUpdateForm struct {
	Maturity      string  `json:"maturity"`
	Effectiveness float64 `json:"effectiveness"`
	Evidence      string  `json:"evidence"`
	Comments      string  `json:"comments"`
}

func UpdateEvaluation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var eval models.AssetControl
	if err := database.DB.First(&eval, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Оценка не найдена"})
		return
	}

	var form evaluationUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	maturity := models.Maturity(form.Maturity)
	if !validMaturity(maturity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверная зрелость"})
		return
	}
	if form.Effectiveness < 0 || form.Effectiveness > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Эффективность должна быть в диапазоне 0..100"})
		return
	}

	eval.Maturity = maturity
	eval.Effectiveness = form.Effectiveness
	eval.Evidence = form.Evidence
	eval.Comments = form.Comments
	eval.EvaluatedAt = time.Now()

	if err := database.DB.Save(&eval).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения оценки в БД"})
		return
	}

	if err := recompute(eval.AssetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "evaluation", eval.ID, "update",
		fmt.Sprintf("Переоценка контроля (maturity=%s, eff=%.0f)", maturity, form.Effectiveness))
	c.JSON(http.StatusOK, gin.H{"evaluation": eval})
}
