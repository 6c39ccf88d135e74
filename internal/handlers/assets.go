package handlers

import (
	"net/http"
	"strings"

	"riskboard/internal/database"
	"riskboard/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== АКТИВЫ ======

func ListAssets(c *gin.Context) {
	var assets []models.Asset
	if err := database.DB.
		Preload("Owner").
		Order("updated_at desc").
		Find(&assets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения активов"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

type assetForm struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Classification  string `json:"classification"`
	Location        string `json:"location"`
	Criticality     int    `json:"criticality"`
	Confidentiality int    `json:"confidentiality"`
	Integrity       int    `json:"integrity"`
	Availability    int    `json:"availability"`
	OwnerID         *uint  `json:"ownerId"`
}

func (f *assetForm) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	if len(f.Name) < 3 {
		return "Название актива должно быть не короче 3 символов"
	}
	if f.Type == "" {
		return "Укажите тип актива"
	}
	for _, v := range []int{f.Criticality, f.Confidentiality, f.Integrity, f.Availability} {
		if v < 1 || v > 5 {
			return "Оценки критичности и CIA должны быть в диапазоне 1..5"
		}
	}
	return ""
}

func CreateAsset(c *gin.Context) {
	var form assetForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}
	if msg := form.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if form.OwnerID != nil {
		var owner models.User
		if err := database.DB.First(&owner, *form.OwnerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Владелец не найден"})
			return
		}
	}

	asset := models.Asset{
		Name:            form.Name,
		Type:            models.AssetType(form.Type),
		Classification:  models.Classification(form.Classification),
		Location:        strings.TrimSpace(form.Location),
		Criticality:     form.Criticality,
		Confidentiality: form.Confidentiality,
		Integrity:       form.Integrity,
		Availability:    form.Availability,
		OwnerID:         form.OwnerID,
	}

	if err := database.DB.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения актива в БД"})
		return
	}

	// первичный расчёт риска сразу после регистрации
	if err := recompute(asset.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "asset", asset.ID, "create", "Зарегистрирован актив: "+asset.Name)
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

func GetAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var asset models.Asset
	if err := database.DB.
		Preload("Owner").
		Preload("Vulnerabilities").
		Preload("Incidents").
		Preload("Evaluations.Control").
		First(&asset, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Актив не найден"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

func UpdateAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var asset models.Asset
	if err := database.DB.First(&asset, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Актив не найден"})
		return
	}

	var form assetForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}
	if msg := form.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if form.OwnerID != nil {
		var owner models.User
		if err := database.DB.First(&owner, *form.OwnerID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Владелец не найден"})
			return
		}
	}

	asset.Name = form.Name
	asset.Type = models.AssetType(form.Type)
	asset.Classification = models.Classification(form.Classification)
	asset.Location = strings.TrimSpace(form.Location)
	asset.Criticality = form.Criticality
	asset.Confidentiality = form.Confidentiality
	asset.Integrity = form.Integrity
	asset.Availability = form.Availability
	asset.OwnerID = form.OwnerID

	if err := database.DB.Save(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения актива в БД"})
		return
	}

	// оценки изменились — расчётные поля устарели
	if err := recompute(asset.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка расчёта риска"})
		return
	}

	audit(c, "asset", asset.ID, "update", "Изменён актив: "+asset.Name)
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}
