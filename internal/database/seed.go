package database

import (
	"log"

	"riskboard/internal/models"
)

// Библиотека контролей (минимальный набор ISO 27001:2022, Annex A)
func seedControlLibrary() {
	controls := []models.Control{
		{Code: "A.5.1", Name: "Политики информационной безопасности", Framework: "ISO 27001:2022", Category: "Организационные"},
		{Code: "A.5.7", Name: "Киберразведка (threat intelligence)", Framework: "ISO 27001:2022", Category: "Организационные"},
		{Code: "A.5.15", Name: "Управление доступом", Framework: "ISO 27001:2022", Category: "Организационные"},
		{Code: "A.8.1", Name: "Инвентаризация активов", Framework: "ISO 27001:2022", Category: "Технологические"},
		{Code: "A.8.8", Name: "Управление техническими уязвимостями", Framework: "ISO 27001:2022", Category: "Технологические"},
		{Code: "A.8.12", Name: "Предотвращение утечек данных", Framework: "ISO 27001:2022", Category: "Технологические"},
	}

	for _, c := range controls {
		var count int64
		if err := DB.Model(&models.Control{}).
			Where("code = ?", c.Code).
			Count(&count).Error; err != nil {
			log.Printf("failed to check control %s: %v", c.Code, err)
			continue
		}
		if count > 0 {
			continue
		}
		ctrl := c
		if err := DB.Create(&ctrl).Error; err != nil {
			log.Printf("failed to seed control %s: %v", c.Code, err)
		}
	}
}

// Фреймворк ISO 27001 с требованиями и привязкой к контролям библиотеки
func seedISOFramework() {
	const fwName = "ISO/IEC 27001:2022"

	var count int64
	if err := DB.Model(&models.Framework{}).
		Where("name = ?", fwName).
		Count(&count).Error; err != nil {
		log.Printf("failed to check framework: %v", err)
		return
	}
	if count > 0 {
		return
	}

	fw := models.Framework{
		Name:        fwName,
		Description: "Международный стандарт управления информационной безопасностью.",
	}
	if err := DB.Create(&fw).Error; err != nil {
		log.Printf("failed to seed framework: %v", err)
		return
	}

	// требование -> код контроля из библиотеки (может быть пустым)
	requirements := []struct {
		Code        string
		Description string
		ControlCode string
	}{
		{"5.1", "Политики для обеспечения информационной безопасности", "A.5.1"},
		{"5.7", "Анализ данных об угрозах", "A.5.7"},
		{"5.15", "Контроль доступа", "A.5.15"},
		{"5.17", "Аутентификационная информация", ""},
		{"6.1", "Проверка персонала при приёме", ""},
		{"8.8", "Управление техническими уязвимостями", "A.8.8"},
		{"8.10", "Удаление информации", ""},
		{"8.12", "Предотвращение утечки данных", "A.8.12"},
		{"8.25", "Безопасный цикл разработки", ""},
	}

	for _, r := range requirements {
		req := models.Requirement{
			FrameworkID: fw.ID,
			Code:        r.Code,
			Description: r.Description,
		}

		if r.ControlCode != "" {
			var ctrl models.Control
			if err := DB.Where("code = ?", r.ControlCode).First(&ctrl).Error; err == nil {
				req.Controls = []models.Control{ctrl}
			}
		}

		if err := DB.Create(&req).Error; err != nil {
			log.Printf("failed to seed requirement %s: %v", r.Code, err)
		}
	}

	log.Printf("seeded framework %s with %d requirements", fwName, len(requirements))
}
