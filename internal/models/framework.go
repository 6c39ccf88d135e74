package models

import "gorm.io/gorm"

// Нормативный фреймворк (ISO 27001, и т.п.)
type Framework struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`

	Requirements []Requirement
}

// Требование фреймворка; связь с контролями — many2many
type Requirement struct {
	gorm.Model
	FrameworkID uint `gorm:"not null;index"`

	Code        string `gorm:"size:32;not null"`
	Description string `gorm:"type:text"`

	Controls []Control `gorm:"many2many:requirement_controls;"`
}
