package ds

import "time"

// 1. Таблица департаментов - ТОЛЬКО справочная информация
type Department struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Code         string    `gorm:"type:varchar(20);unique;not null"` // Уникальный код департамента
	Description  *string   `gorm:"type:text"`                        // Nullable
	HeadName     string    `gorm:"type:varchar(100);not null"`       // ФИО руководителя
	ContactEmail string    `gorm:"type:varchar(100);not null"`
	ContactPhone *string   `gorm:"type:varchar(30)"` // Nullable
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}
