package ds

import "time"

// 2. Таблица категорий бюджета - ТОЛЬКО справочная информация
type BudgetCategory struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Code        string    `gorm:"type:varchar(20);unique;not null"` // Уникальный код категории
	Description *string   `gorm:"type:text"`                        // Nullable
	CreatedAt   time.Time `gorm:"not null"`
}
