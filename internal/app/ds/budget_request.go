package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заявки: черновик -> в обработке -> на рассмотрении -> одобрена/отклонена
const (
	StatusDraft      = "draft"
	StatusProcessing = "processing"
	StatusReview     = "review"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

// Приоритеты заявки
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Допустимый диапазон финансового года
const (
	FiscalYearMin = 2020
	FiscalYearMax = 2050
)

// IsValidStatus проверяет, что статус входит в перечень допустимых
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusProcessing, StatusReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsValidPriority проверяет, что приоритет входит в перечень допустимых
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// 3. Таблица заявок на бюджет
type BudgetRequest struct {
	ID                uint            `gorm:"primaryKey"`
	Title             string          `gorm:"type:varchar(200);not null"`
	Description       string          `gorm:"type:text;not null"`
	DepartmentID      uint            `gorm:"not null;index"`
	CategoryID        uint            `gorm:"not null;index"`
	RequestedAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Должна совпадать с суммой позиций
	Justification     string          `gorm:"type:text;not null"`
	Priority          string          `gorm:"type:varchar(20);not null;default:'medium'"` // low, medium, high, critical
	Status            string          `gorm:"type:varchar(20);not null;default:'draft';index"`
	FiscalYear        int             `gorm:"type:int;not null;index"`
	ExpectedStartDate time.Time       `gorm:"not null"`
	ExpectedEndDate   time.Time       `gorm:"not null"`
	SubmittedBy       string          `gorm:"type:varchar(100)"`
	SubmittedAt       *time.Time      `gorm:"default:null"` // Ставится один раз при переходе draft -> processing
	ReviewedBy        *string         `gorm:"type:varchar(100);default:null"`
	ReviewedAt        *time.Time      `gorm:"default:null"` // Ставится один раз при переходе в approved/rejected
	ReviewNotes       *string         `gorm:"type:text;default:null"`
	AttachmentURL     *string         `gorm:"type:varchar(255);default:null"` // Сопроводительный документ в MinIO
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`

	Department Department       `gorm:"foreignKey:DepartmentID"`
	Category   BudgetCategory   `gorm:"foreignKey:CategoryID"`
	LineItems  []BudgetLineItem `gorm:"foreignKey:BudgetRequestID;constraint:OnDelete:CASCADE"`
}

// 4. Таблица позиций заявки (принадлежат ровно одной заявке, создаются вместе с ней)
type BudgetLineItem struct {
	ID              uint            `gorm:"primaryKey"`
	BudgetRequestID uint            `gorm:"not null;index"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Quantity        int             `gorm:"type:int;not null"`           // > 0
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"` // > 0
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Quantity * UnitPrice, считается сервером
	Notes           *string         `gorm:"type:text"`                   // Nullable
	CreatedAt       time.Time       `gorm:"not null"`
}
