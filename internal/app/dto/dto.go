package dto

import (
	"time"

	"budget-backend/internal/app/ds"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ValidationErrorResponse ошибки по полям при создании заявки
type ValidationErrorResponse struct {
	Status string            `json:"status"`
	Errors map[string]string `json:"errors"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Справочники ============

type DepartmentResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Description  *string `json:"description,omitempty"`
	HeadName     string  `json:"head_name"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}

type BudgetCategoryResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

// ============ Заявки на бюджет ============

type LineItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Notes       *string `json:"notes"`
}

// CreateBudgetRequestRequest - binding здесь минимальный: правила по полям
// проверяет сервис и возвращает их единой картой, а не первой ошибкой биндинга
type CreateBudgetRequestRequest struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	DepartmentID      uint              `json:"department_id"`
	CategoryID        uint              `json:"category_id"`
	RequestedAmount   float64           `json:"requested_amount"`
	Justification     string            `json:"justification"`
	Priority          string            `json:"priority"`
	FiscalYear        int               `json:"fiscal_year"`
	ExpectedStartDate string            `json:"expected_start_date"` // формат 2006-01-02
	ExpectedEndDate   string            `json:"expected_end_date"`   // формат 2006-01-02
	SubmittedBy       string            `json:"submitted_by"`
	LineItems         []LineItemRequest `json:"line_items"`
}

// UpdateBudgetRequestRequest частичное обновление: nil - поле не передано
type UpdateBudgetRequestRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	DepartmentID      *uint    `json:"department_id"`
	CategoryID        *uint    `json:"category_id"`
	RequestedAmount   *float64 `json:"requested_amount" binding:"omitempty,gt=0"`
	Justification     *string  `json:"justification"`
	Priority          *string  `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status            *string  `json:"status" binding:"omitempty,oneof=draft processing review approved rejected"`
	FiscalYear        *int     `json:"fiscal_year"`
	ExpectedStartDate *string  `json:"expected_start_date"` // формат 2006-01-02
	ExpectedEndDate   *string  `json:"expected_end_date"`   // формат 2006-01-02
	SubmittedBy       *string  `json:"submitted_by"`
	ReviewedBy        *string  `json:"reviewed_by"`
	ReviewNotes       *string  `json:"review_notes"`
}

type LineItemResponse struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalAmount float64 `json:"total_amount"`
	Notes       *string `json:"notes,omitempty"`
}

type BudgetRequestResponse struct {
	ID                uint               `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	DepartmentID      uint               `json:"department_id"`
	CategoryID        uint               `json:"category_id"`
	RequestedAmount   float64            `json:"requested_amount"`
	Justification     string             `json:"justification"`
	Priority          string             `json:"priority"`
	Status            string             `json:"status"`
	FiscalYear        int                `json:"fiscal_year"`
	ExpectedStartDate string             `json:"expected_start_date"`
	ExpectedEndDate   string             `json:"expected_end_date"`
	SubmittedBy       string             `json:"submitted_by"`
	SubmittedAt       *time.Time         `json:"submitted_at,omitempty"`
	ReviewedBy        *string            `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time         `json:"reviewed_at,omitempty"`
	ReviewNotes       *string            `json:"review_notes,omitempty"`
	AttachmentURL     *string            `json:"attachment_url,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	LineItems         []LineItemResponse `json:"line_items,omitempty"`
}

type BudgetRequestListResponse struct {
	Requests []BudgetRequestResponse `json:"requests"`
	Total    int64                   `json:"total"`
	HasMore  bool                    `json:"has_more"`
}

const dateLayout = "2006-01-02"

// NewBudgetRequestResponse единственная точка конвертации модели в ответ API:
// денежные поля пересекают границу числами, а не строками хранилища
func NewBudgetRequestResponse(req *ds.BudgetRequest) BudgetRequestResponse {
	items := make([]LineItemResponse, len(req.LineItems))
	for i, item := range req.LineItems {
		items[i] = LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			TotalAmount: item.TotalAmount.InexactFloat64(),
			Notes:       item.Notes,
		}
	}

	return BudgetRequestResponse{
		ID:                req.ID,
		Title:             req.Title,
		Description:       req.Description,
		DepartmentID:      req.DepartmentID,
		CategoryID:        req.CategoryID,
		RequestedAmount:   req.RequestedAmount.InexactFloat64(),
		Justification:     req.Justification,
		Priority:          req.Priority,
		Status:            req.Status,
		FiscalYear:        req.FiscalYear,
		ExpectedStartDate: req.ExpectedStartDate.Format(dateLayout),
		ExpectedEndDate:   req.ExpectedEndDate.Format(dateLayout),
		SubmittedBy:       req.SubmittedBy,
		SubmittedAt:       req.SubmittedAt,
		ReviewedBy:        req.ReviewedBy,
		ReviewedAt:        req.ReviewedAt,
		ReviewNotes:       req.ReviewNotes,
		AttachmentURL:     req.AttachmentURL,
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
		LineItems:         items,
	}
}

// ============ Пользователи ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     int    `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     int    `json:"role"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
