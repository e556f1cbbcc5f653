package service

import (
	"time"

	"budget-backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

// Границы пагинации списка заявок
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// LineItemInput позиция заявки из пользовательского ввода
type LineItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Notes       *string
}

// CreateInput данные для создания заявки
type CreateInput struct {
	Title             string
	Description       string
	DepartmentID      uint
	CategoryID        uint
	RequestedAmount   float64
	Justification     string
	Priority          string
	FiscalYear        int
	ExpectedStartDate *time.Time
	ExpectedEndDate   *time.Time
	SubmittedBy       string
	LineItems         []LineItemInput
}

// UpdateInput частичное обновление: nil означает "поле не передано",
// непереданные поля сохраняют прежние значения
type UpdateInput struct {
	Title             *string
	Description       *string
	DepartmentID      *uint
	CategoryID        *uint
	RequestedAmount   *float64
	Justification     *string
	Priority          *string
	Status            *string
	FiscalYear        *int
	ExpectedStartDate *time.Time
	ExpectedEndDate   *time.Time
	SubmittedBy       *string
	ReviewedBy        *string
	ReviewNotes       *string
}

// Filter фильтры и пагинация для списка заявок
type Filter struct {
	DepartmentID *uint
	Status       *string
	FiscalYear   *int
	Priority     *string
	Limit        int
	Offset       int
}

// Repository хранилище, необходимое сервису заявок.
// Реализуется пакетом repository (GORM/PostgreSQL).
type Repository interface {
	DepartmentExists(id uint) (bool, error)
	CategoryExists(id uint) (bool, error)
	// CreateBudgetRequest вставляет заявку вместе с позициями в одной транзакции
	CreateBudgetRequest(req *ds.BudgetRequest) error
	// GetBudgetRequestByID возвращает (nil, nil) если заявки нет
	GetBudgetRequestByID(id uint) (*ds.BudgetRequest, error)
	SaveBudgetRequest(req *ds.BudgetRequest) error
	// ListBudgetRequests возвращает страницу и общее количество без учёта пагинации
	ListBudgetRequests(f Filter) ([]ds.BudgetRequest, int64, error)
}

// BudgetRequestService оркестрация: валидация + сверка сумм + жизненный цикл + хранилище
type BudgetRequestService struct {
	repo Repository
	now  func() time.Time
}

func NewBudgetRequestService(repo Repository) *BudgetRequestService {
	return &BudgetRequestService{
		repo: repo,
		now:  time.Now,
	}
}

// Create валидирует ввод, проверяет справочники, сверяет сумму с позициями
// и атомарно сохраняет заявку со всеми позициями. Статус всегда draft.
func (s *BudgetRequestService) Create(in CreateInput) (*ds.BudgetRequest, error) {
	if errs := validateCreate(in); errs != nil {
		return nil, errs
	}

	exists, err := s.repo.DepartmentExists(in.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDepartmentNotFound
	}

	exists, err = s.repo.CategoryExists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	if err := reconcileAmount(in.RequestedAmount, in.LineItems); err != nil {
		return nil, err
	}

	items := make([]ds.BudgetLineItem, len(in.LineItems))
	for i, item := range in.LineItems {
		// TotalAmount считается сервером, из ввода не доверяем
		items[i] = ds.BudgetLineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
			TotalAmount: lineTotal(item),
			Notes:       item.Notes,
		}
	}

	req := &ds.BudgetRequest{
		Title:             in.Title,
		Description:       in.Description,
		DepartmentID:      in.DepartmentID,
		CategoryID:        in.CategoryID,
		RequestedAmount:   decimal.NewFromFloat(in.RequestedAmount),
		Justification:     in.Justification,
		Priority:          in.Priority,
		Status:            ds.StatusDraft,
		FiscalYear:        in.FiscalYear,
		ExpectedStartDate: *in.ExpectedStartDate,
		ExpectedEndDate:   *in.ExpectedEndDate,
		SubmittedBy:       in.SubmittedBy,
		LineItems:         items,
	}

	if err := s.repo.CreateBudgetRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update применяет только переданные поля, остальные сохраняют прежние значения.
// Если среди полей есть статус - отрабатывают побочные эффекты жизненного цикла.
// Сверка суммы с позициями при обновлении не выполняется (известный пробел, см. DESIGN.md).
// Возвращает (nil, nil) если заявки нет.
func (s *BudgetRequestService) Update(id uint, in UpdateInput) (*ds.BudgetRequest, error) {
	req, err := s.repo.GetBudgetRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}

	if in.Priority != nil && !ds.IsValidPriority(*in.Priority) {
		return nil, ValidationErrors{"priority": "приоритет должен быть одним из: low, medium, high, critical"}
	}
	if in.Status != nil && !ds.IsValidStatus(*in.Status) {
		return nil, ValidationErrors{"status": "недопустимый статус: " + *in.Status}
	}

	if in.Title != nil {
		req.Title = *in.Title
	}
	if in.Description != nil {
		req.Description = *in.Description
	}
	if in.DepartmentID != nil {
		req.DepartmentID = *in.DepartmentID
	}
	if in.CategoryID != nil {
		req.CategoryID = *in.CategoryID
	}
	if in.RequestedAmount != nil {
		req.RequestedAmount = decimal.NewFromFloat(*in.RequestedAmount)
	}
	if in.Justification != nil {
		req.Justification = *in.Justification
	}
	if in.Priority != nil {
		req.Priority = *in.Priority
	}
	if in.FiscalYear != nil {
		req.FiscalYear = *in.FiscalYear
	}
	if in.ExpectedStartDate != nil {
		req.ExpectedStartDate = *in.ExpectedStartDate
	}
	if in.ExpectedEndDate != nil {
		req.ExpectedEndDate = *in.ExpectedEndDate
	}
	if in.SubmittedBy != nil {
		req.SubmittedBy = *in.SubmittedBy
	}

	if in.Status != nil {
		// Общий update позволяет любой допустимый статус (ручное управление процессом),
		// строгое правило "только из черновика" действует в Submit
		applyStatus(req, *in.Status, in.ReviewedBy, in.ReviewNotes, s.now())
	} else {
		if in.ReviewedBy != nil {
			req.ReviewedBy = in.ReviewedBy
		}
		if in.ReviewNotes != nil {
			req.ReviewNotes = in.ReviewNotes
		}
	}

	if err := s.repo.SaveBudgetRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Submit отправляет черновик на обработку: повторная валидация полноты,
// переход draft -> processing с установкой SubmittedAt.
// Возвращает (nil, nil) если заявки нет.
func (s *BudgetRequestService) Submit(id uint) (*ds.BudgetRequest, error) {
	req, err := s.repo.GetBudgetRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}

	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	applyStatus(req, ds.StatusProcessing, nil, nil, s.now())

	if err := s.repo.SaveBudgetRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetByID возвращает (nil, nil) если заявки нет
func (s *BudgetRequestService) GetByID(id uint) (*ds.BudgetRequest, error) {
	return s.repo.GetBudgetRequestByID(id)
}

// List возвращает страницу заявок (новые первыми), общее количество
// и признак наличия следующей страницы
func (s *BudgetRequestService) List(f Filter) ([]ds.BudgetRequest, int64, bool, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	requests, total, err := s.repo.ListBudgetRequests(f)
	if err != nil {
		return nil, 0, false, err
	}

	hasMore := int64(f.Offset+f.Limit) < total
	return requests, total, hasMore, nil
}
