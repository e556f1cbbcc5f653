package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"budget-backend/internal/app/dto"
	"budget-backend/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// ============ ДОМЕН ЗАЯВКИ НА БЮДЖЕТ ============

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &parsed
}

// writeServiceError переводит типизированные ошибки сервиса в HTTP ответы
func (h *APIHandler) writeServiceError(c *gin.Context, err error) {
	var validationErrs service.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Status: "fail",
			Errors: validationErrs,
		})
		return
	}

	var mismatch *service.AmountMismatchError
	if errors.As(err, &mismatch) {
		h.errorResponse(c, http.StatusBadRequest, mismatch.Error())
		return
	}

	if errors.Is(err, service.ErrDepartmentNotFound) || errors.Is(err, service.ErrCategoryNotFound) {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	var transition *service.InvalidTransitionError
	var incomplete *service.IncompleteRequestError
	if errors.As(err, &transition) || errors.As(err, &incomplete) {
		h.errorResponse(c, http.StatusConflict, err.Error())
		return
	}

	logrus.Error("service error: ", err)
	h.errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// CreateBudgetRequest создает заявку на бюджет
// @Summary Создание заявки на бюджет
// @Description Создает заявку со всеми позициями в одной транзакции, статус всегда draft
// @Tags Budget-Requests
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequestRequest true "Данные заявки"
// @Success 201 {object} dto.BudgetRequestResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget-requests [post]
func (h *APIHandler) CreateBudgetRequest(c *gin.Context) {
	var req dto.CreateBudgetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	items := make([]service.LineItemInput, len(req.LineItems))
	for i, item := range req.LineItems {
		items[i] = service.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Notes:       item.Notes,
		}
	}

	created, err := h.Service.Create(service.CreateInput{
		Title:             req.Title,
		Description:       req.Description,
		DepartmentID:      req.DepartmentID,
		CategoryID:        req.CategoryID,
		RequestedAmount:   req.RequestedAmount,
		Justification:     req.Justification,
		Priority:          req.Priority,
		FiscalYear:        req.FiscalYear,
		ExpectedStartDate: parseDate(req.ExpectedStartDate),
		ExpectedEndDate:   parseDate(req.ExpectedEndDate),
		SubmittedBy:       req.SubmittedBy,
		LineItems:         items,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBudgetRequestResponse(created))
}

// GetBudgetRequests получает список заявок
// @Summary Получение списка заявок
// @Description Возвращает страницу заявок с фильтрацией по департаменту, статусу, году и приоритету
// @Tags Budget-Requests
// @Produce json
// @Param department_id query int false "Фильтр по департаменту"
// @Param status query string false "Фильтр по статусу"
// @Param fiscal_year query int false "Фильтр по финансовому году"
// @Param priority query string false "Фильтр по приоритету"
// @Param limit query int false "Размер страницы (1-100, по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} dto.BudgetRequestListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget-requests [get]
func (h *APIHandler) GetBudgetRequests(c *gin.Context) {
	var filter service.Filter

	if v := c.Query("department_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			departmentID := uint(id)
			filter.DepartmentID = &departmentID
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("fiscal_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.FiscalYear = &year
		}
	}
	if v := c.Query("priority"); v != "" {
		filter.Priority = &v
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			filter.Offset = offset
		}
	}

	requests, total, hasMore, err := h.Service.List(filter)
	if err != nil {
		logrus.Error("Error getting budget requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	dtoRequests := make([]dto.BudgetRequestResponse, len(requests))
	for i := range requests {
		dtoRequests[i] = dto.NewBudgetRequestResponse(&requests[i])
	}

	c.JSON(http.StatusOK, dto.BudgetRequestListResponse{
		Requests: dtoRequests,
		Total:    total,
		HasMore:  hasMore,
	})
}

// GetBudgetRequest получает одну заявку
// @Summary Получение заявки по ID
// @Description Возвращает заявку со всеми позициями
// @Tags Budget-Requests
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/budget-requests/{id} [get]
func (h *APIHandler) GetBudgetRequest(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	req, err := h.Service.GetByID(id)
	if err != nil {
		logrus.Error("Error getting budget request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявки")
		return
	}
	if req == nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	c.JSON(http.StatusOK, dto.NewBudgetRequestResponse(req))
}

// UpdateBudgetRequest обновляет заявку
// @Summary Частичное обновление заявки
// @Description Применяет только переданные поля; при смене статуса отрабатывает жизненный цикл
// @Tags Budget-Requests
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param request body dto.UpdateBudgetRequestRequest true "Данные для обновления"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/budget-requests/{id} [put]
func (h *APIHandler) UpdateBudgetRequest(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	var req dto.UpdateBudgetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	var startDate, endDate *time.Time
	if req.ExpectedStartDate != nil {
		if startDate = parseDate(*req.ExpectedStartDate); startDate == nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты начала")
			return
		}
	}
	if req.ExpectedEndDate != nil {
		if endDate = parseDate(*req.ExpectedEndDate); endDate == nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты окончания")
			return
		}
	}

	updated, err := h.Service.Update(id, service.UpdateInput{
		Title:             req.Title,
		Description:       req.Description,
		DepartmentID:      req.DepartmentID,
		CategoryID:        req.CategoryID,
		RequestedAmount:   req.RequestedAmount,
		Justification:     req.Justification,
		Priority:          req.Priority,
		Status:            req.Status,
		FiscalYear:        req.FiscalYear,
		ExpectedStartDate: startDate,
		ExpectedEndDate:   endDate,
		SubmittedBy:       req.SubmittedBy,
		ReviewedBy:        req.ReviewedBy,
		ReviewNotes:       req.ReviewNotes,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if updated == nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	c.JSON(http.StatusOK, dto.NewBudgetRequestResponse(updated))
}

// SubmitBudgetRequest отправляет черновик на обработку
// @Summary Отправка заявки
// @Description Переводит заявку из статуса draft в processing с повторной проверкой полноты
// @Tags Budget-Requests
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/budget-requests/{id}/submit [put]
func (h *APIHandler) SubmitBudgetRequest(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	submitted, err := h.Service.Submit(id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if submitted == nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	c.JSON(http.StatusOK, dto.NewBudgetRequestResponse(submitted))
}
