package handler

import (
	"net/http"

	"budget-backend/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ СПРАВОЧНИКИ ============

// GetDepartments получает список департаментов
// @Summary Получение списка департаментов
// @Description Возвращает все департаменты по алфавиту
// @Tags Reference
// @Produce json
// @Success 200 {array} dto.DepartmentResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/departments [get]
func (h *APIHandler) GetDepartments(c *gin.Context) {
	departments, err := h.Repository.GetDepartments()
	if err != nil {
		logrus.Error("Error getting departments: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения департаментов")
		return
	}

	dtoDepartments := make([]dto.DepartmentResponse, len(departments))
	for i, d := range departments {
		dtoDepartments[i] = dto.DepartmentResponse{
			ID:           d.ID,
			Name:         d.Name,
			Code:         d.Code,
			Description:  d.Description,
			HeadName:     d.HeadName,
			ContactEmail: d.ContactEmail,
			ContactPhone: d.ContactPhone,
		}
	}

	c.JSON(http.StatusOK, dtoDepartments)
}

// GetDepartment получает департамент по ID
// @Summary Получение департамента
// @Description Возвращает департамент по идентификатору
// @Tags Reference
// @Produce json
// @Param id path int true "ID департамента"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/departments/{id} [get]
func (h *APIHandler) GetDepartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID департамента")
		return
	}

	department, err := h.Repository.GetDepartmentByID(id)
	if err != nil {
		logrus.Error("Error getting department: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения департамента")
		return
	}
	if department == nil {
		h.errorResponse(c, http.StatusNotFound, "Департамент не найден")
		return
	}

	c.JSON(http.StatusOK, dto.DepartmentResponse{
		ID:           department.ID,
		Name:         department.Name,
		Code:         department.Code,
		Description:  department.Description,
		HeadName:     department.HeadName,
		ContactEmail: department.ContactEmail,
		ContactPhone: department.ContactPhone,
	})
}

// GetBudgetCategories получает список категорий бюджета
// @Summary Получение списка категорий бюджета
// @Description Возвращает все категории по алфавиту
// @Tags Reference
// @Produce json
// @Success 200 {array} dto.BudgetCategoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget-categories [get]
func (h *APIHandler) GetBudgetCategories(c *gin.Context) {
	categories, err := h.Repository.GetBudgetCategories()
	if err != nil {
		logrus.Error("Error getting budget categories: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения категорий")
		return
	}

	dtoCategories := make([]dto.BudgetCategoryResponse, len(categories))
	for i, cat := range categories {
		dtoCategories[i] = dto.BudgetCategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Code:        cat.Code,
			Description: cat.Description,
		}
	}

	c.JSON(http.StatusOK, dtoCategories)
}
