package handler

import (
	"net/http"

	"budget-backend/internal/app/dto"
	"budget-backend/internal/app/middleware"
	"budget-backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	// ============ Справочники (публичные, только чтение) ============
	api.GET("/departments", h.GetDepartments)
	api.GET("/departments/:id", h.GetDepartment)
	api.GET("/budget-categories", h.GetBudgetCategories)

	// ============ Заявки на бюджет ============
	// Доступ к заявкам не ограничен ролями: модель прав доступа
	// для бюджетного процесса пока не внедрена
	requests := api.Group("/budget-requests")
	{
		requests.POST("", h.CreateBudgetRequest)
		requests.GET("", h.GetBudgetRequests)
		requests.GET("/:id", h.GetBudgetRequest)
		requests.PUT("/:id", h.UpdateBudgetRequest)
		requests.PUT("/:id/submit", h.SubmitBudgetRequest)

		// Сопроводительные документы (MinIO)
		requests.POST("/:id/attachment", h.UploadAttachment)
		requests.GET("/:id/attachment", h.GetAttachment)
		requests.DELETE("/:id/attachment", h.DeleteAttachment)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Employee, role.Reviewer, role.Admin), h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Employee, role.Reviewer, role.Admin), h.UpdateProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Employee, role.Reviewer, role.Admin), h.AuthHandler.LogoutUser)
	}

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}

// UpdateProfile обновляет профиль пользователя
// @Summary Обновление профиля
// @Description Обновляет данные профиля пользователя
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *APIHandler) UpdateProfile(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	var fullName, password *string
	if req.FullName != "" {
		fullName = &req.FullName
	}
	if req.Password != "" {
		hashed := generateHashString(req.Password)
		password = &hashed
	}

	err = h.Repository.UpdateUser(userID, fullName, password)
	if err != nil {
		logrus.Error("Error updating user: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления профиля")
		return
	}

	h.successResponse(c, http.StatusOK, "Профиль успешно обновлен", nil)
}
