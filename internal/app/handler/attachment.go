package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ СОПРОВОДИТЕЛЬНЫЕ ДОКУМЕНТЫ ============

// UploadAttachment загружает сопроводительный документ заявки
// @Summary Загрузка документа заявки
// @Description Загружает сопроводительный документ (pdf/doc/xls) в MinIO и привязывает к заявке
// @Tags Budget-Requests
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID заявки"
// @Param file formData file true "Файл документа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget-requests/{id}/attachment [post]
func (h *APIHandler) UploadAttachment(c *gin.Context) {
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

	file, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не найден в запросе")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	if h.MinIOClient == nil {
		h.errorResponse(c, http.StatusInternalServerError, "Хранилище файлов не настроено")
		return
	}

	// Удаляем старый документ из MinIO (если есть)
	if req.AttachmentURL != nil && *req.AttachmentURL != "" {
		if err := h.MinIOClient.DeleteFile(*req.AttachmentURL); err != nil {
			logrus.Warnf("Failed to delete old attachment %s: %v", *req.AttachmentURL, err)
		}
	}

	filename, err := h.MinIOClient.UploadFile(fileData, file.Filename)
	if err != nil {
		logrus.Error("Error uploading to MinIO: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки файла")
		return
	}

	if err := h.Repository.SetAttachment(id, &filename); err != nil {
		logrus.Error("Error saving attachment reference: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения ссылки на документ")
		return
	}

	h.successResponse(c, http.StatusOK, "Документ успешно загружен", gin.H{
		"attachment_url": filename,
	})
}

// GetAttachment выдает временную ссылку на сопроводительный документ
// @Summary Получение ссылки на документ заявки
// @Description Возвращает временный URL документа из MinIO (действует 1 час)
// @Tags Budget-Requests
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget-requests/{id}/attachment [get]
func (h *APIHandler) GetAttachment(c *gin.Context) {
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

	if req.AttachmentURL == nil || *req.AttachmentURL == "" {
		h.errorResponse(c, http.StatusNotFound, "У заявки нет документа")
		return
	}

	if h.MinIOClient == nil {
		h.errorResponse(c, http.StatusInternalServerError, "Хранилище файлов не настроено")
		return
	}

	exists, err := h.MinIOClient.FileExists(*req.AttachmentURL)
	if err != nil {
		logrus.Error("Error checking attachment: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки документа")
		return
	}
	if !exists {
		h.errorResponse(c, http.StatusNotFound, "Документ не найден в хранилище")
		return
	}

	url, err := h.MinIOClient.GetFileURL(*req.AttachmentURL)
	if err != nil {
		logrus.Error("Error generating attachment URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения ссылки на документ")
		return
	}

	h.successResponse(c, http.StatusOK, "", gin.H{
		"url": url,
	})
}

// DeleteAttachment удаляет сопроводительный документ заявки
// @Summary Удаление документа заявки
// @Description Удаляет сопроводительный документ из MinIO и отвязывает от заявки
// @Tags Budget-Requests
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget-requests/{id}/attachment [delete]
func (h *APIHandler) DeleteAttachment(c *gin.Context) {
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

	if req.AttachmentURL == nil || *req.AttachmentURL == "" {
		h.errorResponse(c, http.StatusNotFound, "У заявки нет документа")
		return
	}

	if h.MinIOClient != nil {
		if err := h.MinIOClient.DeleteFile(*req.AttachmentURL); err != nil {
			logrus.Warnf("Failed to delete attachment from MinIO: %v", err)
		}
	}

	if err := h.Repository.SetAttachment(id, nil); err != nil {
		logrus.Error("Error clearing attachment reference: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления ссылки на документ")
		return
	}

	h.successResponse(c, http.StatusOK, "Документ успешно удален", nil)
}
