package service

import (
	"time"

	"budget-backend/internal/app/ds"
)

// applyStatus переводит заявку в новый статус и проставляет временные метки.
// Метки ставятся ровно один раз: повторный переход в processing не двигает
// SubmittedAt, повторный переход в approved/rejected не двигает ReviewedAt.
// Повторная установка текущего статуса - no-op для меток.
func applyStatus(req *ds.BudgetRequest, newStatus string, reviewedBy, reviewNotes *string, now time.Time) {
	switch newStatus {
	case ds.StatusProcessing:
		if req.SubmittedAt == nil {
			req.SubmittedAt = &now
		}
	case ds.StatusApproved, ds.StatusRejected:
		if req.ReviewedAt == nil {
			req.ReviewedAt = &now
		}
		if reviewedBy != nil {
			req.ReviewedBy = reviewedBy
		}
		if reviewNotes != nil {
			req.ReviewNotes = reviewNotes
		}
	}
	req.Status = newStatus
}
