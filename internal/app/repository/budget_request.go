package repository

import (
	"errors"

	"budget-backend/internal/app/ds"
	"budget-backend/internal/app/service"

	"gorm.io/gorm"
)

// Методы для работы с заявками на бюджет

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// CreateBudgetRequest вставляет заявку и все её позиции в одной транзакции:
// либо сохраняется всё, либо ничего
func (r *Repository) CreateBudgetRequest(req *ds.BudgetRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := req.LineItems
		req.LineItems = nil

		if err := tx.Create(req).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].BudgetRequestID = req.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		req.LineItems = items
		return nil
	})
}

// GetBudgetRequestByID возвращает заявку с позициями или (nil, nil) если её нет
func (r *Repository) GetBudgetRequestByID(id uint) (*ds.BudgetRequest, error) {
	var req ds.BudgetRequest
	err := r.db.
		Preload("LineItems").
		Preload("Department").
		Preload("Category").
		First(&req, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// SaveBudgetRequest сохраняет изменённую заявку (позиции не трогаются)
func (r *Repository) SaveBudgetRequest(req *ds.BudgetRequest) error {
	return r.db.Omit("LineItems", "Department", "Category").Save(req).Error
}

// ListBudgetRequests возвращает страницу заявок по фильтрам (новые первыми)
// и общее количество подходящих записей без учёта пагинации
func (r *Repository) ListBudgetRequests(f service.Filter) ([]ds.BudgetRequest, int64, error) {
	query := r.db.Model(&ds.BudgetRequest{})

	if f.DepartmentID != nil {
		query = query.Where("department_id = ?", *f.DepartmentID)
	}
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.FiscalYear != nil {
		query = query.Where("fiscal_year = ?", *f.FiscalYear)
	}
	if f.Priority != nil {
		query = query.Where("priority = ?", *f.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []ds.BudgetRequest
	err := query.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Department").
		Preload("Category").
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// SetAttachment обновляет ссылку на сопроводительный документ заявки
func (r *Repository) SetAttachment(id uint, attachmentURL *string) error {
	return r.db.Model(&ds.BudgetRequest{}).
		Where("id = ?", id).
		Update("attachment_url", attachmentURL).Error
}
