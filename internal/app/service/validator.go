package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"budget-backend/internal/app/ds"
)

// Ограничения длины текстовых полей (соответствуют колонкам в БД)
const (
	maxTitleLen         = 200
	maxDescriptionLen   = 2000
	maxJustificationLen = 2000
)

// validateCreate проверяет поля заявки перед созданием.
// Возвращает карту поле -> сообщение; nil если ошибок нет.
// Существование департамента/категории и сверка суммы проверяются отдельно в Create.
func validateCreate(in CreateInput) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "название обязательно"
	} else if utf8.RuneCountInString(in.Title) > maxTitleLen {
		errs["title"] = fmt.Sprintf("название не должно превышать %d символов", maxTitleLen)
	}

	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "описание обязательно"
	} else if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		errs["description"] = fmt.Sprintf("описание не должно превышать %d символов", maxDescriptionLen)
	}

	if in.DepartmentID == 0 {
		errs["department_id"] = "департамент обязателен"
	}
	if in.CategoryID == 0 {
		errs["category_id"] = "категория обязательна"
	}

	if in.RequestedAmount <= 0 {
		errs["requested_amount"] = "сумма должна быть положительной"
	}

	if strings.TrimSpace(in.Justification) == "" {
		errs["justification"] = "обоснование обязательно"
	} else if utf8.RuneCountInString(in.Justification) > maxJustificationLen {
		errs["justification"] = fmt.Sprintf("обоснование не должно превышать %d символов", maxJustificationLen)
	}

	if !ds.IsValidPriority(in.Priority) {
		errs["priority"] = "приоритет должен быть одним из: low, medium, high, critical"
	}

	if in.FiscalYear < ds.FiscalYearMin || in.FiscalYear > ds.FiscalYearMax {
		errs["fiscal_year"] = fmt.Sprintf("финансовый год должен быть в диапазоне %d-%d", ds.FiscalYearMin, ds.FiscalYearMax)
	}

	switch {
	case in.ExpectedStartDate == nil:
		errs["expected_start_date"] = "дата начала обязательна"
	case in.ExpectedEndDate == nil:
		errs["expected_end_date"] = "дата окончания обязательна"
	case in.ExpectedEndDate.Before(*in.ExpectedStartDate):
		errs["expected_end_date"] = "дата окончания не может быть раньше даты начала"
	}

	if strings.TrimSpace(in.SubmittedBy) == "" {
		errs["submitted_by"] = "отправитель обязателен"
	}

	if len(in.LineItems) == 0 {
		errs["line_items"] = "заявка должна содержать хотя бы одну позицию"
	}
	for i, item := range in.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			errs[fmt.Sprintf("line_items[%d].description", i)] = "описание позиции обязательно"
		}
		if item.Quantity <= 0 {
			errs[fmt.Sprintf("line_items[%d].quantity", i)] = "количество должно быть положительным целым"
		}
		if item.UnitPrice <= 0 {
			errs[fmt.Sprintf("line_items[%d].unit_price", i)] = "цена за единицу должна быть положительной"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateSubmit проверяет сохранённый черновик перед отправкой на обработку.
// Часть проверок дублирует validateCreate намеренно: черновик могли
// отредактировать после создания, поэтому полнота проверяется заново.
func validateSubmit(req *ds.BudgetRequest) error {
	if req.Status != ds.StatusDraft {
		return &InvalidTransitionError{Current: req.Status}
	}

	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.Justification) == "" {
		return &IncompleteRequestError{Reason: IncompleteFields}
	}

	if req.ExpectedStartDate.IsZero() || req.ExpectedEndDate.IsZero() {
		return &IncompleteRequestError{Reason: IncompleteDates}
	}

	if strings.TrimSpace(req.SubmittedBy) == "" {
		return &IncompleteRequestError{Reason: IncompleteSubmitter}
	}

	return nil
}
