package service

import (
	"strings"
	"testing"
	"time"

	"budget-backend/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateInput {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	return CreateInput{
		Title:             "Закупка ноутбуков",
		Description:       "Обновление парка техники отдела",
		DepartmentID:      1,
		CategoryID:        1,
		RequestedAmount:   2500,
		Justification:     "Техника устарела и не поддерживает новое ПО",
		Priority:          ds.PriorityHigh,
		FiscalYear:        2026,
		ExpectedStartDate: &start,
		ExpectedEndDate:   &end,
		SubmittedBy:       "Иванов И. И.",
		LineItems: []LineItemInput{
			{Description: "Ноутбук", Quantity: 10, UnitPrice: 100},
			{Description: "Монитор", Quantity: 5, UnitPrice: 300},
		},
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	errs := validateCreate(validCreateInput())
	assert.Nil(t, errs)
}

func TestValidateCreate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string
	}{
		{"пустое название", func(in *CreateInput) { in.Title = "  " }, "title"},
		{"слишком длинное название", func(in *CreateInput) { in.Title = strings.Repeat("а", 201) }, "title"},
		{"пустое описание", func(in *CreateInput) { in.Description = "" }, "description"},
		{"слишком длинное описание", func(in *CreateInput) { in.Description = strings.Repeat("б", 2001) }, "description"},
		{"нет департамента", func(in *CreateInput) { in.DepartmentID = 0 }, "department_id"},
		{"нет категории", func(in *CreateInput) { in.CategoryID = 0 }, "category_id"},
		{"нулевая сумма", func(in *CreateInput) { in.RequestedAmount = 0 }, "requested_amount"},
		{"отрицательная сумма", func(in *CreateInput) { in.RequestedAmount = -10 }, "requested_amount"},
		{"пустое обоснование", func(in *CreateInput) { in.Justification = "" }, "justification"},
		{"неизвестный приоритет", func(in *CreateInput) { in.Priority = "urgent" }, "priority"},
		{"год ниже диапазона", func(in *CreateInput) { in.FiscalYear = 2019 }, "fiscal_year"},
		{"год выше диапазона", func(in *CreateInput) { in.FiscalYear = 2051 }, "fiscal_year"},
		{"нет даты начала", func(in *CreateInput) { in.ExpectedStartDate = nil }, "expected_start_date"},
		{"нет даты окончания", func(in *CreateInput) { in.ExpectedEndDate = nil }, "expected_end_date"},
		{"окончание раньше начала", func(in *CreateInput) {
			end := in.ExpectedStartDate.AddDate(0, 0, -1)
			in.ExpectedEndDate = &end
		}, "expected_end_date"},
		{"нет отправителя", func(in *CreateInput) { in.SubmittedBy = "" }, "submitted_by"},
		{"нет позиций", func(in *CreateInput) { in.LineItems = nil }, "line_items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)

			errs := validateCreate(in)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidateCreate_LineItemErrors(t *testing.T) {
	in := validCreateInput()
	in.LineItems = []LineItemInput{
		{Description: "Ноутбук", Quantity: 10, UnitPrice: 100},
		{Description: "", Quantity: 0, UnitPrice: -5},
	}

	errs := validateCreate(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "line_items[1].description")
	assert.Contains(t, errs, "line_items[1].quantity")
	assert.Contains(t, errs, "line_items[1].unit_price")
	assert.NotContains(t, errs, "line_items[0].description")
}

func TestValidateCreate_CollectsAllErrors(t *testing.T) {
	in := CreateInput{}

	errs := validateCreate(in)
	require.NotNil(t, errs)
	// Все нарушения собираются за один проход, а не первое попавшееся
	assert.GreaterOrEqual(t, len(errs), 8)
}

func TestValidationErrors_ErrorSorted(t *testing.T) {
	errs := ValidationErrors{
		"title":       "название обязательно",
		"fiscal_year": "недопустимый год",
	}

	msg := errs.Error()
	assert.True(t, strings.Index(msg, "fiscal_year") < strings.Index(msg, "title"))
}

func TestValidateSubmit_NotDraft(t *testing.T) {
	req := submittableRequest()
	req.Status = ds.StatusApproved

	err := validateSubmit(req)
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, ds.StatusApproved, transition.Current)
}

func TestValidateSubmit_Incomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ds.BudgetRequest)
		reason string
	}{
		{"пустое название", func(r *ds.BudgetRequest) { r.Title = "" }, IncompleteFields},
		{"пустое описание", func(r *ds.BudgetRequest) { r.Description = "" }, IncompleteFields},
		{"пустое обоснование", func(r *ds.BudgetRequest) { r.Justification = "" }, IncompleteFields},
		{"нулевая дата начала", func(r *ds.BudgetRequest) { r.ExpectedStartDate = time.Time{} }, IncompleteDates},
		{"нулевая дата окончания", func(r *ds.BudgetRequest) { r.ExpectedEndDate = time.Time{} }, IncompleteDates},
		{"нет отправителя", func(r *ds.BudgetRequest) { r.SubmittedBy = " " }, IncompleteSubmitter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := submittableRequest()
			tt.mutate(req)

			err := validateSubmit(req)
			var incomplete *IncompleteRequestError
			require.ErrorAs(t, err, &incomplete)
			assert.Equal(t, tt.reason, incomplete.Reason)
		})
	}
}

func TestValidateSubmit_Ready(t *testing.T) {
	assert.NoError(t, validateSubmit(submittableRequest()))
}

func submittableRequest() *ds.BudgetRequest {
	return &ds.BudgetRequest{
		Title:             "Закупка ноутбуков",
		Description:       "Обновление парка техники",
		Justification:     "Техника устарела",
		Status:            ds.StatusDraft,
		ExpectedStartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		SubmittedBy:       "Иванов И. И.",
	}
}
