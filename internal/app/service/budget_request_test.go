package service

import (
	"fmt"
	"testing"
	"time"

	"budget-backend/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo хранит заявки в памяти. Get возвращает копию,
// изменения попадают в хранилище только через Save.
type fakeRepo struct {
	departments map[uint]bool
	categories  map[uint]bool
	requests    map[uint]ds.BudgetRequest
	order       []uint
	nextID      uint
	clock       time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		departments: map[uint]bool{1: true, 2: true},
		categories:  map[uint]bool{1: true, 2: true},
		requests:    map[uint]ds.BudgetRequest{},
		nextID:      1,
		clock:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) DepartmentExists(id uint) (bool, error) { return r.departments[id], nil }
func (r *fakeRepo) CategoryExists(id uint) (bool, error)   { return r.categories[id], nil }

func (r *fakeRepo) CreateBudgetRequest(req *ds.BudgetRequest) error {
	req.ID = r.nextID
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	req.CreatedAt = r.clock
	for i := range req.LineItems {
		req.LineItems[i].BudgetRequestID = req.ID
	}
	r.requests[req.ID] = *req
	r.order = append(r.order, req.ID)
	return nil
}

func (r *fakeRepo) GetBudgetRequestByID(id uint) (*ds.BudgetRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *fakeRepo) SaveBudgetRequest(req *ds.BudgetRequest) error {
	if _, ok := r.requests[req.ID]; !ok {
		return fmt.Errorf("запись %d не найдена", req.ID)
	}
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeRepo) ListBudgetRequests(f Filter) ([]ds.BudgetRequest, int64, error) {
	// Новые первыми: ID выдаются по возрастанию, идем с конца
	var matched []ds.BudgetRequest
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.requests[r.order[i]]
		if f.DepartmentID != nil && req.DepartmentID != *f.DepartmentID {
			continue
		}
		if f.Status != nil && req.Status != *f.Status {
			continue
		}
		if f.FiscalYear != nil && req.FiscalYear != *f.FiscalYear {
			continue
		}
		if f.Priority != nil && req.Priority != *f.Priority {
			continue
		}
		matched = append(matched, req)
	}

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], total, nil
}

func newTestService(repo *fakeRepo) *BudgetRequestService {
	s := NewBudgetRequestService(repo)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	req, err := s.Create(validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, ds.StatusDraft, req.Status)
	assert.Nil(t, req.SubmittedAt)
	assert.Equal(t, "2500", req.RequestedAmount.String())
	require.Len(t, req.LineItems, 2)
	assert.Equal(t, "1000", req.LineItems[0].TotalAmount.String())
	assert.Equal(t, "1500", req.LineItems[1].TotalAmount.String())

	stored, err := repo.GetBudgetRequestByID(req.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Закупка ноутбуков", stored.Title)
}

func TestCreate_ValidationErrors(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	in := validCreateInput()
	in.Title = ""
	in.RequestedAmount = -1

	req, err := s.Create(in)
	assert.Nil(t, req)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "requested_amount")
	assert.Empty(t, repo.requests)
}

func TestCreate_UnknownDepartment(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	in := validCreateInput()
	in.DepartmentID = 99

	req, err := s.Create(in)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
	assert.Empty(t, repo.requests)
}

func TestCreate_UnknownCategory(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	in := validCreateInput()
	in.CategoryID = 99

	req, err := s.Create(in)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Empty(t, repo.requests)
}

func TestCreate_AmountMismatch(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	in := validCreateInput()
	in.RequestedAmount = 3000 // позиции дают 2500

	req, err := s.Create(in)
	assert.Nil(t, req)

	var mismatch *AmountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2500.0, mismatch.Expected)
	assert.Equal(t, 3000.0, mismatch.Actual)
	assert.Empty(t, repo.requests)
}

func TestSubmit_Draft(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)

	submitted, err := s.Submit(created.ID)
	require.NoError(t, err)
	require.NotNil(t, submitted)

	assert.Equal(t, ds.StatusProcessing, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	stored, _ := repo.GetBudgetRequestByID(created.ID)
	assert.Equal(t, ds.StatusProcessing, stored.Status)
}

func TestSubmit_NotDraft(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)

	_, err = s.Submit(created.ID)
	require.NoError(t, err)

	// Повторная отправка уже обработанной заявки
	resubmitted, err := s.Submit(created.ID)
	assert.Nil(t, resubmitted)

	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, ds.StatusProcessing, transition.Current)
}

func TestSubmit_NotFound(t *testing.T) {
	s := newTestService(newFakeRepo())

	req, err := s.Submit(404)
	assert.NoError(t, err)
	assert.Nil(t, req)
}

func TestUpdate_PartialPreservesFields(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)

	newTitle := "Закупка ноутбуков (уточнено)"
	updated, err := s.Update(created.ID, UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.FiscalYear, updated.FiscalYear)
	assert.Equal(t, ds.StatusDraft, updated.Status)
	assert.True(t, created.RequestedAmount.Equal(updated.RequestedAmount))
}

func TestUpdate_InvalidPriority(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)

	bad := "urgent"
	updated, err := s.Update(created.ID, UpdateInput{Priority: &bad})
	assert.Nil(t, updated)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "priority")
}

func TestUpdate_InvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)

	bad := "archived"
	_, err = s.Update(created.ID, UpdateInput{Status: &bad})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "status")
}

func TestUpdate_NotFound(t *testing.T) {
	s := newTestService(newFakeRepo())

	title := "не важно"
	req, err := s.Update(404, UpdateInput{Title: &title})
	assert.NoError(t, err)
	assert.Nil(t, req)
}

func TestUpdate_ApproveStampsReview(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)
	_, err = s.Submit(created.ID)
	require.NoError(t, err)

	status := ds.StatusApproved
	reviewer := "Петров П. П."
	notes := "Согласовано"
	updated, err := s.Update(created.ID, UpdateInput{
		Status:      &status,
		ReviewedBy:  &reviewer,
		ReviewNotes: &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, ds.StatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, reviewer, *updated.ReviewedBy)
	assert.Equal(t, notes, *updated.ReviewNotes)
}

func TestLifecycle_RepeatedApprovalKeepsReviewedAt(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)
	_, err = s.Submit(created.ID)
	require.NoError(t, err)

	firstReview := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return firstReview }

	status := ds.StatusApproved
	first, err := s.Update(created.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, first.ReviewedAt)
	assert.Equal(t, firstReview, *first.ReviewedAt)

	s.now = func() time.Time { return firstReview.Add(72 * time.Hour) }

	second, err := s.Update(created.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, firstReview, *second.ReviewedAt)
}

func TestList_Pagination(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	for i := 0; i < 5; i++ {
		in := validCreateInput()
		in.Title = fmt.Sprintf("Заявка %d", i+1)
		_, err := s.Create(in)
		require.NoError(t, err)
	}

	page, total, hasMore, err := s.List(Filter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.True(t, hasMore)
	require.Len(t, page, 2)
	// Новые первыми
	assert.Equal(t, "Заявка 5", page[0].Title)
	assert.Equal(t, "Заявка 4", page[1].Title)

	page, total, hasMore, err = s.List(Filter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.False(t, hasMore)
	require.Len(t, page, 1)
	assert.Equal(t, "Заявка 1", page[0].Title)

	page, total, hasMore, err = s.List(Filter{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.False(t, hasMore)
	assert.Empty(t, page)
}

func TestList_LimitDefaults(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	for i := 0; i < 3; i++ {
		_, err := s.Create(validCreateInput())
		require.NoError(t, err)
	}

	page, _, _, err := s.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, page, 3)

	page, _, hasMore, err := s.List(Filter{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.False(t, hasMore)
}

func TestList_Filters(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	first := validCreateInput()
	created, err := s.Create(first)
	require.NoError(t, err)

	second := validCreateInput()
	second.DepartmentID = 2
	_, err = s.Create(second)
	require.NoError(t, err)

	_, err = s.Submit(created.ID)
	require.NoError(t, err)

	dept := uint(2)
	page, total, _, err := s.List(Filter{DepartmentID: &dept})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, page, 1)
	assert.Equal(t, uint(2), page[0].DepartmentID)

	status := ds.StatusProcessing
	page, total, _, err = s.List(Filter{Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, page, 1)
	assert.Equal(t, created.ID, page[0].ID)
}

func TestWorkflow_EndToEnd(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	created, err := s.Create(validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, ds.StatusDraft, created.Status)

	submitted, err := s.Submit(created.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusProcessing, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	status := ds.StatusReview
	inReview, err := s.Update(created.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, ds.StatusReview, inReview.Status)
	assert.Nil(t, inReview.ReviewedAt)

	status = ds.StatusApproved
	reviewer := "Петров П. П."
	approved, err := s.Update(created.ID, UpdateInput{Status: &status, ReviewedBy: &reviewer})
	require.NoError(t, err)
	assert.Equal(t, ds.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedAt)
	assert.Equal(t, *submitted.SubmittedAt, *approved.SubmittedAt)
}
