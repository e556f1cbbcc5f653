package service

import (
	"testing"
	"time"

	"budget-backend/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatus_ProcessingStampsSubmittedAt(t *testing.T) {
	req := &ds.BudgetRequest{Status: ds.StatusDraft}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	applyStatus(req, ds.StatusProcessing, nil, nil, now)

	assert.Equal(t, ds.StatusProcessing, req.Status)
	require.NotNil(t, req.SubmittedAt)
	assert.Equal(t, now, *req.SubmittedAt)
	assert.Nil(t, req.ReviewedAt)
}

func TestApplyStatus_SubmittedAtSetOnce(t *testing.T) {
	first := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	req := &ds.BudgetRequest{Status: ds.StatusDraft, SubmittedAt: &first}

	applyStatus(req, ds.StatusProcessing, nil, nil, first.Add(time.Hour))

	assert.Equal(t, first, *req.SubmittedAt)
}

func TestApplyStatus_ApprovedStampsReview(t *testing.T) {
	req := &ds.BudgetRequest{Status: ds.StatusReview}
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	reviewer := "Петров П. П."
	notes := "Согласовано в рамках лимита"

	applyStatus(req, ds.StatusApproved, &reviewer, &notes, now)

	assert.Equal(t, ds.StatusApproved, req.Status)
	require.NotNil(t, req.ReviewedAt)
	assert.Equal(t, now, *req.ReviewedAt)
	assert.Equal(t, reviewer, *req.ReviewedBy)
	assert.Equal(t, notes, *req.ReviewNotes)
}

func TestApplyStatus_RejectedStampsReview(t *testing.T) {
	req := &ds.BudgetRequest{Status: ds.StatusReview}
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	applyStatus(req, ds.StatusRejected, nil, nil, now)

	assert.Equal(t, ds.StatusRejected, req.Status)
	require.NotNil(t, req.ReviewedAt)
	assert.Nil(t, req.ReviewedBy)
}

func TestApplyStatus_ReviewedAtSetOnce(t *testing.T) {
	first := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	req := &ds.BudgetRequest{Status: ds.StatusApproved, ReviewedAt: &first}

	// Повторное одобрение не двигает метку рассмотрения
	applyStatus(req, ds.StatusApproved, nil, nil, first.Add(48*time.Hour))

	assert.Equal(t, first, *req.ReviewedAt)
}

func TestApplyStatus_ReviewDoesNotStamp(t *testing.T) {
	req := &ds.BudgetRequest{Status: ds.StatusProcessing}

	applyStatus(req, ds.StatusReview, nil, nil, time.Now())

	assert.Equal(t, ds.StatusReview, req.Status)
	assert.Nil(t, req.SubmittedAt)
	assert.Nil(t, req.ReviewedAt)
}
