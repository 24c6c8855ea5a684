package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-rp/admin-api/internal/domain/model"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
)

// fakeLogReader serves canned rows and records the options it saw.
type fakeLogReader struct {
	items    []*model.ActionLog
	total    int64
	err      error
	lastOpts model.ActionLogListOptions
}

func (r *fakeLogReader) List(_ context.Context, opts model.ActionLogListOptions) ([]*model.ActionLog, error) {
	r.lastOpts = opts
	if r.err != nil {
		return nil, r.err
	}
	return r.items, nil
}

func (r *fakeLogReader) Count(_ context.Context, _ model.ActionLogListOptions) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.total, nil
}

func TestLogService_List(t *testing.T) {
	rows := []*model.ActionLog{
		{ID: 2, Type: "ban", Description: "banned for speed hacks"},
		{ID: 1, Type: "kick", Description: "afk in spawn"},
	}
	reader := &fakeLogReader{items: rows, total: 17}
	service := NewLogService(LogServiceOptions{Logs: reader})

	result, err := service.List(context.Background(), model.ActionLogListOptions{Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, rows, result.Items)
	assert.Equal(t, int64(17), result.Total)
	assert.Equal(t, 2, reader.lastOpts.Limit)
}

func TestLogService_List_InvertedRangeRejected(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	service := NewLogService(LogServiceOptions{Logs: &fakeLogReader{}})

	_, err := service.List(context.Background(), model.ActionLogListOptions{From: &from, To: &to})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLogService_List_ReaderErrorIsInternal(t *testing.T) {
	reader := &fakeLogReader{err: errors.New("connection refused")}
	service := NewLogService(LogServiceOptions{Logs: reader})

	_, err := service.List(context.Background(), model.ActionLogListOptions{})

	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}
