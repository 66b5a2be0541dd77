package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/repository"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByRecordNumber(ctx context.Context, recordNumber string) (*model.Record, error) {
	args := m.Called(ctx, recordNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordRepository) Search(ctx context.Context, q repository.RecordSearch, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	args := m.Called(ctx, q, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Record]), args.Error(1)
}

func (m *MockRecordRepository) ListBySubmitter(ctx context.Context, submitterName string, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	args := m.Called(ctx, submitterName, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Record]), args.Error(1)
}

func (m *MockRecordRepository) ListByFolder(ctx context.Context, folderID string) ([]model.Record, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockRecordRepository) CountWithPrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
