package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/service"
)

type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Submit(ctx context.Context, pdf []byte, in service.SubmitInput) (*model.Record, error) {
	args := m.Called(ctx, pdf, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) Search(ctx context.Context, q service.SearchQuery) (*service.RecordListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordListResult), args.Error(1)
}

func (m *MockRecordService) Dashboard(ctx context.Context, submitterName string, limit, offset int) (*service.RecordListResult, error) {
	args := m.Called(ctx, submitterName, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordListResult), args.Error(1)
}

func (m *MockRecordService) Get(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) GetByRecordNumber(ctx context.Context, recordNumber string) (*model.Record, error) {
	args := m.Called(ctx, recordNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
