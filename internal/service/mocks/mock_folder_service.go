package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/service"
)

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) Create(ctx context.Context, in service.FolderInput) (*model.ClientFolder, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientFolder), args.Error(1)
}

func (m *MockFolderService) ListByTrustee(ctx context.Context, trusteeName string) ([]model.ClientFolder, error) {
	args := m.Called(ctx, trusteeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClientFolder), args.Error(1)
}

func (m *MockFolderService) Records(ctx context.Context, folderID string) ([]model.Record, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockFolderService) Rename(ctx context.Context, id, clientName string) error {
	args := m.Called(ctx, id, clientName)
	return args.Error(0)
}

func (m *MockFolderService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
