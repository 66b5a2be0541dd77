package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
)

type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(ctx context.Context, f *model.ClientFolder) (*model.ClientFolder, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientFolder), args.Error(1)
}

func (m *MockFolderRepository) FindByID(ctx context.Context, id string) (*model.ClientFolder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientFolder), args.Error(1)
}

func (m *MockFolderRepository) ListByTrustee(ctx context.Context, trusteeName string) ([]model.ClientFolder, error) {
	args := m.Called(ctx, trusteeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClientFolder), args.Error(1)
}

func (m *MockFolderRepository) Rename(ctx context.Context, id, clientName string) error {
	args := m.Called(ctx, id, clientName)
	return args.Error(0)
}

func (m *MockFolderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
