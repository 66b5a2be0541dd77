package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	repoMocks "github.com/Gfx-Boy/sovereign-ledger/internal/repository/mocks"
)

func TestFolderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		svc := &folderService{folders: mFolders, now: time.Now}

		mFolders.On("Create", ctx, mock.MatchedBy(func(f *model.ClientFolder) bool {
			return f.ID != "" && f.TrusteeName == "Acme Co" && f.ClientName == "John Smith"
		})).Return(&model.ClientFolder{ID: "gen-id"}, nil)

		f, err := svc.Create(ctx, FolderInput{TrusteeName: "Acme Co", ClientName: "John Smith"})

		assert.NoError(t, err)
		assert.NotNil(t, f)
		mFolders.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &folderService{now: time.Now}

		_, err := svc.Create(ctx, FolderInput{TrusteeName: "Acme Co"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validate folder")
	})
}

func TestFolderService_Records(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		mRecords := new(repoMocks.MockRecordRepository)
		svc := &folderService{folders: mFolders, records: mRecords}

		mFolders.On("FindByID", ctx, "folder-id").Return(&model.ClientFolder{ID: "folder-id"}, nil)
		mRecords.On("ListByFolder", ctx, "folder-id").Return([]model.Record{{ID: "r1"}}, nil)

		recs, err := svc.Records(ctx, "folder-id")

		assert.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("missing folder", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		svc := &folderService{folders: mFolders}

		mFolders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Records(ctx, "missing")

		assert.ErrorIs(t, err, ErrFolderNotFound)
	})
}

func TestFolderService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		svc := &folderService{folders: mFolders}

		mFolders.On("Rename", ctx, "folder-id", "New Name").Return(nil)

		assert.NoError(t, svc.Rename(ctx, "folder-id", "New Name"))
	})

	t.Run("missing folder", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		svc := &folderService{folders: mFolders}

		mFolders.On("Rename", ctx, "missing", "New Name").Return(sql.ErrNoRows)

		assert.ErrorIs(t, svc.Rename(ctx, "missing", "New Name"), ErrFolderNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		svc := &folderService{}

		assert.Error(t, svc.Rename(ctx, "folder-id", ""))
	})
}

func TestFolderService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		svc := &folderService{folders: mFolders}

		mFolders.On("FindByID", ctx, "folder-id").Return(&model.ClientFolder{ID: "folder-id"}, nil)
		mFolders.On("Delete", ctx, "folder-id").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "folder-id"))
	})

	t.Run("missing folder", func(t *testing.T) {
		mFolders := new(repoMocks.MockFolderRepository)
		svc := &folderService{folders: mFolders}

		mFolders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrFolderNotFound)
	})
}
