package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
	"github.com/Gfx-Boy/sovereign-ledger/internal/repository"
)

var ErrFolderNotFound = errors.New("client folder not found")

// FolderInput carries the fields for creating a client folder.
type FolderInput struct {
	TrusteeName string
	ClientName  string
	ClientEmail string
}

// Validate requires both parties of the folder relationship.
func (in FolderInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.TrusteeName, validation.Required),
		validation.Field(&in.ClientName, validation.Required),
		validation.Field(&in.ClientEmail, is.EmailFormat),
	)
}

// FolderService defines the trustee client-folder use cases.
type FolderService interface {
	// Create adds a named client folder for a trustee.
	Create(ctx context.Context, in FolderInput) (*model.ClientFolder, error)

	// ListByTrustee returns the trustee's folders, newest first.
	ListByTrustee(ctx context.Context, trusteeName string) ([]model.ClientFolder, error)

	// Records returns the documents filed in a folder.
	Records(ctx context.Context, folderID string) ([]model.Record, error)

	// Rename updates a folder's client name.
	Rename(ctx context.Context, id, clientName string) error

	// Delete removes a folder; records filed in it are kept, unfiled.
	Delete(ctx context.Context, id string) error
}

type folderService struct {
	folders repository.FolderRepository
	records repository.RecordRepository
	now     func() time.Time
}

// NewFolderService constructs a new FolderService.
func NewFolderService(folders repository.FolderRepository, records repository.RecordRepository) FolderService {
	return &folderService{folders: folders, records: records, now: time.Now}
}

func (s *folderService) Create(ctx context.Context, in FolderInput) (*model.ClientFolder, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("validate folder: %w", err)
	}
	f := &model.ClientFolder{
		ID:          uuid.New().String(),
		TrusteeName: in.TrusteeName,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		CreatedAt:   s.now().UTC(),
	}
	return s.folders.Create(ctx, f)
}

func (s *folderService) ListByTrustee(ctx context.Context, trusteeName string) ([]model.ClientFolder, error) {
	if trusteeName == "" {
		return nil, ErrIDRequired
	}
	return s.folders.ListByTrustee(ctx, trusteeName)
}

func (s *folderService) Records(ctx context.Context, folderID string) ([]model.Record, error) {
	if folderID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.folders.FindByID(ctx, folderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return s.records.ListByFolder(ctx, folderID)
}

func (s *folderService) Rename(ctx context.Context, id, clientName string) error {
	if id == "" {
		return ErrIDRequired
	}
	if clientName == "" {
		return fmt.Errorf("validate folder: client name is required")
	}
	if err := s.folders.Rename(ctx, id, clientName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

func (s *folderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.folders.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	return s.folders.Delete(ctx, id)
}
