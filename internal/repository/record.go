package repository

import (
	"context"

	"github.com/Gfx-Boy/sovereign-ledger/internal/model"
)

// RecordRepository defines data access for recorded documents using SQL
// queries only. No business logic here, strictly persistence operations.
type RecordRepository interface {
	// Create inserts a new record row. The caller provides all fields
	// including the record number; a unique index on record_number is the
	// authoritative uniqueness guarantee (the service retries on conflict).
	Create(ctx context.Context, rec *model.Record) (*model.Record, error)

	// FindByID returns a record by its ID.
	FindByID(ctx context.Context, id string) (*model.Record, error)

	// FindByRecordNumber returns a record by its display record number.
	FindByRecordNumber(ctx context.Context, recordNumber string) (*model.Record, error)

	// Search returns public records matching the given substring filters,
	// newest first, with a total count for the filter.
	Search(ctx context.Context, q RecordSearch, pq PageQuery) (*PageResult[model.Record], error)

	// ListBySubmitter returns all records (public and private) submitted by
	// the given name, newest first.
	ListBySubmitter(ctx context.Context, submitterName string, pq PageQuery) (*PageResult[model.Record], error)

	// ListByFolder returns the records filed in a client folder, newest first.
	ListByFolder(ctx context.Context, folderID string) ([]model.Record, error)

	// CountWithPrefix returns the number of records whose record number
	// starts with the given day prefix (e.g. "SR-20250304").
	CountWithPrefix(ctx context.Context, prefix string) (int, error)

	// Delete removes a record by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// FolderRepository defines data access for trustee client folders.
type FolderRepository interface {
	// Create inserts a new client folder.
	Create(ctx context.Context, f *model.ClientFolder) (*model.ClientFolder, error)

	// FindByID returns a folder by its ID.
	FindByID(ctx context.Context, id string) (*model.ClientFolder, error)

	// ListByTrustee returns all folders owned by the given trustee.
	ListByTrustee(ctx context.Context, trusteeName string) ([]model.ClientFolder, error)

	// Rename updates a folder's client name.
	Rename(ctx context.Context, id, clientName string) error

	// Delete removes a folder by ID. Records filed in it keep their rows;
	// the foreign key nulls their folder reference.
	Delete(ctx context.Context, id string) error
}

// RecordSearch holds the optional case-insensitive substring filters for the
// public archive search. Name matches submitter or client name.
type RecordSearch struct {
	RecordNumber string
	Title        string
	Name         string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
