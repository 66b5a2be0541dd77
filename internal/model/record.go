package model

import "time"

// Record is the metadata of a recorded document.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// RecordNumber is assigned exactly once at creation and never changes. The
// stamped PDF bytes themselves live in object storage under StoragePath; the
// stamp is a frozen visual rendering and is not re-derivable from this row.
type Record struct {
	ID            string    `json:"id"`
	RecordNumber  string    `json:"record_number"`
	Title         string    `json:"title"`
	SubmitterName string    `json:"submitter_name"`
	TrusteeName   string    `json:"trustee_name,omitempty"`
	ClientName    string    `json:"client_name,omitempty"`
	ClientEmail   string    `json:"client_email,omitempty"`
	PrivateNote   string    `json:"private_note,omitempty"`
	FolderID      *string   `json:"folder_id,omitempty"`
	StoragePath   string    `json:"storage_path"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"content_type"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
}

// ClientFolder groups records a trustee files on behalf of one client.
type ClientFolder struct {
	ID          string    `json:"id"`
	TrusteeName string    `json:"trustee_name"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
