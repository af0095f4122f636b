package repository

import (
	"context"

	"gmrportal/internal/domain/entity"
)

type ClientDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ClientDocument) error
	GetByID(ctx context.Context, id string) (*entity.ClientDocument, error)
	Update(ctx context.Context, doc *entity.ClientDocument) error
	Delete(ctx context.Context, id string) error
	// ListByRequest returns the request's documents newest first. An empty
	// userID returns every uploader's documents.
	ListByRequest(ctx context.Context, requestID, userID string) ([]*entity.ClientDocument, error)
}

type ServiceDocumentRepository interface {
	// Upsert keys on the request id; a new deliverable replaces the old row.
	Upsert(ctx context.Context, doc *entity.ServiceDocument) error
	GetByRequest(ctx context.Context, requestID string) (*entity.ServiceDocument, error)
}
