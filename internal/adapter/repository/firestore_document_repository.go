package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
)

type firestoreClientDocumentRepository struct {
	client *firestore.Client
}

func NewFirestoreClientDocumentRepository(client *firestore.Client) repository.ClientDocumentRepository {
	return &firestoreClientDocumentRepository{
		client: client,
	}
}

func (r *firestoreClientDocumentRepository) Create(ctx context.Context, doc *entity.ClientDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.CreatedAt = time.Now()

	_, err := r.client.Collection(clientDocumentsCollection).Doc(doc.ID).Set(ctx, doc)
	if err != nil {
		return errors.Internal("Failed to save document", err)
	}
	return nil
}

func (r *firestoreClientDocumentRepository) GetByID(ctx context.Context, id string) (*entity.ClientDocument, error) {
	return getDoc[entity.ClientDocument](ctx, r.client.Collection(clientDocumentsCollection).Doc(id), "Document")
}

func (r *firestoreClientDocumentRepository) Update(ctx context.Context, doc *entity.ClientDocument) error {
	_, err := r.client.Collection(clientDocumentsCollection).Doc(doc.ID).Set(ctx, doc)
	if err != nil {
		return errors.Internal("Failed to update document", err)
	}
	return nil
}

func (r *firestoreClientDocumentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(clientDocumentsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete document", err)
	}
	return nil
}

func (r *firestoreClientDocumentRepository) ListByRequest(ctx context.Context, requestID, userID string) ([]*entity.ClientDocument, error) {
	query := r.client.Collection(clientDocumentsCollection).Where("serviceRequestId", "==", requestID)
	if userID != "" {
		query = query.Where("userId", "==", userID)
	}

	docs, err := collect[entity.ClientDocument](query.Documents(ctx), "documents")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

type firestoreServiceDocumentRepository struct {
	client *firestore.Client
}

func NewFirestoreServiceDocumentRepository(client *firestore.Client) repository.ServiceDocumentRepository {
	return &firestoreServiceDocumentRepository{
		client: client,
	}
}

func (r *firestoreServiceDocumentRepository) Upsert(ctx context.Context, doc *entity.ServiceDocument) error {
	doc.ID = doc.ServiceRequestID
	doc.CreatedAt = time.Now()

	_, err := r.client.Collection(serviceDocumentsCollection).Doc(doc.ID).Set(ctx, doc)
	if err != nil {
		return errors.Internal("Failed to save service document", err)
	}
	return nil
}

func (r *firestoreServiceDocumentRepository) GetByRequest(ctx context.Context, requestID string) (*entity.ServiceDocument, error) {
	return getDoc[entity.ServiceDocument](ctx, r.client.Collection(serviceDocumentsCollection).Doc(requestID), "Service document")
}
