package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
)

type firestoreContactRepository struct {
	client *firestore.Client
}

func NewFirestoreContactRepository(client *firestore.Client) repository.ContactRepository {
	return &firestoreContactRepository{client: client}
}

func (r *firestoreContactRepository) Create(ctx context.Context, inquiry *entity.ContactInquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = uuid.New().String()
	}
	inquiry.CreatedAt = time.Now()

	if _, err := r.client.Collection(contactCollection).Doc(inquiry.ID).Set(ctx, inquiry); err != nil {
		return errors.Internal("Failed to save inquiry", err)
	}
	return nil
}
