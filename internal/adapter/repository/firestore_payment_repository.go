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

type firestorePaymentRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &firestorePaymentRepository{
		client: client,
	}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	_, err := r.client.Collection(paymentsCollection).Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to create payment record", err)
	}
	return nil
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	return getDoc[entity.Payment](ctx, r.client.Collection(paymentsCollection).Doc(id), "Payment")
}

func (r *firestorePaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	payment.UpdatedAt = time.Now()

	_, err := r.client.Collection(paymentsCollection).Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to update payment record", err)
	}
	return nil
}

func (r *firestorePaymentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Payment, error) {
	payments, err := collect[entity.Payment](
		r.client.Collection(paymentsCollection).Where("userId", "==", userID).Documents(ctx),
		"payments",
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}
