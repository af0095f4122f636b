package repository

import (
	"context"

	"gmrportal/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Payment, error)
}
