package repository

import (
	"context"

	"gmrportal/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, inquiry *entity.ContactInquiry) error
}
