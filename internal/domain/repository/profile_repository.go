package repository

import (
	"context"

	"gmrportal/internal/domain/entity"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*entity.Profile, error)
}
