package repository

import (
	"context"

	"gmrportal/internal/domain/entity"
)

type ServiceRequestRepository interface {
	// CreateIfNoActive inserts req unless the owner already has an active
	// request for the same service, in which case that request is returned
	// and nothing is written.
	CreateIfNoActive(ctx context.Context, req *entity.ServiceRequest) (existing *entity.ServiceRequest, err error)
	GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error)
	Update(ctx context.Context, req *entity.ServiceRequest) error
	ListByUser(ctx context.Context, userID string) ([]*entity.ServiceRequest, error)
	ListByUserAndService(ctx context.Context, userID, serviceID string) ([]*entity.ServiceRequest, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.ServiceRequest, error)
	// ListAll returns every request newest first, optionally restricted to
	// the given stored status values.
	ListAll(ctx context.Context, statuses []entity.RequestStatus) ([]*entity.ServiceRequest, error)
}
