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
	"gmrportal/pkg/logger"
)

type firestoreServiceRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreServiceRequestRepository(client *firestore.Client) repository.ServiceRequestRepository {
	return &firestoreServiceRequestRepository{
		client: client,
	}
}

func (r *firestoreServiceRequestRepository) col() *firestore.CollectionRef {
	return r.client.Collection(serviceRequestsCollection)
}

func (r *firestoreServiceRequestRepository) CreateIfNoActive(ctx context.Context, req *entity.ServiceRequest) (*entity.ServiceRequest, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	var existing *entity.ServiceRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// the closure may be retried
		existing = nil

		query := r.col().
			Where("userId", "==", req.UserID).
			Where("serviceId", "==", req.ServiceID).
			Where("status", "in", activeStatusValues())
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			var sr entity.ServiceRequest
			if err := doc.DataTo(&sr); err != nil {
				return err
			}
			sr.Status = sr.Status.Normalize()
			if sr.Status.Active() {
				existing = &sr
				return nil
			}
		}

		return tx.Create(r.col().Doc(req.ID), req)
	})
	if err != nil {
		return nil, errors.Internal("Failed to create service request", err)
	}

	if existing != nil {
		logger.Debug("Service request for user %s and service %s already active: %s", req.UserID, req.ServiceID, existing.ID)
	}
	return existing, nil
}

// activeStatusValues includes legacy spellings so old rows still block duplicates.
func activeStatusValues() []string {
	statuses := entity.ActiveStatuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}

func (r *firestoreServiceRequestRepository) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	sr, err := getDoc[entity.ServiceRequest](ctx, r.col().Doc(id), "Service request")
	if err != nil {
		return nil, err
	}
	sr.Status = sr.Status.Normalize()
	return sr, nil
}

func (r *firestoreServiceRequestRepository) Update(ctx context.Context, req *entity.ServiceRequest) error {
	req.UpdatedAt = time.Now()

	_, err := r.col().Doc(req.ID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(req.Status)},
		{Path: "progress", Value: req.Progress},
		{Path: "notes", Value: req.Notes},
		{Path: "amount", Value: req.Amount},
		{Path: "documentUrl", Value: req.DocumentURL},
		{Path: "assignedCa", Value: req.AssignedCA},
		{Path: "updatedAt", Value: req.UpdatedAt},
	})
	if err != nil {
		return errors.Internal("Failed to update service request", err)
	}
	return nil
}

func (r *firestoreServiceRequestRepository) ListByUser(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	return r.list(r.col().Where("userId", "==", userID).Documents(ctx))
}

func (r *firestoreServiceRequestRepository) ListByUserAndService(ctx context.Context, userID, serviceID string) ([]*entity.ServiceRequest, error) {
	return r.list(r.col().
		Where("userId", "==", userID).
		Where("serviceId", "==", serviceID).
		Documents(ctx))
}

func (r *firestoreServiceRequestRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.ServiceRequest, error) {
	items, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *firestoreServiceRequestRepository) ListAll(ctx context.Context, statuses []entity.RequestStatus) ([]*entity.ServiceRequest, error) {
	query := r.col().Query
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		query = query.Where("status", "in", values)
	}
	return r.list(query.Documents(ctx))
}

// list sorts in memory, newest first, so the user-scoped queries need no
// composite index.
func (r *firestoreServiceRequestRepository) list(iter *firestore.DocumentIterator) ([]*entity.ServiceRequest, error) {
	items, err := collect[entity.ServiceRequest](iter, "service requests")
	if err != nil {
		return nil, err
	}
	for _, sr := range items {
		sr.Status = sr.Status.Normalize()
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
