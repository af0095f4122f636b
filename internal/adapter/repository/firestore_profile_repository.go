package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
)

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.Role == "" {
		profile.Role = entity.RoleClient
	}

	_, err := r.client.Collection(profilesCollection).Doc(profile.UserID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to create profile", err)
	}
	return nil
}

func (r *firestoreProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return getDoc[entity.Profile](ctx, r.client.Collection(profilesCollection).Doc(userID), "Profile")
}

func (r *firestoreProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*entity.Profile, error) {
	out := make(map[string]*entity.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	seen := make(map[string]bool, len(userIDs))
	refs := make([]*firestore.DocumentRef, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, r.client.Collection(profilesCollection).Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Failed to get profiles", err)
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var p entity.Profile
		if err := doc.DataTo(&p); err != nil {
			return nil, errors.Internal("Failed to parse profile", err)
		}
		out[p.UserID] = &p
	}
	return out, nil
}
