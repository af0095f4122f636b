package usecase

import (
	"context"

	"gmrportal/internal/domain/notify"
	"gmrportal/internal/infrastructure/firebase"
)

// IdentityProvider is the subset of the Firebase auth client the use cases need.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (*firebase.TokenPair, error)
	RefreshIDToken(ctx context.Context, refreshToken string) (*firebase.TokenPair, error)
	TestConnection(ctx context.Context) error
}

// EventPublisher fans service request changes out to the owner's subscribers.
type EventPublisher interface {
	Publish(ev notify.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(notify.Event) {}
