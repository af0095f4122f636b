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

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(conversationsCollection).Doc(id)
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	if _, err := r.doc(conv.ID).Set(ctx, conv); err != nil {
		return errors.Internal("Failed to create conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	return getDoc[entity.Conversation](ctx, r.doc(id), "Conversation")
}

func (r *firestoreConversationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	convs, err := collect[entity.Conversation](
		r.client.Collection(conversationsCollection).Where("userId", "==", userID).Documents(ctx),
		"conversations",
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

func (r *firestoreConversationRepository) Touch(ctx context.Context, id string) error {
	_, err := r.doc(id).Update(ctx, []firestore.Update{{Path: "updatedAt", Value: time.Now()}})
	if err != nil {
		return errors.Internal("Failed to update conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) Delete(ctx context.Context, id string) error {
	refs, err := r.doc(id).Collection(messagesSubcollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list conversation messages", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, ref := range refs {
		if _, err := bw.Delete(ref); err != nil {
			bw.End()
			return errors.Internal("Failed to delete conversation messages", err)
		}
	}
	if _, err := bw.Delete(r.doc(id)); err != nil {
		bw.End()
		return errors.Internal("Failed to delete conversation", err)
	}
	bw.End()
	return nil
}

func (r *firestoreConversationRepository) AddMessage(ctx context.Context, msg *entity.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := r.doc(msg.ConversationID).Collection(messagesSubcollection).Doc(msg.ID).Set(ctx, msg)
	if err != nil {
		return errors.Internal("Failed to save message", err)
	}
	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]*entity.ChatMessage, error) {
	query := r.doc(conversationID).Collection(messagesSubcollection).OrderBy("createdAt", firestore.Asc)
	return collect[entity.ChatMessage](query.Documents(ctx), "messages")
}
