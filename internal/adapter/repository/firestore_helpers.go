package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gmrportal/pkg/errors"
)

const (
	profilesCollection         = "profiles"
	serviceRequestsCollection  = "service_requests"
	clientDocumentsCollection  = "client_documents"
	serviceDocumentsCollection = "service_documents"
	paymentsCollection         = "payments"
	conversationsCollection    = "chat_conversations"
	messagesSubcollection      = "messages"
	contactCollection          = "contact_inquiries"
)

func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound(resource, err)
		}
		return nil, errors.Internal("Failed to get "+resource, err)
	}

	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, errors.Internal("Failed to parse "+resource, err)
	}
	return &v, nil
}

func collect[T any](iter *firestore.DocumentIterator, resource string) ([]*T, error) {
	defer iter.Stop()

	out := []*T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list "+resource, err)
		}

		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, errors.Internal("Failed to parse "+resource, err)
		}
		out = append(out, &v)
	}
	return out, nil
}
