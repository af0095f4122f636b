package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamCompletionForwardsTurns(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	client := NewLLMGatewayClient(srv.URL, "key", "google/gemini-3-flash-preview")
	body, err := client.StreamCompletion(context.Background(), []ChatTurn{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "data: [DONE]\n\n", string(raw))
	assert.True(t, got.Stream)
	assert.Equal(t, "google/gemini-3-flash-preview", got.Model)
	assert.Len(t, got.Messages, 2)
}

func TestStreamCompletionStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewLLMGatewayClient(srv.URL, "key", "m")
	_, err := client.StreamCompletion(context.Background(), []ChatTurn{{Role: "user", Content: "hi"}})

	var statusErr *GatewayStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}
