package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmrportal/internal/domain/chat"
	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/service"
	"gmrportal/pkg/errors"
)

type fakeCompletion struct {
	body   string
	reader io.Reader
	err    error
	turns  []service.ChatTurn
}

func (f *fakeCompletion) StreamCompletion(_ context.Context, turns []service.ChatTurn) (io.ReadCloser, error) {
	f.turns = turns
	if f.err != nil {
		return nil, f.err
	}
	if f.reader != nil {
		return io.NopCloser(f.reader), nil
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

// brokenBody yields its prefix once and then fails like a dropped upstream connection.
type brokenBody struct {
	prefix string
	sent   bool
}

func (b *brokenBody) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, b.prefix), nil
	}
	return 0, io.ErrUnexpectedEOF
}

const streamBody = ": keepalive\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"Try \"}}]}\n\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"[SERVICE:tax]\"}}]}\n\n" +
	"data: [DONE]\n\n"

func TestOpenStreamValidatesHistory(t *testing.T) {
	uc := NewChatUseCase(newMemConversations(), &fakeCompletion{})
	ctx := context.Background()

	_, err := uc.OpenStream(ctx, StreamInput{})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.OpenStream(ctx, StreamInput{Messages: []service.ChatTurn{{Role: "system", Content: "x"}}})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.OpenStream(ctx, StreamInput{Messages: []service.ChatTurn{{Role: "user", Content: "  "}}})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestOpenStreamMapsGatewayErrors(t *testing.T) {
	cases := []struct {
		status  int
		code    string
		message string
	}{
		{http.StatusTooManyRequests, errors.CodeTooManyRequests, "Rate limit exceeded. Please try again shortly."},
		{http.StatusPaymentRequired, errors.CodePaymentRequired, "AI credits exhausted. Please try again later."},
		{http.StatusInternalServerError, errors.CodeInternal, "AI service temporarily unavailable."},
	}

	for _, tc := range cases {
		gw := &fakeCompletion{err: &service.GatewayStatusError{StatusCode: tc.status}}
		uc := NewChatUseCase(newMemConversations(), gw)

		_, err := uc.OpenStream(context.Background(), StreamInput{Messages: []service.ChatTurn{{Role: "user", Content: "hi"}}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, tc.code), tc.status)
		assert.Equal(t, tc.message, err.(*errors.AppError).Message)
	}

	uc := NewChatUseCase(newMemConversations(), &fakeCompletion{err: fmt.Errorf("dial tcp: refused")})
	_, err := uc.OpenStream(context.Background(), StreamInput{Messages: []service.ChatTurn{{Role: "user", Content: "hi"}}})
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestStreamRelaysAndPersists(t *testing.T) {
	convs := newMemConversations()
	gw := &fakeCompletion{body: streamBody}
	uc := NewChatUseCase(convs, gw)
	ctx := context.Background()

	conv, err := uc.CreateConversation(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "AI Assistant Chat", conv.Title)

	stream, err := uc.OpenStream(ctx, StreamInput{
		UserID:         "client-1",
		ConversationID: conv.ID,
		Messages: []service.ChatTurn{
			{Role: "user", Content: "I need ITR help"},
		},
	})
	require.NoError(t, err)

	require.Len(t, gw.turns, 2)
	assert.Equal(t, "system", gw.turns[0].Role)
	assert.Equal(t, chat.SystemPrompt, gw.turns[0].Content)

	var out bytes.Buffer
	flushes := 0
	content, err := stream.Relay(&out, func() { flushes++ })
	require.NoError(t, err)
	assert.Equal(t, "Try [SERVICE:tax]", content)
	assert.Equal(t, streamBody, out.String())
	assert.Positive(t, flushes)

	msgs, err := uc.GetMessages(ctx, "client-1", conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.ChatRoleUser, msgs[0].Role)
	assert.Equal(t, entity.ChatRoleAssistant, msgs[1].Role)
	assert.Equal(t, []chat.Segment{
		{Kind: chat.SegmentText, Text: "Try "},
		{Kind: chat.SegmentService, ServiceID: "tax", Href: "/services/tax"},
	}, msgs[1].Segments)
}

func TestAnonymousStreamIsNotPersisted(t *testing.T) {
	convs := newMemConversations()
	uc := NewChatUseCase(convs, &fakeCompletion{body: streamBody})

	stream, err := uc.OpenStream(context.Background(), StreamInput{
		ConversationID: "whatever",
		Messages:       []service.ChatTurn{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	_, err = stream.Relay(io.Discard, nil)
	require.NoError(t, err)
	assert.Empty(t, convs.msgs)
}

func TestStreamRejectsForeignConversation(t *testing.T) {
	convs := newMemConversations()
	uc := NewChatUseCase(convs, &fakeCompletion{body: streamBody})
	conv, _ := uc.CreateConversation(context.Background(), "client-1")

	_, err := uc.OpenStream(context.Background(), StreamInput{
		UserID:         "client-2",
		ConversationID: conv.ID,
		Messages:       []service.ChatTurn{{Role: "user", Content: "hi"}},
	})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Empty(t, convs.msgs)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("client went away") }

func TestRelayReportsWriteFailure(t *testing.T) {
	uc := NewChatUseCase(newMemConversations(), &fakeCompletion{body: streamBody})
	stream, err := uc.OpenStream(context.Background(), StreamInput{Messages: []service.ChatTurn{{Role: "user", Content: "hi"}}})
	require.NoError(t, err)

	_, err = stream.Relay(failingWriter{}, nil)
	assert.Error(t, err)
}

func TestRelayEndsBrokenUpstreamWithErrorEvent(t *testing.T) {
	convs := newMemConversations()
	body := &brokenBody{prefix: "data: {\"choices\":[{\"delta\":{\"content\":\"Try \"}}]}\n\ndata: {\"cho"}
	uc := NewChatUseCase(convs, &fakeCompletion{reader: body})
	stream, err := uc.OpenStream(context.Background(), StreamInput{Messages: []service.ChatTurn{{Role: "user", Content: "hi"}}})
	require.NoError(t, err)

	var out bytes.Buffer
	flushes := 0
	content, err := stream.Relay(&out, func() { flushes++ })
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "Try ", content)
	assert.Equal(t, 2, flushes)

	events := strings.Split(strings.TrimSpace(out.String()), "\n\n")
	lastEvent := strings.TrimSpace(events[len(events)-1])
	assert.Equal(t, `data: {"choices":[{"delta":{"content":"Sorry, the response was interrupted. Please try again."}}]}`, lastEvent)
	assert.Equal(t, 1, strings.Count(out.String(), "Please try again."))
}

func TestRelayWriteFailureSendsNoErrorEvent(t *testing.T) {
	uc := NewChatUseCase(newMemConversations(), &fakeCompletion{reader: &brokenBody{prefix: streamBody}})
	stream, err := uc.OpenStream(context.Background(), StreamInput{Messages: []service.ChatTurn{{Role: "user", Content: "hi"}}})
	require.NoError(t, err)

	w := &countingFailWriter{}
	_, err = stream.Relay(w, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, w.calls)
}

type countingFailWriter struct{ calls int }

func (w *countingFailWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, fmt.Errorf("client gone")
}

func TestDeleteConversation(t *testing.T) {
	convs := newMemConversations()
	uc := NewChatUseCase(convs, &fakeCompletion{})
	ctx := context.Background()
	conv, _ := uc.CreateConversation(ctx, "client-1")

	assert.True(t, errors.Is(uc.DeleteConversation(ctx, "client-2", conv.ID), errors.CodeNotFound))
	require.NoError(t, uc.DeleteConversation(ctx, "client-1", conv.ID))

	list, _ := uc.ListConversations(ctx, "client-1")
	assert.Empty(t, list)
}
