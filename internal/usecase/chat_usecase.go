package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gmrportal/internal/domain/chat"
	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/internal/domain/service"
	"gmrportal/internal/infrastructure/sse"
	"gmrportal/internal/infrastructure/telemetry"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
)

const persistTimeout = 10 * time.Second

type ChatUseCase struct {
	convRepo repository.ConversationRepository
	gateway  service.CompletionGateway
	tracer   trace.Tracer
}

func NewChatUseCase(convRepo repository.ConversationRepository, gateway service.CompletionGateway) *ChatUseCase {
	return &ChatUseCase{
		convRepo: convRepo,
		gateway:  gateway,
		tracer:   telemetry.Tracer(),
	}
}

func (uc *ChatUseCase) QuickOptions() []string {
	return chat.QuickOptions()
}

func (uc *ChatUseCase) CreateConversation(ctx context.Context, uid string) (*entity.Conversation, error) {
	conv := &entity.Conversation{
		ID:     uuid.New().String(),
		UserID: uid,
		Title:  chat.ConversationTitle,
	}
	if err := uc.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, uid string) ([]*entity.Conversation, error) {
	return uc.convRepo.ListByUser(ctx, uid)
}

func (uc *ChatUseCase) owned(ctx context.Context, uid, convID string) (*entity.Conversation, error) {
	conv, err := uc.convRepo.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != uid {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conv, nil
}

type MessageView struct {
	*entity.ChatMessage
	Segments []chat.Segment `json:"segments"`
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, uid, convID string) ([]MessageView, error) {
	if _, err := uc.owned(ctx, uid, convID); err != nil {
		return nil, err
	}

	msgs, err := uc.convRepo.ListMessages(ctx, convID)
	if err != nil {
		return nil, err
	}

	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		segments := []chat.Segment{{Kind: chat.SegmentText, Text: m.Content}}
		if m.Role == entity.ChatRoleAssistant {
			segments = chat.ParseSegments(m.Content)
		}
		out = append(out, MessageView{ChatMessage: m, Segments: segments})
	}
	return out, nil
}

func (uc *ChatUseCase) DeleteConversation(ctx context.Context, uid, convID string) error {
	if _, err := uc.owned(ctx, uid, convID); err != nil {
		return err
	}
	return uc.convRepo.Delete(ctx, convID)
}

type StreamInput struct {
	UserID         string
	ConversationID string
	Messages       []service.ChatTurn
}

// ChatStream is an open completion. Relay must be called exactly once.
type ChatStream struct {
	body    io.ReadCloser
	decoder *sse.Decoder
	span    trace.Span
	save    func(content string)
}

// OpenStream validates the history, records the newest user turn when the
// caller owns the conversation and opens the upstream stream. Cancelling
// ctx aborts the upstream request.
func (uc *ChatUseCase) OpenStream(ctx context.Context, in StreamInput) (*ChatStream, error) {
	if len(in.Messages) == 0 {
		return nil, errors.BadRequest("Messages are required", nil)
	}
	for _, m := range in.Messages {
		role := entity.ChatRole(m.Role)
		if role != entity.ChatRoleUser && role != entity.ChatRoleAssistant {
			return nil, errors.BadRequest("Message role must be user or assistant", nil)
		}
		if strings.TrimSpace(m.Content) == "" {
			return nil, errors.BadRequest("Message content is required", nil)
		}
	}

	ctx, span := uc.tracer.Start(ctx, "chat.stream", trace.WithAttributes(
		attribute.Int("chat.history_length", len(in.Messages)),
		attribute.Bool("chat.authenticated", in.UserID != ""),
	))

	persist := in.UserID != "" && in.ConversationID != ""
	if persist {
		span.SetAttributes(attribute.String("chat.conversation_id", in.ConversationID))
		if _, err := uc.owned(ctx, in.UserID, in.ConversationID); err != nil {
			span.End()
			return nil, err
		}
		last := in.Messages[len(in.Messages)-1]
		if last.Role == string(entity.ChatRoleUser) {
			if err := uc.addMessage(ctx, in.ConversationID, entity.ChatRoleUser, last.Content); err != nil {
				// keep chatting even if history could not be written
				logger.Warn("Failed to save user message for conversation %s: %v", in.ConversationID, err)
			}
		}
	}

	turns := make([]service.ChatTurn, 0, len(in.Messages)+1)
	turns = append(turns, service.ChatTurn{Role: string(entity.ChatRoleSystem), Content: chat.SystemPrompt})
	turns = append(turns, in.Messages...)

	body, err := uc.gateway.StreamCompletion(ctx, turns)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway error")
		span.End()
		return nil, mapGatewayError(err)
	}

	stream := &ChatStream{
		body:    body,
		decoder: sse.NewDecoder(),
		span:    span,
		save:    func(string) {},
	}
	if persist {
		convID := in.ConversationID
		stream.save = func(content string) {
			// the request may already be gone; history is still written
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
			defer cancel()
			if err := uc.addMessage(saveCtx, convID, entity.ChatRoleAssistant, content); err != nil {
				logger.Error("Failed to save assistant message for conversation %s: %v", convID, err)
			}
		}
	}
	return stream, nil
}

func (uc *ChatUseCase) addMessage(ctx context.Context, convID string, role entity.ChatRole, content string) error {
	if err := uc.convRepo.AddMessage(ctx, &entity.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: convID,
		Role:           role,
		Content:        content,
	}); err != nil {
		return err
	}
	return uc.convRepo.Touch(ctx, convID)
}

func mapGatewayError(err error) error {
	var statusErr *service.GatewayStatusError
	if stderrors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			return errors.TooManyRequests("Rate limit exceeded. Please try again shortly.")
		case http.StatusPaymentRequired:
			return errors.PaymentRequired("AI credits exhausted. Please try again later.")
		}
	}
	return errors.Internal("AI service temporarily unavailable.", err)
}

// Relay copies the raw event stream to w while decoding it. flush is called
// after every chunk. The decoded assistant text is returned and, for a
// persisted conversation, saved once the stream ends.
func (s *ChatStream) Relay(w io.Writer, flush func()) (string, error) {
	defer s.span.End()
	defer s.body.Close()

	src := io.TeeReader(s.body, s.decoder)
	buf := make([]byte, 4096)
	var relayed int64
	var relayErr error
	var last byte

	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				relayErr = werr
				break
			}
			relayed += int64(n)
			last = buf[n-1]
			if flush != nil {
				flush()
			}
			if s.decoder.Done() {
				break
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			relayErr = err
			logger.Warn("Upstream chat stream failed after %d bytes: %v", relayed, err)
			writeInterruption(w, relayed > 0 && last != '\n')
			if flush != nil {
				flush()
			}
			break
		}
	}

	content := s.decoder.Content()
	s.span.SetAttributes(
		attribute.Int64("chat.bytes_relayed", relayed),
		attribute.Int("chat.content_length", len(content)),
		attribute.Bool("chat.done", s.decoder.Done()),
	)
	if relayErr != nil {
		s.span.RecordError(relayErr)
		s.span.SetStatus(codes.Error, "relay interrupted")
	}

	if content != "" {
		s.save(content)
	}
	return content, relayErr
}

const interruptionMessage = "Sorry, the response was interrupted. Please try again."

// writeInterruption closes a broken upstream stream with one assistant delta
// so the client renders an error instead of a silently truncated reply.
func writeInterruption(w io.Writer, midLine bool) {
	payload, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"delta": map[string]string{"content": interruptionMessage}},
		},
	})
	var b strings.Builder
	if midLine {
		b.WriteString("\n")
	}
	b.WriteString("\ndata: ")
	b.Write(payload)
	b.WriteString("\n\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		logger.Debug("Could not deliver interruption event: %v", err)
	}
}
