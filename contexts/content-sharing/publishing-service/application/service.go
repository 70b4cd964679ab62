package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

// Service orchestrates account, post, and comment operations: input
// validation, ownership checks, cascade ordering, and change notification.
type Service struct {
	Users    ports.UserRepository
	Posts    ports.PostRepository
	Comments ports.CommentRepository
	Bus      ports.EventBus
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenSource
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) newID(ctx context.Context) (string, error) {
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return "", storageFailure("generate id", err)
	}
	return id, nil
}

func requireIdentity(identity string) error {
	if identity == "" {
		return domainerrors.ErrAuthenticationRequired
	}
	return nil
}

// validateListParams rejects calls that mix the cursor and offset
// pagination modes; they are mutually exclusive per call.
func validateListParams(params ports.ListParams) error {
	if params.After != "" && params.Skip > 0 {
		return domainerrors.ErrInvalidRequest
	}
	if params.Take < 0 || params.Skip < 0 {
		return domainerrors.ErrInvalidRequest
	}
	return nil
}

// storageErr passes expected domain failures through untouched and wraps
// anything else as an operation failure. The raw cause stays inside the
// wrapped error for logs; transports must not forward it to callers.
func storageErr(op string, err error, expected ...error) error {
	for _, want := range expected {
		if errors.Is(err, want) {
			return err
		}
	}
	return storageFailure(op, err)
}

func storageFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domainerrors.ErrOperationFailed, op, err)
}

func (s Service) publish(ctx context.Context, channel string, event ports.EventEnvelope) {
	if s.Bus == nil {
		return
	}
	if err := s.Bus.Publish(ctx, channel, event); err != nil {
		s.logger().Warn("event publish failed",
			"event", "bus_publish_failed",
			"module", "publishing-service",
			"layer", "application",
			"channel", channel,
			"error", err.Error(),
		)
	}
}

func postEvent(mutation ports.MutationType, post entities.Post) ports.EventEnvelope {
	return ports.EventEnvelope{
		Mutation: mutation,
		Entity:   "post",
		Payload: ports.PostPayload{
			ID:        post.ID,
			Title:     post.Title,
			Body:      post.Body,
			Published: post.Published,
			AuthorID:  post.AuthorID,
			UpdatedAt: post.UpdatedAt,
		},
	}
}

func commentEvent(mutation ports.MutationType, comment entities.Comment) ports.EventEnvelope {
	return ports.EventEnvelope{
		Mutation: mutation,
		Entity:   "comment",
		Payload: ports.CommentPayload{
			ID:        comment.ID,
			Text:      comment.Text,
			AuthorID:  comment.AuthorID,
			PostID:    comment.PostID,
			UpdatedAt: comment.UpdatedAt,
		},
	}
}
