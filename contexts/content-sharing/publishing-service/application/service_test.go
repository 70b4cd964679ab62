package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"plume/contexts/content-sharing/publishing-service/adapters/hash"
	"plume/contexts/content-sharing/publishing-service/adapters/memory"
	"plume/contexts/content-sharing/publishing-service/adapters/token"
	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

type recordedEvent struct {
	Channel string
	Event   ports.EventEnvelope
}

// captureBus records every publish so tests can assert on channel routing
// without running a live bus.
type captureBus struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *captureBus) Publish(_ context.Context, channel string, event ports.EventEnvelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Channel: channel, Event: event})
	return nil
}

func (b *captureBus) Subscribe(_ context.Context, _ string) ports.Subscription {
	return stubSubscription{events: make(chan ports.EventEnvelope)}
}

func (b *captureBus) recorded() []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]recordedEvent, len(b.events))
	copy(out, b.events)
	return out
}

func (b *captureBus) channels() []string {
	var out []string
	for _, e := range b.recorded() {
		out = append(out, e.Channel)
	}
	return out
}

type stubSubscription struct {
	events chan ports.EventEnvelope
}

func (s stubSubscription) Events() <-chan ports.EventEnvelope { return s.events }
func (s stubSubscription) Close()                             {}

func newTestService(t *testing.T) (Service, *memory.Store, *captureBus) {
	t.Helper()
	store := memory.NewStore()
	bus := &captureBus{}
	service := Service{
		Users:    store,
		Posts:    store,
		Comments: store,
		Bus:      bus,
		Hasher:   hash.Bcrypt{Cost: hash.MinCost},
		Tokens:   token.NewJWT([]byte("test-secret"), time.Hour),
		Clock:    store,
		IDGen:    store,
	}
	return service, store, bus
}

// seedFixture loads the canonical two-account dataset: post "1" is
// published by account "1", posts "2" (unpublished) and "3" (published)
// belong to account "2", comment "1" sits on post "1" and the rest sit on
// account "2"'s posts.
func seedFixture(t *testing.T, service Service, store *memory.Store) {
	t.Helper()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.FreezeNow(base)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	hashOf := func(password string) string {
		h, err := service.Hasher.Hash(password)
		if err != nil {
			t.Fatalf("hash fixture password: %v", err)
		}
		return h
	}

	store.Seed(
		[]entities.User{
			{ID: "1", Name: "Andrew", Email: "andrew@example.com", Age: 27, PasswordHash: hashOf("Red98!@#$%^"), CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: "2", Name: "Sarah", Email: "sarah@example.com", Age: 28, PasswordHash: hashOf("Blue6789!"), CreatedAt: at(1), UpdatedAt: at(1)},
		},
		[]entities.Post{
			{ID: "1", Title: "Post 1", Body: "first body", Published: true, AuthorID: "1", CreatedAt: at(2), UpdatedAt: at(2)},
			{ID: "2", Title: "Post 2", Body: "second body", Published: false, AuthorID: "2", CreatedAt: at(3), UpdatedAt: at(3)},
			{ID: "3", Title: "Post 3", Body: "third body", Published: true, AuthorID: "2", CreatedAt: at(4), UpdatedAt: at(4)},
		},
		[]entities.Comment{
			{ID: "1", Text: "Great post", AuthorID: "1", PostID: "1", CreatedAt: at(5), UpdatedAt: at(5)},
			{ID: "2", Text: "Early draft note", AuthorID: "1", PostID: "2", CreatedAt: at(6), UpdatedAt: at(6)},
			{ID: "3", Text: "Nice work", AuthorID: "2", PostID: "3", CreatedAt: at(7), UpdatedAt: at(7)},
			{ID: "4", Text: "Agreed", AuthorID: "2", PostID: "3", CreatedAt: at(8), UpdatedAt: at(8)},
		},
	)
}

func postIDs(posts []entities.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func commentIDs(comments []entities.Comment) []string {
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestValidateListParams(t *testing.T) {
	if err := validateListParams(ports.ListParams{After: "3", Skip: 2}); err != domainerrors.ErrInvalidRequest {
		t.Fatalf("cursor plus offset should be rejected, got %v", err)
	}
	if err := validateListParams(ports.ListParams{Take: -1}); err != domainerrors.ErrInvalidRequest {
		t.Fatalf("negative take should be rejected, got %v", err)
	}
	if err := validateListParams(ports.ListParams{After: "3", Take: 5}); err != nil {
		t.Fatalf("cursor alone should pass, got %v", err)
	}
}
