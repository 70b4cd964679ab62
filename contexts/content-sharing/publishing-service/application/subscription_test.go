package application

import (
	"context"
	"errors"
	"testing"

	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
)

func TestSubscribeCommentsUnknownPost(t *testing.T) {
	service, store, _ := newTestService(t)
	seedFixture(t, service, store)

	if _, err := service.SubscribeComments(context.Background(), "99"); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("got %v, want post not found", err)
	}
}

func TestSubscribeCommentsDraftPostStillAllowed(t *testing.T) {
	service, store, _ := newTestService(t)
	seedFixture(t, service, store)

	sub, err := service.SubscribeComments(context.Background(), "2")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()
}

func TestSubscribeMyPostsRequiresIdentity(t *testing.T) {
	service, store, _ := newTestService(t)
	seedFixture(t, service, store)

	if _, err := service.SubscribeMyPosts(context.Background(), ""); !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
		t.Fatalf("got %v, want authentication required", err)
	}

	sub, err := service.SubscribeMyPosts(context.Background(), "1")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()
}
