package application

import (
	"context"
	"errors"
	"testing"

	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

func TestCreateComment(t *testing.T) {
	service, store, bus := newTestService(t)
	seedFixture(t, service, store)

	comment, err := service.CreateComment(context.Background(), "2", CreateCommentInput{
		PostID: "1",
		Text:   "Well said",
	})
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if comment.AuthorID != "2" || comment.PostID != "1" {
		t.Fatalf("unexpected comment %+v", comment)
	}
	if !equalIDs(bus.channels(), []string{ports.CommentChannel("1")}) {
		t.Fatalf("comment channels %v", bus.channels())
	}
}

func TestCreateCommentOnDraftRejectedWithoutPersisting(t *testing.T) {
	service, store, bus := newTestService(t)
	seedFixture(t, service, store)

	_, err := service.CreateComment(context.Background(), "2", CreateCommentInput{
		PostID: "2",
		Text:   "Sneaky",
	})
	if !errors.Is(err, domainerrors.ErrPostNotPublished) {
		t.Fatalf("got %v, want post not published", err)
	}
	if len(bus.recorded()) != 0 {
		t.Fatalf("no events expected, got %v", bus.channels())
	}

	comments, err := service.ListComments(context.Background(), ports.ListParams{}, "2", "2")
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if !equalIDs(commentIDs(comments), []string{"2"}) {
		t.Fatalf("post 2 comments %v, want just the fixture comment", commentIDs(comments))
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	service, store, _ := newTestService(t)
	seedFixture(t, service, store)

	_, err := service.CreateComment(context.Background(), "1", CreateCommentInput{
		PostID: "99",
		Text:   "Hello?",
	})
	if !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("got %v, want post not found", err)
	}
}

func TestGetCommentVisibility(t *testing.T) {
	service, store, _ := newTestService(t)
	seedFixture(t, service, store)

	// Comment "2" sits on the unpublished post "2".
	if _, err := service.GetComment(context.Background(), "2", ""); !errors.Is(err, domainerrors.ErrCommentNotFound) {
		t.Fatalf("anonymous read on draft comment: got %v, want comment not found", err)
	}
	if _, err := service.GetComment(context.Background(), "2", "1"); err != nil {
		t.Fatalf("comment author read failed: %v", err)
	}
	if _, err := service.GetComment(context.Background(), "2", "2"); err != nil {
		t.Fatalf("post owner read failed: %v", err)
	}
	if _, err := service.GetComment(context.Background(), "1", ""); err != nil {
		t.Fatalf("anonymous read on published comment failed: %v", err)
	}
}

func TestListCommentsVisibility(t *testing.T) {
	service, store, _ := newTestService(t)
	seedFixture(t, service, store)

	anonymous, err := service.ListComments(context.Background(), ports.ListParams{
		SortField: "created_at",
		SortOrder: ports.SortAsc,
	}, "", "")
	if err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
	if !equalIDs(commentIDs(anonymous), []string{"1", "3", "4"}) {
		t.Fatalf("anonymous comments %v, want [1 3 4]", commentIDs(anonymous))
	}

	asAuthor, err := service.ListComments(context.Background(), ports.ListParams{
		SortField: "created_at",
		SortOrder: ports.SortAsc,
	}, "", "1")
	if err != nil {
		t.Fatalf("author list failed: %v", err)
	}
	if !equalIDs(commentIDs(asAuthor), []string{"1", "2", "3", "4"}) {
		t.Fatalf("author comments %v, want [1 2 3 4]", commentIDs(asAuthor))
	}
}

func TestUpdateCommentOwnership(t *testing.T) {
	service, store, bus := newTestService(t)
	seedFixture(t, service, store)

	text := "Edited"
	if _, err := service.UpdateComment(context.Background(), "2", "1", UpdateCommentInput{Text: &text}); !errors.Is(err, domainerrors.ErrCommentNotFound) {
		t.Fatalf("non-owner update: got %v, want comment not found", err)
	}

	updated, err := service.UpdateComment(context.Background(), "1", "1", UpdateCommentInput{Text: &text})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Text != "Edited" {
		t.Fatalf("text %q not applied", updated.Text)
	}
	if !equalIDs(bus.channels(), []string{ports.CommentChannel("1")}) {
		t.Fatalf("update channels %v", bus.channels())
	}
}

func TestDeleteComment(t *testing.T) {
	service, store, bus := newTestService(t)
	seedFixture(t, service, store)

	deleted, err := service.DeleteComment(context.Background(), "2", "3")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != "3" {
		t.Fatalf("unexpected deleted comment %q", deleted.ID)
	}
	if !equalIDs(bus.channels(), []string{ports.CommentChannel("3")}) {
		t.Fatalf("delete channels %v", bus.channels())
	}

	if _, err := service.GetComment(context.Background(), "3", "2"); !errors.Is(err, domainerrors.ErrCommentNotFound) {
		t.Fatalf("comment should be gone, got %v", err)
	}
}
