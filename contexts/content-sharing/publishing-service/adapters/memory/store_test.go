package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	store.Seed(
		[]entities.User{
			{ID: "1", Name: "Andrew", Email: "andrew@example.com", Age: 27, PasswordHash: "h1", CreatedAt: at(0), UpdatedAt: at(0)},
			{ID: "2", Name: "Sarah", Email: "sarah@example.com", Age: 28, PasswordHash: "h2", CreatedAt: at(1), UpdatedAt: at(1)},
		},
		[]entities.Post{
			{ID: "1", Title: "Alpha", Body: "first", Published: true, AuthorID: "1", CreatedAt: at(2), UpdatedAt: at(2)},
			{ID: "2", Title: "Beta", Body: "second", Published: false, AuthorID: "2", CreatedAt: at(3), UpdatedAt: at(3)},
			{ID: "3", Title: "Gamma", Body: "third", Published: true, AuthorID: "2", CreatedAt: at(4), UpdatedAt: at(4)},
		},
		[]entities.Comment{
			{ID: "1", Text: "nice", AuthorID: "1", PostID: "1", CreatedAt: at(5), UpdatedAt: at(5)},
			{ID: "2", Text: "draft note", AuthorID: "1", PostID: "2", CreatedAt: at(6), UpdatedAt: at(6)},
		},
	)
	return store
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func postID(p entities.Post) string { return p.ID }
func userID(u entities.User) string { return u.ID }

func TestCreateUserEmailUniqueness(t *testing.T) {
	store := seededStore(t)

	_, err := store.CreateUser(context.Background(), entities.User{
		ID: "3", Name: "Copycat", Email: "Andrew@Example.com", PasswordHash: "h3",
	})
	if !errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
		t.Fatalf("got %v, want email already exists", err)
	}
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	store := seededStore(t)

	user, err := store.GetUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	user.Email = "sarah@example.com"
	if _, err := store.UpdateUser(context.Background(), user); !errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
		t.Fatalf("got %v, want email already exists", err)
	}

	user.Email = "andrew.g@example.com"
	if _, err := store.UpdateUser(context.Background(), user); err != nil {
		t.Fatalf("email change failed: %v", err)
	}
	if _, err := store.GetUserByEmail(context.Background(), "andrew@example.com"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("old email should be released, got %v", err)
	}
	if _, err := store.GetUserByEmail(context.Background(), "andrew.g@example.com"); err != nil {
		t.Fatalf("new email lookup failed: %v", err)
	}
}

func TestSeedReservesIDSequence(t *testing.T) {
	store := seededStore(t)

	id, err := store.NewID(context.Background())
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if id != "4" {
		t.Fatalf("generated id %q, want 4", id)
	}
}

func TestListUsersDefaultSort(t *testing.T) {
	store := seededStore(t)

	users, err := store.ListUsers(context.Background(), ports.UserListFilter{})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if got := ids(users, userID); !(len(got) == 2 && got[0] == "1" && got[1] == "2") {
		t.Fatalf("default name order %v, want [1 2]", got)
	}
}

func TestListUsersQueryFilter(t *testing.T) {
	store := seededStore(t)

	users, err := store.ListUsers(context.Background(), ports.UserListFilter{
		Params: ports.ListParams{Query: "sarah"},
	})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != "2" {
		t.Fatalf("query match %v, want [2]", ids(users, userID))
	}
}

func TestListPostsVisibility(t *testing.T) {
	store := seededStore(t)

	anonymous, err := store.ListPosts(context.Background(), ports.PostListFilter{
		Params: ports.ListParams{SortField: "created_at"},
	})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if got := ids(anonymous, postID); !(len(got) == 2 && got[0] == "1" && got[1] == "3") {
		t.Fatalf("anonymous posts %v, want [1 3]", got)
	}

	owner, err := store.ListPosts(context.Background(), ports.PostListFilter{
		Params: ports.ListParams{SortField: "created_at"},
		Viewer: "2",
	})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if got := ids(owner, postID); len(got) != 3 {
		t.Fatalf("owner posts %v, want all three", got)
	}
}

func TestListPostsDefaultSortNewestFirst(t *testing.T) {
	store := seededStore(t)

	posts, err := store.ListPosts(context.Background(), ports.PostListFilter{Viewer: "2"})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	got := ids(posts, postID)
	if !(len(got) == 3 && got[0] == "3" && got[1] == "2" && got[2] == "1") {
		t.Fatalf("updated_at desc order %v, want [3 2 1]", got)
	}
}

func TestSortTiesBreakByID(t *testing.T) {
	store := NewStore()
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.Seed(nil,
		[]entities.Post{
			{ID: "b", Title: "Same", Published: true, AuthorID: "1", CreatedAt: when, UpdatedAt: when},
			{ID: "a", Title: "Same", Published: true, AuthorID: "1", CreatedAt: when, UpdatedAt: when},
			{ID: "c", Title: "Same", Published: true, AuthorID: "1", CreatedAt: when, UpdatedAt: when},
		}, nil)

	for _, order := range []ports.SortOrder{ports.SortAsc, ports.SortDesc} {
		posts, err := store.ListPosts(context.Background(), ports.PostListFilter{
			Params: ports.ListParams{SortField: "updated_at", SortOrder: order},
		})
		if err != nil {
			t.Fatalf("list posts: %v", err)
		}
		got := ids(posts, postID)
		if !(got[0] == "a" && got[1] == "b" && got[2] == "c") {
			t.Fatalf("order %s: ties %v, want id ascending", order, got)
		}
	}
}

func TestPaginateCursorAndOffset(t *testing.T) {
	store := seededStore(t)
	filter := ports.PostListFilter{
		Params: ports.ListParams{SortField: "created_at", Take: 2},
		Viewer: "2",
	}

	page, err := store.ListPosts(context.Background(), filter)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if got := ids(page, postID); !(len(got) == 2 && got[0] == "1" && got[1] == "2") {
		t.Fatalf("first page %v, want [1 2]", got)
	}

	filter.Params.After = "2"
	page, err = store.ListPosts(context.Background(), filter)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if got := ids(page, postID); !(len(got) == 1 && got[0] == "3") {
		t.Fatalf("cursor page %v, want [3]", got)
	}

	filter.Params.After = ""
	filter.Params.Skip = 2
	page, err = store.ListPosts(context.Background(), filter)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if got := ids(page, postID); !(len(got) == 1 && got[0] == "3") {
		t.Fatalf("offset page %v, want [3]", got)
	}

	filter.Params.Skip = 10
	page, err = store.ListPosts(context.Background(), filter)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("overshoot offset %v, want empty", ids(page, postID))
	}
}

func TestCommentVisibilityFollowsPost(t *testing.T) {
	store := seededStore(t)

	anonymous, err := store.ListComments(context.Background(), ports.CommentListFilter{})
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(anonymous) != 1 || anonymous[0].ID != "1" {
		t.Fatalf("anonymous comments %v, want only the published one", len(anonymous))
	}

	asAuthor, err := store.ListComments(context.Background(), ports.CommentListFilter{Viewer: "1"})
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(asAuthor) != 2 {
		t.Fatalf("author should see own draft comment, got %d", len(asAuthor))
	}
}

func TestGetPostOwned(t *testing.T) {
	store := seededStore(t)

	if _, err := store.GetPostOwned(context.Background(), "1", "2"); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("foreign post: got %v, want post not found", err)
	}
	post, err := store.GetPostOwned(context.Background(), "1", "1")
	if err != nil {
		t.Fatalf("owned post failed: %v", err)
	}
	if post.ID != "1" {
		t.Fatalf("unexpected post %q", post.ID)
	}
}

func TestDeletePostsByAuthor(t *testing.T) {
	store := seededStore(t)

	if err := store.DeletePostsByAuthor(context.Background(), "2"); err != nil {
		t.Fatalf("delete by author: %v", err)
	}
	posts, err := store.ListPosts(context.Background(), ports.PostListFilter{Viewer: "2"})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "1" {
		t.Fatalf("remaining posts %v, want [1]", ids(posts, postID))
	}
}

func TestFreezeNow(t *testing.T) {
	store := NewStore()
	when := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	store.FreezeNow(when)
	if !store.Now().Equal(when) {
		t.Fatalf("frozen clock drifted: %v", store.Now())
	}
}
