package ports

import (
	"context"
	"time"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PasswordHasher is a one-way hash of account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// TokenSource issues and verifies the signed bearer credential whose
// subject is an account id.
type TokenSource interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams is the shared filter/sort/pagination shape for list reads.
// After (cursor) and Skip (offset) are mutually exclusive: a cursor starts
// immediately after the record with that id under the effective ordering.
type ListParams struct {
	Query     string
	SortField string
	SortOrder SortOrder
	Take      int
	Skip      int
	After     string
}

type UserListFilter struct {
	Params ListParams
}

// PostListFilter scopes a post list. Viewer is the resolved identity ("" for
// anonymous): unpublished posts are returned only when authored by Viewer.
// AuthorID, when set, restricts the list to one author.
type PostListFilter struct {
	Params   ListParams
	AuthorID string
	Viewer   string
}

// CommentListFilter scopes a comment list. A comment is visible when its
// post is published, or the Viewer authored the comment or the post.
type CommentListFilter struct {
	Params ListParams
	PostID string
	Viewer string
}

type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
	GetUser(ctx context.Context, id string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	ListUsers(ctx context.Context, filter UserListFilter) ([]entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) (entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type PostRepository interface {
	CreatePost(ctx context.Context, post entities.Post) (entities.Post, error)
	GetPost(ctx context.Context, id string) (entities.Post, error)
	GetPostOwned(ctx context.Context, id string, authorID string) (entities.Post, error)
	ListPosts(ctx context.Context, filter PostListFilter) ([]entities.Post, error)
	ListPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	UpdatePost(ctx context.Context, post entities.Post) (entities.Post, error)
	DeletePost(ctx context.Context, id string) error
	DeletePostsByAuthor(ctx context.Context, authorID string) error
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment entities.Comment) (entities.Comment, error)
	GetComment(ctx context.Context, id string) (entities.Comment, error)
	GetCommentOwned(ctx context.Context, id string, authorID string) (entities.Comment, error)
	ListComments(ctx context.Context, filter CommentListFilter) ([]entities.Comment, error)
	UpdateComment(ctx context.Context, comment entities.Comment) (entities.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentsByAuthor(ctx context.Context, authorID string) error
	DeleteCommentsByPosts(ctx context.Context, postIDs []string) error
}

type MutationType string

const (
	MutationCreated MutationType = "CREATED"
	MutationUpdated MutationType = "UPDATED"
	MutationDeleted MutationType = "DELETED"
)

// EventEnvelope is the change notification pushed to live subscribers.
type EventEnvelope struct {
	Mutation MutationType `json:"mutation"`
	Entity   string       `json:"entity"`
	Payload  any          `json:"data"`
}

type PostPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentPayload struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	PostID    string    `json:"post_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Channel names addressed on the event bus.
const PostChannel = "post"

func CommentChannel(postID string) string { return "comment:" + postID }

func MyPostChannel(userID string) string { return "myPost:" + userID }

// Subscription is a live, single-consumer sequence of envelopes. Close
// unregisters the consumer from its channel and is safe to call twice.
type Subscription interface {
	Events() <-chan EventEnvelope
	Close()
}

type EventBus interface {
	Publish(ctx context.Context, channel string, event EventEnvelope) error
	Subscribe(ctx context.Context, channel string) Subscription
}
