package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

// Store is the in-memory durable-store adapter. It backs the in-memory
// module wiring and the application tests.
type Store struct {
	mu sync.RWMutex

	usersByID      map[string]entities.User
	userIDByEmail  map[string]string
	postsByID      map[string]entities.Post
	commentsByID   map[string]entities.Comment
	sequence       uint64
	frozenNow      *time.Time
}

func NewStore() *Store {
	return &Store{
		usersByID:     make(map[string]entities.User),
		userIDByEmail: make(map[string]string),
		postsByID:     make(map[string]entities.Post),
		commentsByID:  make(map[string]entities.Comment),
	}
}

// Seed loads fixture records, indexing emails and overwriting ids in place.
func (s *Store) Seed(users []entities.User, posts []entities.Post, comments []entities.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		s.usersByID[u.ID] = u
		s.userIDByEmail[entities.NormalizeEmail(u.Email)] = u.ID
		s.reserveSequence(u.ID)
	}
	for _, p := range posts {
		s.postsByID[p.ID] = p
		s.reserveSequence(p.ID)
	}
	for _, c := range comments {
		s.commentsByID[c.ID] = c
		s.reserveSequence(c.ID)
	}
}

// reserveSequence keeps generated ids ahead of numeric fixture ids.
func (s *Store) reserveSequence(id string) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return
	}
	if n > s.sequence {
		s.sequence = n
	}
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.frozenNow != nil {
		return *s.frozenNow
	}
	return time.Now().UTC()
}

// FreezeNow pins the store clock, so tests get deterministic timestamps.
func (s *Store) FreezeNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now = now.UTC()
	s.frozenNow = &now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return strconv.FormatUint(s.sequence, 10), nil
}

func (s *Store) CreateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := entities.NormalizeEmail(user.Email)
	if _, taken := s.userIDByEmail[email]; taken {
		return entities.User{}, domainerrors.ErrEmailAlreadyExists
	}
	user.Email = email
	s.usersByID[user.ID] = user
	s.userIDByEmail[email] = user.ID
	return user, nil
}

func (s *Store) GetUser(_ context.Context, id string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userIDByEmail[entities.NormalizeEmail(email)]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.usersByID[id], nil
}

func (s *Store) ListUsers(_ context.Context, filter ports.UserListFilter) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.usersByID))
	for _, u := range s.usersByID {
		if !matchesQuery(filter.Params.Query, u.Name, u.Email) {
			continue
		}
		items = append(items, u)
	}

	sortUsers(items, filter.Params)
	return paginate(items, filter.Params, func(u entities.User) string { return u.ID }), nil
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.usersByID[user.ID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}

	email := entities.NormalizeEmail(user.Email)
	if email != current.Email {
		if _, taken := s.userIDByEmail[email]; taken {
			return entities.User{}, domainerrors.ErrEmailAlreadyExists
		}
		delete(s.userIDByEmail, current.Email)
		s.userIDByEmail[email] = user.ID
	}
	user.Email = email
	s.usersByID[user.ID] = user
	return user, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[id]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.userIDByEmail, user.Email)
	delete(s.usersByID, id)
	return nil
}

func (s *Store) CreatePost(_ context.Context, post entities.Post) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postsByID[post.ID] = post
	return post, nil
}

func (s *Store) GetPost(_ context.Context, id string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.postsByID[id]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) GetPostOwned(_ context.Context, id string, authorID string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.postsByID[id]
	if !ok || post.AuthorID != authorID {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) ListPosts(_ context.Context, filter ports.PostListFilter) ([]entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Post, 0, len(s.postsByID))
	for _, p := range s.postsByID {
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		if !p.VisibleTo(filter.Viewer) {
			continue
		}
		if !matchesQuery(filter.Params.Query, p.Title, p.Body) {
			continue
		}
		items = append(items, p)
	}

	sortPosts(items, filter.Params)
	return paginate(items, filter.Params, func(p entities.Post) string { return p.ID }), nil
}

func (s *Store) ListPostIDsByAuthor(_ context.Context, authorID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, p := range s.postsByID {
		if p.AuthorID == authorID {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) UpdatePost(_ context.Context, post entities.Post) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postsByID[post.ID]; !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	s.postsByID[post.ID] = post
	return post, nil
}

func (s *Store) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postsByID[id]; !ok {
		return domainerrors.ErrPostNotFound
	}
	delete(s.postsByID, id)
	return nil
}

func (s *Store) DeletePostsByAuthor(_ context.Context, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.postsByID {
		if p.AuthorID == authorID {
			delete(s.postsByID, id)
		}
	}
	return nil
}

func (s *Store) CreateComment(_ context.Context, comment entities.Comment) (entities.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commentsByID[comment.ID] = comment
	return comment, nil
}

func (s *Store) GetComment(_ context.Context, id string) (entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.commentsByID[id]
	if !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s *Store) GetCommentOwned(_ context.Context, id string, authorID string) (entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.commentsByID[id]
	if !ok || comment.AuthorID != authorID {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s *Store) ListComments(_ context.Context, filter ports.CommentListFilter) ([]entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Comment, 0, len(s.commentsByID))
	for _, c := range s.commentsByID {
		if filter.PostID != "" && c.PostID != filter.PostID {
			continue
		}
		if !s.commentVisible(c, filter.Viewer) {
			continue
		}
		if !matchesQuery(filter.Params.Query, c.Text) {
			continue
		}
		items = append(items, c)
	}

	sortComments(items, filter.Params)
	return paginate(items, filter.Params, func(c entities.Comment) string { return c.ID }), nil
}

func (s *Store) commentVisible(c entities.Comment, viewer string) bool {
	if viewer != "" && c.AuthorID == viewer {
		return true
	}
	post, ok := s.postsByID[c.PostID]
	if !ok {
		return false
	}
	return post.VisibleTo(viewer)
}

func (s *Store) UpdateComment(_ context.Context, comment entities.Comment) (entities.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.commentsByID[comment.ID]; !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	s.commentsByID[comment.ID] = comment
	return comment, nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.commentsByID[id]; !ok {
		return domainerrors.ErrCommentNotFound
	}
	delete(s.commentsByID, id)
	return nil
}

func (s *Store) DeleteCommentsByAuthor(_ context.Context, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.commentsByID {
		if c.AuthorID == authorID {
			delete(s.commentsByID, id)
		}
	}
	return nil
}

func (s *Store) DeleteCommentsByPosts(_ context.Context, postIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make(map[string]struct{}, len(postIDs))
	for _, id := range postIDs {
		targets[id] = struct{}{}
	}
	for id, c := range s.commentsByID {
		if _, hit := targets[c.PostID]; hit {
			delete(s.commentsByID, id)
		}
	}
	return nil
}

func matchesQuery(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortUsers(items []entities.User, params ports.ListParams) {
	field, order := effectiveOrder(params, "name", ports.SortAsc)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch field {
		case "email":
			cmp = strings.Compare(a.Email, b.Email)
		case "age":
			cmp = a.Age - b.Age
		case "created_at":
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		case "updated_at":
			cmp = a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			cmp = strings.Compare(a.Name, b.Name)
		}
		return orderedLess(cmp, order, a.ID, b.ID)
	})
}

func sortPosts(items []entities.Post, params ports.ListParams) {
	field, order := effectiveOrder(params, "updated_at", ports.SortDesc)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch field {
		case "title":
			cmp = strings.Compare(a.Title, b.Title)
		case "body":
			cmp = strings.Compare(a.Body, b.Body)
		case "created_at":
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		default:
			cmp = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		return orderedLess(cmp, order, a.ID, b.ID)
	})
}

func sortComments(items []entities.Comment, params ports.ListParams) {
	field, order := effectiveOrder(params, "updated_at", ports.SortDesc)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch field {
		case "text":
			cmp = strings.Compare(a.Text, b.Text)
		case "created_at":
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		default:
			cmp = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		return orderedLess(cmp, order, a.ID, b.ID)
	})
}

func effectiveOrder(params ports.ListParams, defaultField string, defaultOrder ports.SortOrder) (string, ports.SortOrder) {
	field, order := params.SortField, params.SortOrder
	if field == "" {
		return defaultField, defaultOrder
	}
	if order == "" {
		order = ports.SortAsc
	}
	return field, order
}

// orderedLess applies the sort direction to the primary comparison and
// breaks ties by id ascending, so every ordering is total and stable.
func orderedLess(cmp int, order ports.SortOrder, idA, idB string) bool {
	if cmp == 0 {
		return idA < idB
	}
	if order == ports.SortDesc {
		return cmp > 0
	}
	return cmp < 0
}

// paginate applies the cursor or offset mode to an already-ordered slice.
// A cursor starts immediately after the record with that id; a cursor id
// absent from the result yields an empty page.
func paginate[T any](items []T, params ports.ListParams, id func(T) string) []T {
	if params.After != "" {
		start := -1
		for i, item := range items {
			if id(item) == params.After {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return []T{}
		}
		items = items[start:]
	} else if params.Skip > 0 {
		if params.Skip >= len(items) {
			return []T{}
		}
		items = items[params.Skip:]
	}

	if params.Take > 0 && params.Take < len(items) {
		items = items[:params.Take]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

var _ ports.UserRepository = (*Store)(nil)
var _ ports.PostRepository = (*Store)(nil)
var _ ports.CommentRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
