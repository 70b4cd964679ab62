package entities

import (
	"strings"
	"time"

	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Age          int
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Post struct {
	ID        string
	Title     string
	Body      string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        string
	Text      string
	AuthorID  string
	PostID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(id string, name string, email string, age int, passwordHash string, now time.Time) (User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if id == "" || name == "" || email == "" || passwordHash == "" || age < 0 {
		return User{}, domainerrors.ErrInvalidRequest
	}
	return User{
		ID:           id,
		Name:         name,
		Email:        email,
		Age:          age,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func NewPost(id string, title string, body string, published bool, authorID string, now time.Time) (Post, error) {
	title = strings.TrimSpace(title)
	if id == "" || title == "" || authorID == "" {
		return Post{}, domainerrors.ErrInvalidRequest
	}
	return Post{
		ID:        id,
		Title:     title,
		Body:      body,
		Published: published,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NewComment(id string, text string, authorID string, postID string, now time.Time) (Comment, error) {
	text = strings.TrimSpace(text)
	if id == "" || text == "" || authorID == "" || postID == "" {
		return Comment{}, domainerrors.ErrInvalidRequest
	}
	return Comment{
		ID:        id,
		Text:      text,
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// VisibleTo reports whether the post may be read by the given viewer.
// Unpublished posts are visible only to their author.
func (p Post) VisibleTo(viewerID string) bool {
	return p.Published || (viewerID != "" && p.AuthorID == viewerID)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword enforces the signup password policy: at least 8
// characters and must not contain the word "password".
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domainerrors.ErrInvalidPassword
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return domainerrors.ErrInvalidPassword
	}
	return nil
}
