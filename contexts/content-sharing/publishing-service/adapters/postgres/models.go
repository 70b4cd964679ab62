package postgresadapter

import (
	"time"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
)

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Age          int       `gorm:"column:age"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Age:          m.Age,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromUser(u entities.User) userModel {
	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Age:          u.Age,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type postModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title"`
	Body      string    `gorm:"column:body"`
	Published bool      `gorm:"column:published"`
	AuthorID  string    `gorm:"column:author_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (postModel) TableName() string { return "posts" }

func (m postModel) toEntity() entities.Post {
	return entities.Post{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		Published: m.Published,
		AuthorID:  m.AuthorID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromPost(p entities.Post) postModel {
	return postModel{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type commentModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Text      string    `gorm:"column:text"`
	AuthorID  string    `gorm:"column:author_id;index"`
	PostID    string    `gorm:"column:post_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (commentModel) TableName() string { return "comments" }

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		ID:        m.ID,
		Text:      m.Text,
		AuthorID:  m.AuthorID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromComment(c entities.Comment) commentModel {
	return commentModel{
		ID:        c.ID,
		Text:      c.Text,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Models lists the persistence models for schema migration.
func Models() []any {
	return []any{&userModel{}, &postModel{}, &commentModel{}}
}
