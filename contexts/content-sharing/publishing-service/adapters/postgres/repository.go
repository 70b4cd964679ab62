package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := fromUser(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrEmailAlreadyExists
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUser(ctx context.Context, id string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", entities.NormalizeEmail(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context, filter ports.UserListFilter) ([]entities.User, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{})
	tx = applyTextQuery(tx, filter.Params.Query, "name", "email")

	spec := userSort(filter.Params)
	tx, err := r.applyUserPagination(ctx, tx, filter.Params, spec)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return []entities.User{}, nil
	}

	var rows []userModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := fromUser(user)
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", row.ID).
		Select("name", "email", "age", "password_hash", "updated_at").
		Updates(row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.User{}, domainerrors.ErrEmailAlreadyExists
		}
		return entities.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) CreatePost(ctx context.Context, post entities.Post) (entities.Post, error) {
	row := fromPost(post)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPost(ctx context.Context, id string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPostOwned(ctx context.Context, id string, authorID string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPosts(ctx context.Context, filter ports.PostListFilter) ([]entities.Post, error) {
	tx := r.db.WithContext(ctx).Model(&postModel{})
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Viewer == "" {
		tx = tx.Where("published = TRUE")
	} else {
		tx = tx.Where("published = TRUE OR author_id = ?", filter.Viewer)
	}
	tx = applyTextQuery(tx, filter.Params.Query, "title", "body")

	spec := postSort(filter.Params)
	tx, err := r.applyPostPagination(ctx, tx, filter.Params, spec)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return []entities.Post{}, nil
	}

	var rows []postModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post entities.Post) (entities.Post, error) {
	row := fromPost(post)
	result := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("id = ?", row.ID).
		Select("title", "body", "published", "updated_at").
		Updates(row)
	if result.Error != nil {
		return entities.Post{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (r *Repository) DeletePost(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

func (r *Repository) DeletePostsByAuthor(ctx context.Context, authorID string) error {
	return r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&postModel{}).
		Error
}

func (r *Repository) CreateComment(ctx context.Context, comment entities.Comment) (entities.Comment, error) {
	row := fromComment(comment)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Comment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetComment(ctx context.Context, id string) (entities.Comment, error) {
	var row commentModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
		return entities.Comment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCommentOwned(ctx context.Context, id string, authorID string) (entities.Comment, error) {
	var row commentModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
		return entities.Comment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListComments(ctx context.Context, filter ports.CommentListFilter) ([]entities.Comment, error) {
	tx := r.db.WithContext(ctx).
		Model(&commentModel{}).
		Joins("JOIN posts ON posts.id = comments.post_id")
	if filter.PostID != "" {
		tx = tx.Where("comments.post_id = ?", filter.PostID)
	}
	if filter.Viewer == "" {
		tx = tx.Where("posts.published = TRUE")
	} else {
		tx = tx.Where(
			"posts.published = TRUE OR posts.author_id = ? OR comments.author_id = ?",
			filter.Viewer, filter.Viewer,
		)
	}
	tx = applyTextQuery(tx, filter.Params.Query, "comments.text")

	spec := commentSort(filter.Params)
	tx, err := r.applyCommentPagination(ctx, tx, filter.Params, spec)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return []entities.Comment{}, nil
	}

	var rows []commentModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment entities.Comment) (entities.Comment, error) {
	row := fromComment(comment)
	result := r.db.WithContext(ctx).
		Model(&commentModel{}).
		Where("id = ?", row.ID).
		Select("text", "updated_at").
		Updates(row)
	if result.Error != nil {
		return entities.Comment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&commentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) DeleteCommentsByAuthor(ctx context.Context, authorID string) error {
	return r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&commentModel{}).
		Error
}

func (r *Repository) DeleteCommentsByPosts(ctx context.Context, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Delete(&commentModel{}).
		Error
}

func applyTextQuery(tx *gorm.DB, query string, columns ...string) *gorm.DB {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tx
	}
	pattern := "%" + query + "%"
	conditions := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		conditions = append(conditions, "LOWER("+column+") LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where(strings.Join(conditions, " OR "), args...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.UserRepository = (*Repository)(nil)
var _ ports.PostRepository = (*Repository)(nil)
var _ ports.CommentRepository = (*Repository)(nil)
