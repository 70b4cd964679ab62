package application

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Age      int
	Password string
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Age      *int
	Password *string
}

// Login verifies email and password. Unknown email and wrong password both
// fail with the same generic error so the caller cannot tell which part
// was wrong.
func (s Service) Login(ctx context.Context, email string, password string) (entities.User, string, error) {
	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return entities.User{}, "", domainerrors.ErrUnableToLogin
		}
		return entities.User{}, "", storageFailure("load account by email", err)
	}
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		return entities.User{}, "", domainerrors.ErrUnableToLogin
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return entities.User{}, "", storageFailure("issue token", err)
	}
	return user, token, nil
}

func (s Service) CreateUser(ctx context.Context, input CreateUserInput) (entities.User, string, error) {
	if err := entities.ValidatePassword(input.Password); err != nil {
		return entities.User{}, "", err
	}
	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return entities.User{}, "", storageFailure("hash password", err)
	}

	id, err := s.newID(ctx)
	if err != nil {
		return entities.User{}, "", err
	}
	user, err := entities.NewUser(id, input.Name, input.Email, input.Age, hash, s.now())
	if err != nil {
		return entities.User{}, "", err
	}

	created, err := s.Users.CreateUser(ctx, user)
	if err != nil {
		return entities.User{}, "", storageErr("create account", err, domainerrors.ErrEmailAlreadyExists)
	}

	token, err := s.Tokens.Issue(created.ID)
	if err != nil {
		return entities.User{}, "", storageFailure("issue token", err)
	}

	s.logger().Info("account created",
		"event", "account_created",
		"module", "publishing-service",
		"layer", "application",
		"user_id", created.ID,
	)
	return created, token, nil
}

func (s Service) GetUser(ctx context.Context, id string, identity string) (entities.User, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.User{}, err
	}
	user, err := s.Users.GetUser(ctx, id)
	if err != nil {
		return entities.User{}, storageErr("load account", err, domainerrors.ErrUserNotFound)
	}
	return user, nil
}

func (s Service) ListUsers(ctx context.Context, params ports.ListParams) ([]entities.User, error) {
	if err := validateListParams(params); err != nil {
		return nil, err
	}
	users, err := s.Users.ListUsers(ctx, ports.UserListFilter{Params: params})
	if err != nil {
		return nil, storageFailure("list accounts", err)
	}
	return users, nil
}

func (s Service) UpdateUser(ctx context.Context, identity string, input UpdateUserInput) (entities.User, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.User{}, err
	}
	user, err := s.Users.GetUser(ctx, identity)
	if err != nil {
		return entities.User{}, storageErr("load account", err, domainerrors.ErrUserNotFound)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = entities.NormalizeEmail(*input.Email)
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Password != nil {
		// Re-hash only when the supplied password differs from the current one.
		if s.Hasher.Compare(user.PasswordHash, *input.Password) != nil {
			if err := entities.ValidatePassword(*input.Password); err != nil {
				return entities.User{}, err
			}
			hash, err := s.Hasher.Hash(*input.Password)
			if err != nil {
				return entities.User{}, storageFailure("hash password", err)
			}
			user.PasswordHash = hash
		}
	}
	user.UpdatedAt = s.now()

	updated, err := s.Users.UpdateUser(ctx, user)
	if err != nil {
		// A storage-level uniqueness violation on update is reported as
		// not-found, matching the upstream behavior.
		if errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, storageErr("update account", err, domainerrors.ErrUserNotFound)
	}
	return updated, nil
}

// DeleteUser removes the account and everything it authored. Dependent
// comments go first (the account's own comments and the comments attached
// to its posts, deleted concurrently), then its posts, then the account.
func (s Service) DeleteUser(ctx context.Context, identity string) (entities.User, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.User{}, err
	}
	user, err := s.Users.GetUser(ctx, identity)
	if err != nil {
		return entities.User{}, storageErr("load account", err, domainerrors.ErrUserNotFound)
	}

	postIDs, err := s.Posts.ListPostIDsByAuthor(ctx, identity)
	if err != nil {
		return entities.User{}, storageFailure("list authored posts", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Comments.DeleteCommentsByAuthor(gctx, identity)
	})
	g.Go(func() error {
		return s.Comments.DeleteCommentsByPosts(gctx, postIDs)
	})
	if err := g.Wait(); err != nil {
		return entities.User{}, storageFailure("cascade comments", err)
	}

	if err := s.Posts.DeletePostsByAuthor(ctx, identity); err != nil {
		return entities.User{}, storageFailure("cascade posts", err)
	}
	if err := s.Users.DeleteUser(ctx, identity); err != nil {
		return entities.User{}, storageErr("delete account", err, domainerrors.ErrUserNotFound)
	}

	s.logger().Info("account deleted",
		"event", "account_deleted",
		"module", "publishing-service",
		"layer", "application",
		"user_id", identity,
		"cascaded_posts", len(postIDs),
	)
	return user, nil
}
