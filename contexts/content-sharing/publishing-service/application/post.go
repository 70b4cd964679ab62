package application

import (
	"context"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

type CreatePostInput struct {
	Title     string
	Body      string
	Published bool
}

type UpdatePostInput struct {
	Title     *string
	Body      *string
	Published *bool
}

func (s Service) CreatePost(ctx context.Context, identity string, input CreatePostInput) (entities.Post, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.Post{}, err
	}

	id, err := s.newID(ctx)
	if err != nil {
		return entities.Post{}, err
	}
	post, err := entities.NewPost(id, input.Title, input.Body, input.Published, identity, s.now())
	if err != nil {
		return entities.Post{}, err
	}

	created, err := s.Posts.CreatePost(ctx, post)
	if err != nil {
		return entities.Post{}, storageFailure("create post", err)
	}

	if created.Published {
		s.publish(ctx, ports.PostChannel, postEvent(ports.MutationCreated, created))
	}
	s.publish(ctx, ports.MyPostChannel(identity), postEvent(ports.MutationCreated, created))
	return created, nil
}

func (s Service) GetPost(ctx context.Context, id string, viewer string) (entities.Post, error) {
	post, err := s.Posts.GetPost(ctx, id)
	if err != nil {
		return entities.Post{}, storageErr("load post", err, domainerrors.ErrPostNotFound)
	}
	if !post.VisibleTo(viewer) {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s Service) ListPosts(ctx context.Context, params ports.ListParams, viewer string) ([]entities.Post, error) {
	if err := validateListParams(params); err != nil {
		return nil, err
	}
	posts, err := s.Posts.ListPosts(ctx, ports.PostListFilter{Params: params, Viewer: viewer})
	if err != nil {
		return nil, storageFailure("list posts", err)
	}
	return posts, nil
}

// MyPosts lists the caller's own posts, published or not.
func (s Service) MyPosts(ctx context.Context, identity string, params ports.ListParams) ([]entities.Post, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if err := validateListParams(params); err != nil {
		return nil, err
	}
	posts, err := s.Posts.ListPosts(ctx, ports.PostListFilter{
		Params:   params,
		AuthorID: identity,
		Viewer:   identity,
	})
	if err != nil {
		return nil, storageFailure("list posts", err)
	}
	return posts, nil
}

// UpdatePost mutates a post the caller owns. The lookup is scoped by id and
// author, so "does not exist" and "not yours" are indistinguishable.
//
// The UPDATED notification fires whenever the resulting state is published,
// not only on an unpublished-to-published transition; kept as upstream
// behaves pending product clarification.
func (s Service) UpdatePost(ctx context.Context, identity string, id string, input UpdatePostInput) (entities.Post, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.Post{}, err
	}
	post, err := s.Posts.GetPostOwned(ctx, id, identity)
	if err != nil {
		return entities.Post{}, storageErr("load post", err, domainerrors.ErrPostNotFound)
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	post.UpdatedAt = s.now()

	updated, err := s.Posts.UpdatePost(ctx, post)
	if err != nil {
		return entities.Post{}, storageErr("update post", err, domainerrors.ErrPostNotFound)
	}

	if updated.Published {
		s.publish(ctx, ports.PostChannel, postEvent(ports.MutationUpdated, updated))
	}
	s.publish(ctx, ports.MyPostChannel(identity), postEvent(ports.MutationUpdated, updated))
	return updated, nil
}

// DeletePost removes the post's comments first, then the post itself. The
// DELETED event fires regardless of published state.
func (s Service) DeletePost(ctx context.Context, identity string, id string) (entities.Post, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.Post{}, err
	}
	post, err := s.Posts.GetPostOwned(ctx, id, identity)
	if err != nil {
		return entities.Post{}, storageErr("load post", err, domainerrors.ErrPostNotFound)
	}

	if err := s.Comments.DeleteCommentsByPosts(ctx, []string{id}); err != nil {
		return entities.Post{}, storageFailure("cascade comments", err)
	}
	if err := s.Posts.DeletePost(ctx, id); err != nil {
		return entities.Post{}, storageErr("delete post", err, domainerrors.ErrPostNotFound)
	}

	s.publish(ctx, ports.PostChannel, postEvent(ports.MutationDeleted, post))
	s.publish(ctx, ports.MyPostChannel(identity), postEvent(ports.MutationDeleted, post))
	return post, nil
}
