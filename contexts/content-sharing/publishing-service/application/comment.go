package application

import (
	"context"

	"plume/contexts/content-sharing/publishing-service/domain/entities"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

type CreateCommentInput struct {
	PostID string
	Text   string
}

type UpdateCommentInput struct {
	Text *string
}

// CreateComment attaches a comment to a published post. Commenting on an
// unpublished post is rejected even for the post's own author's readers;
// only existence and the published flag gate creation.
func (s Service) CreateComment(ctx context.Context, identity string, input CreateCommentInput) (entities.Comment, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.Comment{}, err
	}
	post, err := s.Posts.GetPost(ctx, input.PostID)
	if err != nil {
		return entities.Comment{}, storageErr("load post", err, domainerrors.ErrPostNotFound)
	}
	if !post.Published {
		return entities.Comment{}, domainerrors.ErrPostNotPublished
	}

	id, err := s.newID(ctx)
	if err != nil {
		return entities.Comment{}, err
	}
	comment, err := entities.NewComment(id, input.Text, identity, input.PostID, s.now())
	if err != nil {
		return entities.Comment{}, err
	}

	created, err := s.Comments.CreateComment(ctx, comment)
	if err != nil {
		return entities.Comment{}, storageFailure("create comment", err)
	}

	s.publish(ctx, ports.CommentChannel(created.PostID), commentEvent(ports.MutationCreated, created))
	return created, nil
}

func (s Service) GetComment(ctx context.Context, id string, viewer string) (entities.Comment, error) {
	comment, err := s.Comments.GetComment(ctx, id)
	if err != nil {
		return entities.Comment{}, storageErr("load comment", err, domainerrors.ErrCommentNotFound)
	}
	if viewer != "" && comment.AuthorID == viewer {
		return comment, nil
	}
	post, err := s.Posts.GetPost(ctx, comment.PostID)
	if err != nil || !post.VisibleTo(viewer) {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s Service) ListComments(ctx context.Context, params ports.ListParams, postID string, viewer string) ([]entities.Comment, error) {
	if err := validateListParams(params); err != nil {
		return nil, err
	}
	comments, err := s.Comments.ListComments(ctx, ports.CommentListFilter{
		Params: params,
		PostID: postID,
		Viewer: viewer,
	})
	if err != nil {
		return nil, storageFailure("list comments", err)
	}
	return comments, nil
}

func (s Service) UpdateComment(ctx context.Context, identity string, id string, input UpdateCommentInput) (entities.Comment, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.Comment{}, err
	}
	comment, err := s.Comments.GetCommentOwned(ctx, id, identity)
	if err != nil {
		return entities.Comment{}, storageErr("load comment", err, domainerrors.ErrCommentNotFound)
	}

	if input.Text != nil {
		comment.Text = *input.Text
	}
	comment.UpdatedAt = s.now()

	updated, err := s.Comments.UpdateComment(ctx, comment)
	if err != nil {
		return entities.Comment{}, storageErr("update comment", err, domainerrors.ErrCommentNotFound)
	}

	s.publish(ctx, ports.CommentChannel(updated.PostID), commentEvent(ports.MutationUpdated, updated))
	return updated, nil
}

func (s Service) DeleteComment(ctx context.Context, identity string, id string) (entities.Comment, error) {
	if err := requireIdentity(identity); err != nil {
		return entities.Comment{}, err
	}
	comment, err := s.Comments.GetCommentOwned(ctx, id, identity)
	if err != nil {
		return entities.Comment{}, storageErr("load comment", err, domainerrors.ErrCommentNotFound)
	}

	if err := s.Comments.DeleteComment(ctx, id); err != nil {
		return entities.Comment{}, storageErr("delete comment", err, domainerrors.ErrCommentNotFound)
	}

	s.publish(ctx, ports.CommentChannel(comment.PostID), commentEvent(ports.MutationDeleted, comment))
	return comment, nil
}
