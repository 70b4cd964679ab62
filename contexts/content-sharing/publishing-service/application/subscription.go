package application

import (
	"context"

	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

// Subscription routing: each subscribe call runs its pre-check, then hands
// back a live consumer on the matching bus channel. Callers own the
// returned subscription and must Close it when the connection ends.

func (s Service) SubscribePosts(ctx context.Context) ports.Subscription {
	return s.Bus.Subscribe(ctx, ports.PostChannel)
}

// SubscribeComments validates that the referenced post exists before
// registering the consumer, so a bad post id fails fast instead of
// yielding a silent, never-firing stream.
func (s Service) SubscribeComments(ctx context.Context, postID string) (ports.Subscription, error) {
	if _, err := s.Posts.GetPost(ctx, postID); err != nil {
		return nil, storageErr("load post", err, domainerrors.ErrPostNotFound)
	}
	return s.Bus.Subscribe(ctx, ports.CommentChannel(postID)), nil
}

func (s Service) SubscribeMyPosts(ctx context.Context, identity string) (ports.Subscription, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	return s.Bus.Subscribe(ctx, ports.MyPostChannel(identity)), nil
}
