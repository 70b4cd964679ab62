package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"plume/contexts/content-sharing/publishing-service/application"
	"plume/contexts/content-sharing/publishing-service/domain/entities"
	"plume/contexts/content-sharing/publishing-service/ports"
	httptransport "plume/contexts/content-sharing/publishing-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.AuthResponse, error) {
	user, token, err := h.Service.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		Token: token,
		User:  toUserResponse(user, user.ID),
	}, nil
}

func (h Handler) CreateUserHandler(ctx context.Context, req httptransport.CreateUserRequest) (httptransport.AuthResponse, error) {
	user, token, err := h.Service.CreateUser(ctx, application.CreateUserInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		Token: token,
		User:  toUserResponse(user, user.ID),
	}, nil
}

func (h Handler) GetUserHandler(ctx context.Context, id string, identity string) (httptransport.UserResponse, error) {
	user, err := h.Service.GetUser(ctx, strings.TrimSpace(id), identity)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user, identity), nil
}

func (h Handler) ListUsersHandler(ctx context.Context, params ports.ListParams, identity string) (httptransport.UserListResponse, error) {
	users, err := h.Service.ListUsers(ctx, params)
	if err != nil {
		return httptransport.UserListResponse{}, err
	}
	items := make([]httptransport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user, identity))
	}
	return httptransport.UserListResponse{Items: items}, nil
}

func (h Handler) UpdateUserHandler(ctx context.Context, identity string, req httptransport.UpdateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.UpdateUser(ctx, identity, application.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user, identity), nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, identity string) (httptransport.UserResponse, error) {
	user, err := h.Service.DeleteUser(ctx, identity)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user, identity), nil
}

func (h Handler) CreatePostHandler(ctx context.Context, identity string, req httptransport.CreatePostRequest) (httptransport.PostResponse, error) {
	post, err := h.Service.CreatePost(ctx, identity, application.CreatePostInput{
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (h Handler) GetPostHandler(ctx context.Context, id string, viewer string) (httptransport.PostResponse, error) {
	post, err := h.Service.GetPost(ctx, strings.TrimSpace(id), viewer)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (h Handler) ListPostsHandler(ctx context.Context, params ports.ListParams, viewer string) (httptransport.PostListResponse, error) {
	posts, err := h.Service.ListPosts(ctx, params, viewer)
	if err != nil {
		return httptransport.PostListResponse{}, err
	}
	return toPostListResponse(posts), nil
}

func (h Handler) MyPostsHandler(ctx context.Context, identity string, params ports.ListParams) (httptransport.PostListResponse, error) {
	posts, err := h.Service.MyPosts(ctx, identity, params)
	if err != nil {
		return httptransport.PostListResponse{}, err
	}
	return toPostListResponse(posts), nil
}

func (h Handler) UpdatePostHandler(ctx context.Context, identity string, id string, req httptransport.UpdatePostRequest) (httptransport.PostResponse, error) {
	post, err := h.Service.UpdatePost(ctx, identity, strings.TrimSpace(id), application.UpdatePostInput{
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (h Handler) DeletePostHandler(ctx context.Context, identity string, id string) (httptransport.PostResponse, error) {
	post, err := h.Service.DeletePost(ctx, identity, strings.TrimSpace(id))
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (h Handler) CreateCommentHandler(ctx context.Context, identity string, req httptransport.CreateCommentRequest) (httptransport.CommentResponse, error) {
	comment, err := h.Service.CreateComment(ctx, identity, application.CreateCommentInput{
		PostID: strings.TrimSpace(req.PostID),
		Text:   req.Text,
	})
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return toCommentResponse(comment), nil
}

func (h Handler) GetCommentHandler(ctx context.Context, id string, viewer string) (httptransport.CommentResponse, error) {
	comment, err := h.Service.GetComment(ctx, strings.TrimSpace(id), viewer)
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return toCommentResponse(comment), nil
}

func (h Handler) ListCommentsHandler(ctx context.Context, params ports.ListParams, postID string, viewer string) (httptransport.CommentListResponse, error) {
	comments, err := h.Service.ListComments(ctx, params, strings.TrimSpace(postID), viewer)
	if err != nil {
		return httptransport.CommentListResponse{}, err
	}
	items := make([]httptransport.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, toCommentResponse(comment))
	}
	return httptransport.CommentListResponse{Items: items}, nil
}

func (h Handler) UpdateCommentHandler(ctx context.Context, identity string, id string, req httptransport.UpdateCommentRequest) (httptransport.CommentResponse, error) {
	comment, err := h.Service.UpdateComment(ctx, identity, strings.TrimSpace(id), application.UpdateCommentInput{
		Text: req.Text,
	})
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return toCommentResponse(comment), nil
}

func (h Handler) DeleteCommentHandler(ctx context.Context, identity string, id string) (httptransport.CommentResponse, error) {
	comment, err := h.Service.DeleteComment(ctx, identity, strings.TrimSpace(id))
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return toCommentResponse(comment), nil
}

// toUserResponse strips the password hash and exposes the email only to
// the account owner.
func toUserResponse(user entities.User, viewer string) httptransport.UserResponse {
	resp := httptransport.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if viewer != "" && viewer == user.ID {
		resp.Email = user.Email
	}
	return resp
}

func toPostResponse(post entities.Post) httptransport.PostResponse {
	return httptransport.PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		Published: post.Published,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func toPostListResponse(posts []entities.Post) httptransport.PostListResponse {
	items := make([]httptransport.PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostResponse(post))
	}
	return httptransport.PostListResponse{Items: items}
}

func toCommentResponse(comment entities.Comment) httptransport.CommentResponse {
	return httptransport.CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		AuthorID:  comment.AuthorID,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
