package errors

import "errors"

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrTokenInvalid           = errors.New("token invalid")
	ErrUnableToLogin          = errors.New("unable to login")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidPassword        = errors.New("password must be at least 8 characters and must not contain the word password")
	ErrUserNotFound           = errors.New("user not found")
	ErrPostNotFound           = errors.New("post not found or you are not authorized to access it")
	ErrPostNotPublished       = errors.New("cannot add comments to unpublished posts")
	ErrCommentNotFound        = errors.New("comment not found or not authorized")
	ErrOperationFailed        = errors.New("operation failed")
)

// Code returns the machine-readable code carried to callers for a domain
// error. Unknown errors fall through to OPERATION_FAILED.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, ErrAuthenticationRequired):
		return "AUTHENTICATION_REQUIRED"
	case errors.Is(err, ErrTokenInvalid):
		return "TOKEN_INVALID"
	case errors.Is(err, ErrUnableToLogin):
		return "UNABLE_TO_LOGIN"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "EMAIL_ALREADY_EXISTS"
	case errors.Is(err, ErrInvalidPassword):
		return "INVALID_PASSWORD"
	case errors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	case errors.Is(err, ErrPostNotPublished):
		return "POST_NOT_PUBLISHED"
	case errors.Is(err, ErrCommentNotFound):
		return "COMMENT_NOT_FOUND_OR_UNAUTHORIZED"
	default:
		return "OPERATION_FAILED"
	}
}
