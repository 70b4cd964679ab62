package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	publishingservice "plume/contexts/content-sharing/publishing-service"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
	httptransport "plume/contexts/content-sharing/publishing-service/transport/http"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	publishing publishingservice.Module
}

func New(publishing publishingservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		publishing: publishing,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /users", s.handleCreateUser)
	s.mux.HandleFunc("GET /users/me", s.handleMe)
	s.mux.HandleFunc("PATCH /users/me", s.handleUpdateUser)
	s.mux.HandleFunc("DELETE /users/me", s.handleDeleteUser)
	s.mux.HandleFunc("GET /users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("GET /users", s.handleListUsers)

	s.mux.HandleFunc("POST /posts", s.handleCreatePost)
	s.mux.HandleFunc("GET /posts/mine", s.handleMyPosts)
	s.mux.HandleFunc("GET /posts/{post_id}", s.handleGetPost)
	s.mux.HandleFunc("PATCH /posts/{post_id}", s.handleUpdatePost)
	s.mux.HandleFunc("DELETE /posts/{post_id}", s.handleDeletePost)
	s.mux.HandleFunc("GET /posts", s.handleListPosts)

	s.mux.HandleFunc("POST /comments", s.handleCreateComment)
	s.mux.HandleFunc("GET /comments/{comment_id}", s.handleGetComment)
	s.mux.HandleFunc("PATCH /comments/{comment_id}", s.handleUpdateComment)
	s.mux.HandleFunc("DELETE /comments/{comment_id}", s.handleDeleteComment)
	s.mux.HandleFunc("GET /comments", s.handleListComments)

	s.mux.HandleFunc("GET /subscriptions/posts", s.handleSubscribePosts)
	s.mux.HandleFunc("GET /subscriptions/posts/{post_id}/comments", s.handleSubscribeComments)
	s.mux.HandleFunc("GET /subscriptions/my-posts", s.handleSubscribeMyPosts)
}

// identity resolves the caller from the Authorization header. On failure it
// writes the error response and reports false.
func (s *Server) identity(w http.ResponseWriter, r *http.Request, require bool) (string, bool) {
	identity, err := s.publishing.Guard.ResolveIdentity(r.Header.Get("Authorization"), require)
	if err != nil {
		s.writeDomainError(w, err)
		return "", false
	}
	return identity, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return false
	}
	return true
}

// listParams reads the shared filter/sort/pagination query parameters.
func listParams(w http.ResponseWriter, r *http.Request) (ports.ListParams, bool) {
	query := r.URL.Query()
	params := ports.ListParams{
		Query:     query.Get("query"),
		SortField: query.Get("sort_field"),
		SortOrder: ports.SortOrder(strings.ToLower(query.Get("sort_order"))),
		After:     query.Get("after"),
	}
	if raw := query.Get("take"); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "take must be an integer")
			return ports.ListParams{}, false
		}
		params.Take = take
	}
	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "skip must be an integer")
			return ports.ListParams{}, false
		}
		params.Skip = skip
	}
	return params, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, httptransport.ErrorResponse{Code: code, Message: message})
}

// writeDomainError maps a domain failure to its HTTP status and
// machine-readable code. Operation failures keep the raw storage cause out
// of the response; it is logged instead.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	code := domainerrors.Code(err)
	if errors.Is(err, domainerrors.ErrOperationFailed) || code == "OPERATION_FAILED" {
		s.logger.Error("operation failed",
			"event", "operation_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "OPERATION_FAILED", "operation failed")
		return
	}
	writeError(w, statusFor(code), code, err.Error())
}

func statusFor(code string) int {
	switch code {
	case "AUTHENTICATION_REQUIRED", "TOKEN_INVALID", "UNABLE_TO_LOGIN":
		return http.StatusUnauthorized
	case "USER_NOT_FOUND", "POST_NOT_FOUND", "COMMENT_NOT_FOUND_OR_UNAUTHORIZED":
		return http.StatusNotFound
	case "EMAIL_ALREADY_EXISTS":
		return http.StatusConflict
	case "POST_NOT_PUBLISHED":
		return http.StatusUnprocessableEntity
	case "INVALID_REQUEST", "INVALID_PASSWORD":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
