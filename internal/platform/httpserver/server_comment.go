package httpserver

import (
	"net/http"

	httptransport "plume/contexts/content-sharing/publishing-service/transport/http"
)

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	var req httptransport.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.CreateCommentHandler(r.Context(), identity, req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.identity(w, r, false)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.GetCommentHandler(r.Context(), r.PathValue("comment_id"), viewer)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.identity(w, r, false)
	if !ok {
		return
	}
	params, ok := listParams(w, r)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.ListCommentsHandler(r.Context(), params, r.URL.Query().Get("post_id"), viewer)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	var req httptransport.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.UpdateCommentHandler(r.Context(), identity, r.PathValue("comment_id"), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.DeleteCommentHandler(r.Context(), identity, r.PathValue("comment_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
