package httpserver

import (
	"net/http"

	httptransport "plume/contexts/content-sharing/publishing-service/transport/http"
)

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	var req httptransport.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.CreatePostHandler(r.Context(), identity, req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.identity(w, r, false)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.GetPostHandler(r.Context(), r.PathValue("post_id"), viewer)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.identity(w, r, false)
	if !ok {
		return
	}
	params, ok := listParams(w, r)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.ListPostsHandler(r.Context(), params, viewer)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	params, ok := listParams(w, r)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.MyPostsHandler(r.Context(), identity, params)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	var req httptransport.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.UpdatePostHandler(r.Context(), identity, r.PathValue("post_id"), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.DeletePostHandler(r.Context(), identity, r.PathValue("post_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
