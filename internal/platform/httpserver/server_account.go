package httpserver

import (
	"net/http"

	httptransport "plume/contexts/content-sharing/publishing-service/transport/http"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req httptransport.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req httptransport.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.CreateUserHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.GetUserHandler(r.Context(), identity, identity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.GetUserHandler(r.Context(), r.PathValue("user_id"), identity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, false)
	if !ok {
		return
	}
	params, ok := listParams(w, r)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.ListUsersHandler(r.Context(), params, identity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	var req httptransport.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.publishing.Handler.UpdateUserHandler(r.Context(), identity, req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	resp, err := s.publishing.Handler.DeleteUserHandler(r.Context(), identity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
