package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"plume/contexts/content-sharing/publishing-service/ports"
)

// Subscriptions stream Server-Sent Events: one `data:` frame per envelope.
// The consumer is unregistered from the bus the moment the request context
// ends, so a dropped connection never leaks a delivery target.

func (s *Server) handleSubscribePosts(w http.ResponseWriter, r *http.Request) {
	sub := s.publishing.Service.SubscribePosts(r.Context())
	s.streamEvents(w, r, sub)
}

func (s *Server) handleSubscribeComments(w http.ResponseWriter, r *http.Request) {
	sub, err := s.publishing.Service.SubscribeComments(r.Context(), r.PathValue("post_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.streamEvents(w, r, sub)
}

func (s *Server) handleSubscribeMyPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r, true)
	if !ok {
		return
	}
	sub, err := s.publishing.Service.SubscribeMyPosts(r.Context(), identity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.streamEvents(w, r, sub)
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request, sub ports.Subscription) {
	defer sub.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "OPERATION_FAILED", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub.Events():
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.Error("event encode failed",
					"event", "sse_encode_failed",
					"module", "internal/platform/httpserver",
					"layer", "platform",
					"error", err.Error(),
				)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
