// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
	"github.com/lawpal/lawpal-go/internal/domain/ports"
	"github.com/lawpal/lawpal-go/internal/domain/usecases"
)

// defaultUserID identifies requests that carry no user id.
const defaultUserID = "default_user"

// Server is the HTTP server for the legal-assistance chat API.
type Server struct {
	orchestrator  *usecases.Orchestrator
	forms         ports.FormStore
	addr          string
	allowedOrigin string
}

// NewServer creates a new HTTP server.
func NewServer(orchestrator *usecases.Orchestrator, forms ports.FormStore, addr, allowedOrigin string) *Server {
	return &Server{
		orchestrator:  orchestrator,
		forms:         forms,
		addr:          addr,
		allowedOrigin: allowedOrigin,
	}
}

// Handler builds the route table wrapped in CORS and logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /{service}/chat", s.handleChat)
	mux.HandleFunc("GET /{service}/history", s.handleHistory)
	mux.HandleFunc("POST /submit-form", s.handleSubmitForm)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return corsMiddleware(s.allowedOrigin, loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully so in-flight turns finish their history writes.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	log.Printf("[INFO] lawpal server starting on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// chatRequest is the inbound chat turn payload.
type chatRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

// handleChat processes one chat turn for a service category.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	service := r.PathValue("service")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = defaultUserID
	}

	answer, err := s.orchestrator.HandleQuery(r.Context(), service, userID, req.Query)
	switch {
	case errors.Is(err, usecases.ErrUnknownService):
		writeError(w, http.StatusBadRequest, "Invalid service category")
	case errors.Is(err, usecases.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "No query provided")
	case err != nil:
		log.Printf("[ERROR] handling chat for %s: %v", service, err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"response": answer})
	}
}

// handleHistory returns the stored conversation for a session. The user id
// comes from the X-User-ID header.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	service := r.PathValue("service")

	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		userID = defaultUserID
	}

	history, err := s.orchestrator.History(service, userID)
	if errors.Is(err, usecases.ErrUnknownService) {
		writeError(w, http.StatusBadRequest, "Invalid service category")
		return
	}
	if history == nil {
		history = []entities.TurnRecord{}
	}
	writeJSON(w, http.StatusOK, map[string][]entities.TurnRecord{"history": history})
}

// handleSubmitForm stores a contact-form submission.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	var form entities.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if err := form.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or empty required fields")
		return
	}

	if err := s.forms.Submit(r.Context(), form); err != nil {
		log.Printf("[ERROR] submitting form: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store form submission")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Form submitted successfully!"})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[INFO] %s %s %v request_id=%s", r.Method, r.URL.Path, time.Since(start), requestID)
	})
}

func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
