package nlp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// queryRequest is the JSON body of the query endpoints.
type queryRequest struct {
	UserID string `json:"userId"`
	Query  string `json:"query"`
}

// RegisterRoutes mounts the query endpoints under /api/nlp on the given
// router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/nlp", func(r chi.Router) {
		r.Post("/query", handleQuery(svc))
		r.Post("/admin/query", handleAdminQuery(svc))
		r.Get("/capabilities", handleCapabilities(svc))
		r.Get("/suggestions", handleSuggestions(svc))
		r.Get("/health", handleHealth(svc))
	})
}

func handleQuery(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeQuery(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.ProcessQuery(r.Context(), req.UserID, req.Query))
	}
}

func handleAdminQuery(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeQuery(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.ProcessAdminQuery(r.Context(), req.UserID, req.Query))
	}
}

func handleCapabilities(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			http.Error(w, "userId is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.Capabilities(r.Context(), userID))
	}
}

func handleSuggestions(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isAdmin := false
		if userID := r.URL.Query().Get("userId"); userID != "" {
			if ok, err := svc.users.IsAdmin(r.Context(), userID); err == nil {
				isAdmin = ok
			}
		}
		writeJSON(w, http.StatusOK, svc.Suggestions(isAdmin))
	}
}

func handleHealth(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{"healthy": svc.Healthy()}
		code := http.StatusOK
		if !svc.Healthy() {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}

func decodeQuery(w http.ResponseWriter, r *http.Request) (queryRequest, bool) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
