package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/omarshaarawi/powerboard/internal/models"
	"github.com/omarshaarawi/powerboard/internal/service"
)

const generationParam = "generation"

// handlePage fetches and renders on every load, like opening the page in a
// browser. A ?generation=N link is answered from the committed view instead
// when that view is at least generation N, so following a refresh redirect
// or a live update does not fetch again.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view, ok := s.committedSince(r)
	if !ok {
		view = s.rankings.Refresh(r.Context(), service.TriggerPageLoad)
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, view); err != nil {
		s.logger.Error("Error rendering page", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	view := s.rankings.Refresh(r.Context(), service.TriggerManual)
	http.Redirect(w, r, pageURL(view.Generation), http.StatusSeeOther)
}

func (s *Server) committedSince(r *http.Request) (models.View, bool) {
	raw := r.URL.Query().Get(generationParam)
	if raw == "" {
		return models.View{}, false
	}
	want, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return models.View{}, false
	}
	view, ok := s.rankings.Latest()
	if !ok || view.Generation < want {
		return models.View{}, false
	}
	return view, true
}

func pageURL(generation uint64) string {
	return "/?" + generationParam + "=" + strconv.FormatUint(generation, 10)
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.rankings.LatestOrRefresh(r.Context()))
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "missing name")
		return
	}

	card, ok := s.rankings.FindTeam(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "team not found")
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := map[string]string{"error": message}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, r, status, body)
}
