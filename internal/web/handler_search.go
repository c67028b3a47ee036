package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/bhorvath/carwise/internal/advisor"
)

func (s *Server) handleMechanicsPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"ActiveNav": "mechanics"},
		"base.html", "pages/mechanics.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

// parseMechanicQuery reads the search form. Latitude and longitude come from
// the browser geolocation API and are required; the radius falls back to the
// server default when absent.
func parseMechanicQuery(r *http.Request, defaultRadiusKm int) (advisor.MechanicQuery, error) {
	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		return advisor.MechanicQuery{}, err
	}
	lng, err := strconv.ParseFloat(r.FormValue("lng"), 64)
	if err != nil {
		return advisor.MechanicQuery{}, err
	}

	radiusKm := defaultRadiusKm
	if raw := r.FormValue("radius_km"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			radiusKm = v
		}
	}

	return advisor.MechanicQuery{
		Problem:  strings.TrimSpace(r.FormValue("problem")),
		Location: advisor.Coordinates{Latitude: lat, Longitude: lng},
		RadiusKm: radiusKm,
	}, nil
}

func (s *Server) handleSearchMechanics(w http.ResponseWriter, r *http.Request) {
	query, err := parseMechanicQuery(r, s.defaultRadiusKm)
	if err != nil {
		http.Error(w, "location required", http.StatusBadRequest)
		return
	}

	cards, result, err := s.garage.FindMechanics(r.Context(), query)
	if err != nil {
		http.Error(w, "search failed", http.StatusInternalServerError)
		log.Printf("mechanic search error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/mechanic_results.html",
		map[string]any{"Cards": cards, "RawText": result.RawText, "Shops": result.Shops},
	); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

// handleStreamMechanics runs the same search as handleSearchMechanics but
// responds with an SSE stream. Each SSE event carries one decoded card as
// JSON. The stream ends with a "done" event.
func (s *Server) handleStreamMechanics(w http.ResponseWriter, r *http.Request) {
	query, err := parseMechanicQuery(r, s.defaultRadiusKm)
	if err != nil {
		http.Error(w, "location required", http.StatusBadRequest)
		return
	}

	// Use a detached context so that the search runs to completion even if
	// the client navigates away and the request context is cancelled.
	events, err := s.garage.FindMechanicsStream(context.WithoutCancel(r.Context()), query)
	if err != nil {
		http.Error(w, "search failed", http.StatusInternalServerError)
		log.Printf("mechanic stream error: %v", err)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, canFlush := w.(http.Flusher)

	enc := json.NewEncoder(w)
	for ev := range events {
		if r.Context().Err() != nil {
			return
		}
		if ev.Err != nil {
			log.Printf("mechanic stream event error: %v", ev.Err)
			return
		}
		if _, err := w.Write([]byte("data: ")); err != nil {
			return
		}
		if err := enc.Encode(ev.Card); err != nil {
			return
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}

	if _, err := w.Write([]byte("event: done\ndata: {}\n\n")); err != nil {
		log.Printf("write done event failed: %v", err)
	}
	if canFlush {
		flusher.Flush()
	}
}
