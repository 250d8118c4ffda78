package nativeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlessandroMarelli-pro/muzo-sub001/conf"
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender"
)

type recommendationRequestPayload struct {
	Weights    *model.RecommendationWeights `json:"weights"`
	Limit      int                          `json:"limit"`
	ExcludeIDs []string                     `json:"excludeIds"`
}

type recommendationResponsePayload struct {
	ID      string                  `json:"id"`
	Count   int                     `json:"count"`
	Results []model.TrackSimilarity `json:"results"`
}

func (n *Router) addRecommendationRoutes(r chi.Router) {
	r.Route("/recommendations", func(r chi.Router) {
		r.Post("/playlist/{id}", n.handlePlaylistRecommendations)
		r.Post("/track/{id}", n.handleTrackRecommendations)
	})
}

func (n *Router) handlePlaylistRecommendations(w http.ResponseWriter, r *http.Request) {
	n.handleRecommendations(w, r, n.engine.ForPlaylist)
}

func (n *Router) handleTrackRecommendations(w http.ResponseWriter, r *http.Request) {
	n.handleRecommendations(w, r, n.engine.ForTrack)
}

type recommendFunc func(ctx context.Context, id string, opts recommender.RequestOptions) ([]model.TrackSimilarity, error)

func (n *Router) handleRecommendations(w http.ResponseWriter, r *http.Request, recommend recommendFunc) {
	if n.engine == nil {
		http.Error(w, "recommendation service unavailable", http.StatusServiceUnavailable)
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	var payload recommendationRequestPayload
	if err := decodeJSON(r, &payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	results, err := recommend(ctx, id, recommender.RequestOptions{
		Weights:    payload.Weights,
		Limit:      normalizeLimit(payload.Limit),
		ExcludeIDs: payload.ExcludeIDs,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, recommendationResponsePayload{
		ID:      id,
		Count:   len(results),
		Results: results,
	})
}

// requestContext bounds a handler by the configured store timeout.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := conf.Server.Recommendations.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}
