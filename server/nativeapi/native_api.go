// Package nativeapi exposes the recommendation and index-sync
// operations over HTTP.
package nativeapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlessandroMarelli-pro/muzo-sub001/conf"
	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender"
)

// Router serves the native JSON API.
type Router struct {
	http.Handler
	engine recommender.Engine
	sync   recommender.DocumentSync
}

// New creates the native API router.
func New(engine recommender.Engine, sync recommender.DocumentSync) *Router {
	n := &Router{engine: engine, sync: sync}
	r := chi.NewRouter()
	n.routes(r)
	n.Handler = r
	return n
}

func (n *Router) routes(r chi.Router) {
	n.addRecommendationRoutes(r)
	n.addWeightRoutes(r)
	n.addSyncRoutes(r)
}

// normalizeLimit applies the configured default and cap to a
// caller-supplied limit.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		limit = conf.Server.Recommendations.DefaultLimit
		if limit <= 0 {
			limit = 20
		}
	}
	maxLimit := conf.Server.Recommendations.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err.Error() != "EOF" {
		log.Error(r.Context(), "Failed to decode request body", "error", err)
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
