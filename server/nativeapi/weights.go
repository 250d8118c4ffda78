package nativeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
)

type weightsPayload struct {
	Weights model.RecommendationWeights `json:"weights"`
}

type validateWeightsResponse struct {
	Valid bool    `json:"valid"`
	Sum   float64 `json:"sum"`
}

type normalizeWeightsResponse struct {
	Weights model.RecommendationWeights `json:"weights"`
}

func (n *Router) addWeightRoutes(r chi.Router) {
	r.Route("/weights", func(r chi.Router) {
		r.Post("/validate", n.handleValidateWeights)
		r.Post("/normalize", n.handleNormalizeWeights)
	})
}

func (n *Router) handleValidateWeights(w http.ResponseWriter, r *http.Request) {
	var payload weightsPayload
	if err := decodeJSON(r, &payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, validateWeightsResponse{
		Valid: n.engine.ValidateWeights(payload.Weights),
		Sum:   payload.Weights.Sum(),
	})
}

func (n *Router) handleNormalizeWeights(w http.ResponseWriter, r *http.Request) {
	var payload weightsPayload
	if err := decodeJSON(r, &payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, normalizeWeightsResponse{
		Weights: n.engine.NormalizeWeights(payload.Weights),
	})
}
