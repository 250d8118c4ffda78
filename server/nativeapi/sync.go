package nativeapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/docsync"
)

type resyncRequestPayload struct {
	LibraryID string `json:"libraryId"`
}

type resyncResponsePayload struct {
	RunID string `json:"runId"`
}

func (n *Router) addSyncRoutes(r chi.Router) {
	r.Route("/sync", func(r chi.Router) {
		r.Post("/", n.handleResync)
		r.Post("/{trackId}", n.handleSyncTrack)
		r.Delete("/{trackId}", n.handleDeleteTrack)
	})
}

func (n *Router) handleResync(w http.ResponseWriter, r *http.Request) {
	if n.sync == nil {
		http.Error(w, "sync service unavailable", http.StatusServiceUnavailable)
		return
	}
	var payload resyncRequestPayload
	if err := decodeJSON(r, &payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	runID, err := n.sync.StartResync(recommender.SyncOptions{LibraryID: payload.LibraryID})
	if err != nil {
		if errors.Is(err, docsync.ErrResyncRunning) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, resyncResponsePayload{RunID: runID})
}

func (n *Router) handleSyncTrack(w http.ResponseWriter, r *http.Request) {
	if n.sync == nil {
		http.Error(w, "sync service unavailable", http.StatusServiceUnavailable)
		return
	}
	trackID := chi.URLParam(r, "trackId")

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := n.sync.SyncTrack(ctx, trackID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			http.Error(w, "track not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (n *Router) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	if n.sync == nil {
		http.Error(w, "sync service unavailable", http.StatusServiceUnavailable)
		return
	}
	trackID := chi.URLParam(r, "trackId")

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := n.sync.DeleteTrack(ctx, trackID); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
