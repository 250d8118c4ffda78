// Package recommender provides playlist and track recommendations over
// a feature vector store: aggregate seed tracks into an audio profile,
// retrieve similar tracks with combined vector, categorical and numeric
// proximity scoring, and explain each result in listener terms. It also
// keeps the store's documents in step with the catalog.
package recommender

import (
	"context"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/engine"
)

// RequestOptions re-exports the engine's per-request knobs.
type RequestOptions = engine.RequestOptions

// Engine generates recommendations from playlist or track seeds.
type Engine interface {
	// ForPlaylist recommends tracks matching the aggregate profile of
	// a playlist. Member tracks never appear in the results.
	ForPlaylist(ctx context.Context, playlistID string, opts RequestOptions) ([]model.TrackSimilarity, error)

	// ForTrack recommends tracks similar to a single seed track.
	ForTrack(ctx context.Context, trackID string, opts RequestOptions) ([]model.TrackSimilarity, error)

	// ValidateWeights reports whether a weight vector sums to 1 within
	// tolerance.
	ValidateWeights(w model.RecommendationWeights) bool

	// NormalizeWeights rescales a weight vector to sum to 1, falling
	// back to the configured default for an all-zero input.
	NormalizeWeights(w model.RecommendationWeights) model.RecommendationWeights
}

// DocumentSync keeps the search index in step with the catalog.
type DocumentSync interface {
	// SyncTrack reindexes one track, replacing any previous document.
	SyncTrack(ctx context.Context, trackID string) error

	// DeleteTrack removes one track's document. Unknown ids are not an
	// error.
	DeleteTrack(ctx context.Context, trackID string) error

	// SyncAll reindexes the catalog in pages and reports bulk stats.
	SyncAll(ctx context.Context, opts SyncOptions) (SyncStats, error)

	// StartResync runs SyncAll in the background, returning a run id
	// for log correlation.
	StartResync(opts SyncOptions) (string, error)

	// Running reports whether a background resync is in flight.
	Running() bool
}
