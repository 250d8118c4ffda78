// Package engine orchestrates the recommendation pipeline: aggregate a
// profile from seed tracks, compile it into one composite retrieval
// request, run it against the feature store, and explain the results.
package engine

import (
	"context"
	"fmt"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/profile"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/query"
)

// FeatureStore is the search side of the feature vector store.
type FeatureStore interface {
	Search(ctx context.Context, req *query.Request) ([]elastic.Hit, error)
}

// Config holds engine configuration. DefaultWeights is the one
// canonical default vector; it is injected here instead of living as a
// shared module constant.
type Config struct {
	DefaultLimit   int
	DefaultWeights model.RecommendationWeights
	MetadataClause bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 20,
		DefaultWeights: model.RecommendationWeights{
			AudioSimilarity:      0.30,
			GenreSimilarity:      0.20,
			MetadataSimilarity:   0.10,
			UserBehavior:         0.10,
			AudioFeatures:        0.20,
			AIMetadataSimilarity: 0.10,
		},
		MetadataClause: true,
	}
}

// RequestOptions carries the caller-adjustable knobs of one request.
// A nil Weights means the configured default vector; supplied weights
// are used as-is, never normalized implicitly.
type RequestOptions struct {
	Weights    *model.RecommendationWeights
	Limit      int
	ExcludeIDs []string
}

// Engine computes recommendations against the feature store.
type Engine struct {
	config Config
	ds     model.DataStore
	store  FeatureStore
}

// New creates an Engine.
func New(cfg Config, ds model.DataStore, store FeatureStore) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if cfg.DefaultWeights.IsZero() {
		cfg.DefaultWeights = DefaultConfig().DefaultWeights
	}
	return &Engine{config: cfg, ds: ds, store: store}
}

// ForPlaylist recommends tracks matching the aggregate profile of a
// playlist's member tracks. Members are always excluded from results.
// An empty playlist yields an empty result, not an error.
func (e *Engine) ForPlaylist(ctx context.Context, playlistID string, opts RequestOptions) ([]model.TrackSimilarity, error) {
	tracks, err := e.ds.Playlist(ctx).GetTracks(playlistID)
	if err != nil {
		return nil, fmt.Errorf("get playlist tracks %s: %w", playlistID, err)
	}
	if len(tracks) == 0 {
		log.Debug(ctx, "Playlist has no tracks, skipping recommendations", "playlistId", playlistID)
		return []model.TrackSimilarity{}, nil
	}

	return e.recommend(ctx, tracks, opts)
}

// ForTrack recommends tracks similar to a single seed track.
func (e *Engine) ForTrack(ctx context.Context, trackID string, opts RequestOptions) ([]model.TrackSimilarity, error) {
	track, err := e.ds.Track(ctx).Get(trackID)
	if err != nil {
		return nil, fmt.Errorf("get track %s: %w", trackID, err)
	}

	return e.recommend(ctx, model.Tracks{*track}, opts)
}

func (e *Engine) recommend(ctx context.Context, seeds model.Tracks, opts RequestOptions) ([]model.TrackSimilarity, error) {
	weights := e.config.DefaultWeights
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}

	prof := profile.Aggregate(seeds)
	if prof.IsEmpty() {
		// Seeds without fingerprints or tags degrade to a match-all
		// retrieval with exclusions; results are arbitrary but valid.
		log.Warn(ctx, "Seed tracks carry no usable features, query degrades to match-all",
			"seeds", len(seeds))
	}

	exclude := excludeSet(seeds, opts.ExcludeIDs)

	req := query.Build(prof, weights, query.Options{
		Limit:          limit,
		ExcludeIDs:     exclude,
		MetadataClause: e.config.MetadataClause,
	})

	log.Debug(ctx, "Running recommendation query",
		"seeds", len(seeds),
		"limit", limit,
		"excluded", len(exclude),
		"knnClauses", len(req.Knn),
		"shouldClauses", len(req.Should),
	)

	hits, err := e.store.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recommendation search: %w", err)
	}

	results := make([]model.TrackSimilarity, 0, len(hits))
	for _, hit := range hits {
		results = append(results, model.TrackSimilarity{
			Track:      mapHit(hit),
			Similarity: hit.Score,
			Reasons:    reasonsFor(prof, hit.Source, weights),
		})
	}

	log.Debug(ctx, "Recommendations generated", "results", len(results))
	return results, nil
}

// excludeSet merges seed ids with caller exclusions, deduplicated,
// seeds first.
func excludeSet(seeds model.Tracks, extra []string) []string {
	seen := make(map[string]struct{}, len(seeds)+len(extra))
	out := make([]string, 0, len(seeds)+len(extra))
	for i := range seeds {
		id := seeds[i].ID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range extra {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
