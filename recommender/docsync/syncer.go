package docsync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
)

// ErrResyncRunning is returned when a full resync is requested while a
// previous run is still in flight. Only one run executes at a time.
var ErrResyncRunning = errors.New("resync already running")

// Indexer is the write side of the feature vector store.
type Indexer interface {
	IndexTrack(ctx context.Context, doc elastic.TrackDocument) error
	DeleteTrack(ctx context.Context, id string) error
	BulkIndex(ctx context.Context, docs []elastic.TrackDocument) (elastic.BulkStats, error)
}

// Config holds syncer configuration.
type Config struct {
	BatchSize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{BatchSize: 500}
}

// ResyncOptions narrows a full resync. An empty LibraryID means the
// whole catalog.
type ResyncOptions struct {
	LibraryID string
}

// Syncer pushes catalog tracks into the search index.
type Syncer struct {
	config Config
	ds     model.DataStore
	store  Indexer

	mu      sync.Mutex
	running bool
}

// New creates a Syncer.
func New(cfg Config, ds model.DataStore, store Indexer) *Syncer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	return &Syncer{config: cfg, ds: ds, store: store}
}

// SyncTrack reindexes a single track, replacing any previous document.
func (s *Syncer) SyncTrack(ctx context.Context, trackID string) error {
	track, err := s.ds.Track(ctx).Get(trackID)
	if err != nil {
		return fmt.Errorf("get track %s: %w", trackID, err)
	}
	if err := s.store.IndexTrack(ctx, BuildDocument(*track)); err != nil {
		return fmt.Errorf("sync track %s: %w", trackID, err)
	}
	log.Debug(ctx, "Track synced to index", "trackId", trackID)
	return nil
}

// DeleteTrack removes a track's document. Unknown ids are not an error.
func (s *Syncer) DeleteTrack(ctx context.Context, trackID string) error {
	if err := s.store.DeleteTrack(ctx, trackID); err != nil {
		return fmt.Errorf("delete track %s from index: %w", trackID, err)
	}
	log.Debug(ctx, "Track removed from index", "trackId", trackID)
	return nil
}

// SyncAll reindexes the catalog in pages, accumulating bulk stats. Item
// failures are logged and counted, not rolled back.
func (s *Syncer) SyncAll(ctx context.Context, opts ResyncOptions) (elastic.BulkStats, error) {
	var total elastic.BulkStats
	repo := s.ds.Track(ctx)

	qo := model.QueryOptions{Sort: "id", Max: s.config.BatchSize}
	if opts.LibraryID != "" {
		qo.Filters = squirrel.Eq{"library_id": opts.LibraryID}
	}

	for {
		tracks, err := repo.GetAll(qo)
		if err != nil {
			return total, fmt.Errorf("read track page at %d: %w", qo.Offset, err)
		}
		if len(tracks) == 0 {
			return total, nil
		}

		docs := make([]elastic.TrackDocument, 0, len(tracks))
		for i := range tracks {
			docs = append(docs, BuildDocument(tracks[i]))
		}

		stats, err := s.store.BulkIndex(ctx, docs)
		total.Indexed += stats.Indexed
		total.Failed += stats.Failed
		if err != nil {
			return total, fmt.Errorf("bulk index page at %d: %w", qo.Offset, err)
		}

		log.Debug(ctx, "Resync page indexed",
			"offset", qo.Offset,
			"pageSize", len(tracks),
			"indexed", total.Indexed,
			"failed", total.Failed,
		)
		qo.Offset += len(tracks)
	}
}

// StartResync runs SyncAll in the background and returns the run id.
// A second call while a run is in flight returns ErrResyncRunning.
func (s *Syncer) StartResync(opts ResyncOptions) (string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "", ErrResyncRunning
	}
	s.running = true
	s.mu.Unlock()

	runID := uuid.NewString()
	go s.resync(runID, opts)
	return runID, nil
}

// Running reports whether a background resync is in flight.
func (s *Syncer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Syncer) resync(runID string, opts ResyncOptions) {
	ctx := log.NewContext(context.Background(), "runId", runID)

	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "Resync panicked", "error", r)
		}
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Info(ctx, "Resync started", "libraryId", opts.LibraryID)
	stats, err := s.SyncAll(ctx, opts)
	if err != nil {
		log.Error(ctx, "Resync failed", err, "indexed", stats.Indexed, "failed", stats.Failed)
		return
	}
	log.Info(ctx, "Resync finished", "indexed", stats.Indexed, "failed", stats.Failed)
}
