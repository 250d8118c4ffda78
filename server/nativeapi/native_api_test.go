package nativeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlessandroMarelli-pro/muzo-sub001/conf"
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/docsync"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/engine"
)

type fakeEngine struct {
	results      []model.TrackSimilarity
	err          error
	lastID       string
	lastOpts     recommender.RequestOptions
	lastEndpoint string
}

func (f *fakeEngine) ForPlaylist(_ context.Context, id string, opts recommender.RequestOptions) ([]model.TrackSimilarity, error) {
	f.lastEndpoint = "playlist"
	f.lastID = id
	f.lastOpts = opts
	return f.results, f.err
}

func (f *fakeEngine) ForTrack(_ context.Context, id string, opts recommender.RequestOptions) ([]model.TrackSimilarity, error) {
	f.lastEndpoint = "track"
	f.lastID = id
	f.lastOpts = opts
	return f.results, f.err
}

func (f *fakeEngine) ValidateWeights(w model.RecommendationWeights) bool {
	return engine.ValidateWeights(w)
}

func (f *fakeEngine) NormalizeWeights(w model.RecommendationWeights) model.RecommendationWeights {
	return engine.NormalizeWeights(w, engine.DefaultConfig().DefaultWeights)
}

type fakeSync struct {
	runID   string
	err     heldError
	synced  []string
	deleted []string
}

type heldError struct {
	start  error
	track  error
	delete error
}

func (f *fakeSync) SyncTrack(_ context.Context, trackID string) error {
	f.synced = append(f.synced, trackID)
	return f.err.track
}

func (f *fakeSync) DeleteTrack(_ context.Context, trackID string) error {
	f.deleted = append(f.deleted, trackID)
	return f.err.delete
}

func (f *fakeSync) SyncAll(context.Context, recommender.SyncOptions) (recommender.SyncStats, error) {
	return recommender.SyncStats{}, nil
}

func (f *fakeSync) StartResync(recommender.SyncOptions) (string, error) {
	return f.runID, f.err.start
}

func (f *fakeSync) Running() bool { return false }

func setupConf(t *testing.T) {
	t.Helper()
	prev := conf.Server.Recommendations
	conf.Server.Recommendations.DefaultLimit = 20
	conf.Server.Recommendations.MaxLimit = 100
	t.Cleanup(func() { conf.Server.Recommendations = prev })
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestNormalizeLimit(t *testing.T) {
	setupConf(t)
	if got := normalizeLimit(0); got != 20 {
		t.Fatalf("expected default limit 20, got %d", got)
	}
	if got := normalizeLimit(42); got != 42 {
		t.Fatalf("expected limit 42, got %d", got)
	}
	if got := normalizeLimit(500); got != 100 {
		t.Fatalf("expected cap at 100, got %d", got)
	}
}

func TestPlaylistRecommendations(t *testing.T) {
	setupConf(t)
	eng := &fakeEngine{results: []model.TrackSimilarity{
		{Track: model.Track{ID: "t1"}, Similarity: 7.5, Reasons: []string{"Same genre: House"}},
	}}
	router := New(eng, &fakeSync{})

	w := postJSON(t, router, "/recommendations/playlist/pl1", `{"limit": 500, "excludeIds": ["x"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if eng.lastEndpoint != "playlist" || eng.lastID != "pl1" {
		t.Fatalf("unexpected engine call: %s %s", eng.lastEndpoint, eng.lastID)
	}
	if eng.lastOpts.Limit != 100 {
		t.Fatalf("expected capped limit 100, got %d", eng.lastOpts.Limit)
	}
	if len(eng.lastOpts.ExcludeIDs) != 1 || eng.lastOpts.ExcludeIDs[0] != "x" {
		t.Fatalf("unexpected exclude ids: %#v", eng.lastOpts.ExcludeIDs)
	}

	var resp recommendationResponsePayload
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "pl1" || resp.Count != 1 {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if resp.Results[0].Similarity != 7.5 {
		t.Fatalf("expected raw similarity 7.5, got %f", resp.Results[0].Similarity)
	}
}

func TestTrackRecommendationsPassesWeights(t *testing.T) {
	setupConf(t)
	eng := &fakeEngine{}
	router := New(eng, &fakeSync{})

	w := postJSON(t, router, "/recommendations/track/t9",
		`{"weights": {"audioSimilarity": 1.0}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if eng.lastEndpoint != "track" || eng.lastID != "t9" {
		t.Fatalf("unexpected engine call: %s %s", eng.lastEndpoint, eng.lastID)
	}
	if eng.lastOpts.Weights == nil || eng.lastOpts.Weights.AudioSimilarity != 1.0 {
		t.Fatalf("expected weights to pass through, got %#v", eng.lastOpts.Weights)
	}
}

func TestRecommendationsNotFound(t *testing.T) {
	setupConf(t)
	eng := &fakeEngine{err: model.ErrNotFound}
	router := New(eng, &fakeSync{})

	w := postJSON(t, router, "/recommendations/playlist/nope", `{}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRecommendationsStoreError(t *testing.T) {
	setupConf(t)
	eng := &fakeEngine{err: errors.New("cluster down")}
	router := New(eng, &fakeSync{})

	w := postJSON(t, router, "/recommendations/track/t1", `{}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestRecommendationsInvalidJSON(t *testing.T) {
	setupConf(t)
	router := New(&fakeEngine{}, &fakeSync{})

	w := postJSON(t, router, "/recommendations/playlist/pl1", `{"limit": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestValidateWeights(t *testing.T) {
	setupConf(t)
	router := New(&fakeEngine{}, &fakeSync{})

	w := postJSON(t, router, "/weights/validate",
		`{"weights": {"audioSimilarity": 0.5, "genreSimilarity": 0.5}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp validateWeightsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Valid || resp.Sum != 1.0 {
		t.Fatalf("expected valid sum 1.0, got %#v", resp)
	}
}

func TestNormalizeWeightsEndpoint(t *testing.T) {
	setupConf(t)
	router := New(&fakeEngine{}, &fakeSync{})

	w := postJSON(t, router, "/weights/normalize",
		`{"weights": {"audioSimilarity": 2, "genreSimilarity": 2}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp normalizeWeightsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Weights.AudioSimilarity != 0.5 || resp.Weights.GenreSimilarity != 0.5 {
		t.Fatalf("unexpected normalized weights: %#v", resp.Weights)
	}
}

func TestResyncAccepted(t *testing.T) {
	setupConf(t)
	router := New(&fakeEngine{}, &fakeSync{runID: "run-1"})

	w := postJSON(t, router, "/sync/", `{"libraryId": "lib1"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "run-1") {
		t.Fatalf("expected run id in body, got %s", w.Body.String())
	}
}

func TestResyncConflict(t *testing.T) {
	setupConf(t)
	router := New(&fakeEngine{}, &fakeSync{err: heldError{start: docsync.ErrResyncRunning}})

	w := postJSON(t, router, "/sync/", `{}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestSyncTrack(t *testing.T) {
	setupConf(t)
	syncer := &fakeSync{}
	router := New(&fakeEngine{}, syncer)

	w := postJSON(t, router, "/sync/t1", `{}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(syncer.synced) != 1 || syncer.synced[0] != "t1" {
		t.Fatalf("unexpected synced ids: %#v", syncer.synced)
	}
}

func TestSyncTrackNotFound(t *testing.T) {
	setupConf(t)
	router := New(&fakeEngine{}, &fakeSync{err: heldError{track: model.ErrNotFound}})

	w := postJSON(t, router, "/sync/nope", `{}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteTrackFromIndex(t *testing.T) {
	setupConf(t)
	syncer := &fakeSync{}
	router := New(&fakeEngine{}, syncer)

	req := httptest.NewRequest(http.MethodDelete, "/sync/t2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(syncer.deleted) != 1 || syncer.deleted[0] != "t2" {
		t.Fatalf("unexpected deleted ids: %#v", syncer.deleted)
	}
}
