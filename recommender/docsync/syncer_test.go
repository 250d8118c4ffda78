package docsync

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
)

func ptr(v float64) *float64 { return &v }

type fakeTrackRepo struct {
	tracks      model.Tracks
	lastOptions []model.QueryOptions
}

func (r *fakeTrackRepo) Get(id string) (*model.Track, error) {
	for i := range r.tracks {
		if r.tracks[i].ID == id {
			return &r.tracks[i], nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *fakeTrackRepo) GetAll(options ...model.QueryOptions) (model.Tracks, error) {
	r.lastOptions = append(r.lastOptions, options...)
	if len(options) == 0 {
		return r.tracks, nil
	}
	qo := options[0]
	if qo.Offset >= len(r.tracks) {
		return nil, nil
	}
	end := qo.Offset + qo.Max
	if end > len(r.tracks) {
		end = len(r.tracks)
	}
	return r.tracks[qo.Offset:end], nil
}

func (r *fakeTrackRepo) CountAll(...model.QueryOptions) (int64, error) {
	return int64(len(r.tracks)), nil
}

func (r *fakeTrackRepo) Exists(id string) (bool, error) {
	_, err := r.Get(id)
	return err == nil, nil
}

type fakePlaylistRepo struct{}

func (fakePlaylistRepo) Get(string) (*model.Playlist, error)    { return nil, model.ErrNotFound }
func (fakePlaylistRepo) GetTracks(string) (model.Tracks, error) { return nil, model.ErrNotFound }

type fakeDataStore struct {
	trackRepo *fakeTrackRepo
}

func (ds *fakeDataStore) Track(context.Context) model.TrackRepository {
	return ds.trackRepo
}

func (ds *fakeDataStore) Playlist(context.Context) model.PlaylistRepository {
	return fakePlaylistRepo{}
}

type fakeIndexer struct {
	indexed []elastic.TrackDocument
	deleted []string
	batches [][]elastic.TrackDocument
	block   chan struct{}
}

func (f *fakeIndexer) IndexTrack(_ context.Context, doc elastic.TrackDocument) error {
	f.indexed = append(f.indexed, doc)
	return nil
}

func (f *fakeIndexer) DeleteTrack(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndexer) BulkIndex(_ context.Context, docs []elastic.TrackDocument) (elastic.BulkStats, error) {
	if f.block != nil {
		<-f.block
	}
	f.batches = append(f.batches, docs)
	return elastic.BulkStats{Indexed: int64(len(docs))}, nil
}

func TestBuildDocument(t *testing.T) {
	track := model.Track{
		ID:         "t1",
		Title:      "Original",
		UserTitle:  "Edited",
		Artist:     "Tagged Artist",
		AIAlbum:    "Guessed Album",
		Genres:     model.Genres{{Name: "House"}},
		SubGenres:  model.Genres{{Name: "Deep House"}},
		Duration:   215.5,
		IsFavorite: true,
		Fingerprint: &model.AudioFingerprint{
			Tempo:              ptr(124),
			CamelotKey:         "8A",
			MfccJSON:           "[1,2,3,4,5,6,7,8,9,10,11,12,13]",
			ChromaMeanJSON:     "not json",
			EnergyKeywordsJSON: `["driving","dark"]`,
		},
	}

	doc := BuildDocument(track)

	assert.Equal(t, "t1", doc.ID)
	assert.Equal(t, "Edited", doc.Title)
	assert.Equal(t, "Tagged Artist", doc.Artist)
	assert.Equal(t, "Guessed Album", doc.Album)
	assert.Equal(t, []string{"House"}, doc.Genres)
	assert.Equal(t, []string{"Deep House"}, doc.SubGenres)
	assert.True(t, doc.IsFavorite)

	require.NotNil(t, doc.Fingerprint.Tempo)
	assert.Equal(t, 124.0, *doc.Fingerprint.Tempo)
	assert.Equal(t, "8A", doc.Fingerprint.CamelotKey)
	assert.Len(t, doc.Fingerprint.Mfcc, model.DimMfcc)
	assert.Nil(t, doc.Fingerprint.Chroma.Mean, "corrupt column reads as absent")
	assert.Equal(t, []string{"driving", "dark"}, doc.Fingerprint.EnergyKeywords)
}

func TestBuildDocumentNoFingerprint(t *testing.T) {
	doc := BuildDocument(model.Track{ID: "bare", Title: "Bare"})
	assert.Equal(t, "bare", doc.ID)
	assert.Nil(t, doc.Fingerprint.Tempo)
	assert.Empty(t, doc.Fingerprint.Mfcc)
}

func TestSyncTrack(t *testing.T) {
	store := &fakeIndexer{}
	s := New(DefaultConfig(), &fakeDataStore{trackRepo: &fakeTrackRepo{
		tracks: model.Tracks{{ID: "t1", Title: "One"}},
	}}, store)

	require.NoError(t, s.SyncTrack(context.Background(), "t1"))
	require.Len(t, store.indexed, 1)
	assert.Equal(t, "t1", store.indexed[0].ID)

	err := s.SyncTrack(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteTrack(t *testing.T) {
	store := &fakeIndexer{}
	s := New(DefaultConfig(), &fakeDataStore{trackRepo: &fakeTrackRepo{}}, store)

	require.NoError(t, s.DeleteTrack(context.Background(), "gone"))
	assert.Equal(t, []string{"gone"}, store.deleted)
}

func TestSyncAllPages(t *testing.T) {
	tracks := make(model.Tracks, 5)
	for i := range tracks {
		tracks[i] = model.Track{ID: string(rune('a' + i))}
	}
	repo := &fakeTrackRepo{tracks: tracks}
	store := &fakeIndexer{}
	s := New(Config{BatchSize: 2}, &fakeDataStore{trackRepo: repo}, store)

	stats, err := s.SyncAll(context.Background(), ResyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Indexed)
	assert.Zero(t, stats.Failed)
	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 2)
	assert.Len(t, store.batches[2], 1)

	for _, qo := range repo.lastOptions {
		assert.Equal(t, 2, qo.Max)
		assert.Nil(t, qo.Filters)
	}
}

func TestSyncAllLibraryFilter(t *testing.T) {
	repo := &fakeTrackRepo{}
	s := New(DefaultConfig(), &fakeDataStore{trackRepo: repo}, &fakeIndexer{})

	_, err := s.SyncAll(context.Background(), ResyncOptions{LibraryID: "lib1"})
	require.NoError(t, err)
	require.NotEmpty(t, repo.lastOptions)
	assert.Equal(t, squirrel.Eq{"library_id": "lib1"}, repo.lastOptions[0].Filters)
}

func TestStartResyncSingleFlight(t *testing.T) {
	store := &fakeIndexer{block: make(chan struct{})}
	s := New(Config{BatchSize: 2}, &fakeDataStore{trackRepo: &fakeTrackRepo{
		tracks: model.Tracks{{ID: "a"}, {ID: "b"}},
	}}, store)

	runID, err := s.StartResync(ResyncOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.True(t, s.Running())

	_, err = s.StartResync(ResyncOptions{})
	assert.ErrorIs(t, err, ErrResyncRunning)

	close(store.block)
	assert.Eventually(t, func() bool { return !s.Running() },
		time.Second, 10*time.Millisecond)

	// Once the first run drained, a new one may start.
	runID2, err := s.StartResync(ResyncOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, runID, runID2)
	assert.Eventually(t, func() bool { return !s.Running() },
		time.Second, 10*time.Millisecond)
}
