package model

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
)

// ErrNotFound is returned by repositories when an entity does not exist.
var ErrNotFound = errors.New("data not found")

// QueryOptions narrows repository reads. Filters takes any squirrel
// expression, letting callers compose conditions without the repository
// knowing about them.
type QueryOptions struct {
	Sort    string
	Order   string
	Max     int
	Offset  int
	Filters squirrel.Sqlizer
}

// DataStore is the persistence boundary. Implementations live outside
// this module; the recommender only reads through it.
type DataStore interface {
	Track(ctx context.Context) TrackRepository
	Playlist(ctx context.Context) PlaylistRepository
}

// TrackRepository reads catalog tracks with their fingerprint and
// genre/subgenre tags attached. Any subset of fields may be null.
type TrackRepository interface {
	Get(id string) (*Track, error)
	GetAll(options ...QueryOptions) (Tracks, error)
	CountAll(options ...QueryOptions) (int64, error)
	Exists(id string) (bool, error)
}

// PlaylistRepository reads playlists and their member tracks as a
// point-in-time snapshot.
type PlaylistRepository interface {
	Get(id string) (*Playlist, error)
	GetTracks(id string) (Tracks, error)
}
