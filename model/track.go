package model

import "time"

// Genre is a catalog genre or subgenre tag.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is a catalog track. Display metadata exists in up to three
// layers: user edits, the original file tags, and AI-inferred values.
// The Display* methods are the single source of truth for which layer
// wins.
type Track struct {
	ID        string `json:"id"`
	LibraryID string `json:"libraryId"`
	Path      string `json:"path"`

	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	UserTitle  string `json:"userTitle,omitempty"`
	UserArtist string `json:"userArtist,omitempty"`
	UserAlbum  string `json:"userAlbum,omitempty"`
	AITitle    string `json:"aiTitle,omitempty"`
	AIArtist   string `json:"aiArtist,omitempty"`
	AIAlbum    string `json:"aiAlbum,omitempty"`

	Genres    Genres  `json:"genres"`
	SubGenres Genres  `json:"subGenres"`
	Duration  float64 `json:"duration"`

	ListeningCount int64 `json:"listeningCount"`
	IsFavorite     bool  `json:"isFavorite"`

	Fingerprint *AudioFingerprint `json:"fingerprint,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayTitle resolves the title shown to users: user edit first, then
// the original tag, then the AI-inferred value.
func (t *Track) DisplayTitle() string {
	return firstNonEmpty(t.UserTitle, t.Title, t.AITitle)
}

// DisplayArtist resolves the artist with the same precedence as DisplayTitle.
func (t *Track) DisplayArtist() string {
	return firstNonEmpty(t.UserArtist, t.Artist, t.AIArtist)
}

// DisplayAlbum resolves the album with the same precedence as DisplayTitle.
func (t *Track) DisplayAlbum() string {
	return firstNonEmpty(t.UserAlbum, t.Album, t.AIAlbum)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type Tracks []Track

// IDs returns the track ids in order.
func (ts Tracks) IDs() []string {
	ids := make([]string, len(ts))
	for i := range ts {
		ids[i] = ts[i].ID
	}
	return ids
}

type Genres []Genre

// Names returns the genre names in order.
func (gs Genres) Names() []string {
	names := make([]string, len(gs))
	for i := range gs {
		names[i] = gs[i].Name
	}
	return names
}

// Playlist is a user playlist. Member tracks are fetched separately
// through PlaylistRepository.GetTracks.
type Playlist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"ownerId"`
	TrackCount int       `json:"trackCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
