package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
)

func ptr(v float64) *float64 { return &v }

func TestAggregateEmptyPlaylist(t *testing.T) {
	p := Aggregate(nil)
	assert.True(t, p.IsEmpty())

	p = Aggregate(model.Tracks{})
	assert.True(t, p.IsEmpty())
}

func TestAggregateTempoUsesTempoPresenceCount(t *testing.T) {
	// Three tracks, all fingerprinted, one without tempo: the tempo mean
	// divides by 2, not 3.
	tracks := model.Tracks{
		{ID: "a", Fingerprint: &model.AudioFingerprint{Tempo: ptr(120), Energy: ptr(0.6)}},
		{ID: "b", Fingerprint: &model.AudioFingerprint{Tempo: ptr(130), Energy: ptr(0.8)}},
		{ID: "c", Fingerprint: &model.AudioFingerprint{Energy: ptr(0.4)}},
	}

	p := Aggregate(tracks)
	require.NotNil(t, p.Tempo)
	assert.InDelta(t, 125.0, *p.Tempo, 0.001)
}

func TestAggregateScalarsDivideByFingerprintedCount(t *testing.T) {
	// Track c has no fingerprint at all: it contributes nothing and is
	// excluded from the divisor. Track b has a fingerprint without
	// energy: it still counts toward the divisor.
	tracks := model.Tracks{
		{ID: "a", Fingerprint: &model.AudioFingerprint{Energy: ptr(0.9)}},
		{ID: "b", Fingerprint: &model.AudioFingerprint{Valence: ptr(0.5)}},
		{ID: "c"},
	}

	p := Aggregate(tracks)
	require.NotNil(t, p.Energy)
	assert.InDelta(t, 0.45, *p.Energy, 0.001)
	require.NotNil(t, p.Valence)
	assert.InDelta(t, 0.25, *p.Valence, 0.001)
	assert.Nil(t, p.Danceability)
}

func TestAggregateVectorAveraging(t *testing.T) {
	v1 := make([]float64, model.DimTonnetz)
	v2 := make([]float64, model.DimTonnetz)
	v1[0] = 1
	v2[5] = 1

	forward := model.Tracks{
		{ID: "a", Fingerprint: &model.AudioFingerprint{TonnetzMeanJSON: model.EncodeVector(v1)}},
		{ID: "b", Fingerprint: &model.AudioFingerprint{TonnetzMeanJSON: model.EncodeVector(v2)}},
	}
	reversed := model.Tracks{forward[1], forward[0]}

	p1 := Aggregate(forward)
	p2 := Aggregate(reversed)

	require.Len(t, p1.TonnetzMean, model.DimTonnetz)
	assert.InDelta(t, 0.5, p1.TonnetzMean[0], 0.001)
	assert.InDelta(t, 0.5, p1.TonnetzMean[5], 0.001)
	assert.Equal(t, p1.TonnetzMean, p2.TonnetzMean, "averaging must be order-independent")
}

func TestAggregateDiscardsWrongLengthVectors(t *testing.T) {
	good := make([]float64, model.DimMfcc)
	good[0] = 2
	tracks := model.Tracks{
		{ID: "a", Fingerprint: &model.AudioFingerprint{MfccJSON: model.EncodeVector(good)}},
		{ID: "b", Fingerprint: &model.AudioFingerprint{MfccJSON: "[1, 2, 3]"}}, // wrong length
		{ID: "c", Fingerprint: &model.AudioFingerprint{MfccJSON: "corrupt"}},
	}

	p := Aggregate(tracks)
	require.Len(t, p.Mfcc, model.DimMfcc)
	assert.InDelta(t, 2.0, p.Mfcc[0], 0.001, "only the well-formed vector contributes")
}

func TestAggregateCategoricalMode(t *testing.T) {
	tracks := model.Tracks{
		{ID: "a", Fingerprint: &model.AudioFingerprint{CamelotKey: "8A", Key: "A minor"}},
		{ID: "b", Fingerprint: &model.AudioFingerprint{CamelotKey: "8A", Key: "C major"}},
		{ID: "c", Fingerprint: &model.AudioFingerprint{CamelotKey: "9B", Key: "A minor"}},
	}

	p := Aggregate(tracks)
	assert.Equal(t, "8A", p.CamelotKey)
	assert.Equal(t, "A minor", p.Key)
}

func TestAggregateModeTieResolvesToFirstEncountered(t *testing.T) {
	tracks := model.Tracks{
		{ID: "a", Fingerprint: &model.AudioFingerprint{ValenceMood: "happy"}},
		{ID: "b", Fingerprint: &model.AudioFingerprint{ValenceMood: "sad"}},
	}

	p := Aggregate(tracks)
	assert.Equal(t, "happy", p.ValenceMood)
}

func TestAggregateGenresAreUnionNotMode(t *testing.T) {
	tracks := model.Tracks{
		{ID: "a", Genres: model.Genres{{Name: "House"}}, SubGenres: model.Genres{{Name: "Deep House"}}},
		{ID: "b", Genres: model.Genres{{Name: "House"}, {Name: "Techno"}}},
		{ID: "c"},
	}

	p := Aggregate(tracks)
	assert.Equal(t, []string{"House", "Techno"}, p.Genres)
	assert.Equal(t, []string{"Deep House"}, p.SubGenres)
}

func TestAggregateTopKeywords(t *testing.T) {
	kw := func(words ...string) *model.AudioFingerprint {
		return &model.AudioFingerprint{EnergyKeywordsJSON: model.EncodeKeywords(words)}
	}
	tracks := model.Tracks{
		{ID: "a", Fingerprint: kw("driving", "dark", "hypnotic")},
		{ID: "b", Fingerprint: kw("driving", "dark", "warm")},
		{ID: "c", Fingerprint: kw("driving", "raw", "warm", "deep", "lush")},
	}

	p := Aggregate(tracks)
	require.NotEmpty(t, p.EnergyKeywords)
	assert.Len(t, p.EnergyKeywords, 5)
	assert.Equal(t, "driving", p.EnergyKeywords[0])
	assert.Equal(t, "dark", p.EnergyKeywords[1])
	assert.Equal(t, "warm", p.EnergyKeywords[2])
}

func TestAggregateArtistAlbumUseDisplayPrecedence(t *testing.T) {
	tracks := model.Tracks{
		{ID: "a", Artist: "Tagged Artist", UserArtist: "Edited Artist"},
		{ID: "b", Artist: "Edited Artist"},
	}

	p := Aggregate(tracks)
	assert.Equal(t, "Edited Artist", p.Artist)
}

func TestAggregateSingleTrackProfile(t *testing.T) {
	tracks := model.Tracks{
		{
			ID:     "seed",
			Genres: model.Genres{{Name: "House"}},
			Fingerprint: &model.AudioFingerprint{
				Tempo:      ptr(124),
				Energy:     ptr(0.7),
				CamelotKey: "8A",
			},
		},
	}

	p := Aggregate(tracks)
	require.NotNil(t, p.Tempo)
	assert.Equal(t, 124.0, *p.Tempo)
	assert.Equal(t, "8A", p.CamelotKey)
	assert.Equal(t, []string{"House"}, p.Genres)
}
