package elastic

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "hits": {
    "total": {"value": 2},
    "hits": [
      {
        "_id": "track-1",
        "_score": 4.7,
        "_source": {
          "id": "track-1",
          "title": "Some Track",
          "artist": "Some Artist",
          "genres": ["House"],
          "listening_count": 12,
          "is_favorite": true,
          "audio_fingerprint": {
            "tempo": 124.5,
            "camelot_key": "8A",
            "energy_factor": 0.7,
            "chroma": {"mean": [1,0,0,0,0,0,0,0,0,0,0,0]},
            "tonnetz": {"mean": [0.1,0.2,0.3,0.4,0.5,0.6]},
            "energy_keywords": ["driving"]
          }
        }
      },
      {
        "_id": "track-2",
        "_score": 1.2,
        "_source": {"title": "No Fingerprint"}
      }
    ]
  }
}`

func TestDecodeHits(t *testing.T) {
	hits, err := decodeHits(context.Background(), strings.NewReader(sampleResponse))
	require.NoError(t, err)
	require.Len(t, hits, 2)

	first := hits[0]
	assert.Equal(t, "track-1", first.ID)
	assert.Equal(t, 4.7, first.Score)
	assert.Equal(t, "Some Track", first.Source.Title)
	require.NotNil(t, first.Source.Fingerprint.Tempo)
	assert.Equal(t, 124.5, *first.Source.Fingerprint.Tempo)
	assert.Equal(t, "8A", first.Source.Fingerprint.CamelotKey)
	assert.Len(t, first.Source.Fingerprint.Chroma.Mean, 12)

	// Missing id in source falls back to the hit id.
	assert.Equal(t, "track-2", hits[1].Source.ID)
	assert.Nil(t, hits[1].Source.Fingerprint.Tempo)
}

func TestDecodeHitsMalformedBody(t *testing.T) {
	_, err := decodeHits(context.Background(), strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestDocumentFeaturesLift(t *testing.T) {
	hits, err := decodeHits(context.Background(), strings.NewReader(sampleResponse))
	require.NoError(t, err)

	f := hits[0].Source.Features()
	require.NotNil(t, f.Tempo)
	assert.Equal(t, 124.5, *f.Tempo)
	require.NotNil(t, f.Energy)
	assert.Equal(t, 0.7, *f.Energy)
	assert.Equal(t, "8A", f.CamelotKey)
	assert.Equal(t, []string{"House"}, f.Genres)
	assert.Equal(t, "Some Artist", f.Artist)
	assert.Equal(t, []string{"driving"}, f.EnergyKeywords)
	assert.Len(t, f.TonnetzMean, 6)
}

func TestTrackIndexMappingDimensions(t *testing.T) {
	assert.Contains(t, trackIndexMapping, `"dims": 13`)
	assert.Contains(t, trackIndexMapping, `"dims": 12`)
	assert.Contains(t, trackIndexMapping, `"dims": 6`)
	assert.Contains(t, trackIndexMapping, `"similarity": "cosine"`)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Addresses)
	assert.Equal(t, "tracks", cfg.Index)
	assert.NotZero(t, cfg.Timeout)
}
