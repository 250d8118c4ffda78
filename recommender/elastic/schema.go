package elastic

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
)

// trackIndexMapping defines the track document schema. Embedding fields
// are dense vectors under cosine similarity; tags and keys are keyword
// fields so they match exactly; display text stays analyzed for the
// fuzzy metadata clause.
var trackIndexMapping = fmt.Sprintf(`{
  "mappings": {
    "properties": {
      "id": {"type": "keyword"},
      "title": {"type": "text"},
      "artist": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "album": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "genres": {"type": "keyword"},
      "subgenres": {"type": "keyword"},
      "duration": {"type": "float"},
      "listening_count": {"type": "long"},
      "is_favorite": {"type": "boolean"},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"},
      "audio_fingerprint": {
        "properties": {
          "mfcc": {"type": "dense_vector", "dims": %d, "index": true, "similarity": "cosine"},
          "chroma": {"properties": {"mean": {"type": "dense_vector", "dims": %d, "index": true, "similarity": "cosine"}}},
          "tonnetz": {"properties": {"mean": {"type": "dense_vector", "dims": %d, "index": true, "similarity": "cosine"}}},
          "tempo": {"type": "float"},
          "key": {"type": "keyword"},
          "camelot_key": {"type": "keyword"},
          "valence": {"type": "float"},
          "valence_mood": {"type": "keyword"},
          "arousal": {"type": "float"},
          "arousal_mood": {"type": "keyword"},
          "danceability": {"type": "float"},
          "danceability_feeling": {"type": "keyword"},
          "rhythm_stability": {"type": "float"},
          "bass_presence": {"type": "float"},
          "tempo_regularity": {"type": "float"},
          "energy_factor": {"type": "float"},
          "syncopation": {"type": "float"},
          "acousticness": {"type": "float"},
          "instrumentalness": {"type": "float"},
          "speechiness": {"type": "float"},
          "liveness": {"type": "float"},
          "mode_factor": {"type": "float"},
          "brightness_factor": {"type": "float"},
          "harmonic_factor": {"type": "float"},
          "spectral_balance": {"type": "float"},
          "beat_strength": {"type": "float"},
          "spectral_centroid": {"type": "float"},
          "spectral_rolloff": {"type": "float"},
          "zero_crossing_rate": {"type": "float"},
          "energy_keywords": {"type": "keyword"}
        }
      }
    }
  }
}`, model.DimMfcc, model.DimChroma, model.DimTonnetz)

// EnsureIndex creates the track index if it does not exist.
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := c.es.Indices.Exists([]string{c.config.Index},
		c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", c.config.Index, err)
	}
	defer exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	log.Info(ctx, "Creating track index", "index", c.config.Index)

	res, err := c.es.Indices.Create(c.config.Index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(trackIndexMapping)))
	if err != nil {
		return fmt.Errorf("create index %s: %w", c.config.Index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		// A concurrent creator winning the race is fine.
		if strings.Contains(res.String(), "resource_already_exists_exception") {
			return nil
		}
		return readError(fmt.Sprintf("create index %s", c.config.Index), res)
	}
	return nil
}
