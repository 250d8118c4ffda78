package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/query"
)

// searchResponse mirrors the subset of the search API response the
// engine consumes.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Score  float64         `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs one composite retrieval request and returns raw scored
// hits. The score is the store's own composite value; it is not
// normalized here and is only comparable within a single request.
func (c *Client) Search(ctx context.Context, req *query.Request) ([]Hit, error) {
	if req == nil {
		return nil, fmt.Errorf("nil search request")
	}
	if err := c.ensureIndex(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	log.Debug(ctx, "Searching track index",
		"index", c.config.Index,
		"size", req.Size,
		"knnClauses", len(req.Knn),
		"shouldClauses", len(req.Should),
		"scoringFunctions", len(req.Functions),
	)

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.config.Index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		log.Error(ctx, "Track search failed", "index", c.config.Index, err)
		return nil, fmt.Errorf("search %s: %w", c.config.Index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		err := readError(fmt.Sprintf("search %s", c.config.Index), res)
		log.Error(ctx, "Track search returned error", "index", c.config.Index, err)
		return nil, err
	}

	hits, err := decodeHits(ctx, res.Body)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "Search complete", "index", c.config.Index, "hits", len(hits))
	return hits, nil
}

func decodeHits(ctx context.Context, body io.Reader) ([]Hit, error) {
	var parsed searchResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		var doc TrackDocument
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			log.Warn(ctx, "Skipping malformed hit", "id", h.ID, err)
			continue
		}
		if doc.ID == "" {
			doc.ID = h.ID
		}
		hits = append(hits, Hit{ID: h.ID, Score: h.Score, Source: doc})
	}
	return hits, nil
}
