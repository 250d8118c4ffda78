package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
)

// IndexTrack writes one track document, replacing any previous version.
// Indexing is idempotent: writing the same document twice yields the
// same stored state.
func (c *Client) IndexTrack(ctx context.Context, doc TrackDocument) error {
	if doc.ID == "" {
		return fmt.Errorf("track document missing id")
	}
	if err := c.ensureIndex(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode track document %s: %w", doc.ID, err)
	}

	res, err := c.es.Index(c.config.Index, bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(doc.ID))
	if err != nil {
		return fmt.Errorf("index track %s: %w", doc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return readError(fmt.Sprintf("index track %s", doc.ID), res)
	}
	return nil
}

// DeleteTrack removes a track document. Deleting an unknown id is not
// an error.
func (c *Client) DeleteTrack(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("track id is empty")
	}
	if err := c.ensureIndex(ctx); err != nil {
		return err
	}

	res, err := c.es.Delete(c.config.Index, id,
		c.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete track %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return readError(fmt.Sprintf("delete track %s", id), res)
	}
	return nil
}

// BulkStats summarizes one bulk indexing run.
type BulkStats struct {
	Indexed int64
	Failed  int64
}

// BulkIndex writes many track documents through the bulk API. Item
// failures are logged and counted, not rolled back; the first transport
// level error aborts the run.
func (c *Client) BulkIndex(ctx context.Context, docs []TrackDocument) (BulkStats, error) {
	if len(docs) == 0 {
		return BulkStats{}, nil
	}
	if err := c.ensureIndex(ctx); err != nil {
		return BulkStats{}, err
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client: c.es,
		Index:  c.config.Index,
	})
	if err != nil {
		return BulkStats{}, fmt.Errorf("create bulk indexer: %w", err)
	}

	for _, doc := range docs {
		if doc.ID == "" {
			log.Warn(ctx, "Skipping track document without id")
			continue
		}
		body, err := json.Marshal(doc)
		if err != nil {
			log.Warn(ctx, "Skipping unencodable track document", "id", doc.ID, err)
			continue
		}
		err = indexer.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Warn(ctx, "Bulk index item failed", "id", item.DocumentID, err)
					return
				}
				log.Warn(ctx, "Bulk index item rejected",
					"id", item.DocumentID,
					"status", res.Status,
					"reason", res.Error.Reason,
				)
			},
		})
		if err != nil {
			_ = indexer.Close(ctx)
			return BulkStats{}, fmt.Errorf("add track %s to bulk: %w", doc.ID, err)
		}
	}

	if err := indexer.Close(ctx); err != nil {
		return BulkStats{}, fmt.Errorf("flush bulk indexer: %w", err)
	}

	stats := indexer.Stats()
	return BulkStats{
		Indexed: int64(stats.NumFlushed),
		Failed:  int64(stats.NumFailed),
	}, nil
}

// Count returns the number of documents in the track index.
func (c *Client) Count(ctx context.Context) (int64, error) {
	if err := c.ensureIndex(ctx); err != nil {
		return 0, err
	}

	res, err := c.es.Count(
		c.es.Count.WithContext(ctx),
		c.es.Count.WithIndex(c.config.Index))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.config.Index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, readError(fmt.Sprintf("count %s", c.config.Index), res)
	}

	var out struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return out.Count, nil
}
