// Package elastic provides the feature vector store client: one
// denormalized document per catalog track with scalar descriptors,
// categorical tags and fixed-length embedding vectors, searchable with
// combined k-NN, categorical and numeric-decay scoring.
package elastic

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
)

// Config holds connection settings for the search cluster.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	Timeout   time.Duration
}

// DefaultConfig returns sensible defaults for a local cluster.
func DefaultConfig() Config {
	return Config{
		Addresses: []string{"http://localhost:9200"},
		Index:     "tracks",
		Timeout:   30 * time.Second,
	}
}

// Client wraps the search cluster connection with index management.
type Client struct {
	config  Config
	es      *elasticsearch.Client
	mu      sync.Mutex
	created bool
}

// NewClient connects to the cluster and verifies it is reachable.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if len(cfg.Addresses) == 0 {
		cfg = DefaultConfig()
	}
	if cfg.Index == "" {
		cfg.Index = "tracks"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	log.Info(ctx, "Connecting to search cluster", "addresses", cfg.Addresses, "index", cfg.Index)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create search client: %w", err)
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("ping search cluster at %v: %w", cfg.Addresses, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("ping search cluster: %s", res.String())
	}

	return &Client{config: cfg, es: es}, nil
}

// Index returns the configured index name.
func (c *Client) Index() string {
	return c.config.Index
}

// Raw returns the underlying client for advanced operations.
func (c *Client) Raw() *elasticsearch.Client {
	return c.es
}

// ensureIndex creates the track index on first use.
func (c *Client) ensureIndex(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.created {
		return nil
	}
	if err := c.EnsureIndex(ctx); err != nil {
		return err
	}
	c.created = true
	return nil
}

// readError drains an error response into a descriptive error.
func readError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("%s: status %s: %s", op, res.Status(), string(body))
}
