package recommender

import (
	"context"

	"github.com/google/wire"

	"github.com/AlessandroMarelli-pro/muzo-sub001/conf"
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/docsync"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/engine"
)

// Set provides all recommender dependencies for Wire.
var Set = wire.NewSet(
	NewElasticClient,
	NewEngine,
	NewSyncer,
	wire.Bind(new(Engine), new(*engine.Engine)),
	wire.Bind(new(DocumentSync), new(*docsync.Syncer)),
	wire.Bind(new(engine.FeatureStore), new(*elastic.Client)),
	wire.Bind(new(docsync.Indexer), new(*elastic.Client)),
)

// NewElasticClient creates the feature vector store client from
// configuration, verifying the cluster is reachable.
func NewElasticClient() (*elastic.Client, error) {
	cfg := elastic.Config{
		Addresses: []string{conf.Server.Recommendations.ElasticURI},
		Username:  conf.Server.Recommendations.ElasticUsername,
		Password:  conf.Server.Recommendations.ElasticPassword,
		Index:     conf.Server.Recommendations.IndexName,
		Timeout:   conf.Server.Recommendations.Timeout,
	}
	if conf.Server.Recommendations.ElasticURI == "" {
		cfg.Addresses = nil
	}
	return elastic.NewClient(context.Background(), cfg)
}

// NewEngine creates the recommendation engine from configuration.
func NewEngine(ds model.DataStore, store engine.FeatureStore) *engine.Engine {
	w := conf.Server.Recommendations.DefaultWeights
	cfg := engine.Config{
		DefaultLimit: conf.Server.Recommendations.DefaultLimit,
		DefaultWeights: model.RecommendationWeights{
			AudioSimilarity:      w.AudioSimilarity,
			GenreSimilarity:      w.GenreSimilarity,
			MetadataSimilarity:   w.MetadataSimilarity,
			UserBehavior:         w.UserBehavior,
			AudioFeatures:        w.AudioFeatures,
			AIMetadataSimilarity: w.AIMetadataSimilarity,
		},
		MetadataClause: conf.Server.Recommendations.MetadataClause,
	}
	return engine.New(cfg, ds, store)
}

// NewSyncer creates the document syncer from configuration.
func NewSyncer(ds model.DataStore, store docsync.Indexer) *docsync.Syncer {
	cfg := docsync.Config{
		BatchSize: conf.Server.Recommendations.SyncBatchSize,
	}
	return docsync.New(cfg, ds, store)
}
