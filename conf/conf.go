// Package conf holds the server configuration, loaded from file,
// environment and defaults via viper. Access goes through the global
// conf.Server after Load has run.
package conf

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/AlessandroMarelli-pro/muzo-sub001/log"
)

type configOptions struct {
	Address  string
	Port     int
	LogLevel string

	Recommendations recommendationsOptions
}

type recommendationsOptions struct {
	ElasticURI      string
	ElasticUsername string
	ElasticPassword string
	IndexName       string
	Timeout         time.Duration
	DefaultLimit    int
	MaxLimit        int
	SyncBatchSize   int
	MetadataClause  bool

	// DefaultWeights is the canonical weight vector applied when a
	// request carries none, and the fallback for normalizing an
	// all-zero vector.
	DefaultWeights weightsOptions
}

type weightsOptions struct {
	AudioSimilarity      float64
	GenreSimilarity      float64
	MetadataSimilarity   float64
	UserBehavior         float64
	AudioFeatures        float64
	AIMetadataSimilarity float64
}

// Server is the global configuration, populated by Load.
var Server = &configOptions{}

// Load reads configuration from the optional config file and the
// environment (prefix MUZO_) into conf.Server.
func Load(confFile string) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("muzo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if confFile != "" {
		v.SetConfigFile(confFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	if err := v.Unmarshal(Server); err != nil {
		return err
	}

	log.SetLevel(Server.LogLevel)
	log.Debug(context.Background(), "Configuration loaded",
		"address", Server.Address,
		"port", Server.Port,
		"elasticURI", Server.Recommendations.ElasticURI,
		"index", Server.Recommendations.IndexName,
	)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("address", "0.0.0.0")
	v.SetDefault("port", 4633)
	v.SetDefault("loglevel", "info")

	v.SetDefault("recommendations.elasticuri", "http://localhost:9200")
	v.SetDefault("recommendations.elasticusername", "")
	v.SetDefault("recommendations.elasticpassword", "")
	v.SetDefault("recommendations.indexname", "tracks")
	v.SetDefault("recommendations.timeout", 30*time.Second)
	v.SetDefault("recommendations.defaultlimit", 20)
	v.SetDefault("recommendations.maxlimit", 100)
	v.SetDefault("recommendations.syncbatchsize", 500)
	v.SetDefault("recommendations.metadataclause", true)

	v.SetDefault("recommendations.defaultweights.audiosimilarity", 0.30)
	v.SetDefault("recommendations.defaultweights.genresimilarity", 0.20)
	v.SetDefault("recommendations.defaultweights.metadatasimilarity", 0.10)
	v.SetDefault("recommendations.defaultweights.userbehavior", 0.10)
	v.SetDefault("recommendations.defaultweights.audiofeatures", 0.20)
	v.SetDefault("recommendations.defaultweights.aimetadatasimilarity", 0.10)
}
