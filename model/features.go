package model

import "math"

// AudioFeatures is an aggregate audio/taste profile, either a single
// track's fingerprint lifted into profile form or the centroid of a
// playlist's member tracks. Nil scalars and vectors mean no member
// track contributed the feature; they must stay out of similarity and
// scoring rather than defaulting to zero.
type AudioFeatures struct {
	Tempo            *float64
	Energy           *float64
	Valence          *float64
	Arousal          *float64
	Danceability     *float64
	Acousticness     *float64
	Instrumentalness *float64
	Speechiness      *float64
	Liveness         *float64
	RhythmStability  *float64
	BassPresence     *float64
	TempoRegularity  *float64
	Syncopation      *float64
	BeatStrength     *float64
	BrightnessFactor *float64
	HarmonicFactor   *float64
	SpectralBalance  *float64
	ModeFactor       *float64
	SpectralCentroid *float64
	SpectralRolloff  *float64
	ZeroCrossingRate *float64

	Mfcc        []float64
	ChromaMean  []float64
	TonnetzMean []float64

	Key                 string
	CamelotKey          string
	ValenceMood         string
	ArousalMood         string
	DanceabilityFeeling string
	Artist              string
	Album               string

	Genres         []string
	SubGenres      []string
	EnergyKeywords []string
}

// IsEmpty reports whether the profile carries no usable signal at all.
func (f AudioFeatures) IsEmpty() bool {
	return f.Tempo == nil && f.Energy == nil && f.Valence == nil &&
		f.Arousal == nil && f.Danceability == nil &&
		len(f.Mfcc) == 0 && len(f.ChromaMean) == 0 && len(f.TonnetzMean) == 0 &&
		f.Key == "" && f.CamelotKey == "" && f.Artist == "" && f.Album == "" &&
		len(f.Genres) == 0 && len(f.SubGenres) == 0 && len(f.EnergyKeywords) == 0
}

// RecommendationWeights balances the clause families of a
// recommendation request. Components are non-negative; Validate
// expects them to sum to 1 within a small tolerance.
type RecommendationWeights struct {
	AudioSimilarity      float64 `json:"audioSimilarity"`
	GenreSimilarity      float64 `json:"genreSimilarity"`
	MetadataSimilarity   float64 `json:"metadataSimilarity"`
	UserBehavior         float64 `json:"userBehavior"`
	AudioFeatures        float64 `json:"audioFeatures"`
	AIMetadataSimilarity float64 `json:"aiMetadataSimilarity"`
}

// Sum returns the total of all weight components.
func (w RecommendationWeights) Sum() float64 {
	return w.AudioSimilarity + w.GenreSimilarity + w.MetadataSimilarity +
		w.UserBehavior + w.AudioFeatures + w.AIMetadataSimilarity
}

// IsZero reports whether every component is exactly zero.
func (w RecommendationWeights) IsZero() bool {
	return w.Sum() == 0
}

// Scale returns a copy with every component multiplied by factor.
func (w RecommendationWeights) Scale(factor float64) RecommendationWeights {
	return RecommendationWeights{
		AudioSimilarity:      w.AudioSimilarity * factor,
		GenreSimilarity:      w.GenreSimilarity * factor,
		MetadataSimilarity:   w.MetadataSimilarity * factor,
		UserBehavior:         w.UserBehavior * factor,
		AudioFeatures:        w.AudioFeatures * factor,
		AIMetadataSimilarity: w.AIMetadataSimilarity * factor,
	}
}

// SumsToOne reports whether the components sum to 1 within tolerance.
func (w RecommendationWeights) SumsToOne(tolerance float64) bool {
	return math.Abs(w.Sum()-1.0) <= tolerance
}

// TrackSimilarity is one ranked recommendation. Similarity is the
// store's raw composite score: unbounded, and only comparable to other
// scores from the same request.
type TrackSimilarity struct {
	Track      Track    `json:"track"`
	Similarity float64  `json:"similarity"`
	Reasons    []string `json:"reasons"`
}
