package query

import "github.com/AlessandroMarelli-pro/muzo-sub001/model"

// Document field paths referenced by the builder.
const (
	FieldMfcc           = "audio_fingerprint.mfcc"
	FieldChromaMean     = "audio_fingerprint.chroma.mean"
	FieldTonnetzMean    = "audio_fingerprint.tonnetz.mean"
	FieldCamelotKey     = "audio_fingerprint.camelot_key"
	FieldEnergyKeywords = "audio_fingerprint.energy_keywords"
	FieldGenres         = "genres"
	FieldSubGenres      = "subgenres"
	FieldArtist         = "artist"
	FieldAlbum          = "album"
)

// Clause tuning. The per-embedding multipliers reflect relative
// discriminative value: timbre > pitch distribution > harmony.
const (
	DefaultLimit = 20

	knnMaxK          = 50
	knnMaxCandidates = 1000

	mfccBoostFactor    = 1.6
	chromaBoostFactor  = 1.5
	tonnetzBoostFactor = 1.3

	genreBoostFactor    = 2.0
	subGenreBoostFactor = 2.5
	camelotBoostFactor  = 3.0
	keywordBoostFactor  = 1.2
	artistBoostFactor   = 1.5
	albumBoostFactor    = 1.0

	decayRate = 0.5
)

// Options tunes a single build.
type Options struct {
	Limit          int
	ExcludeIDs     []string
	MetadataClause bool
}

// scalarSpec describes one smooth numeric proximity function: where the
// feature lives in the document, how wide the bell is, and how much the
// feature matters relative to the audio-features weight. The floor
// keeps low-weight configurations from losing the signal entirely.
type scalarSpec struct {
	field      string
	scale      float64
	offset     float64
	importance float64
	floor      float64
	value      func(model.AudioFeatures) *float64
}

// Core rhythmic/emotional features carry the largest importance and
// floors; secondary spectral descriptors the smallest.
var scalarSpecs = []scalarSpec{
	{"audio_fingerprint.tempo", 10, 2, 2.0, 0.5, func(f model.AudioFeatures) *float64 { return f.Tempo }},
	{"audio_fingerprint.energy_factor", 0.15, 0.02, 2.0, 0.5, func(f model.AudioFeatures) *float64 { return f.Energy }},
	{"audio_fingerprint.danceability", 0.15, 0.02, 2.0, 0.5, func(f model.AudioFeatures) *float64 { return f.Danceability }},
	{"audio_fingerprint.valence", 0.15, 0.02, 2.0, 0.5, func(f model.AudioFeatures) *float64 { return f.Valence }},
	{"audio_fingerprint.arousal", 0.15, 0.02, 2.0, 0.5, func(f model.AudioFeatures) *float64 { return f.Arousal }},
	{"audio_fingerprint.rhythm_stability", 0.15, 0.02, 1.2, 0.3, func(f model.AudioFeatures) *float64 { return f.RhythmStability }},
	{"audio_fingerprint.beat_strength", 0.15, 0.02, 1.2, 0.3, func(f model.AudioFeatures) *float64 { return f.BeatStrength }},
	{"audio_fingerprint.syncopation", 0.15, 0.02, 1.2, 0.3, func(f model.AudioFeatures) *float64 { return f.Syncopation }},
	{"audio_fingerprint.tempo_regularity", 0.15, 0.02, 1.2, 0.3, func(f model.AudioFeatures) *float64 { return f.TempoRegularity }},
	{"audio_fingerprint.bass_presence", 0.15, 0.02, 1.2, 0.3, func(f model.AudioFeatures) *float64 { return f.BassPresence }},
	{"audio_fingerprint.brightness_factor", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.BrightnessFactor }},
	{"audio_fingerprint.harmonic_factor", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.HarmonicFactor }},
	{"audio_fingerprint.spectral_balance", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.SpectralBalance }},
	{"audio_fingerprint.instrumentalness", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.Instrumentalness }},
	{"audio_fingerprint.speechiness", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.Speechiness }},
	{"audio_fingerprint.acousticness", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.Acousticness }},
	{"audio_fingerprint.liveness", 0.15, 0.02, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.Liveness }},
	{"audio_fingerprint.mode_factor", 0.5, 0.05, 0.8, 0.2, func(f model.AudioFeatures) *float64 { return f.ModeFactor }},
	{"audio_fingerprint.spectral_centroid", 500, 50, 0.5, 0.1, func(f model.AudioFeatures) *float64 { return f.SpectralCentroid }},
	{"audio_fingerprint.spectral_rolloff", 1000, 100, 0.5, 0.1, func(f model.AudioFeatures) *float64 { return f.SpectralRolloff }},
	{"audio_fingerprint.zero_crossing_rate", 0.05, 0.005, 0.5, 0.1, func(f model.AudioFeatures) *float64 { return f.ZeroCrossingRate }},
}

// Build compiles an aggregate profile and a weight vector into one
// composite retrieval request. A clause family is emitted only when its
// governing weight is strictly positive and the profile carries the
// required feature; the exclusion set is always applied, even when
// every clause family is inactive.
func Build(features model.AudioFeatures, weights model.RecommendationWeights, opts Options) *Request {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	req := &Request{Size: limit}
	if len(opts.ExcludeIDs) > 0 {
		req.MustNot = []Clause{IDsClause{Values: opts.ExcludeIDs}}
	}

	appendKnnClauses(req, features, weights, limit)
	appendCategoricalClauses(req, features, weights)
	appendMetadataClause(req, features, weights, opts.MetadataClause)
	appendDecayFunctions(req, features, weights)

	return req
}

func appendKnnClauses(req *Request, features model.AudioFeatures, weights model.RecommendationWeights, limit int) {
	if weights.AudioSimilarity <= 0 {
		return
	}

	k := min(limit, knnMaxK)
	candidates := min(limit*10, knnMaxCandidates)

	embeddings := []struct {
		field  string
		vector []float64
		factor float64
	}{
		{FieldMfcc, features.Mfcc, mfccBoostFactor},
		{FieldChromaMean, features.ChromaMean, chromaBoostFactor},
		{FieldTonnetzMean, features.TonnetzMean, tonnetzBoostFactor},
	}

	for _, emb := range embeddings {
		if len(emb.vector) == 0 {
			continue
		}
		req.Knn = append(req.Knn, KnnClause{
			Field:         emb.field,
			QueryVector:   emb.vector,
			K:             k,
			NumCandidates: candidates,
			Boost:         weights.AudioSimilarity * emb.factor,
			Filter:        req.MustNot,
		})
	}
}

func appendCategoricalClauses(req *Request, features model.AudioFeatures, weights model.RecommendationWeights) {
	if weights.GenreSimilarity > 0 {
		if len(features.Genres) > 0 {
			req.Should = append(req.Should, TermsClause{
				Field:  FieldGenres,
				Values: features.Genres,
				Boost:  weights.GenreSimilarity * genreBoostFactor,
			})
		}
		// Subgenres outrank genres: a shared subgenre is the more
		// specific signal.
		if len(features.SubGenres) > 0 {
			req.Should = append(req.Should, TermsClause{
				Field:  FieldSubGenres,
				Values: features.SubGenres,
				Boost:  weights.GenreSimilarity * subGenreBoostFactor,
			})
		}
	}

	if weights.AudioFeatures > 0 {
		// Harmonic-mixing compatibility is a hard categorical signal,
		// boosted well above the smooth numeric functions.
		if features.CamelotKey != "" {
			req.Should = append(req.Should, TermClause{
				Field: FieldCamelotKey,
				Value: features.CamelotKey,
				Boost: weights.AudioFeatures * camelotBoostFactor,
			})
		}
		if len(features.EnergyKeywords) > 0 {
			req.Should = append(req.Should, TermsClause{
				Field:  FieldEnergyKeywords,
				Values: features.EnergyKeywords,
				Boost:  weights.AudioFeatures * keywordBoostFactor,
			})
		}
	}
}

func appendMetadataClause(req *Request, features model.AudioFeatures, weights model.RecommendationWeights, enabled bool) {
	if !enabled || weights.MetadataSimilarity <= 0 {
		return
	}
	if features.Artist != "" {
		req.Should = append(req.Should, MatchClause{
			Field:     FieldArtist,
			Query:     features.Artist,
			Fuzziness: "AUTO",
			Boost:     weights.MetadataSimilarity * artistBoostFactor,
		})
	}
	if features.Album != "" {
		req.Should = append(req.Should, MatchClause{
			Field:     FieldAlbum,
			Query:     features.Album,
			Fuzziness: "AUTO",
			Boost:     weights.MetadataSimilarity * albumBoostFactor,
		})
	}
}

func appendDecayFunctions(req *Request, features model.AudioFeatures, weights model.RecommendationWeights) {
	if weights.AudioFeatures <= 0 {
		return
	}
	for _, spec := range scalarSpecs {
		v := spec.value(features)
		if v == nil {
			continue
		}
		req.Functions = append(req.Functions, DecayFunction{
			Field:  spec.field,
			Origin: *v,
			Scale:  spec.scale,
			Offset: spec.offset,
			Decay:  decayRate,
			Weight: max(weights.AudioFeatures*spec.importance, spec.floor),
		})
	}
}
