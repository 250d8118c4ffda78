package elastic

import (
	"time"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
)

// TrackDocument is the denormalized per-track document held by the
// search index. Field names are part of the index contract: the query
// builder and the reason generator reference them directly.
type TrackDocument struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Artist         string              `json:"artist"`
	Album          string              `json:"album"`
	Genres         []string            `json:"genres"`
	SubGenres      []string            `json:"subgenres"`
	Duration       float64             `json:"duration"`
	ListeningCount int64               `json:"listening_count"`
	IsFavorite     bool                `json:"is_favorite"`
	Fingerprint    FingerprintDocument `json:"audio_fingerprint"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// FingerprintDocument nests the audio analysis output inside a track
// document. Optional scalars marshal as null when absent so they stay
// out of numeric scoring.
type FingerprintDocument struct {
	Mfcc    []float64      `json:"mfcc,omitempty"`
	Chroma  VectorDocument `json:"chroma"`
	Tonnetz VectorDocument `json:"tonnetz"`

	Tempo               *float64 `json:"tempo,omitempty"`
	Key                 string   `json:"key,omitempty"`
	CamelotKey          string   `json:"camelot_key,omitempty"`
	Valence             *float64 `json:"valence,omitempty"`
	ValenceMood         string   `json:"valence_mood,omitempty"`
	Arousal             *float64 `json:"arousal,omitempty"`
	ArousalMood         string   `json:"arousal_mood,omitempty"`
	Danceability        *float64 `json:"danceability,omitempty"`
	DanceabilityFeeling string   `json:"danceability_feeling,omitempty"`
	RhythmStability     *float64 `json:"rhythm_stability,omitempty"`
	BassPresence        *float64 `json:"bass_presence,omitempty"`
	TempoRegularity     *float64 `json:"tempo_regularity,omitempty"`
	EnergyFactor        *float64 `json:"energy_factor,omitempty"`
	Syncopation         *float64 `json:"syncopation,omitempty"`
	Acousticness        *float64 `json:"acousticness,omitempty"`
	Instrumentalness    *float64 `json:"instrumentalness,omitempty"`
	Speechiness         *float64 `json:"speechiness,omitempty"`
	Liveness            *float64 `json:"liveness,omitempty"`
	ModeFactor          *float64 `json:"mode_factor,omitempty"`
	BrightnessFactor    *float64 `json:"brightness_factor,omitempty"`
	HarmonicFactor      *float64 `json:"harmonic_factor,omitempty"`
	SpectralBalance     *float64 `json:"spectral_balance,omitempty"`
	BeatStrength        *float64 `json:"beat_strength,omitempty"`
	SpectralCentroid    *float64 `json:"spectral_centroid,omitempty"`
	SpectralRolloff     *float64 `json:"spectral_rolloff,omitempty"`
	ZeroCrossingRate    *float64 `json:"zero_crossing_rate,omitempty"`
	EnergyKeywords      []string `json:"energy_keywords,omitempty"`
}

// VectorDocument wraps an embedding under a "mean" key, matching the
// chroma.mean / tonnetz.mean field paths the query builder targets.
type VectorDocument struct {
	Mean []float64 `json:"mean,omitempty"`
}

// Features lifts a stored fingerprint back into profile form for the
// reason generator.
func (d *TrackDocument) Features() model.AudioFeatures {
	fp := d.Fingerprint
	return model.AudioFeatures{
		Tempo:            fp.Tempo,
		Energy:           fp.EnergyFactor,
		Valence:          fp.Valence,
		Arousal:          fp.Arousal,
		Danceability:     fp.Danceability,
		Acousticness:     fp.Acousticness,
		Instrumentalness: fp.Instrumentalness,
		Speechiness:      fp.Speechiness,
		Liveness:         fp.Liveness,
		RhythmStability:  fp.RhythmStability,
		BassPresence:     fp.BassPresence,
		TempoRegularity:  fp.TempoRegularity,
		Syncopation:      fp.Syncopation,
		BeatStrength:     fp.BeatStrength,
		BrightnessFactor: fp.BrightnessFactor,
		HarmonicFactor:   fp.HarmonicFactor,
		SpectralBalance:  fp.SpectralBalance,
		ModeFactor:       fp.ModeFactor,
		SpectralCentroid: fp.SpectralCentroid,
		SpectralRolloff:  fp.SpectralRolloff,
		ZeroCrossingRate: fp.ZeroCrossingRate,

		Mfcc:        fp.Mfcc,
		ChromaMean:  fp.Chroma.Mean,
		TonnetzMean: fp.Tonnetz.Mean,

		Key:                 fp.Key,
		CamelotKey:          fp.CamelotKey,
		ValenceMood:         fp.ValenceMood,
		ArousalMood:         fp.ArousalMood,
		DanceabilityFeeling: fp.DanceabilityFeeling,
		Artist:              d.Artist,
		Album:               d.Album,

		Genres:         d.Genres,
		SubGenres:      d.SubGenres,
		EnergyKeywords: fp.EnergyKeywords,
	}
}

// Hit is a single scored search result. Score is the store's raw
// composite value, passed through without rescaling.
type Hit struct {
	ID     string
	Score  float64
	Source TrackDocument
}
