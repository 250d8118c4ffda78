package model

import "encoding/json"

// Embedding dimensions produced by the analysis pipeline.
const (
	DimMfcc    = 13
	DimChroma  = 12
	DimTonnetz = 6
)

// AudioFingerprint holds the per-track analysis output. Every scalar is
// optional (nil = the analyzer did not produce it); vectors and keyword
// lists are persisted as JSON text and decoded through the accessors
// below, so a malformed column reads as absent rather than failing.
type AudioFingerprint struct {
	TrackID string `json:"trackId"`

	Tempo            *float64 `json:"tempo,omitempty"`
	Energy           *float64 `json:"energy,omitempty"`
	Valence          *float64 `json:"valence,omitempty"`
	Arousal          *float64 `json:"arousal,omitempty"`
	Danceability     *float64 `json:"danceability,omitempty"`
	Acousticness     *float64 `json:"acousticness,omitempty"`
	Instrumentalness *float64 `json:"instrumentalness,omitempty"`
	Speechiness      *float64 `json:"speechiness,omitempty"`
	Liveness         *float64 `json:"liveness,omitempty"`
	RhythmStability  *float64 `json:"rhythmStability,omitempty"`
	BassPresence     *float64 `json:"bassPresence,omitempty"`
	TempoRegularity  *float64 `json:"tempoRegularity,omitempty"`
	Syncopation      *float64 `json:"syncopation,omitempty"`
	BeatStrength     *float64 `json:"beatStrength,omitempty"`
	BrightnessFactor *float64 `json:"brightnessFactor,omitempty"`
	HarmonicFactor   *float64 `json:"harmonicFactor,omitempty"`
	SpectralBalance  *float64 `json:"spectralBalance,omitempty"`
	ModeFactor       *float64 `json:"modeFactor,omitempty"`
	SpectralCentroid *float64 `json:"spectralCentroid,omitempty"`
	SpectralRolloff  *float64 `json:"spectralRolloff,omitempty"`
	ZeroCrossingRate *float64 `json:"zeroCrossingRate,omitempty"`

	Key                 string `json:"key,omitempty"`
	CamelotKey          string `json:"camelotKey,omitempty"`
	ValenceMood         string `json:"valenceMood,omitempty"`
	ArousalMood         string `json:"arousalMood,omitempty"`
	DanceabilityFeeling string `json:"danceabilityFeeling,omitempty"`

	// Raw persisted JSON columns. Use MfccVector, ChromaMeanVector,
	// TonnetzMeanVector and Keywords to read them.
	MfccJSON           string `json:"-"`
	ChromaMeanJSON     string `json:"-"`
	TonnetzMeanJSON    string `json:"-"`
	EnergyKeywordsJSON string `json:"-"`
}

// MfccVector decodes the stored MFCC vector, nil if absent or malformed.
func (f *AudioFingerprint) MfccVector() []float64 {
	return ParseVector(f.MfccJSON)
}

// ChromaMeanVector decodes the stored pitch-class distribution.
func (f *AudioFingerprint) ChromaMeanVector() []float64 {
	return ParseVector(f.ChromaMeanJSON)
}

// TonnetzMeanVector decodes the stored tonal-centroid vector.
func (f *AudioFingerprint) TonnetzMeanVector() []float64 {
	return ParseVector(f.TonnetzMeanJSON)
}

// Keywords decodes the stored energy keyword list.
func (f *AudioFingerprint) Keywords() []string {
	return ParseKeywords(f.EnergyKeywordsJSON)
}

// ParseVector decodes a JSON float array persisted as text. Any decode
// failure reads as absent (nil); it never returns an error, keeping
// storage corruption out of the aggregation path.
func ParseVector(text string) []float64 {
	if text == "" {
		return nil
	}
	var v []float64
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

// EncodeVector is the write-side counterpart of ParseVector.
func EncodeVector(v []float64) string {
	if len(v) == 0 {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// ParseKeywords decodes a JSON string array persisted as text, nil on
// any decode failure.
func ParseKeywords(text string) []string {
	if text == "" {
		return nil
	}
	var v []string
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

// EncodeKeywords is the write-side counterpart of ParseKeywords.
func EncodeKeywords(v []string) string {
	if len(v) == 0 {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
