package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
)

// Proximity thresholds for numeric reason emission.
const (
	tempoReasonThreshold     = 10.0 // BPM
	unitReasonThreshold      = 0.15 // energy, valence, arousal, danceability, rhythm stability
	tonnetzReasonThreshold   = 0.15 // Euclidean distance between tonal centroids
	pitchClassSemitoneWindow = 2
	frequentPlayThreshold    = 5
)

// reasonsFor compares a candidate's stored features against the
// aggregate profile and emits short justifications for every signal
// that is close enough. Reasons are independent and non-exhaustive;
// zero reasons is valid for a track that ranked purely on vector
// similarity.
func reasonsFor(prof model.AudioFeatures, doc elastic.TrackDocument, weights model.RecommendationWeights) []string {
	var reasons []string
	feat := doc.Features()

	if within(prof.Tempo, feat.Tempo, tempoReasonThreshold) {
		reasons = append(reasons, fmt.Sprintf("Similar tempo (%.0f BPM)", *feat.Tempo))
	}
	if within(prof.Energy, feat.Energy, unitReasonThreshold) {
		reasons = append(reasons, "Similar energy level")
	}
	if within(prof.Valence, feat.Valence, unitReasonThreshold) {
		reasons = append(reasons, "Similar mood")
	}
	if within(prof.Arousal, feat.Arousal, unitReasonThreshold) {
		reasons = append(reasons, "Similar intensity")
	}
	if within(prof.Danceability, feat.Danceability, unitReasonThreshold) {
		reasons = append(reasons, "Similar danceability")
	}
	if within(prof.RhythmStability, feat.RhythmStability, unitReasonThreshold) {
		reasons = append(reasons, "Similar rhythmic feel")
	}
	if tonnetzClose(prof.TonnetzMean, feat.TonnetzMean) {
		reasons = append(reasons, "Similar harmonic character")
	}
	if dominantPitchClose(prof.ChromaMean, feat.ChromaMean) {
		reasons = append(reasons, "Similar dominant pitch")
	}

	for _, genre := range shared(prof.Genres, feat.Genres) {
		reasons = append(reasons, fmt.Sprintf("Same genre: %s", genre))
	}
	for _, sub := range shared(prof.SubGenres, feat.SubGenres) {
		reasons = append(reasons, fmt.Sprintf("Same subgenre: %s", sub))
	}

	if weights.AudioFeatures > 0 && prof.CamelotKey != "" && prof.CamelotKey == feat.CamelotKey {
		reasons = append(reasons, fmt.Sprintf("Harmonically compatible key (%s)", prof.CamelotKey))
	}

	if kws := shared(prof.EnergyKeywords, feat.EnergyKeywords); len(kws) > 0 {
		reasons = append(reasons, fmt.Sprintf("Shares energy keywords: %s", strings.Join(kws, ", ")))
	}

	if doc.IsFavorite {
		reasons = append(reasons, "User favorite")
	}
	if doc.ListeningCount > frequentPlayThreshold {
		reasons = append(reasons, "Frequently played")
	}

	return reasons
}

func within(a, b *float64, threshold float64) bool {
	if a == nil || b == nil {
		return false
	}
	return math.Abs(*a-*b) <= threshold
}

// tonnetzClose compares two tonal centroids by Euclidean distance.
func tonnetzClose(a, b []float64) bool {
	if len(a) != model.DimTonnetz || len(b) != model.DimTonnetz {
		return false
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum) <= tonnetzReasonThreshold
}

// dominantPitchClose compares the strongest pitch class of two chroma
// distributions, wrapping around the octave.
func dominantPitchClose(a, b []float64) bool {
	if len(a) != model.DimChroma || len(b) != model.DimChroma {
		return false
	}
	da, db := dominantPitch(a), dominantPitch(b)
	diff := da - db
	if diff < 0 {
		diff = -diff
	}
	if diff > model.DimChroma/2 {
		diff = model.DimChroma - diff
	}
	return diff <= pitchClassSemitoneWindow
}

func dominantPitch(chroma []float64) int {
	best := 0
	for i, v := range chroma {
		if v > chroma[best] {
			best = i
		}
	}
	return best
}

// shared returns the values present in both lists, in the order of the
// first list.
func shared(profileValues, candidateValues []string) []string {
	if len(profileValues) == 0 || len(candidateValues) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(candidateValues))
	for _, v := range candidateValues {
		set[v] = struct{}{}
	}
	var out []string
	for _, v := range profileValues {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
