// Package profile reduces a set of member tracks into one
// representative audio/taste profile: scalars averaged, vectors
// averaged per dimension, categories reduced by mode.
package profile

import (
	"sort"

	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
)

const topKeywordCount = 5

// scalarField wires one fingerprint scalar to its slot in the profile.
type scalarField struct {
	get func(*model.AudioFingerprint) *float64
	set func(*model.AudioFeatures, float64)
}

var scalarFields = []scalarField{
	{func(f *model.AudioFingerprint) *float64 { return f.Energy }, func(p *model.AudioFeatures, v float64) { p.Energy = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Valence }, func(p *model.AudioFeatures, v float64) { p.Valence = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Arousal }, func(p *model.AudioFeatures, v float64) { p.Arousal = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Danceability }, func(p *model.AudioFeatures, v float64) { p.Danceability = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Acousticness }, func(p *model.AudioFeatures, v float64) { p.Acousticness = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Instrumentalness }, func(p *model.AudioFeatures, v float64) { p.Instrumentalness = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Speechiness }, func(p *model.AudioFeatures, v float64) { p.Speechiness = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Liveness }, func(p *model.AudioFeatures, v float64) { p.Liveness = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.RhythmStability }, func(p *model.AudioFeatures, v float64) { p.RhythmStability = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.BassPresence }, func(p *model.AudioFeatures, v float64) { p.BassPresence = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.TempoRegularity }, func(p *model.AudioFeatures, v float64) { p.TempoRegularity = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.Syncopation }, func(p *model.AudioFeatures, v float64) { p.Syncopation = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.BeatStrength }, func(p *model.AudioFeatures, v float64) { p.BeatStrength = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.BrightnessFactor }, func(p *model.AudioFeatures, v float64) { p.BrightnessFactor = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.HarmonicFactor }, func(p *model.AudioFeatures, v float64) { p.HarmonicFactor = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.SpectralBalance }, func(p *model.AudioFeatures, v float64) { p.SpectralBalance = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.ModeFactor }, func(p *model.AudioFeatures, v float64) { p.ModeFactor = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.SpectralCentroid }, func(p *model.AudioFeatures, v float64) { p.SpectralCentroid = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.SpectralRolloff }, func(p *model.AudioFeatures, v float64) { p.SpectralRolloff = &v }},
	{func(f *model.AudioFingerprint) *float64 { return f.ZeroCrossingRate }, func(p *model.AudioFeatures, v float64) { p.ZeroCrossingRate = &v }},
}

// Aggregate computes the centroid profile of the given member tracks.
// An empty member list yields an empty profile; callers must treat that
// as "no recommendations" and skip query building.
func Aggregate(tracks model.Tracks) model.AudioFeatures {
	var p model.AudioFeatures
	if len(tracks) == 0 {
		return p
	}

	fingerprinted := 0
	for i := range tracks {
		if tracks[i].Fingerprint != nil {
			fingerprinted++
		}
	}

	// Non-tempo scalars divide by the fingerprinted-track count; tempo
	// divides by its own presence count because analysis frequently
	// yields every other feature but no tempo.
	if fingerprinted > 0 {
		for _, field := range scalarFields {
			sum := 0.0
			present := 0
			for i := range tracks {
				f := tracks[i].Fingerprint
				if f == nil {
					continue
				}
				if v := field.get(f); v != nil {
					sum += *v
					present++
				}
			}
			if present > 0 {
				field.set(&p, sum/float64(fingerprinted))
			}
		}

		tempoSum := 0.0
		tempoCount := 0
		for i := range tracks {
			f := tracks[i].Fingerprint
			if f == nil || f.Tempo == nil {
				continue
			}
			tempoSum += *f.Tempo
			tempoCount++
		}
		if tempoCount > 0 {
			tempo := tempoSum / float64(tempoCount)
			p.Tempo = &tempo
		}
	}

	p.Mfcc = averageVectors(tracks, model.DimMfcc, (*model.AudioFingerprint).MfccVector)
	p.ChromaMean = averageVectors(tracks, model.DimChroma, (*model.AudioFingerprint).ChromaMeanVector)
	p.TonnetzMean = averageVectors(tracks, model.DimTonnetz, (*model.AudioFingerprint).TonnetzMeanVector)

	p.Key = modeOf(tracks, func(f *model.AudioFingerprint) string { return f.Key })
	p.CamelotKey = modeOf(tracks, func(f *model.AudioFingerprint) string { return f.CamelotKey })
	p.ValenceMood = modeOf(tracks, func(f *model.AudioFingerprint) string { return f.ValenceMood })
	p.ArousalMood = modeOf(tracks, func(f *model.AudioFingerprint) string { return f.ArousalMood })
	p.DanceabilityFeeling = modeOf(tracks, func(f *model.AudioFingerprint) string { return f.DanceabilityFeeling })

	p.Artist = modeOfTrack(tracks, (*model.Track).DisplayArtist)
	p.Album = modeOfTrack(tracks, (*model.Track).DisplayAlbum)

	p.Genres = tagUnion(tracks, func(t *model.Track) model.Genres { return t.Genres })
	p.SubGenres = tagUnion(tracks, func(t *model.Track) model.Genres { return t.SubGenres })
	p.EnergyKeywords = topKeywords(tracks, topKeywordCount)

	return p
}

// averageVectors averages per dimension across tracks exposing a vector
// of exactly the expected dimensionality. Wrong-length vectors are
// discarded, never truncated.
func averageVectors(tracks model.Tracks, dim int, get func(*model.AudioFingerprint) []float64) []float64 {
	sums := make([]float64, dim)
	count := 0
	for i := range tracks {
		f := tracks[i].Fingerprint
		if f == nil {
			continue
		}
		v := get(f)
		if len(v) != dim {
			continue
		}
		for d := 0; d < dim; d++ {
			sums[d] += v[d]
		}
		count++
	}
	if count == 0 {
		return nil
	}
	for d := 0; d < dim; d++ {
		sums[d] /= float64(count)
	}
	return sums
}

// modeOf returns the most frequent non-empty fingerprint value. Ties
// resolve to the first-encountered value.
func modeOf(tracks model.Tracks, get func(*model.AudioFingerprint) string) string {
	counts := make(map[string]int)
	var order []string
	for i := range tracks {
		f := tracks[i].Fingerprint
		if f == nil {
			continue
		}
		v := get(f)
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	return pickMode(counts, order)
}

func modeOfTrack(tracks model.Tracks, get func(*model.Track) string) string {
	counts := make(map[string]int)
	var order []string
	for i := range tracks {
		v := get(&tracks[i])
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	return pickMode(counts, order)
}

func pickMode(counts map[string]int, order []string) string {
	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// tagUnion collects every tag name across member tracks, first
// occurrence order, no duplicates.
func tagUnion(tracks model.Tracks, get func(*model.Track) model.Genres) []string {
	seen := make(map[string]struct{})
	var union []string
	for i := range tracks {
		for _, g := range get(&tracks[i]) {
			if g.Name == "" {
				continue
			}
			if _, ok := seen[g.Name]; ok {
				continue
			}
			seen[g.Name] = struct{}{}
			union = append(union, g.Name)
		}
	}
	return union
}

// topKeywords returns the most frequent keywords across all member
// tracks, most frequent first, ties in first-encountered order.
func topKeywords(tracks model.Tracks, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for i := range tracks {
		f := tracks[i].Fingerprint
		if f == nil {
			continue
		}
		for _, kw := range f.Keywords() {
			if kw == "" {
				continue
			}
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}
	if len(order) == 0 {
		return nil
	}

	// Stable sort keeps first-encountered order for equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
