// Package docsync keeps the search index in step with the catalog. It
// builds index documents from catalog tracks and pushes them through
// the store client, one at a time or as a paged full resync.
package docsync

import (
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
)

// BuildDocument denormalizes a catalog track into its index document.
// Display metadata is resolved through the track's precedence rules,
// and fingerprint vectors pass through the typed decode boundary, so a
// corrupt persisted column yields an absent field instead of an error.
func BuildDocument(track model.Track) elastic.TrackDocument {
	return elastic.TrackDocument{
		ID:             track.ID,
		Title:          track.DisplayTitle(),
		Artist:         track.DisplayArtist(),
		Album:          track.DisplayAlbum(),
		Genres:         track.Genres.Names(),
		SubGenres:      track.SubGenres.Names(),
		Duration:       track.Duration,
		ListeningCount: track.ListeningCount,
		IsFavorite:     track.IsFavorite,
		Fingerprint:    fingerprintDocument(track.Fingerprint),
		CreatedAt:      track.CreatedAt,
		UpdatedAt:      track.UpdatedAt,
	}
}

func fingerprintDocument(fp *model.AudioFingerprint) elastic.FingerprintDocument {
	if fp == nil {
		return elastic.FingerprintDocument{}
	}
	return elastic.FingerprintDocument{
		Mfcc:    fp.MfccVector(),
		Chroma:  elastic.VectorDocument{Mean: fp.ChromaMeanVector()},
		Tonnetz: elastic.VectorDocument{Mean: fp.TonnetzMeanVector()},

		Tempo:               fp.Tempo,
		Key:                 fp.Key,
		CamelotKey:          fp.CamelotKey,
		Valence:             fp.Valence,
		ValenceMood:         fp.ValenceMood,
		Arousal:             fp.Arousal,
		ArousalMood:         fp.ArousalMood,
		Danceability:        fp.Danceability,
		DanceabilityFeeling: fp.DanceabilityFeeling,
		RhythmStability:     fp.RhythmStability,
		BassPresence:        fp.BassPresence,
		TempoRegularity:     fp.TempoRegularity,
		EnergyFactor:        fp.Energy,
		Syncopation:         fp.Syncopation,
		Acousticness:        fp.Acousticness,
		Instrumentalness:    fp.Instrumentalness,
		Speechiness:         fp.Speechiness,
		Liveness:            fp.Liveness,
		ModeFactor:          fp.ModeFactor,
		BrightnessFactor:    fp.BrightnessFactor,
		HarmonicFactor:      fp.HarmonicFactor,
		SpectralBalance:     fp.SpectralBalance,
		BeatStrength:        fp.BeatStrength,
		SpectralCentroid:    fp.SpectralCentroid,
		SpectralRolloff:     fp.SpectralRolloff,
		ZeroCrossingRate:    fp.ZeroCrossingRate,
		EnergyKeywords:      fp.Keywords(),
	}
}
