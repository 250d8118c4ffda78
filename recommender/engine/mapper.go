package engine

import (
	"github.com/AlessandroMarelli-pro/muzo-sub001/model"
	"github.com/AlessandroMarelli-pro/muzo-sub001/recommender/elastic"
)

// mapHit projects a raw search hit back onto the domain track shape.
// Display fields were resolved by precedence at index time; the mapper
// only copies. No mutation, no side effects.
func mapHit(hit elastic.Hit) model.Track {
	doc := hit.Source

	track := model.Track{
		ID:             doc.ID,
		Title:          doc.Title,
		Artist:         doc.Artist,
		Album:          doc.Album,
		Genres:         genresFromNames(doc.Genres),
		SubGenres:      genresFromNames(doc.SubGenres),
		Duration:       doc.Duration,
		ListeningCount: doc.ListeningCount,
		IsFavorite:     doc.IsFavorite,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	if track.ID == "" {
		track.ID = hit.ID
	}

	fp := doc.Fingerprint
	track.Fingerprint = &model.AudioFingerprint{
		TrackID:             track.ID,
		Tempo:               fp.Tempo,
		Energy:              fp.EnergyFactor,
		Valence:             fp.Valence,
		Arousal:             fp.Arousal,
		Danceability:        fp.Danceability,
		Acousticness:        fp.Acousticness,
		Instrumentalness:    fp.Instrumentalness,
		Speechiness:         fp.Speechiness,
		Liveness:            fp.Liveness,
		RhythmStability:     fp.RhythmStability,
		BassPresence:        fp.BassPresence,
		TempoRegularity:     fp.TempoRegularity,
		Syncopation:         fp.Syncopation,
		BeatStrength:        fp.BeatStrength,
		BrightnessFactor:    fp.BrightnessFactor,
		HarmonicFactor:      fp.HarmonicFactor,
		SpectralBalance:     fp.SpectralBalance,
		ModeFactor:          fp.ModeFactor,
		SpectralCentroid:    fp.SpectralCentroid,
		SpectralRolloff:     fp.SpectralRolloff,
		ZeroCrossingRate:    fp.ZeroCrossingRate,
		Key:                 fp.Key,
		CamelotKey:          fp.CamelotKey,
		ValenceMood:         fp.ValenceMood,
		ArousalMood:         fp.ArousalMood,
		DanceabilityFeeling: fp.DanceabilityFeeling,
		MfccJSON:            model.EncodeVector(fp.Mfcc),
		ChromaMeanJSON:      model.EncodeVector(fp.Chroma.Mean),
		TonnetzMeanJSON:     model.EncodeVector(fp.Tonnetz.Mean),
		EnergyKeywordsJSON:  model.EncodeKeywords(fp.EnergyKeywords),
	}

	return track
}

func genresFromNames(names []string) model.Genres {
	if len(names) == 0 {
		return nil
	}
	gs := make(model.Genres, len(names))
	for i, name := range names {
		gs[i] = model.Genre{Name: name}
	}
	return gs
}
