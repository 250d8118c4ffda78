package engine

import "github.com/AlessandroMarelli-pro/muzo-sub001/model"

// weightSumTolerance is how far from 1.0 a weight sum may drift and
// still validate.
const weightSumTolerance = 0.01

// ValidateWeights reports whether the components sum to 1 within
// tolerance. Validation is opt-in: recommendation requests accept raw
// weight vectors as supplied.
func ValidateWeights(w model.RecommendationWeights) bool {
	return w.SumsToOne(weightSumTolerance)
}

// NormalizeWeights rescales the vector so its components sum to 1. An
// all-zero vector falls back to the given default instead of dividing
// by zero. Pure function, no side effects.
func NormalizeWeights(w, fallback model.RecommendationWeights) model.RecommendationWeights {
	sum := w.Sum()
	if sum == 0 {
		return fallback
	}
	return w.Scale(1 / sum)
}

// ValidateWeights reports whether the vector sums to 1 within tolerance.
func (e *Engine) ValidateWeights(w model.RecommendationWeights) bool {
	return ValidateWeights(w)
}

// NormalizeWeights rescales the vector, falling back to the engine's
// configured default for an all-zero input.
func (e *Engine) NormalizeWeights(w model.RecommendationWeights) model.RecommendationWeights {
	return NormalizeWeights(w, e.config.DefaultWeights)
}
