// Package similarity converts between user-facing similarity scores and the
// Euclidean distances the vector store operates on, and projects embeddings
// into two dimensions for visualization.
//
// The conversions assume embeddings are unit-normalized, in which case
// d² = 2(1 − s) relates L2 distance d to cosine similarity s. The embedding
// model is not forced to guarantee this, so for non-normalized vectors the
// returned scores are an approximation of cosine similarity, not the exact
// value. Known limitation, kept deliberately.
package similarity

import (
	"fmt"
	"math"

	apperrors "codeberg.org/libroteca/server/internal/errors"
)

// Dimensions is the embedding width of the catalog.
const Dimensions = 384

// ThresholdToDistance translates a similarity threshold in [0,1] into the
// distance cutoff passed to the vector store. Values outside [0,1] would put
// the square root out of its domain and are rejected.
func ThresholdToDistance(s float64) (float64, error) {
	if s < 0 || s > 1 || math.IsNaN(s) {
		return 0, apperrors.Domain(fmt.Sprintf("similarity threshold %v outside [0,1]", s))
	}

	return math.Sqrt(2 * (1 - s)), nil
}

// DistanceToScore is the exact inverse of ThresholdToDistance: it maps a
// retrieved neighbor's distance back to a similarity score.
func DistanceToScore(d float64) float64 {
	return 1 - d*d/2
}
