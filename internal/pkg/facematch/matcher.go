// Package facematch matches face embeddings against an enrolled set by
// Euclidean distance. Embedding extraction happens outside this package;
// it only compares vectors that some detector already produced.
package facematch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// DefaultMaxDistance is the recognition threshold. Distances at or
// above it are treated as "not the same person".
const DefaultMaxDistance = 0.6

var (
	ErrNoCandidates = errors.New("no enrolled face candidates")
	ErrNoMatch      = errors.New("no candidate within match threshold")
)

// Embedding is a face descriptor vector. Stored as a JSON array of
// floats, matching how capture devices emit descriptors.
type Embedding []float64

// ParseEmbedding decodes a JSON float array into an Embedding.
func ParseEmbedding(data []byte) (Embedding, error) {
	var e Embedding
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse face embedding: %w", err)
	}
	if len(e) == 0 {
		return nil, fmt.Errorf("face embedding is empty")
	}
	return e, nil
}

// JSON encodes the embedding for storage.
func (e Embedding) JSON() ([]byte, error) {
	data, err := json.Marshal([]float64(e))
	if err != nil {
		return nil, fmt.Errorf("failed to encode face embedding: %w", err)
	}
	return data, nil
}

// Distance returns the Euclidean distance between two embeddings.
// Vectors of different lengths are incomparable and return +Inf.
func Distance(a, b Embedding) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Candidate is one enrolled face to compare against.
type Candidate struct {
	ID        string
	Embedding Embedding
}

// Match scans candidates linearly and returns the ID of the nearest one
// when its distance is below maxDistance. Candidates whose embedding
// length differs from the probe are skipped. Ties go to the candidate
// encountered first.
func Match(probe Embedding, candidates []Candidate, maxDistance float64) (string, float64, error) {
	if len(candidates) == 0 {
		return "", 0, ErrNoCandidates
	}

	bestID := ""
	bestDistance := math.Inf(1)
	for _, c := range candidates {
		d := Distance(probe, c.Embedding)
		if d < bestDistance {
			bestID = c.ID
			bestDistance = d
		}
	}

	if bestDistance >= maxDistance {
		return "", bestDistance, ErrNoMatch
	}

	return bestID, bestDistance, nil
}
