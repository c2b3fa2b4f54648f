package kiosk

import (
	"bytes"
	"context"

	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
)

// JSONEmbedder treats each frame as a pre-computed descriptor: a JSON
// float array written by the capture device. A blank or "null" frame
// means no face was detected.
type JSONEmbedder struct{}

func NewJSONEmbedder() *JSONEmbedder {
	return &JSONEmbedder{}
}

// DetectAndEmbed implements Embedder.
func (e *JSONEmbedder) DetectAndEmbed(ctx context.Context, frame Frame) (facematch.Embedding, bool, error) {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}

	embedding, err := facematch.ParseEmbedding(trimmed)
	if err != nil {
		return nil, false, err
	}
	return embedding, true, nil
}
