// ABOUTME: Embedder interface for producing card image embeddings
// ABOUTME: Backend-agnostic contract; implementations wrap model inference
package embed

import "context"

// Embedder generates a fixed-length visual embedding for a card image.
// Implementations own model access; callers own normalization (results
// are defensively L2-normalized before entering the index, so an
// implementation that already returns unit vectors costs nothing extra).
type Embedder interface {
	// Embed returns the embedding vector for the image at imagePath.
	// Blocking; honors ctx cancellation and deadlines.
	Embed(ctx context.Context, imagePath string) ([]float32, error)

	// Dimension returns the length of vectors produced by Embed.
	Dimension() int
}
