// ABOUTME: Core data types for the card embedding index
// ABOUTME: Defines CardImage source entries and MatchResult search hits
package models

// CardImage pairs a resolved card id with the image file that produced it.
// Entries are ephemeral: they are recomputed from the filesystem on every
// run and never persisted.
type CardImage struct {
	ID   string
	Path string
}

// MatchResult is one ranked similarity hit against the index.
// Score is the dot product of the query and indexed vectors; with both
// sides unit-normalized it equals cosine similarity and lies in [-1, 1].
type MatchResult struct {
	CardID string  `json:"card_id"`
	Score  float32 `json:"score"`
}
