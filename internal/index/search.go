// ABOUTME: Brute-force cosine similarity search over the embedding index
// ABOUTME: Pure function: scores every entry, stable-sorts, returns top-K
package index

import (
	"sort"

	"github.com/harper/cardscan/internal/models"
)

// Search ranks every indexed vector against query by dot product and
// returns the k best matches. Both sides are expected to be unit
// vectors, making the dot product the cosine similarity.
//
// Ties on exactly equal scores keep the index's insertion order
// (stable sort). k larger than the index size returns all entries;
// an empty index returns an empty slice. The scan is O(N·D) which is
// interactive for indexes in the low thousands, so no approximate
// structure is used.
func Search(idx *Index, query []float32, k int) []models.MatchResult {
	if idx == nil || idx.Len() == 0 || k <= 0 {
		return []models.MatchResult{}
	}

	results := make([]models.MatchResult, 0, idx.Len())
	idx.Range(func(id string, vector []float32) bool {
		results = append(results, models.MatchResult{
			CardID: id,
			Score:  models.Dot(query, vector),
		})
		return true
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}
