// ABOUTME: Insertion-ordered embedding index mapping card ids to vectors
// ABOUTME: Iteration order defines serialization order and search tie-breaks
package index

// Index is an insertion-ordered map of card id → embedding vector.
// Overwriting an existing id keeps its original position; iteration
// order is the order ids were first inserted. That order is load-bearing:
// the binary codec serializes in it and similarity search uses it to
// break exact score ties.
type Index struct {
	ids     []string
	vectors map[string][]float32
}

// New returns an empty index.
func New() *Index {
	return &Index{
		vectors: make(map[string][]float32),
	}
}

// Set inserts or overwrites the vector for id. Last write wins; the id
// keeps the position of its first insertion.
func (idx *Index) Set(id string, vector []float32) {
	if _, ok := idx.vectors[id]; !ok {
		idx.ids = append(idx.ids, id)
	}
	idx.vectors[id] = vector
}

// Get returns the vector for id, if present.
func (idx *Index) Get(id string) ([]float32, bool) {
	v, ok := idx.vectors[id]
	return v, ok
}

// Has reports whether id is present.
func (idx *Index) Has(id string) bool {
	_, ok := idx.vectors[id]
	return ok
}

// Delete removes id from the index, preserving the order of the
// remaining entries. Removing an absent id is a no-op.
func (idx *Index) Delete(id string) {
	if _, ok := idx.vectors[id]; !ok {
		return
	}
	delete(idx.vectors, id)
	for i, existing := range idx.ids {
		if existing == id {
			idx.ids = append(idx.ids[:i], idx.ids[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.ids)
}

// IDs returns the ids in insertion order. The slice is shared; callers
// must not mutate it.
func (idx *Index) IDs() []string {
	return idx.ids
}

// Range calls fn for each entry in insertion order, stopping early if
// fn returns false.
func (idx *Index) Range(fn func(id string, vector []float32) bool) {
	for _, id := range idx.ids {
		if !fn(id, idx.vectors[id]) {
			return
		}
	}
}
