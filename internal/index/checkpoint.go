// ABOUTME: Durable JSON checkpoint store for in-progress index builds
// ABOUTME: Overwrites a single file of id→vector pairs, preserving insertion order
package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
)

// CheckpointStore persists partial build progress so an interrupted run
// can resume without recomputing finished embeddings. Writes are
// serialized by a mutex: the builder may fan embedding work out to
// workers, but checkpoints stay single-writer.
type CheckpointStore struct {
	path string
	dim  int
	mu   sync.Mutex
}

// NewCheckpointStore returns a store writing to path and validating
// loaded vectors against dim.
func NewCheckpointStore(path string, dim int) *CheckpointStore {
	return &CheckpointStore{path: path, dim: dim}
}

// Path returns the checkpoint file path.
func (cs *CheckpointStore) Path() string {
	return cs.path
}

// Load reads the checkpoint into a fresh index. A missing file yields an
// empty index and no error. Key order in the file is preserved so a
// resumed build serializes identically to an uninterrupted one.
// Malformed entries (wrong dimension, non-numeric values) are skipped
// with a warning rather than failing the load.
func (cs *CheckpointStore) Load() (*Index, error) {
	data, err := os.ReadFile(cs.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}

	idx, err := decodeOrderedJSON(data, cs.dim)
	if err != nil {
		return nil, fmt.Errorf("parsing checkpoint %s: %w", cs.path, err)
	}
	return idx, nil
}

// Save persists the full working index, overwriting any previous
// checkpoint. The write is atomic (temp file + rename) and synchronous;
// when Save returns nil the progress is durable. A failed save is fatal
// to the run since unsynced progress cannot be trusted.
func (cs *CheckpointStore) Save(idx *Index) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	data, err := encodeOrderedJSON(idx)
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}
	if err := atomicWrite(cs.path, data); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

// Remove deletes the checkpoint file. Called only after the final index
// has been durably written; a missing file is not an error.
func (cs *CheckpointStore) Remove() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := os.Remove(cs.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing checkpoint: %w", err)
	}
	return nil
}

// encodeOrderedJSON marshals the index as a JSON object with keys in
// insertion order. encoding/json's map marshaling sorts keys, so the
// object is assembled entry by entry.
func encodeOrderedJSON(idx *Index) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	var encodeErr error
	idx.Range(func(id string, vector []float32) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(id)
		if err != nil {
			encodeErr = err
			return false
		}
		val, err := json.Marshal(vector)
		if err != nil {
			encodeErr = err
			return false
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		return true
	})
	if encodeErr != nil {
		return nil, encodeErr
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeOrderedJSON parses a JSON object of id→float array with a token
// decoder so file order survives (a plain map unmarshal would not keep
// it).
func decodeOrderedJSON(data []byte, dim int) (*Index, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	idx := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading value for %q: %w", id, err)
		}

		var vector []float32
		if err := json.Unmarshal(raw, &vector); err != nil {
			log.Printf("Warning: skipping malformed checkpoint entry %q: %v", id, err)
			continue
		}
		if dim > 0 && len(vector) != dim {
			log.Printf("Warning: skipping checkpoint entry %q: dimension %d, want %d", id, len(vector), dim)
			continue
		}

		idx.Set(id, vector)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return idx, nil
}
