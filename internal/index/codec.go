// ABOUTME: Binary serialization of the embedding index
// ABOUTME: Fixed little-endian layout: count, dim, then (idLen, id, vector) records
package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
)

// ErrCorruptIndex indicates a truncated or malformed binary index file.
// The load fails as a whole; the caller decides whether to rebuild or
// abort.
var ErrCorruptIndex = errors.New("corrupt index")

// MaxIDBytes is the largest UTF-8 card id the format can hold; the id
// length field is a single byte.
const MaxIDBytes = 255

const headerSize = 8 // uint32 count + uint32 dim

// Encode serializes the index to the binary layout. Entries whose id
// exceeds MaxIDBytes UTF-8 bytes are skipped with a warning and excluded
// from the header count; skipped reports how many. Encoding never fails.
func Encode(idx *Index, dim int) (data []byte, skipped int) {
	var kept []string
	size := headerSize
	for _, id := range idx.IDs() {
		if len(id) > MaxIDBytes {
			log.Printf("Warning: card id too long (%d bytes), skipping: %.40q", len(id), id)
			skipped++
			continue
		}
		kept = append(kept, id)
		size += 1 + len(id) + dim*4
	}

	data = make([]byte, size)
	binary.LittleEndian.PutUint32(data[0:], uint32(len(kept)))
	binary.LittleEndian.PutUint32(data[4:], uint32(dim))

	off := headerSize
	for _, id := range kept {
		data[off] = byte(len(id))
		off++
		off += copy(data[off:], id)

		vec, _ := idx.Get(id)
		for i := 0; i < dim; i++ {
			var x float32
			if i < len(vec) {
				x = vec[i]
			}
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(x))
			off += 4
		}
	}

	return data, skipped
}

// Decode parses a binary index buffer. Every field read is bounds-checked
// first; a truncated or inconsistent buffer yields ErrCorruptIndex rather
// than a read past the end.
func Decode(data []byte) (*Index, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: buffer too small for header (%d bytes)", ErrCorruptIndex, len(data))
	}

	count := binary.LittleEndian.Uint32(data[0:])
	dim := binary.LittleEndian.Uint32(data[4:])

	idx := New()
	off := headerSize
	for i := uint32(0); i < count; i++ {
		if off+1 > len(data) {
			return nil, fmt.Errorf("%w: truncated at entry %d id length", ErrCorruptIndex, i)
		}
		idLen := int(data[off])
		off++

		if off+idLen > len(data) {
			return nil, fmt.Errorf("%w: truncated at entry %d id", ErrCorruptIndex, i)
		}
		id := string(data[off : off+idLen])
		off += idLen

		vecBytes := int(dim) * 4
		if off+vecBytes > len(data) {
			return nil, fmt.Errorf("%w: truncated at entry %d vector", ErrCorruptIndex, i)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}

		idx.Set(id, vec)
	}

	// The format has no checksum, so a length mismatch is the only
	// signal that the count field and the payload disagree.
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d entries", ErrCorruptIndex, len(data)-off, count)
	}

	return idx, nil
}

// WriteFile encodes the index and writes it to path atomically: the
// bytes go to a temporary file in the same directory which is then
// renamed over the destination, so a crash mid-write never leaves a
// half-written index behind.
func WriteFile(path string, idx *Index, dim int) (skipped int, err error) {
	data, skipped := Encode(idx, dim)
	if err := atomicWrite(path, data); err != nil {
		return skipped, fmt.Errorf("writing index file: %w", err)
	}
	return skipped, nil
}

// WriteEncoded writes already-encoded index bytes to path with the same
// atomic temp-and-rename discipline as WriteFile. Used when the encoded
// artifact comes from elsewhere (e.g. pulled from cloud sync) and must
// not be re-encoded.
func WriteEncoded(path string, data []byte) error {
	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}
	return nil
}

// ReadFile loads a binary index from path.
func ReadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	idx, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// atomicWrite writes data to a temp file next to path, fsyncs, then
// renames into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
