// ABOUTME: Enumerates card image files and resolves each to a card id
// ABOUTME: Produces the ephemeral work list consumed by the build pipeline
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/cardscan/internal/cardid"
	"github.com/harper/cardscan/internal/models"
)

// ErrSourceNotFound indicates the image directory does not exist. It is
// distinct from an empty directory, which scans successfully to zero
// entries.
var ErrSourceNotFound = errors.New("card image directory not found")

// supportedExtensions are the image formats the pipeline accepts,
// matched case-insensitively against the file extension.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Scan lists dir and returns one CardImage per supported image file,
// with the card id decoded from the filename stem. Output order is the
// directory iteration order; callers must not assume it is sorted.
func Scan(dir string) ([]models.CardImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	var images []models.CardImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !supportedExtensions[ext] {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		images = append(images, models.CardImage{
			ID:   cardid.Decode(stem),
			Path: filepath.Join(dir, name),
		})
	}

	return images, nil
}
