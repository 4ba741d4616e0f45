// ABOUTME: Merge-and-persist pipeline for building the card embedding index
// ABOUTME: One primitive covers full builds, checkpoint resumes, and incremental updates
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harper/cardscan/internal/embed"
	"github.com/harper/cardscan/internal/index"
	"github.com/harper/cardscan/internal/models"
	"github.com/harper/cardscan/internal/source"
)

// Mode selects which base state a run merges against.
type Mode int

const (
	// ModeBuild starts from the checkpoint if one exists, otherwise empty.
	ModeBuild Mode = iota
	// ModeUpdate starts from the existing final index.
	ModeUpdate
)

// Options configures a pipeline run.
type Options struct {
	ImagesDir          string
	IndexPath          string
	Mode               Mode
	Workers            int
	CheckpointInterval int

	// Force discards any existing checkpoint so a build starts clean.
	Force bool
	// Prune removes ids no longer present in the source directory.
	// Off by default: cards removed from the source stay searchable.
	Prune bool
}

// Summary reports what a run did. Per-image failures are counted here,
// never fatal.
type Summary struct {
	RunID      string        `json:"run_id"`
	Source     int           `json:"source_images"`
	Resumed    int           `json:"resumed"`
	Processed  int           `json:"processed"`
	Failed     int           `json:"failed"`
	SkippedIDs int           `json:"skipped_ids"`
	Pruned     int           `json:"pruned"`
	IndexSize  int           `json:"index_size"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// String renders the end-of-run summary line.
func (s *Summary) String() string {
	return fmt.Sprintf("processed=%d failed=%d pruned=%d index=%d elapsed=%s",
		s.Processed, s.Failed, s.Pruned, s.IndexSize, s.Elapsed.Round(time.Millisecond))
}

// Builder runs the embedding pipeline: enumerate source images, embed
// the ones missing from the base state across a bounded worker pool,
// checkpoint progress, and rewrite the final binary index.
type Builder struct {
	embedder embed.Embedder
	ckpt     *index.CheckpointStore
	opts     Options
}

// New creates a Builder. ckpt may be nil to disable checkpointing
// (used by tests; production runs always pass a store).
func New(embedder embed.Embedder, ckpt *index.CheckpointStore, opts Options) *Builder {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.CheckpointInterval <= 0 {
		opts.CheckpointInterval = 100
	}
	return &Builder{embedder: embedder, ckpt: ckpt, opts: opts}
}

type embedResult struct {
	id  string
	vec []float32
	err error
}

// Run executes the pipeline. Structural failures (missing source
// directory, corrupt index on update, checkpoint write failure, final
// write failure) abort with an error; per-image embedding failures are
// logged and counted. The checkpoint file is removed only after the
// final index write has succeeded.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString()}

	base, err := b.loadBase()
	if err != nil {
		return nil, err
	}
	sum.Resumed = base.Len()

	images, err := source.Scan(b.opts.ImagesDir)
	if err != nil {
		return nil, err
	}
	sum.Source = len(images)

	present := make(map[string]bool, len(images))
	var pending []models.CardImage
	for _, img := range images {
		present[img.ID] = true
		if !base.Has(img.ID) {
			pending = append(pending, img)
		}
	}

	if b.opts.Prune {
		// Copy: Delete mutates the slice IDs aliases.
		ids := append([]string(nil), base.IDs()...)
		for _, id := range ids {
			if !present[id] {
				base.Delete(id)
				sum.Pruned++
			}
		}
	}

	if len(pending) > 0 {
		if err := b.embedPending(ctx, base, pending, sum); err != nil {
			return nil, err
		}
	}

	skipped, err := index.WriteFile(b.opts.IndexPath, base, b.embedder.Dimension())
	if err != nil {
		return nil, fmt.Errorf("writing final index: %w", err)
	}
	sum.SkippedIDs = skipped

	// Only now is it safe to drop the checkpoint. Removing it before the
	// final write is durable would lose all progress on a later crash.
	if b.ckpt != nil {
		if err := b.ckpt.Remove(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	sum.IndexSize = base.Len()
	sum.Elapsed = time.Since(start)
	return sum, nil
}

// loadBase resolves the starting state for the configured mode.
func (b *Builder) loadBase() (*index.Index, error) {
	switch b.opts.Mode {
	case ModeUpdate:
		idx, err := index.ReadFile(b.opts.IndexPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return index.New(), nil
			}
			return nil, fmt.Errorf("loading existing index: %w", err)
		}
		return idx, nil
	default:
		if b.ckpt == nil {
			return index.New(), nil
		}
		if b.opts.Force {
			if err := b.ckpt.Remove(); err != nil {
				return nil, err
			}
			return index.New(), nil
		}
		idx, err := b.ckpt.Load()
		if err != nil {
			return nil, err
		}
		if idx.Len() > 0 {
			log.Printf("Resuming from checkpoint: %d embeddings", idx.Len())
		}
		return idx, nil
	}
}

// embedPending fans embedding calls out to a bounded worker pool. All
// index mutation and checkpointing happens on this goroutine, keeping
// checkpoint writes single-writer.
func (b *Builder) embedPending(ctx context.Context, base *index.Index, pending []models.CardImage, sum *Summary) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := b.opts.Workers
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan models.CardImage)
	results := make(chan embedResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for img := range jobs {
				vec, err := b.embedder.Embed(runCtx, img.Path)
				select {
				case results <- embedResult{id: img.ID, vec: vec, err: err}:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, img := range pending {
			select {
			case jobs <- img:
			case <-runCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	sinceSave := 0
	for res := range results {
		if res.err != nil {
			log.Printf("Warning: embedding failed for %s: %v", res.id, res.err)
			sum.Failed++
			continue
		}

		models.Normalize(res.vec)
		base.Set(res.id, res.vec)
		sum.Processed++
		sinceSave++

		if b.ckpt != nil && sinceSave >= b.opts.CheckpointInterval {
			if err := b.ckpt.Save(base); err != nil {
				cancel()
				for range results {
					// drain so workers can exit
				}
				return err
			}
			sinceSave = 0
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
