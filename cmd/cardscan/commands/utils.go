// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates flag validation, embedder setup, and option plumbing
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/cardscan/internal/config"
	"github.com/harper/cardscan/internal/embed"
	"github.com/harper/cardscan/internal/index"
	"github.com/harper/cardscan/internal/pipeline"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// newEmbedder builds the production embedding client from config
func newEmbedder(cfg *config.Config) (embed.Embedder, error) {
	return embed.NewClient(&embed.ClientConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.EmbeddingModel,
		Dimension:  cfg.Dimension,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
}

// applyPipelineFlags folds flags that were explicitly set into the
// environment-derived config. Flags win over environment.
func applyPipelineFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("images") {
		cfg.ImagesDir, _ = cmd.Flags().GetString("images")
	}
	if cmd.Flags().Changed("output") {
		cfg.IndexPath, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("checkpoint-interval") {
		cfg.CheckpointInterval, _ = cmd.Flags().GetInt("checkpoint-interval")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
}

// runPipeline wires up the embedder, checkpoint store, and builder for
// the given mode and executes it.
func runPipeline(cmd *cobra.Command, cfg *config.Config, mode pipeline.Mode, force, prune bool) (*pipeline.Summary, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	ckpt := index.NewCheckpointStore(cfg.CheckpointPath, cfg.Dimension)
	builder := pipeline.New(embedder, ckpt, pipeline.Options{
		ImagesDir:          cfg.ImagesDir,
		IndexPath:          cfg.IndexPath,
		Mode:               mode,
		Workers:            cfg.Workers,
		CheckpointInterval: cfg.CheckpointInterval,
		Force:              force,
		Prune:              prune,
	})

	return builder.Run(cmd.Context())
}
