// ABOUTME: CLI command to build the embedding index from card images
// ABOUTME: Resumable batch run with periodic checkpointing and a final summary
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/cardscan/internal/charm"
	"github.com/harper/cardscan/internal/config"
	"github.com/harper/cardscan/internal/pipeline"
	"github.com/joho/godotenv"
)

var (
	buildForce bool
	buildPush  bool
)

// NewBuildCmd creates build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the embedding index from card images",
		Long: `Build the embedding index from a directory of card images.

Every image is embedded and stored in the binary index file. Progress
is checkpointed periodically; an interrupted build resumes from the
checkpoint instead of recomputing finished work. The checkpoint is
removed once the final index is durably written.

Examples:
  cardscan build
  cardscan build --images ./card-images --output ./card-embeddings.bin
  cardscan build --checkpoint-interval 500 --workers 8
  cardscan build --force --push`,
		RunE: runBuild,
	}

	cmd.Flags().String("images", "", "Card image directory (default from CARDSCAN_IMAGES_DIR)")
	cmd.Flags().String("output", "", "Index output path (default from CARDSCAN_INDEX_PATH)")
	cmd.Flags().Int("checkpoint-interval", 0, "Save checkpoint every N processed images")
	cmd.Flags().Int("workers", 0, "Embedding worker count")
	cmd.Flags().BoolVar(&buildForce, "force", false, "Discard any existing checkpoint and rebuild from scratch")
	cmd.Flags().BoolVar(&buildPush, "push", false, "Push the built index to Charm cloud on success")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyPipelineFlags(cmd, cfg)

	sum, err := runPipeline(cmd, cfg, pipeline.ModeBuild, buildForce, false)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if err := printSummary(cmd, sum); err != nil {
		return err
	}

	if buildPush {
		if err := pushIndex(cfg.IndexPath, cfg.Dimension, sum.IndexSize); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Index pushed to Charm cloud")
		}
	}

	return nil
}

// printSummary renders the end-of-run summary in the selected format.
func printSummary(cmd *cobra.Command, sum *pipeline.Summary) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed: %d\n", sum.Processed)
	fmt.Fprintf(cmd.OutOrStdout(), "Failed:    %d\n", sum.Failed)
	if sum.Pruned > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned:    %d\n", sum.Pruned)
	}
	if sum.SkippedIDs > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped:   %d (oversized ids)\n", sum.SkippedIDs)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed:   %d cards\n", sum.IndexSize)
	fmt.Fprintf(cmd.OutOrStdout(), "Elapsed:   %s\n", sum.Elapsed.Round(time.Millisecond))
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Run ID:    %s\n", sum.RunID)
	}
	return nil
}

// pushIndex uploads the index file to the Charm account.
func pushIndex(indexPath string, dim, count int) error {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("reading index for push: %w", err)
	}

	client, err := charm.GetClient()
	if err != nil {
		return fmt.Errorf("failed to connect to Charm: %w", err)
	}

	return client.PushIndex(data, charm.IndexMeta{
		Count:    count,
		Dim:      dim,
		Size:     len(data),
		PushedAt: time.Now(),
	})
}
