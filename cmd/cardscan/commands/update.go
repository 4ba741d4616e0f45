// ABOUTME: CLI command to incrementally update an existing index
// ABOUTME: Embeds only images missing from the loaded index, then rewrites it
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/cardscan/internal/config"
	"github.com/harper/cardscan/internal/pipeline"
	"github.com/joho/godotenv"
)

var (
	updatePrune bool
)

// NewUpdateCmd creates update command
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge new card images into an existing index",
		Long: `Merge new card images into an existing index.

Loads the current binary index (or starts empty if none exists),
embeds only the images whose ids are not yet indexed, and rewrites the
full index file. Ids that have disappeared from the image directory
are kept by default so previously indexed cards stay searchable; pass
--prune to remove them.

Examples:
  cardscan update
  cardscan update --prune
  cardscan update --images ./card-images --workers 8`,
		RunE: runUpdate,
	}

	cmd.Flags().String("images", "", "Card image directory (default from CARDSCAN_IMAGES_DIR)")
	cmd.Flags().String("output", "", "Index path to update (default from CARDSCAN_INDEX_PATH)")
	cmd.Flags().Int("checkpoint-interval", 0, "Save checkpoint every N processed images")
	cmd.Flags().Int("workers", 0, "Embedding worker count")
	cmd.Flags().BoolVar(&updatePrune, "prune", false, "Remove ids no longer present in the image directory")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyPipelineFlags(cmd, cfg)

	sum, err := runPipeline(cmd, cfg, pipeline.ModeUpdate, false, updatePrune)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	return printSummary(cmd, sum)
}
