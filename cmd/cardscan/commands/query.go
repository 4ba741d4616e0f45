// ABOUTME: CLI command to identify a card photo against the index
// ABOUTME: Embeds the query image and prints the top-K similarity matches
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/cardscan/internal/config"
	"github.com/harper/cardscan/internal/index"
	"github.com/harper/cardscan/internal/models"
	"github.com/joho/godotenv"
)

var (
	queryTop    int
	queryVector string
)

// NewQueryCmd creates query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <image>",
		Short: "Identify a card photo against the index",
		Long: `Identify a card photo by ranking it against the embedding index.

The photo is embedded with the same model used at build time and every
indexed card is scored by cosine similarity. For offline testing a raw
query vector can be passed as JSON with --vector instead of an image.

Examples:
  cardscan query photo.jpg
  cardscan query --top 10 photo.jpg
  cardscan query --format json photo.jpg
  cardscan query --vector '[1,0,0,0]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryTop, "top", 5, "Maximum matches to return")
	cmd.Flags().StringVar(&queryVector, "vector", "", "Raw query vector as a JSON float array (skips embedding)")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(queryTop, "top"); err != nil {
		return err
	}
	if queryVector == "" && len(args) == 0 {
		return fmt.Errorf("an image path or --vector is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	idx, err := index.ReadFile(cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}

	var query []float32
	if queryVector != "" {
		if err := json.Unmarshal([]byte(queryVector), &query); err != nil {
			return fmt.Errorf("parsing --vector: %w", err)
		}
	} else {
		embedder, err := newEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("initializing embedder: %w", err)
		}
		query, err = embedder.Embed(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("embedding query image: %w", err)
		}
	}
	models.Normalize(query)

	results := index.Search(idx, query, queryTop)

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No matches (index is empty)")
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		// Table format
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "RANK\tSCORE\tCARD ID\n")
		fmt.Fprintf(w, "----\t-----\t-------\n")
		for i, result := range results {
			fmt.Fprintf(w, "%d\t%.4f\t%s\n", i+1, result.Score, truncate(result.CardID, 40))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d match(es) across %d indexed cards\n", len(results), idx.Len())
		}
	}

	return nil
}
