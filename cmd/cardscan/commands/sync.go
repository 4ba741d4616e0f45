// ABOUTME: Sync commands for sharing the index artifact via Charm cloud
// ABOUTME: Provides status, push, pull, and manual sync
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/cardscan/internal/charm"
	"github.com/harper/cardscan/internal/config"
	"github.com/harper/cardscan/internal/index"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Share the built index via Charm cloud",
		Long: `Share the built index across devices via Charm cloud.

The binary index artifact is stored in your Charm account (SSH key
auth) so a device that cannot run the build pipeline can still pull a
ready-made index and query locally.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncPullCmd())
	cmd.AddCommand(newSyncNowCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection info and the pushed index metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			id, err := client.ID()
			if err != nil {
				fmt.Println("Status: Not connected")
				return nil
			}

			fmt.Println("Status: Connected")
			fmt.Printf("User ID: %s\n", id)
			fmt.Printf("Host: %s\n", os.Getenv("CHARM_HOST"))

			meta, err := client.GetMeta()
			if err != nil {
				return err
			}
			if meta == nil {
				fmt.Println("No index pushed yet")
				return nil
			}
			fmt.Printf("Pushed index: %d cards, dim %d, %d bytes, at %s\n",
				meta.Count, meta.Dim, meta.Size, meta.PushedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload the local index file to Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// Validate before uploading; pushing a corrupt artifact
			// would poison every device that pulls it.
			idx, err := index.ReadFile(cfg.IndexPath)
			if err != nil {
				return fmt.Errorf("refusing to push: %w", err)
			}

			if err := pushIndex(cfg.IndexPath, cfg.Dimension, idx.Len()); err != nil {
				return err
			}

			fmt.Printf("Pushed %d cards\n", idx.Len())
			return nil
		},
	}
}

func newSyncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Download the pushed index to the local index path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			data, err := client.PullIndex()
			if err != nil {
				return err
			}

			// Validate before overwriting a possibly-good local file.
			idx, err := index.Decode(data)
			if err != nil {
				return fmt.Errorf("pulled index is corrupt: %w", err)
			}

			if err := index.WriteEncoded(cfg.IndexPath, data); err != nil {
				return err
			}

			fmt.Printf("Pulled %d cards to %s\n", idx.Len(), cfg.IndexPath)
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			fmt.Println("Syncing...")
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Println("Sync complete")
			return nil
		},
	}
}
