// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all cardscan index tooling
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 ██████╗ █████╗ ██████╗ ██████╗ ███████╗ ██████╗ █████╗ ███╗   ██╗
██╔════╝██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔════╝██╔══██╗████╗  ██║
██║     ███████║██████╔╝██║  ██║███████╗██║     ███████║██╔██╗ ██║
██║     ██╔══██║██╔══██╗██║  ██║╚════██║██║     ██╔══██║██║╚██╗██║
╚██████╗██║  ██║██║  ██║██████╔╝███████║╚██████╗██║  ██║██║ ╚████║
 ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═══╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cardscan",
		Short: "Visual card index builder and search",
		Long: banner + `
Cardscan builds a searchable embedding index from a directory of
trading card images and identifies cards from photos by cosine
similarity against that index.

Builds are resumable: progress is checkpointed periodically and an
interrupted run picks up where it left off.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto|table|json)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewUpdateCmd())
	rootCmd.AddCommand(NewQueryCmd())
	rootCmd.AddCommand(NewSyncCmd())
	rootCmd.AddCommand(NewMCPCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
