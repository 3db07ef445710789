// Package cmd holds the todo command tree.
package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/todo/internal/config"
)

// NewRootCmd builds the command tree. assets is the embedded client bundle,
// nil when the binary was built for development.
func NewRootCmd(cfg *config.AppConfig, assets fs.FS) *cobra.Command {
	var mode string

	root := &cobra.Command{
		Use:           "todo",
		Short:         "To-do list web app and API server",
		Long:          "Serve the to-do web UI and its REST API, or manage todos from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("mode") {
				cfg.Mode = mode
			}
		},
	}
	root.PersistentFlags().StringVar(&mode, "mode", cfg.Mode,
		`deployment mode; "development" points the UI at http://127.0.0.1:4000/api (overrides TODO_MODE)`)

	root.AddCommand(
		NewWebCmd(cfg, assets),
		NewListCmd(cfg),
		NewAddCmd(cfg),
		NewDoneCmd(cfg),
		NewRemoveCmd(cfg),
		NewImportCmd(cfg),
		NewVersionCmd(),
		NewUpdateCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(cfg *config.AppConfig, assets fs.FS) {
	if err := NewRootCmd(cfg, assets).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
