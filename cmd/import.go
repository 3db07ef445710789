package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/todo/internal/config"
	"github.com/shaharia-lab/todo/internal/logger"
	"github.com/shaharia-lab/todo/internal/seed"
	"github.com/shaharia-lab/todo/internal/service"
	"github.com/shaharia-lab/todo/internal/storage"
)

// NewImportCmd returns the "import" subcommand that loads todos from a YAML
// file straight into the local database.
func NewImportCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import todos from a YAML file into the local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := seed.ParseFile(args[0])
			if err != nil {
				return err
			}

			db, _, err := storage.NewSQLiteDB(cmd.Context(), cfg.DBPath())
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close() //nolint:errcheck

			log := logger.New(cmd.ErrOrStderr(), cfg.SlogLevel())
			svc := service.NewTodoService(storage.NewSQLiteTodoStore(db), nil, log)

			n, err := seed.Import(cmd.Context(), svc, items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d todos into %s\n", n, cfg.DBPath())
			return nil
		},
	}
}
