package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/todo/internal/client"
	"github.com/shaharia-lab/todo/internal/config"
	"github.com/shaharia-lab/todo/internal/storage"
)

// addServerFlag registers --server, the origin a relative base URL is
// resolved against.
func addServerFlag(cmd *cobra.Command, cfg *config.AppConfig) *string {
	return cmd.Flags().String("server", cfg.ServerURL, "server origin (overrides TODO_SERVER_URL)")
}

// newClient builds an API client from the base URL of the configured mode.
func newClient(cfg *config.AppConfig, server string) (*client.Client, error) {
	base, err := client.ResolveBaseURL(server, cfg.BaseURL())
	if err != nil {
		return nil, err
	}
	return client.New(base)
}

// NewListCmd returns the "list" subcommand.
func NewListCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		Args:  cobra.NoArgs,
	}
	server := addServerFlag(cmd, cfg)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		c, err := newClient(cfg, *server)
		if err != nil {
			return err
		}
		todos, err := c.List(cmd.Context())
		if err != nil {
			return err
		}
		return printTodos(cmd.OutOrStdout(), todos)
	}
	return cmd
}

// NewAddCmd returns the "add" subcommand.
func NewAddCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <body>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
	}
	server := addServerFlag(cmd, cfg)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cfg, *server)
		if err != nil {
			return err
		}
		todo, err := c.Create(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), todo.ID)
		return nil
	}
	return cmd
}

// NewDoneCmd returns the "done" subcommand.
func NewDoneCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo as completed",
		Args:  cobra.ExactArgs(1),
	}
	server := addServerFlag(cmd, cfg)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cfg, *server)
		if err != nil {
			return err
		}
		return c.Complete(cmd.Context(), args[0])
	}
	return cmd
}

// NewRemoveCmd returns the "rm" subcommand.
func NewRemoveCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
	}
	server := addServerFlag(cmd, cfg)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cfg, *server)
		if err != nil {
			return err
		}
		return c.Delete(cmd.Context(), args[0])
	}
	return cmd
}

func printTodos(w io.Writer, todos []storage.Todo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tBODY")
	for _, t := range todos {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%s\n", t.ID, done, t.Body)
	}
	return tw.Flush()
}
