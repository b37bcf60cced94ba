package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotesync/internal/app"
	"github.com/jsamuelsen/quotesync/internal/domain"
)

// ErrSyncFailed is returned by the sync command when the remote could not be reached.
var ErrSyncFailed = errors.New("sync failed")

type rootOptions struct {
	profile   string
	storePath string
	verbose   bool
}

func newRootCmd(open opener) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Manage the local quote collection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.profile, "profile", "local", "Configuration profile to load from configs/")
	root.PersistentFlags().StringVar(&opts.storePath, "db", "", "SQLite database path (overrides storage.path)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(
		newListCmd(open, opts),
		newExportCmd(open, opts),
		newImportCmd(open, opts),
		newSyncCmd(open, opts),
		newPushCmd(open, opts),
	)

	return root
}

// withEnv opens an env, runs fn and prints the notifications fn produced.
func withEnv(cmd *cobra.Command, open opener, opts *rootOptions, fn func(ctx context.Context, e *env) error) error {
	ctx := app.WithSyncTrigger(cmd.Context(), app.TriggerManual)

	e, err := open(ctx, opts)
	if err != nil {
		return err
	}

	defer func() { _ = e.close() }()

	runErr := fn(ctx, e)

	for _, n := range e.board.Active() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", n.Level, n.Message)
	}

	return runErr
}

func newListCmd(open opener, opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the quotes, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, opts, func(ctx context.Context, e *env) error {
				quotes := domain.NewCollection(e.svc.Quotes(ctx)).Filter(category)
				printQuotes(cmd.OutOrStdout(), quotes)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", domain.CategoryAll, "Only print quotes in this category")

	return cmd
}

func printQuotes(w io.Writer, quotes []domain.Quote) {
	for _, q := range quotes {
		fmt.Fprintf(w, "[%s] %s\n", q.Category, q.Text)
	}
}

func newExportCmd(open opener, opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, name, err := splitPath(file)
			if err != nil {
				return err
			}

			return withEnv(cmd, open, opts, func(ctx context.Context, e *env) error {
				quotes := e.svc.Export(ctx)
				if err := e.files(dir).Write(name, quotes); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "exported %d quotes to %s\n", len(quotes), file)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "quotes.json", "Destination file")

	return cmd
}

func newImportCmd(open opener, opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Append the quotes of a JSON file; any invalid entry rejects the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, name, err := splitPath(file)
			if err != nil {
				return err
			}

			return withEnv(cmd, open, opts, func(ctx context.Context, e *env) error {
				records, err := e.files(dir).Read(name)
				if err != nil {
					e.svc.RejectImport(ctx, err)
					return err
				}

				n, err := e.svc.Import(ctx, records)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "imported %d quotes\n", n)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding an array of {text, category}")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newSyncCmd(open opener, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Merge the remote quotes into the collection; the server wins conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, opts, func(ctx context.Context, e *env) error {
				r := e.svc.Sync(ctx)

				fmt.Fprintf(cmd.OutOrStdout(), "status=%s added=%d conflicts=%d\n", r.Status, r.Added, r.Conflicts)

				if r.Status == domain.SyncFailed {
					return fmt.Errorf("%w: %s", ErrSyncFailed, r.Reason)
				}

				return nil
			})
		},
	}
}

func newPushCmd(open opener, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Post the collection to the remote source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, opts, func(ctx context.Context, e *env) error {
				receipt, err := e.svc.PostLocal(ctx)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "posted %d quotes (id %s)\n", receipt.Accepted, receipt.ID)

				return nil
			})
		},
	}
}
