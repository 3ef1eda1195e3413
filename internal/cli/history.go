package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/kvdraft/internal/history"
	"github.com/artpar/kvdraft/internal/logger"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command managing the URL history.
func NewHistoryCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the URL history",
	}
	cmd.AddCommand(newHistoryAddCommand(root))
	cmd.AddCommand(newHistoryURLsCommand(root))
	cmd.AddCommand(newHistoryPruneCommand(root))
	return cmd
}

func newHistoryAddCommand(root *RootOptions) *cobra.Command {
	var requestType string

	cmd := &cobra.Command{
		Use:   "add METHOD URL",
		Short: "Record a URL in the history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := root.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.Add(contextOrBackground(cmd), history.Entry{
				WorkspaceID: root.cfg.Workspace,
				Method:      strings.ToUpper(args[0]),
				URL:         args[1],
				RequestType: requestType,
			})
			if err != nil {
				return fmt.Errorf("failed to record URL: %w", err)
			}
			logger.Named("history").V(1).Info("url recorded", "id", id, "workspace", root.cfg.Workspace)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	cmd.Flags().StringVar(&requestType, "type", "http", "Request type")
	return cmd
}

func newHistoryURLsCommand(root *RootOptions) *cobra.Command {
	var (
		query    string
		page     int
		pageSize int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "urls",
		Short: "List distinct URLs of the workspace, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 {
				pageSize = root.cfg.History.PageSize
			}
			store, err := root.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			urls, err := store.URLs(contextOrBackground(cmd), history.QueryOptions{
				WorkspaceID: root.cfg.Workspace,
				URLContains: query,
				Page:        page,
				PageSize:    pageSize,
			})
			if err != nil {
				return fmt.Errorf("failed to list URLs: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if urls == nil {
					urls = []string{}
				}
				return json.NewEncoder(out).Encode(urls)
			}
			for _, u := range urls {
				if _, err := fmt.Fprintln(out, u); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only URLs containing this text")
	cmd.Flags().IntVar(&page, "page", 0, "Page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Page size (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON array")
	return cmd
}

func newHistoryPruneCommand(root *RootOptions) *cobra.Command {
	var (
		olderThan time.Duration
		keepLast  int
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old history entries of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := root.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			opts := history.PruneOptions{
				WorkspaceID: root.cfg.Workspace,
				KeepLast:    keepLast,
			}
			if olderThan > 0 {
				opts.OlderThan = olderThan
			}
			result, err := store.Prune(contextOrBackground(cmd), opts)
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", result.DeletedCount)
			return err
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Delete entries older than this duration")
	cmd.Flags().IntVar(&keepLast, "keep-last", 0, "Keep only the most recent N entries")
	return cmd
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
