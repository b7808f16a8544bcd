package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ParasiteAtlas/internal/catalog"
	"ParasiteAtlas/internal/client"
	"ParasiteAtlas/internal/tui"
)

type options struct {
	server  string
	timeout time.Duration
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "atlas",
		Short:         "Browse the parasite catalog",
		Long:          "atlas talks to a running catalog server. Run without a subcommand to open the interactive browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts)
		},
	}

	server := os.Getenv("ATLAS_SERVER")
	if server == "" {
		server = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "catalog server base URL (env ATLAS_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "per-request timeout")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print raw JSON")

	root.AddCommand(
		newBrowseCmd(opts),
		newSearchCmd(opts),
		newGetCmd(opts),
		newCategoriesCmd(opts),
	)
	return root
}

func newBrowseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive card browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts)
		},
	}
}

func runBrowse(opts *options) error {
	c, err := client.New(opts.server, opts.timeout)
	if err != nil {
		return err
	}
	defer c.Close()

	p := tea.NewProgram(tui.New(c, opts.timeout), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newSearchCmd(opts *options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.Client) error {
				entries, err := c.Search(ctx, strings.Join(args, " "), category)
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", catalog.CategoryAll, "category filter")
	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.Client) error {
				e, found, err := c.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("get %s: %w", args[0], err)
				}
				if opts.json {
					if !found {
						return writeJSON(cmd.OutOrStdout(), nil)
					}
					return writeJSON(cmd.OutOrStdout(), e)
				}
				if !found {
					return fmt.Errorf("no entry for %q", args[0])
				}
				printEntry(cmd.OutOrStdout(), e)
				return nil
			})
		},
	}
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client.Client) error {
				cats, err := c.Categories(ctx)
				if err != nil {
					return fmt.Errorf("categories: %w", err)
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), cats)
				}
				for _, cat := range cats {
					fmt.Fprintln(cmd.OutOrStdout(), cat)
				}
				return nil
			})
		},
	}
}

func withClient(cmd *cobra.Command, opts *options, fn func(context.Context, *client.Client) error) error {
	c, err := client.New(opts.server, opts.timeout)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	return fn(ctx, c)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEntries(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No parasites found")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-32s %-14s %s\n", e.ID, e.Category, e.Name)
	}
	fmt.Fprintf(w, "\n%d Species\n", len(entries))
}

func printEntry(w io.Writer, e catalog.Entry) {
	fmt.Fprintf(w, "%s (%s)\n", e.Name, e.Category)
	if e.ScientificName != "" {
		fmt.Fprintf(w, "  scientific name: %s\n", e.ScientificName)
	}
	fmt.Fprintf(w, "  habitat:         %s\n", e.Habitat)
	fmt.Fprintf(w, "  lifecycle:       %s\n", e.Lifecycle)
	if len(e.Symptoms) > 0 {
		fmt.Fprintf(w, "  symptoms:        %s\n", strings.Join(e.Symptoms, ", "))
	}
	if e.Prevalence != "" {
		fmt.Fprintf(w, "  prevalence:      %s\n", e.Prevalence)
	}
	fmt.Fprintf(w, "  image:           %s\n\n%s\n", e.Image, e.Description)
}
