package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"enhancer/internal/config"
	"enhancer/internal/pipeline"
	"enhancer/internal/store"
)

// NewBacklogCmd creates the backlog command, a read-only view of the
// originals a sweep would pick up.
func NewBacklogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backlog",
		Short: "List originals still awaiting enhancement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			client := store.NewClient(cfg.Store.BaseURL, config.GetDuration(cfg.Store.Timeout, 0))

			articles, err := client.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch articles: %w", err)
			}

			backlog := pipeline.EligibleArticles(articles)
			if len(backlog) == 0 {
				fmt.Println("Backlog is empty: every original already has an enhanced record.")
				return nil
			}

			fmt.Printf("%d of %d articles awaiting enhancement:\n", len(backlog), len(articles))
			for _, a := range backlog {
				fmt.Printf("  %d\t%s\n", a.ID, a.Title)
			}
			return nil
		},
	}
}
