package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/becsite/backend/internal/service"
	"github.com/becsite/backend/pkg/startgg"
)

func eventsCmd() *cobra.Command {
	var (
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List tournaments from start.gg (or the mock schedule)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			client := startgg.New(startgg.Config{
				Mode:    startgg.ParseMode(cfg.StartGG.Mode),
				OwnerID: cfg.StartGG.OwnerID,
				Token:   cfg.StartGG.APIToken,
			}, startgg.WithLocation(loc))

			all, err := client.FetchAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch tournaments: %w", err)
			}
			events := service.FilterByCategory(all, category)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "START\tGAME\tNAME\tENTRANTS")
			for _, e := range events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.StartAt, e.Game, e.Name, e.Entrants)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d event(s), mode %s\n", len(events), client.Mode())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by game (case-insensitive substring)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}
