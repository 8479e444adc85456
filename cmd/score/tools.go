package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/database"
	"retirement-match-engine/internal/utils"
)

func (c *cli) validateCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-csv <file>",
		Short: "Check the header and rows of a candidate CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading csv: %w", err)
			}
			result, err := utils.ValidateCSVStructure(string(b))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("%s is not a valid candidate CSV", args[0])
			}
			return nil
		},
	}
}

func (c *cli) validateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config [file]",
		Short: "Validate a scoring table, or the built-in one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.cfg.ScoringConfigPath
			if len(args) == 1 {
				path = args[0]
			}

			s := config.DefaultScoring()
			if path != "" {
				var err error
				if s, err = config.LoadScoring(path); err != nil {
					return err
				}
			}

			v := s.Validate()
			out := cmd.OutOrStdout()
			for _, e := range v.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			for _, w := range v.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if err := v.Err(); err != nil {
				return err
			}
			fmt.Fprintf(out, "scoring table %s is valid\n", s.Version)
			return nil
		},
	}
}

func (c *cli) checkDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Test the database connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "connected to %s\n", maskURL(c.cfg.DatabaseURL()))
			return nil
		},
	}
}

func (c *cli) initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the towns and user_preferences tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			if err := db.ApplySchema(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func (c *cli) loadTownsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-towns <file>...",
		Short: "Upsert candidate towns from CSV or JSON files into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var towns []models.RawCandidate
			for _, path := range args {
				found, warnings, err := readCandidates(path)
				if err != nil {
					return err
				}
				for _, w := range warnings {
					fmt.Fprintf(out, "warning: %s\n", w)
				}
				towns = append(towns, found...)
			}
			if len(towns) == 0 {
				return errors.New("no towns to load")
			}

			db, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := database.NewTownRepository(db).Upsert(cmd.Context(), towns)
			if err != nil {
				return err
			}
			for _, e := range result.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			fmt.Fprintf(out, "loaded %d towns, %d failed\n", result.UpsertedCount, result.FailedCount)
			return nil
		},
	}
}

func (c *cli) connect(ctx context.Context) (*database.DB, error) {
	if !c.cfg.DatabaseConfigured() {
		return nil, errors.New("set DATABASE_URL or DB_PASSWORD to use the database")
	}
	return database.New(ctx, c.cfg)
}

// maskURL hides the middle of a connection string.
func maskURL(value string) string {
	if len(value) <= 12 {
		return "***"
	}
	return value[:8] + "..." + value[len(value)-4:]
}
