package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"retirement-match-engine/internal/app"
	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/utils"
)

var errNoDatabase = errors.New("database is not configured or unreachable")

type scoreOptions struct {
	limit  int
	output string
}

func (o *scoreOptions) bind(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().IntVarP(&o.limit, "limit", "n", defaultLimit, "keep only the best n matches (0 keeps all)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "text", "output format: text or json")
}

func (c *cli) filesCmd() *cobra.Command {
	var (
		opts       scoreOptions
		profile    string
		candidates []string
	)
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Score a profile JSON file against candidate CSV or JSON files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), c.cfg, c.logger, app.Options{})
			if err != nil {
				return err
			}

			prefs, err := readProfile(profile)
			if err != nil {
				return err
			}

			var all []models.RawCandidate
			var warnings []string
			for _, path := range candidates {
				found, skipped, err := readCandidates(path)
				if err != nil {
					return err
				}
				all = append(all, found...)
				warnings = append(warnings, skipped...)
			}
			if len(all) == 0 {
				return errors.New("no candidates to score")
			}

			result, err := a.Matcher.ScoreRaw(cmd.Context(), prefs, all)
			if err != nil {
				return err
			}
			result.Warnings = append(result.Warnings, warnings...)
			return opts.print(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "preference profile JSON file")
	cmd.Flags().StringSliceVarP(&candidates, "candidates", "c", nil, "candidate file (.csv or .json), repeatable")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("candidates")
	opts.bind(cmd, 0)
	return cmd
}

func (c *cli) userCmd() *cobra.Command {
	var opts scoreOptions
	cmd := &cobra.Command{
		Use:   "user <user-id>",
		Short: "Score a stored profile against every stored town",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), c.cfg, c.logger, app.Options{ConnectDB: true})
			if err != nil {
				return err
			}
			defer a.Close()
			if a.DB == nil {
				return errNoDatabase
			}

			result, err := a.Matcher.ScoreUser(cmd.Context(), args[0], opts.limit)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}
	opts.bind(cmd, 10)
	return cmd
}

func readProfile(path string) (*models.RawPreferences, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var prefs models.RawPreferences
	if err := json.Unmarshal(b, &prefs); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &prefs, nil
}

// readCandidates loads a candidate file. CSV rows that fail to parse are
// returned as warnings.
func readCandidates(path string) ([]models.RawCandidate, []string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading candidates: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var out []models.RawCandidate
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, nil, fmt.Errorf("parsing candidates %s: %w", path, err)
		}
		return out, nil, nil
	case ".csv":
		parser := utils.NewCSVParser()
		out, rowErrors := parser.ParseCandidates(string(b))
		var warnings []string
		for _, e := range rowErrors {
			warnings = append(warnings, fmt.Sprintf("%s: %v", filepath.Base(path), e))
		}
		for _, col := range parser.UnknownColumns() {
			utils.GetLogger().Debug("Ignored CSV column", zap.String("file", path), zap.String("column", col))
		}
		return out, warnings, nil
	default:
		return nil, nil, fmt.Errorf("unsupported candidate file %s: want .csv or .json", path)
	}
}

func (o *scoreOptions) print(w io.Writer, result *matcher.BatchResult) error {
	if o.limit > 0 {
		result.Results = matcher.TopMatches(result.Results, o.limit)
	}

	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		return printTable(w, result)
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}

func printTable(w io.Writer, result *matcher.BatchResult) error {
	fmt.Fprintf(w, "Batch %s (scoring %s)\n\n", result.BatchID, result.ScoringVersion)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"RANK", "ID", "NAME", "MATCH"}
	for _, cat := range models.Categories() {
		header = append(header, strings.ToUpper(string(cat)))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	var failed []models.MatchResult
	for _, r := range result.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	for i, r := range matcher.TopMatches(result.Results, 0) {
		row := []string{fmt.Sprint(i + 1), r.CandidateID, r.CandidateName, fmt.Sprintf("%d%%", r.OverallPercent)}
		for _, cat := range models.Categories() {
			row = append(row, categoryCell(r.Categories[cat]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, r := range failed {
		fmt.Fprintf(w, "failed %s: %s\n", r.CandidateID, r.Error)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "\nscored %d of %d, average %.1f%%\n", result.Summary.Scored, result.Summary.Total, result.Summary.AveragePercent)
	return nil
}

func categoryCell(c models.CategoryResult) string {
	if c.MaxScore <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f/%.0f", c.Score, c.MaxScore)
}
