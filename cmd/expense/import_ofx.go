package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/ofx"
	"github.com/Veraticus/expense-tracker/internal/tracker"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func importOFXCmd(a *app) *cobra.Command {
	var (
		category string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX files",
		Long: `Import the debits of OFX or QFX (Quicken) statements exported from your bank.

Each debit becomes an expense dated on its posting day. Credits are ignored
and a transaction appearing in several files is imported once.

Examples:
  # Import a single file
  expense import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import several statements into one category
  expense import-ofx -c food ~/Downloads/card_*.qfx

  # Preview without saving
  expense import-ofx --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			drafts, err := readDrafts(cmd, files, cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(drafts) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No debits found to import"))
				return nil
			}

			total := decimal.Zero
			for _, d := range drafts {
				total = total.Add(decimal.NewFromFloat(d.Amount))
			}

			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: would import %d expenses totaling %s", len(drafts), total.StringFixed(2))))
				return nil
			}

			t, err := a.initTracker(cmd.Context())
			if err != nil {
				return err
			}

			added, err := t.AddAll(cmd.Context(), drafts)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses totaling %s (IDs %d-%d)",
				len(added), total.StringFixed(2), added[0].ID, added[len(added)-1].ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryMisc), "category for the imported expenses")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview import without saving")

	return cmd
}

// expandFiles expands glob patterns. A pattern without matches is kept when
// it names an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

// readDrafts parses files in order and turns their unique debits into
// drafts. Unreadable files are skipped; it fails only when none could be read.
func readDrafts(cmd *cobra.Command, files []string, category model.Category) ([]tracker.Draft, error) {
	parser := ofx.NewParser()
	seen := make(map[string]struct{})
	progress := cli.NewProgress(cmd.ErrOrStderr(), len(files), "Reading statements")

	var drafts []tracker.Draft
	var lastErr error
	parsed := 0

	for _, path := range files {
		entries, err := parseFile(cmd, parser, path)
		progress.Step()
		if err != nil {
			slog.Error("Failed to read OFX file", "file", path, "error", err)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("Skipped %s: %v", filepath.Base(path), err)))
			lastErr = err
			continue
		}
		parsed++

		debits := ofx.Debits(entries, seen)
		for _, e := range debits {
			if err := validateEntry(e); err != nil {
				slog.Warn("Skipping OFX entry", "file", filepath.Base(path), "fitid", e.FitID, "error", err)
				continue
			}
			drafts = append(drafts, tracker.Draft{
				Date:        model.DateOf(e.Posted),
				Description: e.Description,
				Category:    category,
				Amount:      e.Amount,
			})
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"entries", len(entries),
			"debits", len(debits))
	}
	progress.Done()

	if parsed == 0 {
		return nil, fmt.Errorf("no OFX file could be read: %w", lastErr)
	}
	return drafts, nil
}

func parseFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parser.ParseFile(cmd.Context(), f)
}

func validateEntry(e ofx.Entry) error {
	if err := model.ValidateDescription(e.Description); err != nil {
		return err
	}
	return model.ValidateAmount(e.Amount)
}
