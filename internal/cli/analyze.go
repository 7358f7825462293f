package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pptfonts/internal/analyze"
	"pptfonts/internal/config"
	"pptfonts/internal/errlog"
	"pptfonts/internal/fontinv"
	"pptfonts/internal/history"
	"pptfonts/internal/legacy"
	"pptfonts/internal/pptx"
	"pptfonts/internal/render"
	"pptfonts/internal/report"
)

func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze one presentation and render a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAnalyze(flags, args[0])
		},
	}
	addAnalyzeFlags(cmd, flags)
	return cmd
}

func runAnalyze(flags *rootFlags, path string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	inventory, err := fontinv.Installed(append(cfg.ExtraFonts, flags.extraFonts...))
	if err != nil {
		return fmt.Errorf("enumerate installed fonts: %w", err)
	}

	var res *analyze.Result
	if legacy.IsCompound(data) {
		res, err = legacy.Analyze(path, inventory)
		if err != nil {
			return err
		}
	} else {
		d, err := pptx.ReadBytes(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		d.Path = path
		res = analyze.Deck(d, inventory)
	}
	for _, diag := range res.Diagnostics {
		errlog.Logf("%s: slide %d: %s", path, diag.Slide, diag.Err)
	}

	format := flags.format
	if format == "" {
		format = cfg.DefaultFormat
	}
	renderer, err := report.New(format)
	if err != nil {
		return err
	}
	if h, ok := renderer.(*report.HTML); ok && flags.thumbnails && !res.Legacy {
		thumbs, err := render.Thumbnails(path, cfg.ThumbnailWidth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pptfonts: thumbnails skipped: %v\n", err)
			errlog.Logf("%s: thumbnail rendering: %v", path, err)
		} else {
			h.Thumbnails = thumbs
		}
	}

	w, closeOut, err := outWriter(flags.outPath)
	if err != nil {
		return err
	}
	defer closeOut()
	if err := renderer.Render(w, res); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if !flags.noHistory && !cfg.DisableHistory {
		recordHistory(cfg, res, data)
	}
	return nil
}

// recordHistory stores the analysis outcome. History failures never fail
// the analysis.
func recordHistory(cfg *config.Config, res *analyze.Result, data []byte) {
	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		errlog.Logf("history path: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		errlog.Logf("history dir: %v", err)
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		errlog.Logf("history open: %v", err)
		return
	}
	defer store.Close()

	fp := history.Fingerprint(data)
	if prev, err := store.LastByFingerprint(fp); err == nil {
		fmt.Fprintf(os.Stderr, "pptfonts: unchanged since last analysis on %s\n",
			prev.AnalyzedAt.Format("2006-01-02 15:04"))
	}
	if _, err := store.Record(res, fp); err != nil {
		errlog.Logf("history record: %v", err)
	}
}
