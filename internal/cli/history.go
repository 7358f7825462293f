package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pptfonts/internal/history"
)

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent analyses",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			dbPath, err := cfg.HistoryDBPath()
			if err != nil {
				return err
			}
			store, err := history.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				pterm.Println("(no analyses recorded yet)")
				return nil
			}

			data := pterm.TableData{{"When", "File", "Slides", "Fonts", "Missing"}}
			for _, e := range entries {
				missing := strconv.Itoa(e.MissingCount)
				if len(e.MissingFonts) > 0 {
					missing = fmt.Sprintf("%d (%s)", e.MissingCount, strings.Join(e.MissingFonts, ", "))
				}
				slides := strconv.Itoa(e.SlideCount)
				if e.Legacy {
					slides = "-"
				}
				data = append(data, []string{
					e.AnalyzedAt.Format("2006-01-02 15:04"),
					e.Path,
					slides,
					strconv.Itoa(e.FontCount),
					missing,
				})
			}
			pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
