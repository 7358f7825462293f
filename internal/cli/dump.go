package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pptfonts/internal/pptx"
	"pptfonts/internal/report"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the full deck structure with per-run resolved fonts as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := loadConfig(flags); err != nil {
				return err
			}
			d, err := pptx.Read(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			w, closeOut, err := outWriter(flags.outPath)
			if err != nil {
				return err
			}
			defer closeOut()
			return report.Dump(w, d)
		},
	}
	cmd.Flags().StringVarP(&flags.outPath, "out", "o", "", "write the dump to a file instead of stdout")
	return cmd
}
