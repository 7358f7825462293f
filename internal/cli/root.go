// Package cli provides the pptfonts command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pptfonts/internal/config"
	"pptfonts/internal/errlog"
)

// rootFlags are the options shared by the analyze commands.
type rootFlags struct {
	configPath string
	format     string
	outPath    string
	thumbnails bool
	extraFonts []string
	noHistory  bool
	debug      bool
}

// NewRootCmd creates the root command. Running with just a file argument
// analyzes it, so `pptfonts deck.pptx` is the short form of
// `pptfonts analyze deck.pptx`.
func NewRootCmd(version string) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "pptfonts [file]",
		Short: "Analyze font usage in PowerPoint presentations",
		Long: `pptfonts resolves the effective font of every text run in a
presentation, reports which fonts are used on which slides, and checks
them against the fonts installed on this machine.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAnalyze(flags, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: user config dir)")
	pf.BoolVar(&flags.debug, "debug", false, "log failures to the error log")

	addAnalyzeFlags(rootCmd, flags)

	rootCmd.AddCommand(newAnalyzeCmd(flags))
	rootCmd.AddCommand(newDumpCmd(flags))
	rootCmd.AddCommand(newHistoryCmd(flags))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pptfonts %s\n", version)
		},
	})

	return rootCmd
}

func addAnalyzeFlags(cmd *cobra.Command, flags *rootFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.format, "format", "f", "", "report format: console, json, markdown, html")
	f.StringVarP(&flags.outPath, "out", "o", "", "write the report to a file instead of stdout")
	f.BoolVar(&flags.thumbnails, "thumbnails", false, "embed slide thumbnails in HTML reports")
	f.StringArrayVar(&flags.extraFonts, "font", nil, "treat a font family as installed (repeatable)")
	f.BoolVar(&flags.noHistory, "no-history", false, "skip recording this analysis")
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	defer errlog.Close()
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pptfonts: %v\n", err)
		errlog.Logf("%v", err)
		return 1
	}
	return 0
}

// loadConfig resolves and loads the configuration file, initializing the
// error log first when --debug is set.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.debug {
		if err := errlog.Init(""); err != nil {
			fmt.Fprintf(os.Stderr, "pptfonts: error log unavailable: %v\n", err)
		}
	}
	cm, err := config.NewManager(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cm.Load(); err != nil {
		return nil, err
	}
	return cm.Get(), nil
}

// outWriter opens the report destination.
func outWriter(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
