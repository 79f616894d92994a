package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden from the embedded VERSION file or -ldflags.
var Version = "dev"

var (
	configFlag        string
	logLevelFlag      string
	logFormatFlag     string
	dryRunFlag        bool
	useExifToolFlag   bool
	filenameDatesFlag bool
	noVerifyFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "mediasort <source_dir> <target_dir>",
	Short: "Copy photos and videos into a date-structured library",
	Long: `mediasort copies supported media from a source directory into the target
directory, grouped by creation date. Files without a readable date go to the
unsorted folder. The source directory is never modified.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSort(cmd, args[0], args[1])
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion copies Version onto the root command.
func ApplyVersion() {
	rootCmd.Version = Version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: ./mediasort.toml or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Show decisions without copying")
	rootCmd.PersistentFlags().BoolVar(&useExifToolFlag, "exiftool", false, "Also read dates with the exiftool binary")
	rootCmd.PersistentFlags().BoolVar(&filenameDatesFlag, "filename-dates", false, "Fall back to dates found in file names")
	rootCmd.PersistentFlags().BoolVar(&noVerifyFlag, "no-verify", false, "Skip hash verification of copies")

	ApplyVersion()
}
