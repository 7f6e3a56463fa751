package cli

import (
	"github.com/anilkumarmeena/vttkit/internal/config"
	"github.com/anilkumarmeena/vttkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vttkit",
	Short: "WebVTT toolkit for live-stream subtitle feeds",
	Long: `Vttkit converts WebVTT subtitle text into word-timestamped structured
output, corrects systematic timestamp offsets found in live-stream feeds,
and merges incremental partial downloads without duplication.

All commands operate on local files; fetching streams or playlists is left
to external tools.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
