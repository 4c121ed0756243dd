package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/openswoop/socharvest/pkg/soc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger   *zap.Logger
	useCache bool
	verbose  bool
	timeout  time.Duration
)

var cacheDir = "socharvest/web-cache"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "socharvest",
	Short: "A tool for harvesting the Rutgers course catalog",
	Long: `Harvests course listings from the Rutgers Schedule of Classes API
across every campus and recent term into a line-delimited JSON master
list, keeping a ledger of the course strings recorded per campus.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useCache, "cache", false, "Serve repeated requests from the web cache (default: false)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Per-request timeout for the catalog API")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true
	config.Sampling = nil
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func newCollector() *colly.Collector {
	var dir string
	if useCache {
		userCacheDir, err := os.UserCacheDir()
		if err == nil {
			dir = filepath.Join(userCacheDir, cacheDir)
		}
	}
	logger.Debug("Configured collector", zap.String("cache_dir", dir), zap.Duration("timeout", timeout))
	return soc.NewCollector(dir, timeout)
}
