package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/YashJagani/citypop/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	// Overrides for config values; applied only when set
	flagHTTPTimeoutSec int
	flagCity           string
	flagMinYear        int
	flagMaxYear        int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "citypop",
	Short: "citypop: city population series and box-plot summaries",
	Long: `citypop fetches a city's population counts, cleans them into a sorted
yearly series, and produces five-number summaries and chart-ready datasets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return nil
		}
		return cfg.Validate()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.citypop/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCity, "city", "", "city to query (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMinYear, "min-year", 0, "first year kept (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxYear, "max-year", 0, "last year kept (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("city") && flagCity != "" {
		cfg.City = flagCity
	}
	if f.Changed("min-year") {
		cfg.MinYear = flagMinYear
	}
	if f.Changed("max-year") {
		cfg.MaxYear = flagMaxYear
	}
	debugf("config: city=%q years=%d-%d base=%s", cfg.City, cfg.MinYear, cfg.MaxYear, cfg.APIBaseURL)
}

// requireConfig returns the loaded configuration or the load error.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

func debugf(format string, args ...any) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}
