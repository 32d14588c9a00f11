package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/YashJagani/citypop/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set citypop configuration",
	// config must stay usable when the saved values do not validate
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "city: %s\n", cfg.City)
		fmt.Fprintf(out, "api_base_url: %s\n", cfg.APIBaseURL)
		fmt.Fprintf(out, "min_year: %d\n", cfg.MinYear)
		fmt.Fprintf(out, "max_year: %d\n", cfg.MaxYear)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// on-disk values only; flag and env overrides are never saved
		c, err := cfgpkg.LoadStored(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "city":
			if strings.TrimSpace(val) == "" {
				return fmt.Errorf("city must not be empty")
			}
			c.City = strings.TrimSpace(val)
		case "api_base_url":
			c.APIBaseURL = strings.TrimRight(val, "/")
		case "min_year", "max_year", "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			switch key {
			case "min_year":
				c.MinYear = i
			case "max_year":
				c.MaxYear = i
			default:
				if i < 0 {
					return fmt.Errorf("invalid int for http_timeout_sec: %d", i)
				}
				c.HTTPTimeoutSec = i
			}
		case "output_format":
			f := strings.ToLower(val)
			if !cfgpkg.ValidFormat(f) {
				return fmt.Errorf("invalid output_format: %s (use %s)", val, strings.Join(cfgpkg.Formats, "|"))
			}
			c.OutputFormat = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
