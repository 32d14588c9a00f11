package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/YashJagani/citypop/internal/chartdata"
	"github.com/YashJagani/citypop/internal/population"
	"github.com/YashJagani/citypop/internal/series"
	"github.com/YashJagani/citypop/internal/utils"
	"github.com/spf13/cobra"
)

var (
	outInputPath  string
	outFormat     string
	outOutputPath string
)

// addDataFlags registers the input and output flags shared by data commands.
func addDataFlags(c *cobra.Command) {
	c.Flags().StringVarP(&outInputPath, "input", "i", "", "read population records from a JSON/CSV/TSV file instead of the API")
	c.Flags().StringVarP(&outFormat, "format", "f", "", "output format: markdown|json|yaml (default from config)")
	c.Flags().StringVarP(&outOutputPath, "output", "o", "", "optional path to write the result")
}

// fetchEntries returns the raw records for the configured city, from
// --input when given and from the population API otherwise.
func fetchEntries(ctx context.Context) ([]series.RawEntry, string, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, "", err
	}
	if outInputPath != "" {
		debugf("loading records from %s", outInputPath)
		entries, err := population.LoadFile(outInputPath)
		if err != nil {
			return nil, "", err
		}
		return entries, c.City, nil
	}
	client := population.NewClientWithBaseURL(time.Duration(c.HTTPTimeoutSec)*time.Second, c.APIBaseURL)
	start := time.Now()
	res, err := client.CityPopulation(ctx, c.City)
	if err != nil {
		return nil, "", err
	}
	debugf("fetched %d counts for %q in %s (request %s)", len(res.Counts), res.City, time.Since(start).Round(time.Millisecond), res.RequestID)
	return res.Entries(), c.City, nil
}

// fetchSeries fetches and normalizes with the configured year bounds.
func fetchSeries(ctx context.Context) (series.Series, string, error) {
	entries, city, err := fetchEntries(ctx)
	if err != nil {
		return nil, "", err
	}
	s := cfg.SeriesOptions().Normalize(entries)
	debugf("normalized %d records into %d observations", len(entries), s.Len())
	return s, city, nil
}

// emit renders v in the selected format to --output or the command's stdout.
func emit(cmd *cobra.Command, what string, v any) error {
	format := outFormat
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	if outOutputPath == "" {
		return chartdata.Render(cmd.OutOrStdout(), format, v)
	}
	var buf bytes.Buffer
	if err := chartdata.Render(&buf, format, v); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(outOutputPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, outOutputPath)
	return nil
}
