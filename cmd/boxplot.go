package cmd

import (
	"github.com/YashJagani/citypop/internal/chartdata"
	"github.com/YashJagani/citypop/internal/distribution"
	"github.com/spf13/cobra"
)

var boxRawGroups bool

var boxplotCmd = &cobra.Command{
	Use:   "boxplot",
	Short: "Five-number summaries per year",
	Long: `Summarize each year's population as min, Q1, median, Q3, and max.

By default each year holds its single deduplicated value, which is widened
into a synthetic five-point sample for display. With --raw-groups every
record for a year is kept, so years reported more than once get a real
distribution.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := boxPlotData(cmd)
		if err != nil {
			return err
		}
		return emit(cmd, "box plot", data)
	},
}

func boxPlotData(cmd *cobra.Command) (chartdata.BoxPlotData, error) {
	var (
		ys   []distribution.YearSummary
		city string
	)
	if boxRawGroups {
		entries, c, err := fetchEntries(cmd.Context())
		if err != nil {
			return chartdata.BoxPlotData{}, err
		}
		city = c
		groups := distribution.GroupByYear(entries, cfg.MinYear, cfg.MaxYear)
		debugf("grouped %d records into %d years", len(entries), len(groups))
		if ys, err = distribution.SummarizeGroups(groups); err != nil {
			return chartdata.BoxPlotData{}, err
		}
	} else {
		s, c, err := fetchSeries(cmd.Context())
		if err != nil {
			return chartdata.BoxPlotData{}, err
		}
		city = c
		if ys, err = distribution.SummarizeSeries(s); err != nil {
			return chartdata.BoxPlotData{}, err
		}
	}
	return chartdata.BoxPlot(city, ys), nil
}

func init() {
	rootCmd.AddCommand(boxplotCmd)
	addDataFlags(boxplotCmd)
	boxplotCmd.Flags().BoolVar(&boxRawGroups, "raw-groups", false, "keep every record per year instead of first-seen only")
}
