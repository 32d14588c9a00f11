package cmd

import (
	"github.com/YashJagani/citypop/internal/chartdata"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Fetch and print the normalized population series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, city, err := fetchSeries(cmd.Context())
		if err != nil {
			return err
		}
		return emit(cmd, "series", chartdata.NewSeriesReport(city, s))
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	addDataFlags(seriesCmd)
}
