package cmd

import (
	"fmt"
	"strings"

	"github.com/YashJagani/citypop/internal/chartdata"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:       "chart <kind>",
	Short:     "Emit a chart-ready dataset",
	Long:      "Emit the dataset for one chart kind: " + strings.Join(chartdata.Kinds, ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: chartdata.Kinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := strings.ToLower(strings.TrimSpace(args[0]))
		if kind == "boxplot" {
			data, err := boxPlotData(cmd)
			if err != nil {
				return err
			}
			return emit(cmd, "boxplot chart", data)
		}
		if !chartdata.CategoricalKinds[kind] && kind != "bubble" && kind != "stacked" && kind != "sankey" {
			return fmt.Errorf("unknown chart kind %q (use %s)", kind, strings.Join(chartdata.Kinds, "|"))
		}
		s, city, err := fetchSeries(cmd.Context())
		if err != nil {
			return err
		}
		var v any
		switch kind {
		case "bubble":
			v = chartdata.Bubble(city, s)
		case "stacked":
			v = chartdata.Stacked(city, s, nil)
		case "sankey":
			d, err := chartdata.Sankey(city, s)
			if err != nil {
				return err
			}
			v = d
		default:
			v = chartdata.Categorical(city, s)
		}
		return emit(cmd, kind+" chart", v)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	addDataFlags(chartCmd)
	chartCmd.Flags().BoolVar(&boxRawGroups, "raw-groups", false, "boxplot only: keep every record per year")
}
