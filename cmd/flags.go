package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/filter"
	"github.com/xolan/chrono/internal/service"
)

// addRangeFlags registers the date range selection flags on cmd.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "", "Named period: today, week, month, prev-month or all")
	cmd.Flags().String("month", "", "Calendar month (YYYY-MM)")
	cmd.Flags().Int("last", 0, "Last N days including today")
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD.MM.YYYY)")
	cmd.Flags().String("to", "", "End date, inclusive (YYYY-MM-DD or DD.MM.YYYY)")
}

// addFilterFlags registers the entry filter flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("location", "l", "", "Only entries at this location (case-insensitive)")
	cmd.Flags().StringP("keyword", "k", "", "Only entries whose description contains this keyword")
}

// rangeFromFlags reads the range flags. On an invalid combination it
// reports the error and returns false.
func rangeFromFlags(cmd *cobra.Command, deps *cli.Deps) (service.DateRangeSpec, bool) {
	var opts service.RangeOptions
	opts.Period, _ = cmd.Flags().GetString("period")
	opts.Month, _ = cmd.Flags().GetString("month")
	opts.LastDays, _ = cmd.Flags().GetInt("last")
	opts.From, _ = cmd.Flags().GetString("from")
	opts.To, _ = cmd.Flags().GetString("to")

	spec, err := service.ParseRange(opts)
	if err != nil {
		cli.PrintError(deps, "Invalid date range", err,
			"Use one of --period, --month, --last or --from/--to")
		return service.DateRangeSpec{}, false
	}
	return spec, true
}

func filterFromFlags(cmd *cobra.Command) *filter.Filter {
	location, _ := cmd.Flags().GetString("location")
	keyword, _ := cmd.Flags().GetString("keyword")
	return filter.NewFilter(keyword, location)
}
