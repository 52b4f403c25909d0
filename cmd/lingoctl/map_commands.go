package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lingomap/pkg/mapstyle"
)

func newLegendCommand(ctx *commandContext) *cobra.Command {
	var filter filterFlags
	var depthFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Print the map legend for a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resolver()
			if err != nil {
				return err
			}
			depth, explicit, err := parseDepth(depthFlag)
			if err != nil {
				return err
			}
			var lg mapstyle.Legend
			if explicit {
				lg = res.LegendAtDepth(filter.Filter, depth)
			} else {
				lg = res.Legend(filter.Filter)
			}
			if asJSON {
				return writeJSON(cmd, lg)
			}

			out := cmd.OutOrStdout()
			title := lg.Title
			if len(lg.Path) > 0 {
				title += " in " + strings.Join(lg.Path, " > ")
			}
			fmt.Fprintln(out, title)
			rows := make([][]string, 0, len(lg.Rows))
			for _, r := range lg.Rows {
				rows = append(rows, []string{r.Key, r.Color, strconv.Itoa(r.Count)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Key", "Color", "Languages"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
				shouldColorize(out),
			))
			return nil
		},
	}
	filter.bind(cmd)
	cmd.Flags().StringVar(&depthFlag, "depth", "", "Color at this taxonomy level instead of the filter's display depth")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newRegionCommand(ctx *commandContext) *cobra.Command {
	var filter filterFlags
	var depthFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "region <country-code>...",
		Short: "Resolve the map style of one or more regions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resolver()
			if err != nil {
				return err
			}
			depth, explicit, err := parseDepth(depthFlag)
			if err != nil {
				return err
			}

			styles := make([]mapstyle.RegionStyle, 0, len(args))
			for _, code := range args {
				code = strings.ToUpper(strings.TrimSpace(code))
				if explicit {
					styles = append(styles, res.RegionAtDepth(code, filter.Filter, depth))
				} else {
					styles = append(styles, res.Region(code, filter.Filter))
				}
			}
			if asJSON {
				return writeJSON(cmd, styles)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(styles))
			for _, s := range styles {
				rows = append(rows, []string{s.Code, string(s.Status), s.Primary, s.ColorKey, s.FillColor, s.DepthName})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Region", "Status", "Primary", "Key", "Color", "Depth"},
				rows, nil, shouldColorize(out),
			))
			return nil
		},
	}
	filter.bind(cmd)
	cmd.Flags().StringVar(&depthFlag, "depth", "", "Color at this taxonomy level instead of the filter's display depth")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
