package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"lingomap/pkg/dialect"
)

func newDetectCommand() *cobra.Command {
	var threshold float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect <text>",
		Short: "Guess the regional dialect of a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			det := dialect.NewDetector(threshold)
			res := det.Detect(strings.Join(args, " "))
			if asJSON {
				return writeJSON(cmd, res)
			}

			out := cmd.OutOrStdout()
			if res.Dialect == dialect.Standard {
				fmt.Fprintf(out, "Dialect: %s (best score %.2f)\n", res.Dialect, res.Confidence)
			} else {
				fmt.Fprintf(out, "Dialect: %s (%s, %s) confidence %.2f\n", res.Dialect, res.DialectName, res.LanguageID, res.Confidence)
			}

			ids := make([]string, 0, len(res.Scores))
			for id := range res.Scores {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				if res.Scores[ids[i]] != res.Scores[ids[j]] {
					return res.Scores[ids[i]] > res.Scores[ids[j]]
				}
				return ids[i] < ids[j]
			})
			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, []string{id, fmt.Sprintf("%.3f", res.Scores[id])})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Dialect", "Score"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
				shouldColorize(out),
			))
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", dialect.DefaultThreshold, "Minimum score to report a dialect")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
