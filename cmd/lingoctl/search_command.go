package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lingomap/pkg/catalog"
	"lingomap/pkg/model"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search languages by id, name, taxonomy or country",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := ctx.ensure()
			if err != nil {
				return err
			}
			matches := cat.Search(strings.Join(args, " "), limit)
			if asJSON {
				return writeJSON(cmd, matches)
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No languages found")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{
					m.Record.ID,
					m.Record.DisplayName,
					m.Record.Taxonomy.Family,
					formatSpeakers(m.Record),
					m.Field,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Family", "Speakers", "Matched"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				shouldColorize(out),
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <language-id>",
		Short: "Show one language with its dialect variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := ctx.ensure()
			if err != nil {
				return err
			}
			rec, ok := cat.ByID(args[0])
			if !ok {
				return fmt.Errorf("unknown language %q", args[0])
			}
			if asJSON {
				return writeJSON(cmd, rec)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", rec.DisplayName, rec.ID)
			fmt.Fprintf(out, "Taxonomy:  %s\n", strings.Join(rec.Taxonomy.Path(model.LevelDialect), " > "))
			fmt.Fprintf(out, "Countries: %s\n", strings.Join(rec.Countries, ", "))
			fmt.Fprintf(out, "Speakers:  %s\n", formatSpeakers(rec))

			variants := catalog.EffectiveDialects(rec)
			rows := make([][]string, 0, len(variants))
			for i, d := range variants {
				rows = append(rows, []string{model.VariantKey(d, i), d.Name, d.Region, catalog.SampleText(rec, d.Name)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Key", "Dialect", "Region", "Sample"},
				rows, nil, shouldColorize(out),
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func formatSpeakers(r *model.LanguageRecord) string {
	if r.TotalSpeakers == nil {
		return "-"
	}
	return strconv.FormatInt(*r.TotalSpeakers, 10)
}
