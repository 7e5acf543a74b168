package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"companyscout/internal/company"
	"companyscout/internal/logging"
	"companyscout/internal/tabular"
)

// maxGroupRows bounds the collapsed-group preview.
const maxGroupRows = 20

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var column string
	var orderCol string

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Keep one row per company in a table, by strict name key",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, logger, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			table, inputPath, err := readInput(input)
			if err != nil {
				return err
			}
			order := orderCol
			if !cmd.Flags().Changed("order") && table.Index(order) < 0 {
				order = ""
			}

			result, summary, err := company.DedupeTable(table, column, order, cfg.Normalizer())
			if err != nil {
				return err
			}
			target, err := outputPath(output, inputPath, "_dedup")
			if err != nil {
				return err
			}
			written, err := writeTable(cfg, logger, target, result)
			if err != nil {
				return err
			}

			logger.Info("table deduplicated",
				logging.String("input", inputPath),
				logging.Int("rows", summary.Rows),
				logging.Int("unique_companies", summary.Unique),
				logging.Int("collapsed", summary.Collapsed),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows: %d, unique companies: %d, collapsed: %d\n", summary.Rows, summary.Unique, summary.Collapsed)
			if len(summary.Groups) > 0 {
				fmt.Fprintln(out, renderGroups(table, column, summary))
			}
			for _, path := range written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to read")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination CSV (defaults to <input>_dedup.csv)")
	cmd.Flags().StringVar(&column, "column", company.ColName, "Column holding company names")
	cmd.Flags().StringVar(&orderCol, "order", company.ColListPage, "Integer column; the smallest value survives (blank keeps the first row)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func renderGroups(table *tabular.Table, column string, summary company.TableDedupe) string {
	rows := make([][]string, 0, min(len(summary.Groups), maxGroupRows))
	for i, group := range summary.Groups {
		if i == maxGroupRows {
			break
		}
		kept := table.Value(group.Representative(), column)
		rows = append(rows, []string{group.Key, kept, strconv.Itoa(len(group.Members))})
	}
	view := tableView{
		Title:   "Collapsed companies",
		Headers: []string{"key", "kept", "rows"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
	}
	if extra := len(summary.Groups) - len(rows); extra > 0 {
		view.Footer = fmt.Sprintf("%d more groups not shown", extra)
	}
	return view.render()
}
