package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"companyscout/internal/company"
	"companyscout/internal/logging"
	"companyscout/internal/namekey"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var column string
	var head int

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Preview plain and strict name keys for a table column",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, logger, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			table, _, err := readInput(input)
			if err != nil {
				return err
			}
			names, err := table.Column(column)
			if err != nil {
				return err
			}

			n := cfg.Normalizer()
			plain := make([]string, len(names))
			strict := make([]string, len(names))
			for i, name := range names {
				plain[i] = n.Normalize(name)
				strict[i] = n.NormalizeStrict(name)
			}

			out := cmd.OutOrStdout()
			limit := min(max(head, 0), len(names))
			rows := make([][]string, 0, limit)
			for i := range limit {
				rows = append(rows, []string{strconv.Itoa(i + 1), names[i], plain[i], strict[i]})
			}
			fmt.Fprintln(out, tableView{
				Title:   "Name keys",
				Headers: []string{"#", column, company.ColNameKey, company.ColNameKeyStrict},
				Rows:    rows,
				Aligns:  []columnAlignment{alignRight},
				Footer:  fmt.Sprintf("%d of %d rows", limit, len(names)),
			}.render())
			if len(names) >= 2 {
				fmt.Fprintf(out, "Similarity of rows 1 and 2: %.3f (strict %.3f)\n",
					namekey.Similarity(plain[0], plain[1]),
					namekey.Similarity(strict[0], strict[1]),
				)
			}

			if output == "" {
				return nil
			}
			if err := table.SetColumn(company.ColNameKey, plain); err != nil {
				return err
			}
			if err := table.SetColumn(company.ColNameKeyStrict, strict); err != nil {
				return err
			}
			target, err := outputPath(output, "", "")
			if err != nil {
				return err
			}
			written, err := writeTable(cfg, logger, target, table)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			logger.Debug("names normalized", logging.Int("rows", len(names)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to read")
	cmd.Flags().StringVar(&output, "output", "", "Also write the table with key columns added to this path")
	cmd.Flags().StringVar(&column, "column", company.ColName, "Column holding company names")
	cmd.Flags().IntVarP(&head, "head", "n", 10, "Number of rows to preview")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newSimilarityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <name> <name>",
		Short: "Score two company names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			n := cfg.Normalizer()
			a, b := args[0], args[1]
			plainA, plainB := n.Normalize(a), n.Normalize(b)
			strictA, strictB := n.NormalizeStrict(a), n.NormalizeStrict(b)

			fmt.Fprintln(cmd.OutOrStdout(), tableView{
				Headers: []string{"key", "first", "second", "similarity"},
				Rows: [][]string{
					{company.ColNameKey, plainA, plainB, formatScore(namekey.Similarity(plainA, plainB))},
					{company.ColNameKeyStrict, strictA, strictB, formatScore(namekey.Similarity(strictA, strictB))},
				},
				Aligns: []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			}.render())
			fmt.Fprintf(cmd.OutOrStdout(), "Same company key: %s\n", yesNo(strictA != "" && strictA == strictB))
			return nil
		},
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}
