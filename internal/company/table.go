package company

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"companyscout/internal/dedupe"
	"companyscout/internal/namekey"
	"companyscout/internal/tabular"
)

// ListingTable renders records with ListingHeader columns.
func ListingTable(records []Record) *tabular.Table {
	table := tabular.New(ListingHeader()...)
	for _, rec := range records {
		table.Append(rec.ListingRow())
	}
	return table
}

// LookupTable renders records with LookupHeader columns, plus the INPI link
// column when withLinks is set.
func LookupTable(records []Record, withLinks bool) *tabular.Table {
	header := LookupHeader()
	if withLinks {
		header = append(header, ColINPIURL)
	}
	table := tabular.New(header...)
	for _, rec := range records {
		row := rec.LookupRow()
		if withLinks {
			row = append(row, rec.INPIURL)
		}
		table.Append(row)
	}
	return table
}

// FromTable reads records from a table. nameCol is required; the other
// listing columns are picked up when present. Blank names are kept as blank
// records so row positions survive a round trip. A list_page cell that is not
// an integer leaves ListPage at 0.
func FromTable(table *tabular.Table, nameCol string) ([]Record, error) {
	names, err := table.Column(nameCol)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(names))
	for i, name := range names {
		page, _ := parsePage(table.Value(i, ColListPage))
		records[i] = Record{
			Name:          name,
			Tagline:       table.Value(i, ColTagline),
			DetailURL:     table.Value(i, ColDetailURL),
			Category:      table.Value(i, ColCategory),
			ListPage:      page,
			NameKey:       table.Value(i, ColNameKey),
			NameKeyStrict: table.Value(i, ColNameKeyStrict),
		}
	}
	return records, nil
}

func parsePage(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", ColListPage, value)
	}
	return page, nil
}

// TableDedupe summarizes a DedupeTable run.
type TableDedupe struct {
	Rows      int
	Unique    int
	Collapsed int
	// Groups lists the keys that had more than one row, in first-seen order.
	Groups []dedupe.Group[int]
}

// DedupeTable keeps one row per strict key of nameCol. The survivor is the
// row with the smallest numeric orderCol value (blank or missing sorts last;
// an empty orderCol keeps the first row). Plain and strict key columns are
// added to the result. The input table is not modified.
func DedupeTable(table *tabular.Table, nameCol, orderCol string, n namekey.Normalizer) (*tabular.Table, TableDedupe, error) {
	names, err := table.Column(nameCol)
	if err != nil {
		return nil, TableDedupe{}, err
	}
	order := make([]int, len(names))
	if orderCol != "" {
		values, err := table.Column(orderCol)
		if err != nil {
			return nil, TableDedupe{}, err
		}
		for i, value := range values {
			if strings.TrimSpace(value) == "" {
				order[i] = math.MaxInt
				continue
			}
			if order[i], err = strconv.Atoi(strings.TrimSpace(value)); err != nil {
				return nil, TableDedupe{}, fmt.Errorf("row %d: %s %q is not an integer", i+1, orderCol, value)
			}
		}
	}

	plain := make([]string, len(names))
	strict := make([]string, len(names))
	rows := make([]int, len(names))
	for i, name := range names {
		plain[i] = n.Normalize(name)
		strict[i] = n.NormalizeStrict(name)
		rows[i] = i
	}

	keyOf := func(i int) string { return strict[i] }
	orderOf := func(i int) int { return order[i] }
	survivors, err := dedupe.Deduplicate(rows, keyOf, orderOf)
	if err != nil {
		return nil, TableDedupe{}, err
	}

	out := tabular.New(table.Header...)
	keep := make([]string, 0, len(survivors))
	keepStrict := make([]string, 0, len(survivors))
	for _, i := range survivors {
		out.Append(table.Rows[i])
		keep = append(keep, plain[i])
		keepStrict = append(keepStrict, strict[i])
	}
	if err := out.SetColumn(ColNameKey, keep); err != nil {
		return nil, TableDedupe{}, err
	}
	if err := out.SetColumn(ColNameKeyStrict, keepStrict); err != nil {
		return nil, TableDedupe{}, err
	}

	summary := TableDedupe{Rows: len(names), Unique: len(survivors), Collapsed: len(names) - len(survivors)}
	for _, group := range dedupe.GroupBy(rows, keyOf, orderOf) {
		if group.Duplicates() > 0 {
			summary.Groups = append(summary.Groups, group)
		}
	}
	return out, summary, nil
}
