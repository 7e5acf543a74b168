package testsupport

import (
	"testing"

	"companyscout/internal/tabular"
)

// WriteCSV writes a table with header and rows to path.
func WriteCSV(t testing.TB, path string, header []string, rows ...[]string) {
	t.Helper()

	table := tabular.New(header...)
	for _, row := range rows {
		table.Append(row)
	}
	if err := tabular.WriteCSV(path, table); err != nil {
		t.Fatalf("write csv %s: %v", path, err)
	}
}

// ReadCSV loads path or fails the test.
func ReadCSV(t testing.TB, path string) *tabular.Table {
	t.Helper()

	table, err := tabular.ReadCSV(path)
	if err != nil {
		t.Fatalf("read csv %s: %v", path, err)
	}
	return table
}
