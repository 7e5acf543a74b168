package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"companyscout/internal/fileutil"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV loads a CSV file whose first record is the header.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	table, err := DecodeCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// DecodeCSV parses CSV from r. A leading byte-order mark is dropped and rows
// shorter or longer than the header are fitted to it.
func DecodeCSV(r io.Reader) (*Table, error) {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := buffered.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	table := New(header...)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", table.Len()+1, err)
		}
		table.Append(record)
	}
	return table, nil
}

// WriteCSV atomically replaces path with table, prefixed by a UTF-8
// byte-order mark. Parent directories are created as needed.
func WriteCSV(path string, table *Table) error {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return EncodeCSV(w, table)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeCSV writes the byte-order mark, header, and rows to w. A row made of
// one empty cell is written as a quoted empty field so readers do not skip it
// as a blank line.
func EncodeCSV(w io.Writer, table *Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		if !isBlankRow(row) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
			continue
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
		if _, err := io.WriteString(w, "\"\"\n"); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

func isBlankRow(row []string) bool {
	return len(row) == 1 && row[0] == ""
}
