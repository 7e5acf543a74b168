package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"companyscout/internal/config"
	"companyscout/internal/logging"
	"companyscout/internal/tabular"
)

// writeTable writes table as CSV to path and, when [output] xlsx is set, as
// an .xlsx sibling. It returns every path written.
func writeTable(cfg *config.Config, logger *slog.Logger, path string, table *tabular.Table) ([]string, error) {
	if err := tabular.WriteCSV(path, table); err != nil {
		return nil, err
	}
	written := []string{path}
	if cfg != nil && cfg.Output.XLSX {
		xlsxPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		if err := tabular.WriteXLSX(xlsxPath, table); err != nil {
			return written, err
		}
		written = append(written, xlsxPath)
	}
	if logger != nil {
		logger.Info("table written",
			logging.String("path", path),
			logging.Int("rows", table.Len()),
			logging.Int("files", len(written)),
		)
	}
	return written, nil
}

// readInput loads a CSV table after expanding path.
func readInput(path string) (*tabular.Table, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, "", fmt.Errorf("--input is required")
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	table, err := tabular.ReadCSV(expanded)
	if err != nil {
		return nil, "", err
	}
	return table, expanded, nil
}

// outputPath returns output expanded, or input with suffix inserted before
// the extension when output is blank.
func outputPath(output, input, suffix string) (string, error) {
	output = strings.TrimSpace(output)
	if output != "" {
		return config.ExpandPath(output)
	}
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".csv"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ext, nil
}
