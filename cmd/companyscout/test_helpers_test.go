package main

import (
	"bytes"
	"strings"
	"testing"

	"companyscout/internal/config"
	"companyscout/internal/tabular"
	"companyscout/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	baseDir    string
	configPath string
	outputDir  string
	cacheDir   string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithIsolatedHome()}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	return &cliTestEnv{
		cfg:        cfg,
		baseDir:    testsupport.BaseDir(cfg),
		configPath: testsupport.WriteConfig(t, cfg),
		outputDir:  cfg.Paths.OutputDir,
		cacheDir:   cfg.Paths.CacheDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeCSV(t *testing.T, path string, header []string, rows ...[]string) {
	t.Helper()
	testsupport.WriteCSV(t, path, header, rows...)
}

func readCSV(t *testing.T, path string) *tabular.Table {
	t.Helper()
	return testsupport.ReadCSV(t, path)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
