package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"companyscout/internal/company"
	"companyscout/internal/config"
	"companyscout/internal/logging"
	"companyscout/internal/scrape"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var slug string
	var name string
	var maxPage int
	var outDir string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape a directory category into raw and deduplicated company tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			if maxPage <= 0 {
				maxPage = cfg.Scrape.MaxPages
			}
			dir := cfg.Paths.OutputDir
			if strings.TrimSpace(outDir) != "" {
				if dir, err = config.ExpandPath(outDir); err != nil {
					return err
				}
			}

			client := scrape.NewClient(
				cfg.Scrape.UserAgent,
				time.Duration(cfg.Scrape.TimeoutSeconds)*time.Second,
				scrape.WithDelay(cfg.ScrapeDelay()),
				scrape.WithLogger(logger),
			)
			scraper, err := scrape.New(cfg.Scrape.BaseURL, client, logger)
			if err != nil {
				return err
			}

			records, err := scraper.ScrapeCategory(runCtx, slug, name, maxPage)
			if err != nil {
				return fmt.Errorf("scrape %s: %w", slug, err)
			}
			records = company.Enrich(records, cfg.Normalizer())
			unique, err := company.Dedupe(records)
			if err != nil {
				return err
			}
			remaining := 0
			for _, group := range company.Groups(unique) {
				remaining += group.Duplicates()
			}

			rawPath, companiesPath := scrape.OutputPaths(dir, scraper.Base(), slug)
			rawFiles, err := writeTable(cfg, logger, rawPath, company.ListingTable(records))
			if err != nil {
				return err
			}
			companyFiles, err := writeTable(cfg, logger, companiesPath, company.ListingTable(unique))
			if err != nil {
				return err
			}

			logger.Info("category scraped",
				logging.String(logging.FieldCategory, slug),
				logging.Int("rows", len(records)),
				logging.Int("unique_companies", len(unique)),
				logging.Int("remaining_duplicates", remaining),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows scraped:         %d\n", len(records))
			fmt.Fprintf(out, "Unique companies:     %d\n", len(unique))
			fmt.Fprintf(out, "Remaining duplicates: %d\n", remaining)
			for _, path := range append(rawFiles, companyFiles...) {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "category-slug", "", "Category slug in the listing URL (for example solar-energy)")
	cmd.Flags().StringVar(&name, "category-name", "", "Category label stored on each row (defaults to the slug)")
	cmd.Flags().IntVar(&maxPage, "max-page", 0, "Last listing page to fetch (defaults to [scrape] max_pages)")
	cmd.Flags().StringVarP(&outDir, "outdir", "o", "", "Output directory (defaults to [paths] output_dir)")
	_ = cmd.MarkFlagRequired("category-slug")
	return cmd
}
