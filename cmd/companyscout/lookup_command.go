package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"companyscout/internal/company"
	"companyscout/internal/logging"
	"companyscout/internal/lookupcache"
	"companyscout/internal/registry"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var column string
	var limit int
	var policy string
	var minScore float64
	var links bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve company names to SIREN/SIRET through the registry search API",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			table, inputPath, err := readInput(input)
			if err != nil {
				return err
			}
			records, err := company.FromTable(table, column)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = cfg.Registry.Limit
			}
			if !cmd.Flags().Changed("policy") {
				policy = cfg.Registry.MatchPolicy
			}
			if !cmd.Flags().Changed("min-score") {
				minScore = cfg.Registry.MinScore
			}
			parsed, err := registry.ParsePolicy(policy)
			if err != nil {
				return err
			}

			opts := []registry.Option{
				registry.WithUserAgent(cfg.Registry.UserAgent),
				registry.WithDelay(cfg.RegistryDelay()),
				registry.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Registry.TimeoutSeconds) * time.Second}),
				registry.WithLogger(logger),
			}
			if cfg.Registry.CacheEnabled && !noCache {
				store, err := lookupcache.Open(runCtx, cfg.CachePath())
				if err != nil {
					return fmt.Errorf("open registry cache: %w", err)
				}
				defer store.Close()
				opts = append(opts, registry.WithStore(store, cfg.RegistryCacheTTL()))
			}
			client, err := registry.New(cfg.Registry.BaseURL, opts...)
			if err != nil {
				return err
			}

			matcher := registry.Matcher{Policy: parsed, MinScore: minScore, Normalizer: cfg.Normalizer()}
			resolved, err := registry.NewResolver(client, matcher, limit, logger).Resolve(runCtx, records)
			if err != nil {
				return err
			}
			if links {
				resolved = registry.WithINPILinks(cfg.Registry.INPIBaseURL, resolved)
			}

			target, err := outputPath(output, inputPath, "_siren")
			if err != nil {
				return err
			}
			written, err := writeTable(cfg, logger, target, company.LookupTable(resolved, links))
			if err != nil {
				return err
			}

			var matched, failed int
			for _, rec := range resolved {
				if rec.Registry.Matched {
					matched++
				}
				if rec.Registry.Error != "" {
					failed++
				}
			}
			logger.Info("lookup finished",
				logging.Int("records", len(resolved)),
				logging.Int("matched", matched),
				logging.Int("failed", failed),
				logging.String("policy", string(parsed)),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Names: %d, matched: %d, errors: %d (policy %s)\n", len(resolved), matched, failed, parsed)
			for _, path := range written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to read")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination CSV (defaults to <input>_siren.csv)")
	cmd.Flags().StringVar(&column, "column", company.ColName, "Column holding company names")
	cmd.Flags().IntVar(&limit, "limit", 0, "Candidates requested per name (defaults to [registry] limit)")
	cmd.Flags().StringVar(&policy, "policy", "", "Match policy: first or similarity (defaults to [registry] match_policy)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum strict-key similarity for the similarity policy")
	cmd.Flags().BoolVar(&links, "links", true, "Add the INPI search URL column")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the persistent registry response cache")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newLinksCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var column string

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Add INPI search URLs to a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, logger, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			table, inputPath, err := readInput(input)
			if err != nil {
				return err
			}
			names, err := table.Column(column)
			if err != nil {
				return err
			}
			urls := make([]string, len(names))
			linked := 0
			for i, name := range names {
				urls[i] = registry.INPISearchURL(cfg.Registry.INPIBaseURL, name)
				if urls[i] != "" {
					linked++
				}
			}
			if err := table.SetColumn(company.ColINPIURL, urls); err != nil {
				return err
			}
			target, err := outputPath(output, inputPath, "_inpi")
			if err != nil {
				return err
			}
			written, err := writeTable(cfg, logger, target, table)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Linked %d of %d rows\n", linked, len(names))
			for _, path := range written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to read")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination CSV (defaults to <input>_inpi.csv)")
	cmd.Flags().StringVar(&column, "column", company.ColName, "Column holding company names")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
