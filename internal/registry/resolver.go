package registry

import (
	"context"
	"log/slog"

	"companyscout/internal/company"
	"companyscout/internal/logging"
	"companyscout/internal/services"
)

// Resolver attaches registry identifiers to company records.
type Resolver struct {
	searcher Searcher
	matcher  Matcher
	limit    int
	logger   *slog.Logger
}

// NewResolver creates a resolver fetching limit candidates per name.
func NewResolver(searcher Searcher, matcher Matcher, limit int, logger *slog.Logger) *Resolver {
	if limit <= 0 {
		limit = 5
	}
	return &Resolver{
		searcher: searcher,
		matcher:  matcher,
		limit:    limit,
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve looks every record up in order and returns enriched copies. A
// failed lookup is recorded in the row's Registry.Error and the batch goes on;
// only context cancellation stops it early.
func (r *Resolver) Resolve(ctx context.Context, records []company.Record) ([]company.Record, error) {
	ctx = services.WithStage(ctx, "lookup")
	logger := logging.WithContext(ctx, r.logger)

	out := make([]company.Record, len(records))
	var matched, failed int
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("registry lookup",
			logging.Int("index", i+1),
			logging.Int("total", len(records)),
			logging.String("name", rec.Name),
		)

		resolved, err := r.resolveOne(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failed++
			logging.WarnWithContext(logger, "registry lookup failed", "lookup_failed",
				logging.String("name", rec.Name),
				logging.Error(err),
				logging.String("error_kind", services.Kind(err)),
				logging.Bool("retryable", services.Retryable(err)),
				logging.String(logging.FieldImpact, "row written without registry identifiers"),
			)
		}
		if resolved.Registry.Matched {
			matched++
		}
		out[i] = resolved
	}

	logger.Info("registry lookup complete",
		logging.Int("records", len(records)),
		logging.Int("matched", matched),
		logging.Int("failed", failed),
	)
	return out, nil
}

func (r *Resolver) resolveOne(ctx context.Context, rec company.Record) (company.Record, error) {
	rec.Registry = company.Registration{}
	resp, err := r.searcher.Search(ctx, rec.Name, r.limit)
	if err != nil {
		rec.Registry.Error = err.Error()
		return rec, err
	}
	match, ok := r.matcher.Pick(rec.Name, resp.Results)
	if !ok {
		return rec, nil
	}
	rec.Registry = company.Registration{
		SIREN:        match.Result.SIREN,
		SIRET:        match.Result.HeadOfficeSIRET(),
		Denomination: match.Result.Name(),
		NAF:          match.Result.ActivityCode(),
		APIScore:     match.Result.Score.String(),
		MatchScore:   match.Score,
		Matched:      true,
	}
	return rec, nil
}
