package fixturecheck

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Suite ties an index and a catalog together: the completeness check plus
// one run per catalog entry.
type Suite struct {
	index   *Index
	catalog *Catalog
	runner  *Runner
	opts    *options
}

// NewSuite creates a suite over the fixtures described by cfg.
//
// Example:
//
//	suite, err := fixturecheck.NewSuite(fixturecheck.Config{
//	    Root:      "testdata/insertBeforeExtractFunction",
//	    Pattern:   regexp.MustCompile(`^(.+)\.kt$`),
//	    Recursive: true,
//	}, catalog)
func NewSuite(cfg Config, cat *Catalog, opts ...Option) (*Suite, error) {
	ix, err := NewIndex(cfg)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, &CatalogError{Reason: "nil catalog"}
	}
	return &Suite{
		index:   ix,
		catalog: cat,
		runner:  NewRunner(ix, cat, opts...),
		opts:    newOptions(opts...),
	}, nil
}

// Index returns the fixture index the suite scans.
func (s *Suite) Index() *Index { return s.index }

// Catalog returns the declared entries.
func (s *Suite) Catalog() *Catalog { return s.catalog }

// Runner returns the runner shared by Execute and single-entry runs.
func (s *Suite) Runner() *Runner { return s.runner }

// Verify runs the completeness check against a fresh scan.
func (s *Suite) Verify() error {
	return Verify(s.index, s.catalog)
}

// Execute performs the completeness check and runs every entry. A
// completeness failure is recorded in the report and does not stop the
// runs; index errors abort.
func (s *Suite) Execute(ctx context.Context) (*Report, error) {
	log := s.opts.logger
	report := &Report{
		RunID: uuid.NewString(),
		Root:  s.index.Root(),
	}

	err := s.Verify()
	var ce *CompletenessError
	switch {
	case err == nil:
	case errors.As(err, &ce):
		report.Completeness = ce
		log.Warn("catalog out of sync with fixtures",
			zap.Strings("orphans", ce.Orphans),
			zap.Strings("missing", ce.Missing))
	default:
		return nil, err
	}

	start := s.opts.now()
	results, err := s.runner.RunAll(ctx)
	if err != nil {
		return nil, err
	}
	report.Results = results
	report.Duration = s.opts.now().Sub(start)

	log.Info("fixture run finished",
		zap.String("run_id", report.RunID),
		zap.Int("fixtures", len(results)),
		zap.Bool("ok", report.OK()))
	return report, nil
}
