package fixturecheck

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PanicError carries the value a test body panicked with.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

var errBodyExited = errors.New("test body exited without returning")

// Runner dispatches catalog entries to their bodies, one fixture at a time
// or as a batch.
type Runner struct {
	index   *Index
	catalog *Catalog
	opts    *options
}

// NewRunner returns a runner resolving fixtures through ix and bodies
// through cat.
func NewRunner(ix *Index, cat *Catalog, opts ...Option) *Runner {
	return &Runner{
		index:   ix,
		catalog: cat,
		opts:    newOptions(opts...),
	}
}

// Run executes the body declared for id against its fixture. An id absent
// from the catalog yields *UnknownFixtureError and a missing root yields
// *NotFoundError; every other failure is reported through the Outcome.
func (r *Runner) Run(ctx context.Context, id string) (Outcome, error) {
	body, ok := r.catalog.Lookup(id)
	if !ok {
		return Outcome{}, &UnknownFixtureError{ID: id}
	}
	return r.run(ctx, id, body)
}

// RunAll executes every catalog entry in declaration order and returns one
// result per entry. Only a missing root aborts the batch.
func (r *Runner) RunAll(ctx context.Context) ([]Result, error) {
	if err := r.index.CheckRoot(); err != nil {
		return nil, err
	}

	entries := r.catalog.Entries()
	results := make([]Result, len(entries))

	// A plain group: one failing fixture must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(r.opts.parallelism)
	for i, e := range entries {
		g.Go(func() error {
			out, err := r.run(ctx, e.ID, e.Body)
			if err != nil {
				return err
			}
			results[i] = Result{ID: e.ID, Outcome: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) run(ctx context.Context, id string, body TestBody) (Outcome, error) {
	log := r.opts.logger.With(zap.String("id", id))

	fx, err := r.index.Resolve(id)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) && nf.rootMissing() {
			return Outcome{}, err
		}
		log.Warn("fixture not resolved", zap.Error(err))
		return Outcome{Kind: Errored, Diagnostic: err.Error(), Cause: err}, nil
	}

	backend := r.index.cfg.Backend
	muted := false
	if backend != "" {
		ignored, err := ignoredBackends(fx.Path)
		if err != nil {
			log.Warn("failed to read fixture directives", zap.String("path", fx.Path), zap.Error(err))
			return Outcome{Kind: Errored, Diagnostic: err.Error(), Cause: err}, nil
		}
		muted = mutedFor(backend, ignored)
	}

	start := r.opts.now()
	out := invoke(ctx, body, fx.Path)
	out.Duration = r.opts.now().Sub(start)

	if muted {
		out = mute(out, backend)
	}

	fields := []zap.Field{zap.String("path", fx.RelPath), zap.Stringer("outcome", out.Kind), zap.Duration("duration", out.Duration)}
	switch out.Kind {
	case Passed, Muted:
		log.Debug("fixture finished", fields...)
	default:
		log.Warn("fixture finished", append(fields, zap.String("diagnostic", out.Diagnostic))...)
	}
	return out, nil
}

// invoke runs body on its own goroutine so that a panic or runtime.Goexit
// inside it is contained and reported as Errored.
func invoke(ctx context.Context, body TestBody, path string) Outcome {
	done := make(chan Outcome, 1)
	go func() {
		returned := false
		defer func() {
			if returned {
				return
			}
			if p := recover(); p != nil {
				cause := &PanicError{Value: p, Stack: debug.Stack()}
				done <- Outcome{Kind: Errored, Diagnostic: cause.Error(), Cause: cause}
				return
			}
			done <- Outcome{Kind: Errored, Diagnostic: errBodyExited.Error(), Cause: errBodyExited}
		}()

		err := body(ctx, path)
		returned = true
		done <- classify(err)
	}()
	return <-done
}

func classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: Passed}
	}
	var abort *AbortError
	if errors.As(err, &abort) {
		return Outcome{Kind: Errored, Diagnostic: err.Error(), Cause: err}
	}
	return Outcome{Kind: Failed, Diagnostic: err.Error(), Cause: err}
}

func mute(out Outcome, backend string) Outcome {
	if out.Kind == Passed {
		return Outcome{
			Kind:       Failed,
			Diagnostic: fmt.Sprintf("fixture is muted for backend %s but passed; remove the IGNORE_BACKEND directive", backend),
			Duration:   out.Duration,
		}
	}
	out.Kind = Muted
	return out
}
