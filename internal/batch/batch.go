// Package batch reconciles a whole dictionary, builds the root index and
// counts known roots across the example sentences.
package batch

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/kanoheda/verbroots/internal/affix"
	"github.com/kanoheda/verbroots/internal/frequency"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/logger"
	"github.com/kanoheda/verbroots/internal/parse"
	"github.com/kanoheda/verbroots/internal/reconcile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner drives the reconciler and the counter over a dictionary. The
// rule table is shared read-only by every worker.
type Runner struct {
	expander   *parse.Expander
	reconciler *reconcile.Reconciler
	counter    *frequency.Counter
	workers    int
	log        *zap.SugaredLogger
}

// NewRunner builds a Runner over table using up to workers goroutines.
func NewRunner(table *affix.Table, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	e := parse.NewExpander(table)
	r := &Runner{
		expander:   e,
		reconciler: reconcile.New(e),
		counter:    frequency.New(e),
		workers:    workers,
		log:        logger.Named("batch"),
	}
	r.counter.OnSkip = func(token string, err error) {
		r.log.Debugw("token skipped", "token", token, "error", err)
	}
	return r
}

// Expander returns the shared parse expander.
func (r *Runner) Expander() *parse.Expander { return r.expander }

// Reconciler returns the shared reconciler.
func (r *Runner) Reconciler() *reconcile.Reconciler { return r.reconciler }

// Outcome is the reconciliation of one verb. Err is a *reconcile.Failure
// when Result is nil.
type Outcome struct {
	Verb   lexicon.Verb
	Result *reconcile.Result
	Err    error
}

// Report is the result of a full run.
type Report struct {
	RunID    uuid.UUID
	Outcomes []Outcome
	Problems []*reconcile.Failure
	Index    *lexicon.RootIndex
	Counts   map[string]int
	ByID     map[string]int
}

// Reconciled returns the number of verbs that produced a result.
func (r *Report) Reconciled() int {
	return len(r.Outcomes) - len(r.Problems)
}

// Ranking orders verb ids by their corpus count.
func (r *Report) Ranking() []lexicon.Ranked {
	return lexicon.Rank(r.ByID)
}

// Failed reports whether the verb with id was excluded by a problem.
func (r *Report) Failed(id string) bool {
	for _, p := range r.Problems {
		if p.VerbID == id {
			return true
		}
	}
	return false
}

// Reconcile reconciles verbs in parallel. Outcomes come back in input
// order. Only cancellation of ctx is returned as an error; per-verb
// failures are reported in the outcomes.
func (r *Runner) Reconcile(ctx context.Context, verbs []lexicon.Verb) ([]Outcome, error) {
	out := make([]Outcome, len(verbs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, v := range verbs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.reconciler.Reconcile(v)
			out[i] = Outcome{Verb: v, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "reconcile verbs")
	}
	return out, nil
}

// Run reconciles every verb of d, indexes the roots and counts them in
// the example sentences.
func (r *Runner) Run(ctx context.Context, d *lexicon.Dictionary) (*Report, error) {
	rep := &Report{RunID: uuid.New(), Index: lexicon.NewRootIndex()}
	log := r.log.With("run", rep.RunID.String())
	log.Infow("reconciling", "verbs", d.Len(), "workers", r.workers)

	outcomes, err := r.Reconcile(ctx, d.Verbs())
	if err != nil {
		return nil, err
	}
	rep.Outcomes = outcomes

	for _, o := range outcomes {
		if o.Err != nil {
			var f *reconcile.Failure
			if !errors.As(o.Err, &f) {
				f = &reconcile.Failure{VerbID: o.Verb.Index, Cause: o.Err}
			}
			rep.Problems = append(rep.Problems, f)
			log.Debugw("verb excluded", "verb", o.Verb.Index, "cause", f.Cause, "problems", f.Problems)
			continue
		}
		for _, root := range o.Result.Roots() {
			rep.Index.Add(root, o.Verb.Index)
		}
	}

	rep.Counts = r.counter.Count(rep.Index, d.Sentences())
	rep.ByID = lexicon.CountsByID(rep.Counts, rep.Index)

	log.Infow("run finished",
		"reconciled", rep.Reconciled(),
		"problems", len(rep.Problems),
		"roots", rep.Index.Len(),
		"counted", len(rep.Counts))
	return rep, nil
}
