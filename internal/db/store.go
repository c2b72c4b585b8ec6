package db

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/reconcile"
)

// Store persists reconciliation outcomes and corpus counts.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Run is the summary of one batch run.
type Run struct {
	ID         uuid.UUID
	Verbs      int
	Reconciled int
	Problems   int
	RootCounts map[string]int
	VerbCounts map[string]int
}

// SaveOutcome stores a verb and replaces its roots and problems. Exactly
// one of res and failure is expected to be set.
func (s *Store) SaveOutcome(ctx context.Context, v lexicon.Verb, res *reconcile.Result, failure error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO verbs (id, source, definition,
			third_present_syllabary, first_present_syllabary, second_command_syllabary,
			third_completive_past_syllabary, third_incompletive_habitual_syllabary, third_infinitive_syllabary,
			sentence_syllabary, sentence_english, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			definition = EXCLUDED.definition,
			third_present_syllabary = EXCLUDED.third_present_syllabary,
			first_present_syllabary = EXCLUDED.first_present_syllabary,
			second_command_syllabary = EXCLUDED.second_command_syllabary,
			third_completive_past_syllabary = EXCLUDED.third_completive_past_syllabary,
			third_incompletive_habitual_syllabary = EXCLUDED.third_incompletive_habitual_syllabary,
			third_infinitive_syllabary = EXCLUDED.third_infinitive_syllabary,
			sentence_syllabary = EXCLUDED.sentence_syllabary,
			sentence_english = EXCLUDED.sentence_english,
			updated_at = now()
	`, v.Index, v.Source, v.Definition,
		v.ThirdPresentSyllabary, v.FirstPresentSyllabary, v.SecondCommandSyllabary,
		v.ThirdCompletivePastSyllabary, v.ThirdIncompletiveHabitualSyllabary, v.ThirdInfinitiveSyllabary,
		v.Sentence.Syllabary, v.Sentence.English)
	if err != nil {
		return errors.Wrapf(err, "upsert verb %s", v.Index)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM verb_roots WHERE verb_id = $1`, v.Index)
	batch.Queue(`DELETE FROM verb_problems WHERE verb_id = $1`, v.Index)
	for _, row := range rootRows(res) {
		batch.Queue(`INSERT INTO verb_roots (verb_id, root, parse, form_slot, selected) VALUES ($1, $2, $3, $4, $5)`, row...)
	}
	for _, row := range problemRows(v.Index, failure) {
		batch.Queue(`INSERT INTO verb_problems (verb_id, cause, detail) VALUES ($1, $2, $3)`, row...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrapf(err, "store roots of verb %s", v.Index)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// SaveRun records a run and copies its counts.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, verbs, reconciled, problems) VALUES ($1, $2, $3, $4)
	`, run.ID, run.Verbs, run.Reconciled, run.Problems)
	if err != nil {
		return errors.Wrapf(err, "insert run %s", run.ID)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"root_counts"}, []string{"run_id", "root", "count"},
		pgx.CopyFromRows(countRows(run.ID, run.RootCounts))); err != nil {
		return errors.Wrap(err, "copy root counts")
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"verb_counts"}, []string{"run_id", "verb_id", "count"},
		pgx.CopyFromRows(countRows(run.ID, run.VerbCounts))); err != nil {
		return errors.Wrap(err, "copy verb counts")
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// VerbsWithRoot returns the ids of every verb with a candidate parse
// whose root is root.
func (s *Store) VerbsWithRoot(ctx context.Context, root string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT verb_id FROM verb_roots WHERE root = $1 ORDER BY verb_id
	`, root)
	if err != nil {
		return nil, errors.Wrapf(err, "query root %s", root)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrapf(err, "scan root %s", root)
	}
	return ids, nil
}

func rootRows(res *reconcile.Result) [][]any {
	if res == nil {
		return nil
	}
	selected := res.Present.String()
	var rows [][]any
	for _, c := range res.Candidates() {
		p := c.Parse.String()
		rows = append(rows, []any{res.VerbID, c.Parse.Root(), p, c.Slot.Key(), p == selected})
	}
	return rows
}

func problemRows(verbID string, failure error) [][]any {
	if failure == nil {
		return nil
	}
	var f *reconcile.Failure
	if !errors.As(failure, &f) {
		return [][]any{{verbID, "error", failure.Error()}}
	}
	if len(f.Problems) == 0 {
		return [][]any{{verbID, f.Cause.Error(), ""}}
	}
	rows := make([][]any, 0, len(f.Problems))
	for _, p := range f.Problems {
		rows = append(rows, []any{verbID, f.Cause.Error(), p})
	}
	return rows
}

func countRows(runID uuid.UUID, counts map[string]int) [][]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{runID, k, counts[k]})
	}
	return rows
}
