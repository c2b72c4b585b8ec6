package batch

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/queue"
	"github.com/kanoheda/verbroots/internal/reconcile"
)

// Sink receives every outcome a Worker produces.
type Sink interface {
	SaveOutcome(ctx context.Context, v lexicon.Verb, res *reconcile.Result, failure error) error
}

// TaskPusher is the part of the queue Enqueue writes to.
type TaskPusher interface {
	EnsureStreams(ctx context.Context) error
	PushTask(ctx context.Context, task queue.VerbTask) (string, error)
}

// Enqueue pushes one task per verb of d and returns the number pushed.
func Enqueue(ctx context.Context, q TaskPusher, runID string, d *lexicon.Dictionary) (int, error) {
	if err := q.EnsureStreams(ctx); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range d.IDs() {
		if _, err := q.PushTask(ctx, queue.VerbTask{RunID: runID, VerbID: id}); err != nil {
			return n, errors.Wrapf(err, "enqueue verb %s", id)
		}
		n++
	}
	return n, nil
}

// TaskStream is the part of the queue a Worker reads tasks from and
// publishes results to. *queue.Queue implements it.
type TaskStream interface {
	EnsureStreams(ctx context.Context) error
	ReadTask(ctx context.Context, consumer string, block time.Duration) (*queue.VerbTask, string, error)
	AckTask(ctx context.Context, msgID string) error
	PushResult(ctx context.Context, res queue.VerbResult) (string, error)
}

// ResultStream is the part of the queue Collect reads results from.
// *queue.Queue implements it.
type ResultStream interface {
	EnsureStreams(ctx context.Context) error
	ReadResult(ctx context.Context, consumer string, block time.Duration) (*queue.VerbResult, string, error)
	AckResult(ctx context.Context, msgID string) error
}

// Read errors without a message are retried after a delay that starts at
// MinRetryDelay and doubles up to MaxRetryDelay.
const (
	MinRetryDelay = 500 * time.Millisecond
	MaxRetryDelay = 30 * time.Second
)

// Worker reconciles verbs taken from the task stream and publishes the
// outcomes on the result stream.
type Worker struct {
	runner   *Runner
	dict     *lexicon.Dictionary
	stream   TaskStream
	sink     Sink
	consumer string
	// Idle is how long a read waits before the worker gives up. Zero
	// waits forever.
	Idle time.Duration
	// RetryDelay is the first wait after a failed read.
	RetryDelay time.Duration
}

// NewWorker returns a Worker. sink may be nil.
func NewWorker(runner *Runner, d *lexicon.Dictionary, stream TaskStream, sink Sink) *Worker {
	return &Worker{
		runner:     runner,
		dict:       d,
		stream:     stream,
		sink:       sink,
		consumer:   queue.ConsumerName("reconciler"),
		RetryDelay: MinRetryDelay,
	}
}

// Consume blocks on the task stream, handling tasks as they arrive. It
// returns nil once the stream stays empty for Idle, or the context error
// when ctx is done. Failed reads back off instead of spinning.
func (w *Worker) Consume(ctx context.Context) (int, error) {
	if err := w.stream.EnsureStreams(ctx); err != nil {
		return 0, err
	}
	log := w.runner.log.With("consumer", w.consumer)

	if w.RetryDelay <= 0 {
		w.RetryDelay = MinRetryDelay
	}
	delay := w.RetryDelay
	handled := 0
	for {
		task, msgID, err := w.stream.ReadTask(ctx, w.consumer, w.Idle)
		if err != nil {
			if ctx.Err() != nil {
				return handled, ctx.Err()
			}
			if errors.Is(err, queue.ErrEmpty) {
				return handled, nil
			}
			if msgID == "" {
				log.Warnw("task read error", "error", err, "retry_in", delay)
				if err := wait(ctx, delay); err != nil {
					return handled, err
				}
				delay = min(delay*2, MaxRetryDelay)
				continue
			}
			log.Warnw("dropping malformed task", "msg", msgID, "error", err)
			if err := w.stream.AckTask(ctx, msgID); err != nil {
				log.Warnw("ack failed", "msg", msgID, "error", err)
			}
			continue
		}
		delay = w.RetryDelay

		if err := w.handle(ctx, *task); err != nil {
			log.Warnw("task failed", "verb", task.VerbID, "error", err)
		}
		if err := w.stream.AckTask(ctx, msgID); err != nil {
			log.Warnw("ack failed", "msg", msgID, "error", err)
		}
		handled++
	}
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (w *Worker) handle(ctx context.Context, task queue.VerbTask) error {
	v, ok := w.dict.Get(task.VerbID)
	if !ok {
		missing := errors.Newf("verb %s not in dictionary", task.VerbID)
		if _, err := w.stream.PushResult(ctx, resultMessage(task, nil, missing)); err != nil {
			return err
		}
		return missing
	}

	res, failure := w.runner.reconciler.Reconcile(v)
	if w.sink != nil {
		if err := w.sink.SaveOutcome(ctx, v, res, failure); err != nil {
			return err
		}
	}

	_, err := w.stream.PushResult(ctx, resultMessage(task, res, failure))
	return err
}

func resultMessage(task queue.VerbTask, res *reconcile.Result, failure error) queue.VerbResult {
	msg := queue.VerbResult{RunID: task.RunID, VerbID: task.VerbID}
	if failure != nil {
		msg.Cause = failure.Error()
		var f *reconcile.Failure
		if errors.As(failure, &f) {
			msg.Cause = f.Cause.Error()
			msg.Problems = f.Problems
		}
		return msg
	}
	msg.Roots = res.Roots()
	return msg
}

// Collect drains the result stream into a root index, returning the
// failed results separately. Malformed results are acked and skipped. It
// stops once no result arrives for idle, which must be positive.
func Collect(ctx context.Context, stream ResultStream, idle time.Duration) (*lexicon.RootIndex, []queue.VerbResult, error) {
	if idle <= 0 {
		return nil, nil, errors.New("collect needs a positive idle timeout")
	}
	if err := stream.EnsureStreams(ctx); err != nil {
		return nil, nil, err
	}
	consumer := queue.ConsumerName("collector")

	index := lexicon.NewRootIndex()
	var failed []queue.VerbResult
	for {
		res, msgID, err := stream.ReadResult(ctx, consumer, idle)
		if errors.Is(err, queue.ErrEmpty) {
			return index, failed, nil
		}
		if err != nil && msgID == "" {
			return nil, nil, err
		}
		if err == nil {
			if res.OK() {
				for _, root := range res.Roots {
					index.Add(root, res.VerbID)
				}
			} else {
				failed = append(failed, *res)
			}
		}
		if err := stream.AckResult(ctx, msgID); err != nil {
			return nil, nil, errors.Wrap(err, "ack result")
		}
	}
}
