package batch

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/queue"
	"github.com/kanoheda/verbroots/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streamRead struct {
	msgID string
	task  *queue.VerbTask
	res   *queue.VerbResult
	err   error
}

// memStream replays scripted reads and records everything written to it.
type memStream struct {
	reads []streamRead
	// repeat is returned by every read once reads run out; nil means
	// ErrEmpty.
	repeat error

	calls   int
	acked   []string
	tasks   []queue.VerbTask
	results []queue.VerbResult
}

func (m *memStream) EnsureStreams(context.Context) error { return nil }

func (m *memStream) next() streamRead {
	m.calls++
	if len(m.reads) == 0 {
		if m.repeat != nil {
			return streamRead{err: m.repeat}
		}
		return streamRead{err: queue.ErrEmpty}
	}
	r := m.reads[0]
	m.reads = m.reads[1:]
	return r
}

func (m *memStream) ReadTask(context.Context, string, time.Duration) (*queue.VerbTask, string, error) {
	r := m.next()
	return r.task, r.msgID, r.err
}

func (m *memStream) ReadResult(context.Context, string, time.Duration) (*queue.VerbResult, string, error) {
	r := m.next()
	return r.res, r.msgID, r.err
}

func (m *memStream) AckTask(_ context.Context, msgID string) error {
	m.acked = append(m.acked, msgID)
	return nil
}

func (m *memStream) AckResult(_ context.Context, msgID string) error {
	m.acked = append(m.acked, msgID)
	return nil
}

func (m *memStream) PushTask(_ context.Context, task queue.VerbTask) (string, error) {
	m.tasks = append(m.tasks, task)
	return "", nil
}

func (m *memStream) PushResult(_ context.Context, res queue.VerbResult) (string, error) {
	m.results = append(m.results, res)
	return "", nil
}

type memSink struct {
	saved []string
}

func (s *memSink) SaveOutcome(_ context.Context, v lexicon.Verb, _ *reconcile.Result, _ error) error {
	s.saved = append(s.saved, v.Index)
	return nil
}

func taskFor(id string) *queue.VerbTask {
	return &queue.VerbTask{RunID: "run", VerbID: id}
}

func TestEnqueue(t *testing.T) {
	m := &memStream{}
	n, err := Enqueue(context.Background(), m, "run", testDictionary())
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	require.Len(t, m.tasks, 3)
	assert.Equal(t, queue.VerbTask{RunID: "run", VerbID: "7"}, m.tasks[0])
	assert.Equal(t, "30", m.tasks[2].VerbID)
}

func TestConsumeHandlesTasks(t *testing.T) {
	m := &memStream{reads: []streamRead{
		{msgID: "1-0", err: errors.New("decode task payload")},
		{msgID: "2-0", task: taskFor("12")},
		{msgID: "3-0", task: taskFor("7")},
		{msgID: "4-0", task: taskFor("99")},
	}}
	sink := &memSink{}

	w := NewWorker(NewRunner(testTable(), 1), testDictionary(), m, sink)
	n, err := w.Consume(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"1-0", "2-0", "3-0", "4-0"}, m.acked)
	assert.Equal(t, []string{"12", "7"}, sink.saved)

	require.Len(t, m.results, 3)
	assert.True(t, m.results[0].OK())
	assert.Equal(t, []string{"ᏬᏂᎭ", "ᏬᏂᏍᎦ", "ᏬᏂᏍ"}, m.results[0].Roots)
	assert.Equal(t, "unparseable form", m.results[1].Cause)
	assert.Equal(t, "verb 99 not in dictionary", m.results[2].Cause)
}

func TestConsumeRetriesAfterReadError(t *testing.T) {
	m := &memStream{reads: []streamRead{
		{err: errors.New("connection refused")},
		{msgID: "1-0", task: taskFor("12")},
	}}

	w := NewWorker(NewRunner(testTable(), 1), testDictionary(), m, nil)
	w.RetryDelay = time.Millisecond
	n, err := w.Consume(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"1-0"}, m.acked)
}

func TestConsumeBacksOffWhileReadsFail(t *testing.T) {
	m := &memStream{repeat: errors.New("connection refused")}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	w := NewWorker(NewRunner(testTable(), 1), testDictionary(), m, nil)
	w.RetryDelay = 5 * time.Millisecond
	n, err := w.Consume(ctx)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Zero(t, n)
	// 5, 10, 20 and 40ms waits fit in the deadline
	assert.GreaterOrEqual(t, m.calls, 2)
	assert.LessOrEqual(t, m.calls, 8)
	assert.Empty(t, m.acked)
}

func TestCollect(t *testing.T) {
	m := &memStream{reads: []streamRead{
		{msgID: "1-0", res: &queue.VerbResult{VerbID: "12", Roots: []string{"ᏬᏂᎭ", "ᏬᏂᏍᎦ"}}},
		{msgID: "2-0", err: errors.New("decode result payload")},
		{msgID: "3-0", res: &queue.VerbResult{VerbID: "7", Cause: "unparseable form"}},
		{msgID: "4-0", res: &queue.VerbResult{VerbID: "30", Roots: []string{"ᏬᏂᎭ"}}},
	}}

	index, failed, err := Collect(context.Background(), m, time.Second)
	require.NoError(t, err)

	assert.Equal(t, []string{"ᏬᏂᎭ", "ᏬᏂᏍᎦ"}, index.Roots())
	assert.Equal(t, []string{"12", "30"}, index.IDs("ᏬᏂᎭ"))
	require.Len(t, failed, 1)
	assert.Equal(t, "7", failed[0].VerbID)
	assert.Equal(t, []string{"1-0", "2-0", "3-0", "4-0"}, m.acked)
}

func TestCollectErrors(t *testing.T) {
	_, _, err := Collect(context.Background(), &memStream{}, 0)
	assert.Error(t, err)

	m := &memStream{reads: []streamRead{{err: errors.New("connection refused")}}}
	_, _, err = Collect(context.Background(), m, time.Second)
	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, m.acked)
}
