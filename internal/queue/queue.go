package queue

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// StreamVerbTasks carries one message per verb to reconcile.
	StreamVerbTasks = "verb_tasks"
	// StreamVerbResults carries the outcome of each reconciled verb.
	StreamVerbResults = "verb_results"

	// GroupReconcilers is the consumer group of reconciliation workers.
	GroupReconcilers = "reconciler_pool"
	// GroupCollectors is the consumer group that gathers results.
	GroupCollectors = "collector_pool"
)

// ErrEmpty is returned by a timed read that found no message.
var ErrEmpty = errors.New("no messages")

// VerbTask asks a worker to reconcile one dictionary entry.
type VerbTask struct {
	RunID  string `json:"run_id"`
	VerbID string `json:"verb_id"`
}

// VerbResult reports the outcome of a VerbTask. Cause is empty on success.
type VerbResult struct {
	RunID    string   `json:"run_id"`
	VerbID   string   `json:"verb_id"`
	Roots    []string `json:"roots,omitempty"`
	Cause    string   `json:"cause,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// OK reports whether the verb was reconciled.
func (r VerbResult) OK() bool { return r.Cause == "" }

// Queue manages the Redis streams that distribute reconciliation.
type Queue struct {
	client *redis.Client
}

// New creates a Queue from a Redis client.
func New(client *redis.Client) *Queue {
	return &Queue{client: client}
}

// ConnectRedis creates a Redis client from a URL and pings it.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}

// ConsumerName returns a unique consumer name with the given role.
func ConsumerName(role string) string {
	return role + "-" + uuid.NewString()[:8]
}

// EnsureStreams creates the consumer groups if they don't exist.
func (q *Queue) EnsureStreams(ctx context.Context) error {
	for _, pair := range []struct {
		stream, group string
	}{
		{StreamVerbTasks, GroupReconcilers},
		{StreamVerbResults, GroupCollectors},
	} {
		err := q.client.XGroupCreateMkStream(ctx, pair.stream, pair.group, "0").Err()
		if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
			return errors.Wrapf(err, "create group %s on %s", pair.group, pair.stream)
		}
	}
	return nil
}

// PushTask adds a task to the verb_tasks stream.
func (q *Queue) PushTask(ctx context.Context, task VerbTask) (string, error) {
	values, err := encode(task, map[string]any{"run_id": task.RunID, "verb_id": task.VerbID})
	if err != nil {
		return "", err
	}
	id, err := q.client.XAdd(ctx, &redis.XAddArgs{Stream: StreamVerbTasks, Values: values}).Result()
	if err != nil {
		return "", errors.Wrap(err, "push task")
	}
	return id, nil
}

// PushResult adds a result to the verb_results stream.
func (q *Queue) PushResult(ctx context.Context, res VerbResult) (string, error) {
	values, err := encode(res, map[string]any{"run_id": res.RunID, "verb_id": res.VerbID, "cause": res.Cause})
	if err != nil {
		return "", err
	}
	id, err := q.client.XAdd(ctx, &redis.XAddArgs{Stream: StreamVerbResults, Values: values}).Result()
	if err != nil {
		return "", errors.Wrap(err, "push result")
	}
	return id, nil
}

// ReadTask reads one task for consumer. A zero block waits forever;
// otherwise ErrEmpty is returned once block elapses.
func (q *Queue) ReadTask(ctx context.Context, consumer string, block time.Duration) (*VerbTask, string, error) {
	values, msgID, err := q.read(ctx, StreamVerbTasks, GroupReconcilers, consumer, block)
	if err != nil {
		return nil, "", errors.Wrap(err, "read task")
	}
	var task VerbTask
	if err := decode(values, &task); err != nil {
		return nil, msgID, err
	}
	return &task, msgID, nil
}

// ReadResult reads one result for consumer, with the same blocking rules
// as ReadTask.
func (q *Queue) ReadResult(ctx context.Context, consumer string, block time.Duration) (*VerbResult, string, error) {
	values, msgID, err := q.read(ctx, StreamVerbResults, GroupCollectors, consumer, block)
	if err != nil {
		return nil, "", errors.Wrap(err, "read result")
	}
	var res VerbResult
	if err := decode(values, &res); err != nil {
		return nil, msgID, err
	}
	return &res, msgID, nil
}

func (q *Queue) read(ctx context.Context, stream, group, consumer string, block time.Duration) (map[string]any, string, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    1,
		Block:    block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, "", ErrEmpty
	}
	if err != nil {
		return nil, "", err
	}

	for _, s := range streams {
		for _, msg := range s.Messages {
			return msg.Values, msg.ID, nil
		}
	}
	return nil, "", ErrEmpty
}

// AckTask acknowledges a task message.
func (q *Queue) AckTask(ctx context.Context, msgID string) error {
	return q.client.XAck(ctx, StreamVerbTasks, GroupReconcilers, msgID).Err()
}

// AckResult acknowledges a result message.
func (q *Queue) AckResult(ctx context.Context, msgID string) error {
	return q.client.XAck(ctx, StreamVerbResults, GroupCollectors, msgID).Err()
}

// StreamStatus is the length and pending count of one stream.
type StreamStatus struct {
	Stream  string
	Length  int64
	Pending int64
}

// Status returns length and pending counts for both streams.
func (q *Queue) Status(ctx context.Context) ([]StreamStatus, error) {
	var out []StreamStatus
	for _, pair := range []struct {
		stream, group string
	}{
		{StreamVerbTasks, GroupReconcilers},
		{StreamVerbResults, GroupCollectors},
	} {
		n, err := q.client.XLen(ctx, pair.stream).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "length of %s", pair.stream)
		}
		st := StreamStatus{Stream: pair.stream, Length: n}
		pending, err := q.client.XPending(ctx, pair.stream, pair.group).Result()
		if err == nil {
			st.Pending = pending.Count
		} else if !strings.HasPrefix(err.Error(), "NOGROUP") {
			return nil, errors.Wrapf(err, "pending on %s", pair.stream)
		}
		out = append(out, st)
	}
	return out, nil
}

// encode returns the stream fields of a message: the flat fields for
// inspection with redis-cli plus the full JSON payload.
func encode(msg any, fields map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "encode payload")
	}
	fields["payload"] = string(payload)
	return fields, nil
}

func decode(values map[string]any, into any) error {
	payload := getString(values, "payload")
	if payload == "" {
		return errors.New("message has no payload")
	}
	if err := json.Unmarshal([]byte(payload), into); err != nil {
		return errors.Wrap(err, "decode payload")
	}
	return nil
}

func getString(values map[string]any, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
