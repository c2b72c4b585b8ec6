package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/kanoheda/verbroots/internal/batch"
	"github.com/kanoheda/verbroots/internal/db"
	"github.com/kanoheda/verbroots/internal/queue"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Distribute reconciliation over Redis streams",
}

var queueEnqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Push one task per dictionary verb",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := loadDictionary()
		if err != nil {
			return err
		}

		rdb, err := connectRedis(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		runID := uuid.NewString()
		n, err := batch.Enqueue(ctx, queue.New(rdb), runID, d)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Enqueued %d verbs for run %s\n", n, runID)
		return nil
	},
}

var queueWorkCmd = &cobra.Command{
	Use:   "work",
	Short: "Reconcile queued verbs and publish the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		withStore, _ := cmd.Flags().GetBool("store")
		idle, _ := cmd.Flags().GetDuration("idle")
		ctx := cmd.Context()

		d, err := loadDictionary()
		if err != nil {
			return err
		}

		rdb, err := connectRedis(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		var sink batch.Sink
		if withStore {
			pool, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			sink = db.NewStore(pool)
		}

		w := batch.NewWorker(newRunner(), d, queue.New(rdb), sink)
		w.Idle = idle

		pterm.Info.Println("Worker running. Consuming verb tasks from Redis...")
		n, err := w.Consume(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		pterm.Info.Printf("Handled %d tasks\n", n)
		return err
	},
}

var queueCollectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Gather worker results into a root index",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		idle, _ := cmd.Flags().GetDuration("idle")
		ctx := cmd.Context()

		rdb, err := connectRedis(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		index, failed, err := batch.Collect(ctx, queue.New(rdb), idle)
		if err != nil {
			return err
		}
		pterm.Info.Printf("%d roots collected, %d verbs failed\n", index.Len(), len(failed))
		for _, f := range failed {
			pterm.Printf("  %s %s: %s %s\n", pterm.Gray("→"), pterm.Yellow(f.VerbID), f.Cause,
				strings.Join(f.Problems, "; "))
		}

		if out == "" {
			return nil
		}
		if err := writeJSON(out, index); err != nil {
			return err
		}
		pterm.Success.Printf("Root index written to %s\n", out)
		return nil
	},
}

var queueStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stream lengths and pending messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rdb, err := connectRedis(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		statuses, err := queue.New(rdb).Status(ctx)
		if err != nil {
			return errors.Wrap(err, "queue status")
		}

		data := pterm.TableData{{"Stream", "Length", "Pending"}}
		for _, st := range statuses {
			data = append(data, []string{
				st.Stream,
				strconv.FormatInt(st.Length, 10),
				strconv.FormatInt(st.Pending, 10),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	queueWorkCmd.Flags().Bool("store", false, "save each outcome to PostgreSQL")
	queueWorkCmd.Flags().Duration("idle", 0, "exit after the task stream stays empty this long (0 waits forever)")
	queueCollectCmd.Flags().String("out", "", "write the collected root index to this file")
	queueCollectCmd.Flags().Duration("idle", 5*time.Second, "stop after no result arrives for this long")

	queueCmd.AddCommand(queueEnqueueCmd)
	queueCmd.AddCommand(queueWorkCmd)
	queueCmd.AddCommand(queueCollectCmd)
	queueCmd.AddCommand(queueStatusCmd)
}
