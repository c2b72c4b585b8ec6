package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kanoheda/verbroots/internal/affix"
	"github.com/kanoheda/verbroots/internal/batch"
	"github.com/kanoheda/verbroots/internal/config"
	"github.com/kanoheda/verbroots/internal/db"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/logger"
	"github.com/kanoheda/verbroots/internal/queue"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "verbroots",
		Short: "Find the roots of Cherokee verbs from their inflected forms",
		Long: `verbroots segments Cherokee syllabary verb forms into pronoun prefixes,
a root and tense suffixes, reconciles the six dictionary forms of each verb
to the roots they share, and counts those roots in the example sentences.

Inspect a single word or entry:
  verbroots parse ᎦᏬᏂᎭ
  verbroots reconcile 12

Process the whole dictionary:
  verbroots index --out root_based_dict.json
  verbroots count --top 25`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return logger.Initialize(cfg.LogJSON, cfg.Verbose)
		},
	}
)

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Cleanup()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.String("dict", "dict_verbs.json", "verb dictionary JSON file")
	pf.String("database-url", "", "PostgreSQL connection URL")
	pf.String("redis-url", "", "Redis connection URL")
	pf.Int("workers", 0, "parallel reconciliation workers (default: number of CPUs)")
	pf.Bool("log-json", false, "log as JSON")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.String("migrations-dir", "migrations", "directory of SQL migrations")

	for key, flag := range map[string]string{
		"dict":           "dict",
		"database_url":   "database-url",
		"redis_url":      "redis-url",
		"workers":        "workers",
		"log_json":       "log-json",
		"verbose":        "verbose",
		"migrations_dir": "migrations-dir",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(queueCmd)
}

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	return db.Connect(ctx, cfg.DatabaseURL)
}

func connectRedis(ctx context.Context) (*redis.Client, error) {
	return queue.ConnectRedis(ctx, cfg.RedisURL)
}

func loadDictionary() (*lexicon.Dictionary, error) {
	d, err := lexicon.LoadFile(cfg.Dict)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("dictionary loaded", "path", cfg.Dict, "verbs", d.Len())
	return d, nil
}

func newRunner() *batch.Runner {
	return batch.NewRunner(affix.Default(), cfg.Workers)
}
