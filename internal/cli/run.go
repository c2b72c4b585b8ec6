package cli

import (
	"context"
	"encoding/json"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/batch"
	"github.com/kanoheda/verbroots/internal/db"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/logger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// runBatch loads the dictionary and reconciles all of it.
func runBatch(ctx context.Context) (*lexicon.Dictionary, *batch.Runner, *batch.Report, error) {
	d, err := loadDictionary()
	if err != nil {
		return nil, nil, nil, err
	}
	r := newRunner()
	rep, err := r.Run(ctx, d)
	if err != nil {
		return nil, nil, nil, err
	}
	return d, r, rep, nil
}

func printSummary(rep *batch.Report) {
	pterm.Info.Printf("%d of %d verbs reconciled, %d roots indexed\n",
		rep.Reconciled(), len(rep.Outcomes), rep.Index.Len())

	causes := make(map[string]int)
	for _, p := range rep.Problems {
		causes[p.Cause.Error()]++
	}
	for _, cause := range slices.Sorted(maps.Keys(causes)) {
		pterm.Printf("  %s %s: %d\n", pterm.Gray("→"), cause, causes[cause])
	}
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode json")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Reconcile the dictionary and write the root index",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		showProblems, _ := cmd.Flags().GetBool("problems")

		_, _, rep, err := runBatch(cmd.Context())
		if err != nil {
			return err
		}
		printSummary(rep)
		if showProblems {
			for _, p := range rep.Problems {
				pterm.Println(p.Error())
			}
		}

		if err := writeJSON(out, rep.Index); err != nil {
			return err
		}
		pterm.Success.Printf("Root index written to %s\n", out)
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Rank verbs by how often their roots occur in the example sentences",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")

		d, _, rep, err := runBatch(cmd.Context())
		if err != nil {
			return err
		}
		printSummary(rep)

		ranking := rep.Ranking()
		if top > 0 && len(ranking) > top {
			ranking = ranking[:top]
		}
		if len(ranking) == 0 {
			pterm.Warning.Println("No known roots found in the example sentences")
			return nil
		}

		data := pterm.TableData{{"Rank", "Verb", "Third present", "Definition", "Count"}}
		for i, r := range ranking {
			vb, _ := d.Get(r.ID)
			data = append(data, []string{
				strconv.Itoa(i + 1),
				r.ID,
				vb.ThirdPresentSyllabary,
				vb.Definition,
				strconv.Itoa(r.Count),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Check that the marked forms of each example sentence parse back to their verb",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, r, rep, err := runBatch(cmd.Context())
		if err != nil {
			return err
		}

		checks := r.CheckExamples(d, rep)
		matched := 0
		for _, c := range checks {
			if c.Matched() {
				matched++
				continue
			}
			if c.Err != nil {
				pterm.Printf("%s %s: %v\n", pterm.Yellow(c.VerbID), c.Form, c.Err)
				continue
			}
			parses := make([]string, len(c.Parses))
			for i, p := range c.Parses {
				parses[i] = p.String()
			}
			pterm.Printf("%s %s: %s\n", pterm.Yellow(c.VerbID), c.Form, strings.Join(parses, ", "))
		}
		pterm.Info.Printf("%d of %d example forms traced back to their verb\n", matched, len(checks))
		return nil
	},
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Reconcile the dictionary and save the results to PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		ctx := cmd.Context()
		log := logger.Named("store")

		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if migrate {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				return err
			}
			log.Infow("migrations applied", "dir", cfg.MigrationsDir)
		}

		_, _, rep, err := runBatch(ctx)
		if err != nil {
			return err
		}
		printSummary(rep)

		store := db.NewStore(pool)
		bar, err := pterm.DefaultProgressbar.WithTotal(len(rep.Outcomes)).WithTitle("Saving verbs").Start()
		if err != nil {
			return err
		}
		for _, o := range rep.Outcomes {
			if err := store.SaveOutcome(ctx, o.Verb, o.Result, o.Err); err != nil {
				_, _ = bar.Stop()
				return err
			}
			bar.Increment()
		}
		_, _ = bar.Stop()

		err = store.SaveRun(ctx, db.Run{
			ID:         rep.RunID,
			Verbs:      len(rep.Outcomes),
			Reconciled: rep.Reconciled(),
			Problems:   len(rep.Problems),
			RootCounts: rep.Counts,
			VerbCounts: rep.ByID,
		})
		if err != nil {
			return err
		}
		pterm.Success.Printf("Run %s saved\n", rep.RunID)
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <root>",
	Short: "List stored verbs that have a candidate parse with the given root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		ids, err := db.NewStore(pool).VerbsWithRoot(ctx, args[0])
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			pterm.Warning.Printf("No stored verb has root %s\n", args[0])
			return nil
		}
		for _, id := range ids {
			pterm.Println(id)
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().String("out", "root_based_dict.json", "root index output file")
	indexCmd.Flags().Bool("problems", false, "print every excluded verb")
	countCmd.Flags().Int("top", 20, "rows to show (0 for all)")
	storeCmd.Flags().Bool("migrate", false, "apply migrations before storing")
}
