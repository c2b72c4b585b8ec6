package cli

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/affix"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/parse"
	"github.com/kanoheda/verbroots/internal/reconcile"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

var parseCmd = &cobra.Command{
	Use:   "parse <word>",
	Short: "List the segmentations of a syllabary word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		word := norm.NFC.String(strings.TrimSpace(args[0]))

		e := parse.NewExpander(affix.Default())
		var (
			states []parse.State
			err    error
		)
		if all {
			states, err = e.Expand(word)
		} else {
			states, err = e.Parses(word)
		}
		if err != nil {
			return errors.Wrapf(err, "parse %s", word)
		}
		if len(states) == 0 {
			pterm.Warning.Printf("%s has no valid parse\n", word)
			return nil
		}

		data := pterm.TableData{{"#", "Prefixes", "Root", "Suffixes", "Valid"}}
		for i, s := range states {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				joinTags(s.Prefixes()),
				s.Root(),
				joinTags(s.Suffixes()),
				yesNo(parse.IsValid(s)),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <verb-id>",
	Short: "Reconcile the forms of one dictionary entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDictionary()
		if err != nil {
			return err
		}
		vb, ok := d.Get(args[0])
		if !ok {
			return errors.Newf("verb %s not in %s", args[0], cfg.Dict)
		}

		pterm.DefaultSection.Println(vb.Label())
		forms := pterm.TableData{{"Form", "Syllabary"}}
		for _, slot := range lexicon.Slots {
			forms = append(forms, []string{slot.String(), vb.Form(slot)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(forms).Render(); err != nil {
			return err
		}

		r := reconcile.New(parse.NewExpander(affix.Default()))
		res, err := r.Reconcile(vb)
		var f *reconcile.Failure
		if errors.As(err, &f) {
			pterm.Warning.Printf("not reconciled: %v\n", f.Cause)
			for _, p := range f.Problems {
				pterm.Printf("  %s %s\n", pterm.Gray("→"), p)
			}
			return nil
		}
		if err != nil {
			return err
		}

		pterm.Success.Printf("present root %s (%s)\n", res.Present.Root(), res.Present)
		data := pterm.TableData{{"Slot", "Parse", "Root"}}
		for _, c := range res.Candidates() {
			data = append(data, []string{c.Slot.String(), c.Parse.String(), c.Parse.Root()})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	parseCmd.Flags().Bool("all", false, "include parses that fail validation")
}

func joinTags(rules []*affix.Rule) string {
	tags := make([]string, len(rules))
	for i, r := range rules {
		tags[i] = r.String()
	}
	return strings.Join(tags, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
