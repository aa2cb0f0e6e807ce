package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cognicore/dinebot/pkg/dinebot/analytics"
	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/stoplist"
)

type report struct {
	analytics.Stats
	NotFoundRate     float64           `json:"not_found_rate"`
	EmptyRate        float64           `json:"empty_rate"`
	UnknownRate      float64           `json:"unknown_rate"`
	TopUnresolved    []analytics.Count `json:"top_unresolved"`
	UnresolvedTokens []analytics.Count `json:"unresolved_tokens"`
}

func newReportCmd(opts *options) *cobra.Command {
	var (
		workers int
		top     int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Summarize how a set of questions is understood",
		Long: `Answer every line of a question file (or stdin) and summarize the
results: intent mix, confidence, and the questions and words that went
unanswered. Useful for finding missing menu items, dictionary variants and
stopwords.

Examples:
  dinebot report questions.txt
  dinebot report --json --top 20 questions.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			rt, err := opts.setup(cmd.Context(), cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer rt.Close()

			lines, err := runBatch(cmd, rt.engine, in, workers)
			if err != nil {
				return err
			}

			tok := ingest.NewTokenizer(stoplist.Default().All())
			a := analytics.NewAnalyzer(tok)
			for _, l := range lines {
				a.Process(analytics.Record{
					Text:       l.Query,
					Intent:     l.Intent,
					Status:     l.Status,
					Confidence: l.Confidence,
				})
			}
			stats := a.Snapshot()
			rep := report{
				Stats:            stats,
				NotFoundRate:     stats.Rate(filter.StatusNotFound),
				EmptyRate:        stats.Rate(filter.StatusEmpty),
				UnknownRate:      stats.UnknownRate(),
				TopUnresolved:    stats.TopUnresolved(top),
				UnresolvedTokens: stats.TopUnresolvedTokens(top),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent queries")
	cmd.Flags().IntVar(&top, "top", 10, "entries per ranked list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(out io.Writer, rep report) {
	fmt.Fprintf(out, "Queries: %d\n", rep.TotalQueries)
	if rep.TotalQueries == 0 {
		return
	}
	fmt.Fprintf(out, "Average confidence: %.2f (%d below %.1f)\n", rep.AverageConfidence, rep.LowConfidence, analytics.LowConfidence)
	fmt.Fprintf(out, "Not found: %.1f%%  Empty: %.1f%%  Unknown: %.1f%%\n",
		100*rep.NotFoundRate, 100*rep.EmptyRate, 100*rep.UnknownRate)

	fmt.Fprintln(out, "\nIntents:")
	intents := make([]string, 0, len(rep.IntentCounts))
	for in := range rep.IntentCounts {
		intents = append(intents, in)
	}
	sort.Slice(intents, func(i, j int) bool {
		ci, cj := rep.IntentCounts[intents[i]], rep.IntentCounts[intents[j]]
		if ci != cj {
			return ci > cj
		}
		return intents[i] < intents[j]
	})
	for _, in := range intents {
		fmt.Fprintf(out, "  %-22s %d\n", in, rep.IntentCounts[in])
	}

	if len(rep.TopUnresolved) > 0 {
		fmt.Fprintln(out, "\nUnanswered questions:")
		for _, c := range rep.TopUnresolved {
			fmt.Fprintf(out, "  %3d  %s\n", c.Count, c.Text)
		}
	}
	if len(rep.UnresolvedTokens) > 0 {
		fmt.Fprintln(out, "\nUnanswered words:")
		for _, c := range rep.UnresolvedTokens {
			fmt.Fprintf(out, "  %3d  %s\n", c.Count, c.Text)
		}
	}
}
