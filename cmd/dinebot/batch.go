package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/dinebot/pkg/dinebot"
)

// batchLine is one JSONL output record.
type batchLine struct {
	Line       int      `json:"line"`
	Query      string   `json:"query"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Status     string   `json:"status"`
	Count      int      `json:"count"`
	Items      []string `json:"items,omitempty"`
	Reply      string   `json:"reply"`
}

func newBatchCmd(opts *options) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Answer one question per line and print JSONL",
		Long: `Answer every non-empty line of a file (or stdin with "-" or no
argument). Output is one JSON object per question, in input order.`,
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
			rt.logger.Info("batch complete", zap.Int("queries", len(lines)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			for _, l := range lines {
				if err := enc.Encode(l); err != nil {
					return fmt.Errorf("encode line %d: %w", l.Line, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent queries")
	return cmd
}

func runBatch(cmd *cobra.Command, engine *dinebot.Engine, in io.Reader, workers int) ([]batchLine, error) {
	type job struct {
		line  int
		query string
	}
	var jobs []job
	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		if q := strings.TrimSpace(scanner.Text()); q != "" {
			jobs = append(jobs, job{line: n, query: q})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	out := make([]batchLine, len(jobs))
	g, ctx := errgroup.WithContext(cmd.Context())
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			ans, err := engine.Ask(ctx, j.query)
			if err != nil {
				return err
			}
			names := make([]string, len(ans.Result.Items))
			for k, it := range ans.Result.Items {
				names[k] = it.Name
			}
			out[i] = batchLine{
				Line:       j.line,
				Query:      j.query,
				Intent:     string(ans.Classification.Intent),
				Confidence: ans.Classification.Confidence,
				Status:     string(ans.Result.Status),
				Count:      ans.Result.Count,
				Items:      names,
				Reply:      ans.Reply.Text,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
