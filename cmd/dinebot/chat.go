package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/dinebot/pkg/dinebot"
)

func newChatCmd(opts *options) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask questions interactively",
		Long: `Start an interactive session. Each line is answered as a question.

Commands:
  :explain   toggle intent, entity and filter output
  :quit      leave (Ctrl+D also works)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd.Context(), cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runChat(cmd, rt.engine, cmd.InOrStdin(), cmd.OutOrStdout(), explain)
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "show how each question was understood")
	return cmd
}

func runChat(cmd *cobra.Command, engine *dinebot.Engine, in io.Reader, out io.Writer, explain bool) error {
	name := engine.Restaurant().Name
	if name == "" {
		name = "DineBot"
	}
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintf(out, "  %s\n", name)
	fmt.Fprintln(out, "  Ask about our menu, prices or hours")
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q", "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case ":explain":
			explain = !explain
			fmt.Fprintf(out, "explain %s\n\n", onOff(explain))
			continue
		}

		ans, err := engine.Ask(cmd.Context(), line)
		if err != nil {
			return err
		}
		printAnswer(out, ans, explain)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Fprintln(out, "\nGoodbye!")
	return nil
}

func printAnswer(out io.Writer, ans dinebot.Answer, explain bool) {
	fmt.Fprintln(out, ans.Reply.Text)
	if explain {
		fmt.Fprintln(out, "\nExplain:")
		fmt.Fprintf(out, "  Intent: %s (%.2f, rule %s)\n", ans.Classification.Intent, ans.Classification.Confidence, ans.Classification.Rule)
		fmt.Fprintf(out, "  Status: %s, %d item(s)\n", ans.Result.Status, ans.Result.Count)
		if ans.Entities.ItemCandidate != "" {
			fmt.Fprintf(out, "  Candidate: %q\n", ans.Entities.ItemCandidate)
		}
		if ans.Result.MatchedItem != nil {
			fmt.Fprintf(out, "  Matched: %s (%.2f)\n", ans.Result.MatchedItem.Name, ans.Result.MatchScore)
		}
		for _, st := range ans.Result.Trace {
			fmt.Fprintf(out, "  %s -> %d\n", st.Name, st.Remaining)
		}
	}
	fmt.Fprintln(out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
