package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
)

var scoreCmd = &cobra.Command{
	Use:   "score <paper.json> <answers.json>",
	Short: "Score answers against a paper file",
	Long: "Score marks an answers file against a paper written by generate.\n" +
		"Answers are a map from question id to \"0\", [\"0\",\"2\"] or 42.5, or a\n" +
		"list of {questionId, answer} objects. With --analyze the section report\n" +
		"includes AI feedback.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPaper(args[0])
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
		answers, err := exam.ParseAnswers(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}

		var a *analysis.Analysis
		if analyze, _ := cmd.Flags().GetBool("analyze"); analyze {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			provider, err := newProvider(cmd.Context(), st.EventRepo())
			if err != nil {
				return fmt.Errorf("LLM provider: %w", err)
			}
			a = analysis.New(provider, analysis.DefaultConfig()).Summarize(cmd.Context(), p.Questions, answers)
		} else {
			a = analysis.Local(p.Questions, answers)
		}

		printAnalysis(cmd.OutOrStdout(), a)
		return nil
	},
}

func readPaper(path string) (*paper.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read paper: %w", err)
	}
	var p paper.Paper
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode paper %s: %w", path, err)
	}
	if len(p.Questions) == 0 {
		return nil, fmt.Errorf("paper %s has no questions", path)
	}
	return &p, nil
}

func printAnalysis(w io.Writer, a *analysis.Analysis) {
	sep := strings.Repeat("─", 72)

	fmt.Fprintf(w, "Score:     %.2f / %g\n", a.Score, a.TotalPossible)
	fmt.Fprintf(w, "Accuracy:  %.2f%%\n", a.Accuracy)
	fmt.Fprintf(w, "Attempted: %d   Correct: %d\n", a.Attempted, a.Correct)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-24s  %8s  %6s  %9s  %7s\n", "Section", "Score", "Total", "Attempted", "Correct")
	fmt.Fprintln(w, sep)
	for _, s := range a.SectionPerformance {
		fmt.Fprintf(w, "%-24s  %8.2f  %6g  %9d  %7d\n",
			truncate(s.Section, 24), s.Score, s.Total, s.Attempted, s.Correct)
		if s.Feedback != "" {
			fmt.Fprintf(w, "  %s\n", s.Feedback)
		}
	}
	fmt.Fprintln(w, sep)

	switch {
	case a.InsightsErr != nil:
		fmt.Fprintf(w, "\n%v\n", a.InsightsErr)
	case len(a.ImprovementAreas) > 0:
		fmt.Fprintln(w, "\nImprovement areas")
		for _, area := range a.ImprovementAreas {
			fmt.Fprintf(w, "  - %s\n", area)
		}
	}
}

func init() {
	scoreCmd.Flags().Bool("analyze", false, "Ask the LLM for section feedback and improvement areas")
}
