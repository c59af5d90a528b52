package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted exam attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.EventRepo().QueryAttempts(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-18s  %-10s  %-16s  %7s  %8s\n",
			"Session", "Submitted", "Subject", "Difficulty", "Type", "Score", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 126))
		for _, a := range attempts {
			fmt.Fprintf(out, "%-36s  %-16s  %-18s  %-10s  %-16s  %7.2f  %7.2f%%\n",
				a.SessionID,
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(a.Subject, 18),
				a.Difficulty,
				a.TestType,
				a.Score,
				a.Accuracy,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show per-question outcomes of an attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		a, err := s.EventRepo().GetAttempt(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get attempt: %w", err)
		}
		if a == nil {
			return fmt.Errorf("no submitted attempt %q", args[0])
		}
		records, err := s.EventRepo().AttemptAnswers(ctx, args[0])
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session:   %s\n", a.SessionID)
		fmt.Fprintf(out, "Submitted: %s\n", a.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Paper:     %s / %s / %s\n", a.Subject, a.Difficulty, a.TestType)
		fmt.Fprintf(out, "Score:     %.2f / %g   accuracy %.2f%%   %d attempted, %d correct\n",
			a.Score, a.TotalMarks, a.Accuracy, a.Attempted, a.Correct)
		fmt.Fprintln(out)

		fmt.Fprintf(out, "%-4s  %-22s  %-4s  %5s  %-12s  %-12s  %-10s  %6s\n",
			"Q", "Section", "Type", "Marks", "Response", "Correct", "Outcome", "Delta")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, r := range records {
			fmt.Fprintf(out, "%-4d  %-22s  %-4s  %5g  %-12s  %-12s  %-10s  %+6.2f\n",
				r.QuestionID,
				truncate(r.Section, 22),
				r.QuestionType,
				r.Marks,
				truncate(displayAnswer(r.Response), 12),
				truncate(displayAnswer(r.CorrectAnswer), 12),
				r.Outcome,
				r.Delta,
			)
		}
		return nil
	},
}

// displayAnswer renders a stored answer JSON value as plain text.
func displayAnswer(raw string) string {
	if raw == "" {
		return "-"
	}
	var a exam.Answer
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return raw
	}
	if a.IsEmpty() {
		return "-"
	}
	return a.String()
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.AddCommand(historyShowCmd)
}
