package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question paper and write it as JSON",
	Long: "Generate assembles a paper without the TUI. Progress is printed to stderr\n" +
		"and the paper JSON to stdout or the --output file.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := paperRequest(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := newProvider(cmd.Context(), st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		stderr := cmd.ErrOrStderr()
		p, err := paper.New(provider, paper.DefaultConfig()).AssemblePaper(cmd.Context(), req, func(msg string) {
			fmt.Fprintln(stderr, msg)
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("write paper: %w", err)
		}
		return nil
	},
}

// paperRequest reads the paper flags, falling back to the configured exam
// defaults.
func paperRequest(cmd *cobra.Command) (paper.Request, error) {
	s := appConfig.Exam
	if v, _ := cmd.Flags().GetString("subject"); v != "" {
		s.Subject = v
	}
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		d, err := exam.ParseDifficulty(v)
		if err != nil {
			return paper.Request{}, err
		}
		s.Difficulty = d
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		t, err := exam.ParseTestType(v)
		if err != nil {
			return paper.Request{}, err
		}
		s.TestType = t
	}
	return paper.RequestFor(s), nil
}

func init() {
	generateCmd.Flags().StringP("subject", "s", "", "Engineering subject, e.g. \"Computer Science\"")
	generateCmd.Flags().StringP("difficulty", "d", "", "Easy, Moderate or Difficult")
	generateCmd.Flags().StringP("type", "t", "", "full or aptitude")
	generateCmd.Flags().StringP("output", "o", "", "Write the paper to this file instead of stdout")
}
