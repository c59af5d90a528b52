package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reddycharan348/Gate-Exam/internal/scoring"
)

const systemPrompt = `You are a GATE exam coach reviewing a candidate's mock test.

Rules:
- Give 3-5 high-impact improvement areas. Be specific to the topics the candidate got wrong or skipped.
- Give one feedback entry per section, using the section labels exactly as given.
- Scores are already computed. Do not recompute or restate them.
- Use plain text, no markdown.`

// maxQuestionText bounds each question stem in the prompt.
const maxQuestionText = 240

// answerLine is one question and response in the prompt payload.
type answerLine struct {
	QuestionID    int     `json:"questionId"`
	Section       string  `json:"section"`
	Type          string  `json:"type"`
	Marks         float64 `json:"marks"`
	Question      string  `json:"question"`
	Response      any     `json:"response"`
	CorrectAnswer any     `json:"correctAnswer"`
	Outcome       string  `json:"outcome"`
}

func buildUserMessage(rep *scoring.Report) string {
	var sb strings.Builder

	sb.WriteString("Analyze these GATE mock test results.\n\n")
	fmt.Fprintf(&sb, "Score: %.2f / %g\n", rep.Score, rep.TotalPossible)
	fmt.Fprintf(&sb, "Attempted: %d, Correct: %d, Accuracy: %.2f%%\n\n", rep.Attempted, rep.Correct, rep.Accuracy)

	sb.WriteString("Sections:\n")
	for _, s := range rep.Sections {
		fmt.Fprintf(&sb, "- %q: %.2f / %g (%d attempted, %d correct)\n", s.Section, s.Score, s.Total, s.Attempted, s.Correct)
	}

	lines := make([]answerLine, 0, len(rep.Results))
	for _, r := range rep.Results {
		lines = append(lines, answerLine{
			QuestionID:    r.Question.ID,
			Section:       r.Question.Section,
			Type:          string(r.Question.Type),
			Marks:         r.Question.Marks,
			Question:      truncate(r.Question.Text, maxQuestionText),
			Response:      r.Response,
			CorrectAnswer: r.Question.CorrectAnswer,
			Outcome:       string(r.Outcome),
		})
	}
	data, _ := json.Marshal(lines)
	sb.WriteString("\nAnswers:\n")
	sb.Write(data)

	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
