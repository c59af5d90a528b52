package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
	"github.com/reddycharan348/Gate-Exam/internal/scoring"
)

// Purpose labels analysis requests in the LLM event log.
const Purpose = "analysis"

// maxImprovementAreas caps the list shown to the user.
const maxImprovementAreas = 5

// Config holds analysis generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Scheme      scoring.Scheme
}

// DefaultConfig returns sensible defaults for analysis generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.4,
		Scheme:      scoring.DefaultScheme(),
	}
}

// Analyzer produces performance summaries.
type Analyzer struct {
	provider llm.Provider
	cfg      Config
}

// New creates an Analyzer. provider may be nil, in which case every summary
// carries an AnalysisError.
func New(provider llm.Provider, cfg Config) *Analyzer {
	return &Analyzer{provider: provider, cfg: cfg}
}

type feedbackOutput struct {
	ImprovementAreas   []string `json:"improvementAreas"`
	SectionPerformance []struct {
		Section  string `json:"section"`
		Feedback string `json:"feedback"`
	} `json:"sectionPerformance"`
}

// Summarize scores the submission and asks for feedback. It always returns
// an Analysis; a feedback failure is recorded in InsightsErr.
func (a *Analyzer) Summarize(ctx context.Context, questions []exam.Question, answers map[int]exam.UserAnswer) *Analysis {
	rep := a.cfg.Scheme.Evaluate(questions, answers)
	out := fromReport(rep)

	fb, err := a.feedback(ctx, rep)
	if err != nil {
		log.Warn().Err(err).Msg("performance analysis failed")
		out.InsightsErr = &AnalysisError{Err: err}
		return out
	}

	out.ImprovementAreas = cleanAreas(fb.ImprovementAreas)
	merge(out, fb)
	return out
}

func (a *Analyzer) feedback(ctx context.Context, rep *scoring.Report) (*feedbackOutput, error) {
	if a.provider == nil {
		return nil, errors.New("no analysis service configured")
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.UserPrompt(systemPrompt, buildUserMessage(rep), Schema, a.cfg.MaxTokens)
	req.Temperature = a.cfg.Temperature

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis generation: %w", err)
	}

	var fb feedbackOutput
	if err := json.Unmarshal(resp.Content, &fb); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &fb, nil
}

// merge attaches feedback to the local section rows. Sections the model
// invented are ignored.
func merge(a *Analysis, fb *feedbackOutput) {
	byName := make(map[string]string, len(fb.SectionPerformance))
	for _, s := range fb.SectionPerformance {
		key := normalize(s.Section)
		if _, dup := byName[key]; !dup {
			byName[key] = strings.TrimSpace(s.Feedback)
		}
	}
	for i := range a.SectionPerformance {
		a.SectionPerformance[i].Feedback = byName[normalize(a.SectionPerformance[i].Section)]
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cleanAreas(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if len(out) == maxImprovementAreas {
			break
		}
	}
	return out
}
