// Package paper assembles GATE question papers from an LLM provider.
//
// An aptitude-only paper is a single batch of 15 questions. A full paper is
// four batches generated concurrently and concatenated in a fixed order. Any
// failing batch fails the whole paper.
package paper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
)

// Purpose labels paper requests in the LLM event log.
const Purpose = "paper-gen"

// Request selects the paper to assemble.
type Request struct {
	Subject    string
	Difficulty exam.Difficulty
	TestType   exam.TestType
}

// RequestFor builds a Request from the user's settings.
func RequestFor(s exam.Settings) Request {
	return Request{Subject: s.Subject, Difficulty: s.Difficulty, TestType: s.TestType}
}

func (r Request) validate() error {
	if _, err := exam.ParseDifficulty(string(r.Difficulty)); err != nil {
		return err
	}
	if _, err := exam.ParseTestType(string(r.TestType)); err != nil {
		return err
	}
	if r.TestType == exam.Full && strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("a full paper needs a subject")
	}
	return nil
}

// ProgressFunc receives human-readable status messages as stages begin.
// Calls are serialized; the function need not be safe for concurrent use.
type ProgressFunc func(msg string)

// Paper is an assembled question paper. It is also the on-disk paper file
// format.
type Paper struct {
	Subject    string          `json:"subject"`
	Difficulty exam.Difficulty `json:"difficulty"`
	TestType   exam.TestType   `json:"testType"`
	Seed       string          `json:"seed"`
	Questions  []exam.Question `json:"questions"`
}

// Settings returns the settings the paper was generated for.
func (p *Paper) Settings() exam.Settings {
	return exam.Settings{Subject: p.Subject, Difficulty: p.Difficulty, TestType: p.TestType}
}

// Assembler generates papers through an llm.Provider.
type Assembler struct {
	provider llm.Provider
	config   Config
}

// New creates an Assembler with the given provider and config.
func New(provider llm.Provider, cfg Config) *Assembler {
	if cfg.Seed == nil {
		cfg.Seed = timeSeed
	}
	return &Assembler{provider: provider, config: cfg}
}

// Assemble returns the questions of a new paper, numbered 1..N.
func (a *Assembler) Assemble(ctx context.Context, req Request, progress ProgressFunc) ([]exam.Question, error) {
	p, err := a.AssemblePaper(ctx, req, progress)
	if err != nil {
		return nil, err
	}
	return p.Questions, nil
}

// AssemblePaper is Assemble with the paper metadata kept alongside the
// questions.
func (a *Assembler) AssemblePaper(ctx context.Context, req Request, progress ProgressFunc) (*Paper, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	report := serialize(progress)
	seed := a.config.Seed()
	batches := Blueprint(req.TestType)
	start := time.Now()

	if req.TestType == exam.AptitudeOnly {
		report("Crafting Focused Aptitude Paper...")
	} else {
		report("Initializing Full 100-Mark Marathon...")
	}

	results := make([][]exam.Question, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range batches {
		g.Go(func() error {
			if len(batches) > 1 {
				report(fmt.Sprintf("Generating %s (%d questions)...", b.Name, b.Count))
			}
			qs, err := a.generateBatch(gctx, b, req, seed)
			if err != nil {
				return &GenerationError{Batch: b.Name, Kind: classify(err), Err: err}
			}
			results[i] = qs
			if len(batches) > 1 {
				report(fmt.Sprintf("%s ready", b.Name))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Str("test_type", string(req.TestType)).Msg("paper assembly failed")
		return nil, err
	}

	var questions []exam.Question
	for _, qs := range results {
		questions = append(questions, qs...)
	}
	for i := range questions {
		questions[i].ID = i + 1
	}

	log.Info().
		Str("subject", req.Subject).
		Str("difficulty", string(req.Difficulty)).
		Str("test_type", string(req.TestType)).
		Int("questions", len(questions)).
		Float64("marks", exam.TotalMarks(questions)).
		Dur("elapsed", time.Since(start)).
		Msg("paper assembled")
	report(fmt.Sprintf("Paper ready: %d questions, %g marks", len(questions), exam.TotalMarks(questions)))

	return &Paper{
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		TestType:   req.TestType,
		Seed:       seed,
		Questions:  questions,
	}, nil
}

// questionOutput is one question as the LLM returns it.
type questionOutput struct {
	Text          string          `json:"text"`
	Type          string          `json:"type"`
	Marks         float64         `json:"marks"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
	Section       string          `json:"section"`
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

func (a *Assembler) generateBatch(ctx context.Context, b Batch, req Request, seed string) ([]exam.Question, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	llmReq := llm.UserPrompt(systemPrompt, buildUserMessage(b, req, seed), batchSchema(b), a.config.MaxTokens)
	llmReq.Temperature = a.config.Temperature

	start := time.Now()
	resp, err := a.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if verr := checkCount(len(raw.Questions), b); verr != nil {
		return nil, verr
	}

	out := make([]exam.Question, len(raw.Questions))
	for i, r := range raw.Questions {
		q, err := toQuestion(r, b)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		for _, v := range a.config.Validators {
			if verr := v.Validate(&q, b); verr != nil {
				verr.Question = i + 1
				return nil, verr
			}
		}
		out[i] = q
	}

	log.Debug().
		Str("batch", b.Name).
		Int("questions", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("batch generated")
	return out, nil
}

// toQuestion converts the wire form. MSQ answers arrive comma-separated;
// everything else is a single value. The batch section always wins.
func toQuestion(r questionOutput, b Batch) (exam.Question, error) {
	correct, err := decodeAnswerText(r.CorrectAnswer)
	if err != nil {
		return exam.Question{}, err
	}

	q := exam.Question{
		Text:        strings.TrimSpace(r.Text),
		Type:        exam.QuestionType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Marks:       r.Marks,
		Explanation: strings.TrimSpace(r.Explanation),
		Section:     b.Section,
	}
	if q.Type.HasOptions() {
		q.Options = r.Options
	}
	if q.Type == exam.MSQ {
		q.CorrectAnswer = exam.ParseMulti(correct)
	} else {
		q.CorrectAnswer = exam.Single(strings.TrimSpace(correct))
	}
	return q, nil
}

// decodeAnswerText reads correctAnswer as text. Bare numbers are tolerated
// for NAT answers from providers that ignore the schema's string type.
func decodeAnswerText(raw json.RawMessage) (string, error) {
	var a exam.Answer
	if err := json.Unmarshal(raw, &a); err != nil {
		return "", err
	}
	if a.IsMulti() {
		return strings.Join(a.Values(), ","), nil
	}
	return a.Value(), nil
}

// serialize wraps a ProgressFunc so concurrent batches never call it at the
// same time. A nil sink discards messages.
func serialize(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(string) {}
	}
	var mu sync.Mutex
	return func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		progress(msg)
	}
}
