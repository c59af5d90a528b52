// Package offline answers LLM requests locally with synthetic papers and
// canned feedback. It backs the "mock" provider so the app can be tried
// without an API key.
package offline

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
)

// Responder returns an llm.MockProvider responder. Papers are deterministic
// for a given prompt, so the same seed gives the same paper.
func Responder() func(llm.Request) llm.MockResponse {
	return func(req llm.Request) llm.MockResponse {
		if req.Schema == nil {
			return llm.MockResponse{Err: errors.New("offline responder needs a schema")}
		}
		if req.Schema.Name == analysis.Schema.Name {
			return llm.MockResponse{Content: feedback(req)}
		}
		b, ok := paper.BatchForSchema(req.Schema.Name)
		if !ok {
			return llm.MockResponse{Err: fmt.Errorf("offline responder: unknown schema %q", req.Schema.Name)}
		}
		return llm.MockResponse{Content: questions(b, rngFor(req))}
	}
}

func rngFor(req llm.Request) *rand.Rand {
	h := fnv.New64a()
	for _, m := range req.Messages {
		h.Write([]byte(m.Content))
	}
	sum := h.Sum64()
	return rand.New(rand.NewPCG(sum, sum>>1|1))
}

type question struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Marks         int      `json:"marks"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Section       string   `json:"section"`
}

func questions(b paper.Batch, rng *rand.Rand) json.RawMessage {
	qs := make([]question, b.Count)
	for i := range qs {
		var q question
		switch i % 3 {
		case 0:
			q = sumMCQ(rng)
		case 1:
			q = evenMSQ(rng)
		default:
			q = productNAT(rng)
		}
		q.Marks = marksAt(b, i)
		q.Section = b.Section
		qs[i] = q
	}
	data, _ := json.Marshal(map[string]any{"questions": qs})
	return data
}

// marksAt follows the batch's mark distribution: split half and half for the
// aptitude batches, fixed for Foundations and Core, alternating otherwise.
func marksAt(b paper.Batch, i int) int {
	switch b.Name {
	case "Foundations":
		return 1
	case "Core":
		return 2
	case "Aptitude":
		if i < b.Count/2 {
			return 1
		}
		return 2
	}
	return 1 + i%2
}

func sumMCQ(rng *rand.Rand) question {
	a, b := 10+rng.IntN(90), 10+rng.IntN(90)
	sum := a + b
	opts := []int{sum - 10, sum - 1, sum + 1, sum + 10}
	correct := rng.IntN(4)
	opts[correct] = sum
	return question{
		Text:          fmt.Sprintf("What is %d + %d?", a, b),
		Type:          "MCQ",
		Options:       itoaAll(opts),
		CorrectAnswer: strconv.Itoa(correct),
		Explanation:   fmt.Sprintf("%d + %d = %d.", a, b, sum),
	}
}

func evenMSQ(rng *rand.Rand) question {
	opts := make([]int, 4)
	var correct []string
	for i := range opts {
		opts[i] = 1 + rng.IntN(99)
		if opts[i]%2 == 0 {
			correct = append(correct, strconv.Itoa(i))
		}
	}
	if len(correct) == 0 {
		opts[0]++
		correct = []string{"0"}
	}
	return question{
		Text:          "Which of the following numbers are even?",
		Type:          "MSQ",
		Options:       itoaAll(opts),
		CorrectAnswer: strings.Join(correct, ","),
		Explanation:   "A number is even when it is divisible by 2.",
	}
}

func productNAT(rng *rand.Rand) question {
	a, b := 2+rng.IntN(20), 2+rng.IntN(20)
	return question{
		Text:          fmt.Sprintf("Compute %d x %d.", a, b),
		Type:          "NAT",
		Options:       []string{},
		CorrectAnswer: strconv.Itoa(a * b),
		Explanation:   fmt.Sprintf("%d x %d = %d.", a, b, a*b),
	}
}

func itoaAll(in []int) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// feedback echoes the section labels found in the prompt with generic
// advice.
func feedback(req llm.Request) json.RawMessage {
	type section struct {
		Section  string `json:"section"`
		Feedback string `json:"feedback"`
	}
	var sections []section
	if len(req.Messages) > 0 {
		for _, line := range strings.Split(req.Messages[0].Content, "\n") {
			if !strings.HasPrefix(line, "- \"") {
				continue
			}
			name, err := strconv.QuotedPrefix(strings.TrimPrefix(line, "- "))
			if err != nil {
				continue
			}
			label, _ := strconv.Unquote(name)
			sections = append(sections, section{
				Section:  label,
				Feedback: "Offline mode: review the answer key for this section.",
			})
		}
	}
	if sections == nil {
		sections = []section{}
	}
	data, _ := json.Marshal(map[string]any{
		"improvementAreas": []string{
			"Review every incorrect answer against its explanation",
			"Attempt skipped questions under a time limit",
			"Avoid guessing on MCQs where negative marking applies",
		},
		"sectionPerformance": sections,
	})
	return data
}
