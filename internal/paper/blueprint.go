package paper

import "github.com/reddycharan348/Gate-Exam/internal/exam"

// SectionAptitude is the section label of every aptitude question.
const SectionAptitude = "General Aptitude"

// Batch describes one generation request and the questions it must yield.
type Batch struct {
	// Name identifies the batch in progress messages and errors.
	Name string

	// Section is stamped on every question of the batch.
	Section string

	// Count is the exact number of questions expected.
	Count int

	// Marks describes the mark distribution for the prompt.
	Marks string

	// Kind describes the questions for the prompt.
	Kind string

	// Topics overrides the subject in the prompt. Empty means the request's
	// subject is used.
	Topics string

	// SeedSuffix is appended to the paper seed ("-1" ... "-4").
	SeedSuffix string
}

// subjectBound reports whether the batch is about the chosen subject.
func (b Batch) subjectBound() bool {
	return b.Topics == ""
}

var (
	aptitudePaper = Batch{
		Name:    "Aptitude",
		Section: SectionAptitude,
		Count:   15,
		Marks:   "a mix of 1-mark and 2-mark questions",
		Kind:    "GATE General Aptitude questions",
		Topics:  "Verbal, Quantitative and Logical reasoning",
	}

	fullPaper = []Batch{
		{
			Name:       "Aptitude",
			Section:    SectionAptitude,
			Count:      10,
			Marks:      "5 questions worth 1 mark and 5 worth 2 marks",
			Kind:       "GATE General Aptitude questions",
			Topics:     "Verbal, Quantitative and Logical reasoning",
			SeedSuffix: "-1",
		},
		{
			Name:       "Foundations",
			Section:    "Technical Foundations",
			Count:      15,
			Marks:      "every question worth 1 mark",
			Kind:       "fundamental technical questions",
			SeedSuffix: "-2",
		},
		{
			Name:       "Core",
			Section:    "Core Technical",
			Count:      20,
			Marks:      "every question worth 2 marks",
			Kind:       "advanced technical questions",
			SeedSuffix: "-3",
		},
		{
			Name:       "Applications",
			Section:    "Applications",
			Count:      20,
			Marks:      "a mix of 1-mark and 2-mark questions",
			Kind:       "complex multi-concept questions",
			SeedSuffix: "-4",
		},
	}
)

// Blueprint returns the batches that make up a paper of the given type, in
// paper order.
func Blueprint(t exam.TestType) []Batch {
	if t == exam.AptitudeOnly {
		return []Batch{aptitudePaper}
	}
	out := make([]Batch, len(fullPaper))
	copy(out, fullPaper)
	return out
}

// QuestionCount returns the number of questions a paper of type t has.
func QuestionCount(t exam.TestType) int {
	n := 0
	for _, b := range Blueprint(t) {
		n += b.Count
	}
	return n
}
