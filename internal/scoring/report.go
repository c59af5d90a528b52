package scoring

import "github.com/reddycharan348/Gate-Exam/internal/exam"

// SectionScore aggregates marks for one section label.
type SectionScore struct {
	Section   string
	Score     float64
	Total     float64
	Attempted int
	Correct   int
}

// Report is the full local evaluation of a submission.
type Report struct {
	Results       []Result
	Sections      []SectionScore
	Score         float64
	TotalPossible float64
	Attempted     int
	Correct       int
	Incorrect     int

	// Accuracy is correct/attempted as a percentage, 0 when nothing was
	// attempted.
	Accuracy float64
}

// Evaluate builds a Report with DefaultScheme.
func Evaluate(questions []exam.Question, answers map[int]exam.UserAnswer) *Report {
	return DefaultScheme().Evaluate(questions, answers)
}

// Evaluate marks every question and groups the results by section, in the
// order sections first appear on the paper.
func (s Scheme) Evaluate(questions []exam.Question, answers map[int]exam.UserAnswer) *Report {
	rep := &Report{Results: make([]Result, 0, len(questions))}
	index := make(map[string]int)
	var raw float64

	for _, q := range questions {
		r := s.Mark(q, answers)
		rep.Results = append(rep.Results, r)
		raw += r.Delta
		rep.TotalPossible += q.Marks

		i, ok := index[q.Section]
		if !ok {
			i = len(rep.Sections)
			index[q.Section] = i
			rep.Sections = append(rep.Sections, SectionScore{Section: q.Section})
		}
		sec := &rep.Sections[i]
		sec.Score += r.Delta
		sec.Total += q.Marks

		switch r.Outcome {
		case Correct:
			rep.Attempted++
			rep.Correct++
			sec.Attempted++
			sec.Correct++
		case Incorrect:
			rep.Attempted++
			rep.Incorrect++
			sec.Attempted++
		}
	}

	for i := range rep.Sections {
		rep.Sections[i].Score = Round2(rep.Sections[i].Score)
	}
	rep.Score = Round2(raw)
	if rep.Attempted > 0 {
		rep.Accuracy = Round2(float64(rep.Correct) / float64(rep.Attempted) * 100)
	}
	return rep
}

// Section returns the aggregate for a section label.
func (r *Report) Section(name string) (SectionScore, bool) {
	for _, s := range r.Sections {
		if s.Section == name {
			return s, true
		}
	}
	return SectionScore{}, false
}
