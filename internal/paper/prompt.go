package paper

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a GATE (Graduate Aptitude Test in Engineering) paper setter.

Rules:
- Generate exactly the number of questions requested. Every question must be unique and self-contained.
- Use all three question types where it fits: "MCQ" (exactly one correct option), "MSQ" (one or more correct options) and "NAT" (the candidate types a number).
- MCQ and MSQ questions have exactly 4 options. correctAnswer holds zero-based option indices as strings: "2" for an MCQ, "0,2" for an MSQ, listed in ascending order.
- NAT questions have an empty options array. correctAnswer is the exact numeric value, e.g. "42" or "3.14".
- marks is 1 or 2 and must follow the requested distribution.
- Use plain text. Write powers as x^2, roots as sqrt(x) and fractions as a/b. No LaTeX.
- The explanation is a concise worked solution.
- Set section to the label given in the request.
- The seed only exists to vary the questions. Never mention it.`

// buildUserMessage constructs the user message for one batch.
func buildUserMessage(b Batch, req Request, seed string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate exactly %d unique %s (%s).\n", b.Count, b.Kind, b.Marks)
	if b.subjectBound() {
		fmt.Fprintf(&sb, "Subject: %s\n", req.Subject)
	} else {
		fmt.Fprintf(&sb, "Topics: %s\n", b.Topics)
	}
	fmt.Fprintf(&sb, "Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&sb, "Section: %q\n", b.Section)
	fmt.Fprintf(&sb, "Seed: %s%s", seed, b.SeedSuffix)

	return sb.String()
}
