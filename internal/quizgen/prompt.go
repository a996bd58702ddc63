package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz master creating trivia questions for a general audience.

Rules:
- Generate a single question about the given topic at the given difficulty.
- The question must be factually accurate and have one unambiguous answer.
- Use plain text. No markdown, no numbering, no answer hints inside the question.
- Keep the question self-contained: it must be answerable without further context.
- Do not repeat any question from the "already asked" list.`

const mcqTemplate = `Create a {difficulty} multiple-choice question about {topic}.

Provide exactly 4 distinct options. The correct_answer must repeat one of the options verbatim. Distractors should be plausible, not obviously wrong.`

const fillBlankTemplate = `Create a {difficulty} fill-in-the-blank question about {topic}.

The question text must contain the placeholder "` + BlankMarker + `" exactly once, standing in for the answer. The answer is the word or short phrase that fills the blank.`

// buildPrompt renders the template for the question type and appends
// the deduplication context.
func buildPrompt(qt QuestionType, input GenerateInput, cfg Config) string {
	tmpl := mcqTemplate
	if qt == TypeFillBlank {
		tmpl = fillBlankTemplate
	}

	r := strings.NewReplacer(
		"{topic}", input.Topic,
		"{difficulty}", string(input.Difficulty),
	)

	var b strings.Builder
	b.WriteString(r.Replace(tmpl))

	b.WriteString("\n\nAlready asked in this quiz:\n")
	b.WriteString(buildAvoid(input.Avoid, cfg.MaxAvoid))

	return b.String()
}

// buildAvoid formats prior questions for the prompt, respecting the max
// limit. Returns "None" if there are no prior questions.
func buildAvoid(avoid []string, max int) string {
	if len(avoid) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(avoid) > max {
		avoid = avoid[len(avoid)-max:]
	}

	var b strings.Builder
	for i, q := range avoid {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
