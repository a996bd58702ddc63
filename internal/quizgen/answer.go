package quizgen

import "strings"

// CheckAnswer compares the user's answer against the correct answer.
//
// Multiple choice is an exact, case-sensitive match: options are
// presented verbatim, so the recorded answer must equal the stored
// correct option. Fill-blank answers are typed, so both sides are
// whitespace-trimmed and compared case-insensitively.
func CheckAnswer(answer string, q *Question) bool {
	switch q.Type {
	case TypeMCQ:
		return answer == q.Answer
	case TypeFillBlank:
		return strings.EqualFold(
			strings.TrimSpace(answer),
			strings.TrimSpace(q.Answer),
		)
	default:
		return false
	}
}
