package quiz

import (
	"strconv"
	"strings"

	"github.com/abhisek/quizzer/internal/quizgen"
)

// ResultColumns is the header of the result table. The order is fixed;
// exports and displays both rely on it.
var ResultColumns = []string{
	"question_number",
	"question",
	"question_type",
	"user_answer",
	"correct_answer",
	"is_correct",
	"options",
}

// Result is one evaluated question. Computed once by Evaluate and
// never mutated after.
type Result struct {
	Number        int
	Question      string
	Type          quizgen.QuestionType
	UserAnswer    string
	CorrectAnswer string
	Correct       bool

	// Options holds the offered choices for multiple-choice questions,
	// empty for fill-blank.
	Options []string
}

// Row renders the result as one table row in ResultColumns order.
func (r Result) Row() []string {
	return []string{
		strconv.Itoa(r.Number),
		r.Question,
		r.Type.Label(),
		r.UserAnswer,
		r.CorrectAnswer,
		strconv.FormatBool(r.Correct),
		strings.Join(r.Options, ", "),
	}
}

// ResultTable projects the results into rows in ResultColumns order.
// Returns nil when the session has no results yet.
func (m *Manager) ResultTable() [][]string {
	if len(m.results) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(m.results))
	for _, r := range m.results {
		rows = append(rows, r.Row())
	}
	return rows
}
