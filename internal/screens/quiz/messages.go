package quiz

// quizReadyMsg is sent when batch generation finishes.
type quizReadyMsg struct {
	Err error
}
