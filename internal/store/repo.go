package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries with pagination.
type QueryOpts struct {
	Limit  int // max results (0 = unlimited)
	Offset int // rows to skip
}

// AttemptRecord is one completed, evaluated quiz.
type AttemptRecord struct {
	ID           int64     `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	SessionID    string    `db:"session_id"`
	Topic        string    `db:"topic"`
	QuestionType string    `db:"question_type"`
	Difficulty   string    `db:"difficulty"`
	Total        int       `db:"total"`
	Correct      int       `db:"correct"`
	ScorePct     float64   `db:"score_pct"`
	DurationMs   int64     `db:"duration_ms"`
	CSVPath      string    `db:"csv_path"`
}

// AttemptStats aggregates performance across all recorded attempts.
type AttemptStats struct {
	Attempts     int     `db:"attempts"`
	Questions    int     `db:"questions"`
	Correct      int     `db:"correct"`
	AvgScorePct  float64 `db:"avg_score_pct"`
	BestScorePct float64 `db:"best_score_pct"`
}

// TopicStats aggregates performance for one topic.
type TopicStats struct {
	Topic       string  `db:"topic"`
	Attempts    int     `db:"attempts"`
	AvgScorePct float64 `db:"avg_score_pct"`
}

// GroupStats aggregates performance for one question type and
// difficulty pair.
type GroupStats struct {
	QuestionType string  `db:"question_type"`
	Difficulty   string  `db:"difficulty"`
	Attempts     int     `db:"attempts"`
	Questions    int     `db:"questions"`
	Correct      int     `db:"correct"`
	AvgScorePct  float64 `db:"avg_score_pct"`
}

// AttemptRepo persists completed quiz attempts.
type AttemptRepo interface {
	// RecordAttempt stores a new attempt and sets rec.ID.
	RecordAttempt(ctx context.Context, rec *AttemptRecord) error

	// ListAttempts returns attempts, most recent first.
	ListAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// Stats aggregates all recorded attempts.
	Stats(ctx context.Context) (*AttemptStats, error)

	// TopicBreakdown aggregates attempts per topic, most attempted
	// first.
	TopicBreakdown(ctx context.Context, limit int) ([]TopicStats, error)

	// GroupBreakdown aggregates attempts per question type and
	// difficulty.
	GroupBreakdown(ctx context.Context) ([]GroupStats, error)
}

// LLMRequestRecord captures one LLM API call for the audit trail.
type LLMRequestRecord struct {
	ID           int64     `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	LatencyMs    int64     `db:"latency_ms"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	Status       string    `db:"status"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
	ErrorMessage string    `db:"error_message"`
}

// ModelUsage aggregates LLM requests per provider and model.
type ModelUsage struct {
	Provider     string  `db:"provider"`
	Model        string  `db:"model"`
	Requests     int     `db:"requests"`
	InputTokens  int     `db:"input_tokens"`
	OutputTokens int     `db:"output_tokens"`
	AvgLatencyMs float64 `db:"avg_latency_ms"`
	Errors       int     `db:"errors"`
}

// RequestLog records and queries the LLM request audit trail.
type RequestLog interface {
	// AppendLLMRequest records one LLM API call.
	AppendLLMRequest(ctx context.Context, rec LLMRequestRecord) error

	// ListLLMRequests returns requests, most recent first.
	ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMRequest returns one request by ID, or nil if not found.
	GetLLMRequest(ctx context.Context, id int64) (*LLMRequestRecord, error)

	// Usage aggregates requests per provider and model.
	Usage(ctx context.Context) ([]ModelUsage, error)
}
