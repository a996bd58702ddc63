package store

import (
	"context"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared&_time_format=sqlite")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAttempt() *AttemptRecord {
	return &AttemptRecord{
		SessionID:    "9b2f6c1e-5a83-4a4e-9f1d-3c7e8d0a2b45",
		Topic:        "World Geography",
		QuestionType: "mcq",
		Difficulty:   "Medium",
		Total:        5,
		Correct:      3,
		ScorePct:     60,
		DurationMs:   42000,
		CSVPath:      "results/quiz_results_20250101_120000.csv",
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestRecordAndListAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	first := sampleAttempt()
	if err := repo.RecordAttempt(ctx, first); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected ID to be set after insert")
	}

	second := sampleAttempt()
	second.Topic = "Roman History"
	second.Correct = 5
	second.ScorePct = 100
	if err := repo.RecordAttempt(ctx, second); err != nil {
		t.Fatalf("record attempt: %v", err)
	}

	recs, err := repo.ListAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(recs))
	}
	// Most recent first.
	if recs[0].Topic != "Roman History" {
		t.Errorf("expected newest attempt first, got %q", recs[0].Topic)
	}
	if recs[1].Topic != "World Geography" {
		t.Errorf("expected oldest attempt last, got %q", recs[1].Topic)
	}

	got := recs[1]
	if got.SessionID != first.SessionID {
		t.Errorf("unexpected session id: %q", got.SessionID)
	}
	if got.QuestionType != "mcq" || got.Difficulty != "Medium" {
		t.Errorf("unexpected type/difficulty: %q/%q", got.QuestionType, got.Difficulty)
	}
	if got.Total != 5 || got.Correct != 3 || got.ScorePct != 60 {
		t.Errorf("unexpected score fields: %d/%d %.1f", got.Correct, got.Total, got.ScorePct)
	}
	if got.DurationMs != 42000 {
		t.Errorf("unexpected duration: %d", got.DurationMs)
	}
	if got.CSVPath != "results/quiz_results_20250101_120000.csv" {
		t.Errorf("unexpected csv path: %q", got.CSVPath)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to round-trip")
	}
}

func TestListAttempts_Pagination(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	topics := []string{"A", "B", "C"}
	for _, topic := range topics {
		rec := sampleAttempt()
		rec.Topic = topic
		if err := repo.RecordAttempt(ctx, rec); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	recs, err := repo.ListAttempts(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(recs))
	}
	if recs[0].Topic != "C" || recs[1].Topic != "B" {
		t.Errorf("unexpected page: %q, %q", recs[0].Topic, recs[1].Topic)
	}

	recs, err = repo.ListAttempts(ctx, QueryOpts{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list attempts with offset: %v", err)
	}
	if len(recs) != 1 || recs[0].Topic != "A" {
		t.Errorf("unexpected second page: %+v", recs)
	}
}

func TestAttemptStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats on empty store: %v", err)
	}
	if stats.Attempts != 0 || stats.Questions != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}

	first := sampleAttempt() // 3/5 = 60%
	second := sampleAttempt()
	second.Correct = 5
	second.ScorePct = 100
	for _, rec := range []*AttemptRecord{first, second} {
		if err := repo.RecordAttempt(ctx, rec); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	stats, err = repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", stats.Attempts)
	}
	if stats.Questions != 10 || stats.Correct != 8 {
		t.Errorf("expected 8/10, got %d/%d", stats.Correct, stats.Questions)
	}
	if stats.AvgScorePct != 80 {
		t.Errorf("expected avg 80, got %f", stats.AvgScorePct)
	}
	if stats.BestScorePct != 100 {
		t.Errorf("expected best 100, got %f", stats.BestScorePct)
	}
}

func TestTopicBreakdown(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	for _, topic := range []string{"Geography", "Geography", "History"} {
		rec := sampleAttempt()
		rec.Topic = topic
		if err := repo.RecordAttempt(ctx, rec); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	rows, err := repo.TopicBreakdown(ctx, 10)
	if err != nil {
		t.Fatalf("topic breakdown: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(rows))
	}
	if rows[0].Topic != "Geography" || rows[0].Attempts != 2 {
		t.Errorf("expected Geography x2 first, got %+v", rows[0])
	}
	if rows[1].Topic != "History" || rows[1].Attempts != 1 {
		t.Errorf("expected History x1 second, got %+v", rows[1])
	}
}

func TestGroupBreakdown(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	first := sampleAttempt() // mcq / Medium, 3/5
	second := sampleAttempt()
	second.QuestionType = "fill-blank"
	second.Difficulty = "Hard"
	second.Correct = 5
	second.ScorePct = 100
	third := sampleAttempt() // mcq / Medium again, 3/5
	for _, rec := range []*AttemptRecord{first, second, third} {
		if err := repo.RecordAttempt(ctx, rec); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	rows, err := repo.GroupBreakdown(ctx)
	if err != nil {
		t.Fatalf("group breakdown: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(rows))
	}

	// Ordered by type then difficulty.
	fb := rows[0]
	if fb.QuestionType != "fill-blank" || fb.Difficulty != "Hard" {
		t.Errorf("unexpected first group: %+v", fb)
	}
	if fb.Attempts != 1 || fb.Correct != 5 || fb.Questions != 5 {
		t.Errorf("unexpected fill-blank aggregates: %+v", fb)
	}

	mcq := rows[1]
	if mcq.QuestionType != "mcq" || mcq.Attempts != 2 {
		t.Errorf("unexpected second group: %+v", mcq)
	}
	if mcq.Correct != 6 || mcq.Questions != 10 || mcq.AvgScorePct != 60 {
		t.Errorf("unexpected mcq aggregates: %+v", mcq)
	}
}

func TestAppendAndListLLMRequests(t *testing.T) {
	s := openTestStore(t)
	log := s.LLMRequests()
	ctx := context.Background()

	rec := LLMRequestRecord{
		Provider:     "groq",
		Model:        "llama-3.1-8b-instant",
		Purpose:      "mcq-gen",
		LatencyMs:    420,
		InputTokens:  120,
		OutputTokens: 80,
		Status:       "ok",
		RequestBody:  "[system]\nYou are a quiz master.",
		ResponseBody: `{"question":"?"}`,
	}
	if err := log.AppendLLMRequest(ctx, rec); err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	recs, err := log.ListLLMRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list llm requests: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(recs))
	}

	got := recs[0]
	if got.ID == 0 {
		t.Error("expected assigned ID")
	}
	if got.Provider != "groq" || got.Model != "llama-3.1-8b-instant" {
		t.Errorf("unexpected provider/model: %q/%q", got.Provider, got.Model)
	}
	if got.Purpose != "mcq-gen" || got.Status != "ok" {
		t.Errorf("unexpected purpose/status: %q/%q", got.Purpose, got.Status)
	}
	if got.LatencyMs != 420 || got.InputTokens != 120 || got.OutputTokens != 80 {
		t.Errorf("unexpected usage fields: %d %d %d", got.LatencyMs, got.InputTokens, got.OutputTokens)
	}
	if !strings.Contains(got.RequestBody, "quiz master") {
		t.Errorf("unexpected request body: %q", got.RequestBody)
	}
}

func TestGetLLMRequest(t *testing.T) {
	s := openTestStore(t)
	log := s.LLMRequests()
	ctx := context.Background()

	missing, err := log.GetLLMRequest(ctx, 999)
	if err != nil {
		t.Fatalf("get missing request: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing request, got %+v", missing)
	}

	if err := log.AppendLLMRequest(ctx, LLMRequestRecord{
		Provider: "groq", Model: "m", Purpose: "mcq-gen", Status: "ok",
	}); err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	recs, err := log.ListLLMRequests(ctx, QueryOpts{Limit: 1})
	if err != nil || len(recs) != 1 {
		t.Fatalf("list llm requests: %v (%d)", err, len(recs))
	}

	got, err := log.GetLLMRequest(ctx, recs[0].ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if got == nil || got.Provider != "groq" {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	log := s.LLMRequests()
	ctx := context.Background()

	reqs := []LLMRequestRecord{
		{Provider: "groq", Model: "llama-3.1-8b-instant", Purpose: "mcq-gen", Status: "ok", InputTokens: 100, OutputTokens: 50, LatencyMs: 400},
		{Provider: "groq", Model: "llama-3.1-8b-instant", Purpose: "mcq-gen", Status: "rate_limited", InputTokens: 100, OutputTokens: 0, LatencyMs: 200},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "fill-blank-gen", Status: "ok", InputTokens: 90, OutputTokens: 40, LatencyMs: 600},
	}
	for _, rec := range reqs {
		if err := log.AppendLLMRequest(ctx, rec); err != nil {
			t.Fatalf("append llm request: %v", err)
		}
	}

	usage, err := log.Usage(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 usage rows, got %d", len(usage))
	}

	groq := usage[0]
	if groq.Provider != "groq" || groq.Requests != 2 {
		t.Errorf("expected groq x2 first, got %+v", groq)
	}
	if groq.InputTokens != 200 || groq.OutputTokens != 50 {
		t.Errorf("unexpected groq tokens: %d/%d", groq.InputTokens, groq.OutputTokens)
	}
	if groq.AvgLatencyMs != 300 {
		t.Errorf("expected avg latency 300, got %f", groq.AvgLatencyMs)
	}
	if groq.Errors != 1 {
		t.Errorf("expected 1 error, got %d", groq.Errors)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Attempts().RecordAttempt(ctx, sampleAttempt()); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if err := s.LLMRequests().AppendLLMRequest(ctx, LLMRequestRecord{
		Provider: "groq", Model: "m", Purpose: "mcq-gen", Status: "ok",
	}); err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	attempts, err := s.Attempts().ListAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("expected no attempts after reset, got %d", len(attempts))
	}

	requests, err := s.LLMRequests().ListLLMRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list llm requests: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("expected no llm requests after reset, got %d", len(requests))
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/quizzer.db")
	if !strings.HasPrefix(dsn, "file:/tmp/quizzer.db") {
		t.Errorf("unexpected dsn: %q", dsn)
	}
	if !strings.Contains(dsn, "_time_format=sqlite") {
		t.Errorf("expected time format param in dsn: %q", dsn)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	path := t.TempDir() + "/custom/quizzer.db"
	t.Setenv("QUIZZER_DB", path)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}
