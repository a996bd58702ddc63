package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// attemptRepo implements AttemptRepo backed by sqlx.
type attemptRepo struct {
	db *sqlx.DB
}

func (r *attemptRepo) RecordAttempt(ctx context.Context, rec *AttemptRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO attempts
			(created_at, session_id, topic, question_type, difficulty, total, correct, score_pct, duration_ms, csv_path)
		VALUES
			(:created_at, :session_id, :topic, :question_type, :difficulty, :total, :correct, :score_pct, :duration_ms, :csv_path)`,
		rec)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("attempt insert id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *attemptRepo) ListAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	query := "SELECT * FROM attempts ORDER BY id DESC"
	var args []any
	switch {
	case opts.Limit > 0 && opts.Offset > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	case opts.Limit > 0:
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	case opts.Offset > 0:
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	var recs []AttemptRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return recs, nil
}

func (r *attemptRepo) Stats(ctx context.Context) (*AttemptStats, error) {
	var stats AttemptStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*)                    AS attempts,
			COALESCE(SUM(total), 0)     AS questions,
			COALESCE(SUM(correct), 0)   AS correct,
			COALESCE(AVG(score_pct), 0) AS avg_score_pct,
			COALESCE(MAX(score_pct), 0) AS best_score_pct
		FROM attempts`)
	if err != nil {
		return nil, fmt.Errorf("attempt stats: %w", err)
	}
	return &stats, nil
}

func (r *attemptRepo) TopicBreakdown(ctx context.Context, limit int) ([]TopicStats, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []TopicStats
	err := r.db.SelectContext(ctx, &rows, `
		SELECT topic, COUNT(*) AS attempts, AVG(score_pct) AS avg_score_pct
		FROM attempts
		GROUP BY topic
		ORDER BY attempts DESC, topic ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("topic breakdown: %w", err)
	}
	return rows, nil
}

func (r *attemptRepo) GroupBreakdown(ctx context.Context) ([]GroupStats, error) {
	var rows []GroupStats
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			question_type,
			difficulty,
			COUNT(*)           AS attempts,
			SUM(total)         AS questions,
			SUM(correct)       AS correct,
			AVG(score_pct)     AS avg_score_pct
		FROM attempts
		GROUP BY question_type, difficulty
		ORDER BY question_type ASC, difficulty ASC`)
	if err != nil {
		return nil, fmt.Errorf("group breakdown: %w", err)
	}
	return rows, nil
}
