package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// requestLog implements RequestLog backed by sqlx.
type requestLog struct {
	db *sqlx.DB
}

func (r *requestLog) AppendLLMRequest(ctx context.Context, rec LLMRequestRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO llm_requests
			(created_at, provider, model, purpose, latency_ms, input_tokens, output_tokens, status, request_body, response_body, error_message)
		VALUES
			(:created_at, :provider, :model, :purpose, :latency_ms, :input_tokens, :output_tokens, :status, :request_body, :response_body, :error_message)`,
		rec)
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

func (r *requestLog) ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	query := "SELECT * FROM llm_requests ORDER BY id DESC"
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

	var recs []LLMRequestRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list llm requests: %w", err)
	}
	return recs, nil
}

func (r *requestLog) GetLLMRequest(ctx context.Context, id int64) (*LLMRequestRecord, error) {
	var rec LLMRequestRecord
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM llm_requests WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm request %d: %w", id, err)
	}
	return &rec, nil
}

func (r *requestLog) Usage(ctx context.Context) ([]ModelUsage, error) {
	var rows []ModelUsage
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			provider,
			model,
			COUNT(*)                                   AS requests,
			COALESCE(SUM(input_tokens), 0)             AS input_tokens,
			COALESCE(SUM(output_tokens), 0)            AS output_tokens,
			COALESCE(AVG(latency_ms), 0)               AS avg_latency_ms,
			SUM(CASE WHEN status != 'ok' THEN 1 ELSE 0 END) AS errors
		FROM llm_requests
		GROUP BY provider, model
		ORDER BY requests DESC, provider ASC, model ASC`)
	if err != nil {
		return nil, fmt.Errorf("llm usage: %w", err)
	}
	return rows, nil
}
