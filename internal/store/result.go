package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
)

type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const resultColumns = `id, sequence, label, started_at, completed_at,
	result_json, wiscar_json, responses_json`

func (r *resultRepo) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.CompletedAt
	}

	resultJSON, err := json.Marshal(rec.Outcome.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	wiscarJSON, err := json.Marshal(rec.Outcome.WISCAR)
	if err != nil {
		return fmt.Errorf("marshal wiscar: %w", err)
	}
	responsesJSON, err := json.Marshal(rec.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	seq, err := r.seq.Next(ctx, tx)
	if err != nil {
		return err
	}

	res := rec.Outcome.Result
	scoreOf := func(c assessment.Category) int {
		s, _ := res.ScoreFor(c)
		return s.Value
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO results (
		id, sequence, label, started_at, completed_at, overall_fit, recommendation,
		psychometric, technical, readiness, result_json, wiscar_json, responses_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, seq, rec.Label,
		rec.StartedAt.UnixNano(), rec.CompletedAt.UnixNano(),
		res.OverallFit, string(res.Recommendation),
		scoreOf(assessment.CategoryPsychometric),
		scoreOf(assessment.CategoryTechnical),
		scoreOf(assessment.CategoryReadiness),
		string(resultJSON), string(wiscarJSON), string(responsesJSON),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	rec.Sequence = seq
	return nil
}

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if opts.Label != "" {
		where = append(where, "label = ?")
		args = append(args, opts.Label)
	}
	if opts.Recommendation != "" {
		where = append(where, "recommendation = ?")
		args = append(args, string(opts.Recommendation))
	}
	if !opts.From.IsZero() {
		where = append(where, "completed_at >= ?")
		args = append(args, opts.From.UnixNano())
	}
	if !opts.To.IsZero() {
		where = append(where, "completed_at <= ?")
		args = append(args, opts.To.UnixNano())
	}

	q := "SELECT " + resultColumns + " FROM results"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (r *resultRepo) Get(ctx context.Context, id string) (*Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx,
		"SELECT "+resultColumns+" FROM results WHERE id = ?", id))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Fall back to a unique prefix so short ids from `history list` work.
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+resultColumns+" FROM results WHERE id LIKE ? ESCAPE '\\' LIMIT 2",
		escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	defer rows.Close()

	var matches []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}
}

func (r *resultRepo) Stats(ctx context.Context) (Stats, error) {
	st := Stats{
		MeanByCategory:   make(map[assessment.Category]float64),
		ByRecommendation: make(map[scoring.Recommendation]int),
	}

	var (
		meanFit, meanPsych, meanTech, meanReady sql.NullFloat64
		bestFit, first, latest                  sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*),
		AVG(overall_fit), MAX(overall_fit),
		AVG(psychometric), AVG(technical), AVG(readiness),
		MIN(completed_at), MAX(completed_at)
		FROM results`).Scan(
		&st.Count, &meanFit, &bestFit,
		&meanPsych, &meanTech, &meanReady,
		&first, &latest,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	if st.Count == 0 {
		return st, nil
	}

	st.MeanFit = meanFit.Float64
	st.BestFit = int(bestFit.Int64)
	st.MeanByCategory[assessment.CategoryPsychometric] = meanPsych.Float64
	st.MeanByCategory[assessment.CategoryTechnical] = meanTech.Float64
	st.MeanByCategory[assessment.CategoryReadiness] = meanReady.Float64
	st.First = time.Unix(0, first.Int64)
	st.Latest = time.Unix(0, latest.Int64)

	rows, err := r.db.QueryContext(ctx,
		`SELECT recommendation, COUNT(*) FROM results GROUP BY recommendation`)
	if err != nil {
		return Stats{}, fmt.Errorf("query recommendation counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rec string
			n   int
		)
		if err := rows.Scan(&rec, &n); err != nil {
			return Stats{}, fmt.Errorf("scan recommendation count: %w", err)
		}
		st.ByRecommendation[scoring.Recommendation(rec)] = n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate recommendation counts: %w", err)
	}
	return st, nil
}

func (r *resultRepo) Clear(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM results`)
	if err != nil {
		return 0, fmt.Errorf("clear results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec                    Record
		startedAt, completedAt int64
		resultJSON, wiscarJSON string
		responsesJSON          string
	)
	err := row.Scan(&rec.ID, &rec.Sequence, &rec.Label, &startedAt, &completedAt,
		&resultJSON, &wiscarJSON, &responsesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan result: %w", err)
	}

	rec.StartedAt = time.Unix(0, startedAt)
	rec.CompletedAt = time.Unix(0, completedAt)
	if err := json.Unmarshal([]byte(resultJSON), &rec.Outcome.Result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(wiscarJSON), &rec.Outcome.WISCAR); err != nil {
		return nil, fmt.Errorf("decode wiscar %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(responsesJSON), &rec.Responses); err != nil {
		return nil, fmt.Errorf("decode responses %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
