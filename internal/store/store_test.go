package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var base = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func testRecord(id string, likert int, completed time.Time) *Record {
	var rs []scoring.Response
	for _, q := range assessment.Default().Questions() {
		v := likert
		if q.Category == assessment.CategoryTechnical {
			v = q.CorrectIndex
		}
		rs = append(rs, scoring.Response{QuestionID: q.ID, Value: scoring.Int(v), Timestamp: completed})
	}
	scorer := scoring.New(assessment.Default(), nil)
	return &Record{
		ID:          id,
		Label:       "alice",
		StartedAt:   completed.Add(-20 * time.Minute),
		CompletedAt: completed,
		Responses:   rs,
		Outcome:     scorer.Score(rs),
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
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

func TestSchemaCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='results'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "results" {
		t.Errorf("table name = %q, want 'results'", name)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx, s.DB())
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSaveAndGet(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	rec := testRecord("6f1c2a90-0000-4000-8000-000000000001", 4, base)
	require.NoError(t, repo.Save(ctx, rec))
	assert.Equal(t, int64(1), rec.Sequence)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "alice", got.Label)
	assert.True(t, got.CompletedAt.Equal(base))
	assert.True(t, got.StartedAt.Equal(rec.StartedAt))
	assert.Equal(t, rec.Outcome, got.Outcome)
	require.Len(t, got.Responses, 26)
	assert.Equal(t, rec.Responses[0].QuestionID, got.Responses[0].QuestionID)
	assert.Equal(t, rec.Responses[0].Value, got.Responses[0].Value)
}

func TestSave_FailedInsertKeepsSequence(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	first := testRecord("6f1c2a90-0000-4000-8000-00000000000a", 4, base)
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(1), first.Sequence)

	dup := testRecord(first.ID, 2, base.Add(time.Hour))
	require.Error(t, repo.Save(ctx, dup))

	next := testRecord("6f1c2a90-0000-4000-8000-00000000000b", 3, base.Add(2*time.Hour))
	require.NoError(t, repo.Save(ctx, next))
	assert.Equal(t, int64(2), next.Sequence)
}

func TestSave_AssignsID(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	rec := testRecord("", 3, base)
	require.NoError(t, repo.Save(context.Background(), rec))
	assert.NotEmpty(t, rec.ID)
}

func TestGet_Prefix(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord("abc123", 4, base)))
	require.NoError(t, repo.Save(ctx, testRecord("abd456", 4, base.Add(time.Minute))))

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)

	_, err = repo.Get(ctx, "ab")
	assert.True(t, errors.Is(err, ErrAmbiguousID))

	_, err = repo.Get(ctx, "zzz")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.Get(ctx, "a%")
	assert.True(t, errors.Is(err, ErrNotFound), "LIKE wildcards are escaped")
}

func TestList_NewestFirstWithFilters(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord("r1", 1, base)))
	require.NoError(t, repo.Save(ctx, testRecord("r2", 5, base.Add(time.Hour))))
	bob := testRecord("r3", 5, base.Add(2*time.Hour))
	bob.Label = "bob"
	require.NoError(t, repo.Save(ctx, bob))

	all, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := repo.List(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "r3", limited[0].ID)

	alice, err := repo.List(ctx, QueryOpts{Label: "alice"})
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	yes, err := repo.List(ctx, QueryOpts{Recommendation: scoring.RecommendYes})
	require.NoError(t, err)
	assert.Len(t, yes, 2)

	window, err := repo.List(ctx, QueryOpts{From: base.Add(30 * time.Minute), To: base.Add(90 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "r2", window[0].ID)
}

func TestStats(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	empty, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)

	low := testRecord("low", 1, base)
	high := testRecord("high", 5, base.Add(time.Hour))
	require.NoError(t, repo.Save(ctx, low))
	require.NoError(t, repo.Save(ctx, high))

	st, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 100, st.BestFit)

	wantMean := float64(low.Outcome.Result.OverallFit+high.Outcome.Result.OverallFit) / 2
	assert.InDelta(t, wantMean, st.MeanFit, 0.001)
	assert.InDelta(t, 100.0, st.MeanByCategory[assessment.CategoryTechnical], 0.001)
	assert.Equal(t, 1, st.ByRecommendation[scoring.RecommendYes])
	assert.Equal(t, 1, st.ByRecommendation[scoring.RecommendNo])
	assert.True(t, st.First.Equal(base))
	assert.True(t, st.Latest.Equal(base.Add(time.Hour)))
}

func TestClear(t *testing.T) {
	repo := openTestStore(t).ResultRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord("a", 3, base)))
	require.NoError(t, repo.Save(ctx, testRecord("b", 3, base)))

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRecordFrom(t *testing.T) {
	c := session.Completed{
		SessionID:   "sid",
		Label:       "carol",
		StartedAt:   base,
		CompletedAt: base.Add(time.Minute),
	}
	rec := RecordFrom(c)
	assert.Equal(t, "sid", rec.ID)
	assert.Equal(t, "carol", rec.Label)
	assert.Equal(t, time.Minute, rec.CompletedAt.Sub(rec.StartedAt))
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nested", "custom.db")
		t.Setenv("IOTFIT_DB", p)

		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		_, err = os.Stat(filepath.Dir(p))
		assert.NoError(t, err)
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("IOTFIT_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)

		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "iotfit", "iotfit.db"), got)
	})
}
