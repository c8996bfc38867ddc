// internal/analytics/session/session_test.go
package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analytics-dashboard/internal/models"
)

func confidentResolution() *models.Resolution {
	return &models.Resolution{
		Query: models.AnalyticsQuery{
			Intent:             models.IntentShowChart,
			Entity:             models.EntityUsers,
			Metric:             models.MetricNewUsers,
			Visualization:      models.VisualizationBar,
			Timeframe:          models.DefaultTimeframe,
			Confidence:         0.9,
			IsValidCombination: true,
		},
		Title:  "New Users",
		Source: models.SourcePattern,
	}
}

func TestCreate(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	assert.NotEmpty(t, sess.ID)
	assert.Empty(t, sess.Messages)
	assert.Nil(t, sess.Context)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.Equal(t, sess.CreatedAt, sess.UpdatedAt)

	again := store.Create()
	assert.NotEqual(t, sess.ID, again.ID)
}

func TestGet_UnknownSession(t *testing.T) {
	store := NewStore()
	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	_, err := store.Append(sess.ID, models.Message{Role: "user", Content: "hi"})
	require.NoError(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	got.Messages[0].Content = "tampered"

	again, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Messages[0].Content)
}

func TestAppend_FillsIDAndTimestamp(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	msg, err := store.Append(sess.ID, models.Message{Role: "user", Content: "show new users"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())

	// Caller-provided identity is kept.
	msg, err = store.Append(sess.ID, models.Message{
		ID:        "fixed-id",
		Role:      "assistant",
		Content:   "here you go",
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", msg.ID)
	assert.Equal(t, 2026, msg.Timestamp.Year())
}

func TestAppend_UnknownSession(t *testing.T) {
	store := NewStore()
	_, err := store.Append("nope", models.Message{Role: "user", Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

// ==========================
// Rolling Context
// ==========================

func TestAppend_ConfidentResolutionAdvancesContext(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	_, err := store.Append(sess.ID, models.Message{
		Role:       "assistant",
		Content:    "Here's New Users.",
		Resolution: confidentResolution(),
	})
	require.NoError(t, err)

	ctx, err := store.Context(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, models.EntityUsers, ctx.Entity)
	assert.Equal(t, models.MetricNewUsers, ctx.Metric)
	assert.Equal(t, "New Users", ctx.Title)
}

func TestAppend_WeakResolutionLeavesContextAlone(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	// Establish a context first.
	_, err := store.Append(sess.ID, models.Message{Role: "assistant", Resolution: confidentResolution()})
	require.NoError(t, err)

	weak := &models.Resolution{
		Query: models.AnalyticsQuery{
			Intent:     models.IntentUnknown,
			Confidence: models.ConfidenceUnknown,
		},
		Source:       models.SourcePattern,
		FallbackUsed: true,
	}
	_, err = store.Append(sess.ID, models.Message{Role: "assistant", Resolution: weak})
	require.NoError(t, err)

	ctx, err := store.Context(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, models.MetricNewUsers, ctx.Metric)
}

func TestAppend_BelowChartMinimumLeavesContextAlone(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	res := confidentResolution()
	res.Query.Confidence = 0.4
	_, err := store.Append(sess.ID, models.Message{Role: "assistant", Resolution: res})
	require.NoError(t, err)

	ctx, err := store.Context(sess.ID)
	require.NoError(t, err)
	assert.Nil(t, ctx)
}

func TestContext_CopyIsolation(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	_, err := store.Append(sess.ID, models.Message{Role: "assistant", Resolution: confidentResolution()})
	require.NoError(t, err)

	ctx, err := store.Context(sess.ID)
	require.NoError(t, err)
	ctx.Metric = "tampered"

	again, err := store.Context(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MetricNewUsers, again.Metric)
}

// ==========================
// Reset and Turn Serialization
// ==========================

func TestReset(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	_, err := store.Append(sess.ID, models.Message{Role: "assistant", Resolution: confidentResolution()})
	require.NoError(t, err)

	require.NoError(t, store.Reset(sess.ID))

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
	assert.Nil(t, got.Context)

	assert.ErrorIs(t, store.Reset("nope"), ErrNotFound)
}

func TestBeginTurn_UnknownSession(t *testing.T) {
	store := NewStore()
	_, err := store.BeginTurn("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBeginTurn_SerializesWithinSession(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	release, err := store.BeginTurn(sess.ID)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := store.BeginTurn(sess.ID)
		assert.NoError(t, err)
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatal("second turn started before the first released")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second turn never started")
	}
}

func TestBeginTurn_IndependentSessionsDoNotBlock(t *testing.T) {
	store := NewStore()
	a := store.Create()
	b := store.Create()

	releaseA, err := store.BeginTurn(a.ID)
	require.NoError(t, err)
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB, err := store.BeginTurn(b.ID)
		assert.NoError(t, err)
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated session blocked")
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(sess.ID, models.Message{Role: "user", Content: "hi"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 20)
}
