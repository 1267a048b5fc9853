package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/fakeyudi/timetrack/internal/store"
	"github.com/fakeyudi/timetrack/internal/tracker"
)

// generateTime produces an arbitrary time.Time truncated to second precision.
func generateTime(t *rapid.T, label string) time.Time {
	sec := rapid.Int64Range(0, 1_700_000_000).Draw(t, label)
	return time.Unix(sec, 0).UTC()
}

// generateSnapshot produces an arbitrary Snapshot value.
func generateSnapshot(t *rapid.T) tracker.Snapshot {
	numActivities := rapid.IntRange(0, 5).Draw(t, "num_activities")
	activities := make([]tracker.Activity, numActivities)
	for i := range activities {
		activities[i] = tracker.Activity{
			ID:     rapid.StringN(1, 36, -1).Draw(t, "activity_id"),
			Name:   rapid.StringN(1, 50, -1).Draw(t, "activity_name"),
			Color:  rapid.SampledFrom([]string{"green", "blue", "red", ""}).Draw(t, "color"),
			Active: rapid.Bool().Draw(t, "active"),
			Icon:   rapid.StringN(0, 20, -1).Draw(t, "icon"),
		}
	}

	numIntervals := rapid.IntRange(0, 8).Draw(t, "num_intervals")
	intervals := make([]tracker.Interval, numIntervals)
	for i := range intervals {
		iv := tracker.Interval{
			ID:         rapid.StringN(1, 36, -1).Draw(t, "interval_id"),
			Start:      generateTime(t, "start"),
			ActivityID: rapid.StringN(0, 36, -1).Draw(t, "owner"),
		}
		if rapid.Bool().Draw(t, "closed") {
			end := generateTime(t, "end")
			iv.End = &end
		}
		intervals[i] = iv
	}

	return tracker.Snapshot{Version: tracker.SnapshotVersion, Activities: activities, Intervals: intervals}
}

// Feature: timetrack, Property 4: state persistence round-trip
func TestStatePersistenceRoundTrip(t *testing.T) {
	// rapid.T has no TempDir, so the store lives in the outer test's dir.
	st, err := store.NewStateStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStateStore: %v", err)
	}

	rapid.Check(t, func(t *rapid.T) {
		original := generateSnapshot(t)

		if err := st.Save(original); err != nil {
			t.Fatalf("Save: %v", err)
		}
		loaded, err := st.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if loaded.Version != original.Version {
			t.Errorf("Version mismatch: got %d, want %d", loaded.Version, original.Version)
		}
		if len(loaded.Activities) != len(original.Activities) {
			t.Fatalf("Activities length mismatch: got %d, want %d", len(loaded.Activities), len(original.Activities))
		}
		for i, a := range original.Activities {
			if loaded.Activities[i] != a {
				t.Errorf("Activities[%d] mismatch: got %+v, want %+v", i, loaded.Activities[i], a)
			}
		}
		if len(loaded.Intervals) != len(original.Intervals) {
			t.Fatalf("Intervals length mismatch: got %d, want %d", len(loaded.Intervals), len(original.Intervals))
		}
		for i, iv := range original.Intervals {
			got := loaded.Intervals[i]
			if got.ID != iv.ID || got.ActivityID != iv.ActivityID || !got.Start.Equal(iv.Start) {
				t.Errorf("Intervals[%d] mismatch: got %+v, want %+v", i, got, iv)
			}
			if (got.End == nil) != (iv.End == nil) {
				t.Errorf("Intervals[%d].End nil mismatch: got %v, want %v", i, got.End, iv.End)
			} else if got.End != nil && !got.End.Equal(*iv.End) {
				t.Errorf("Intervals[%d].End mismatch: got %v, want %v", i, *got.End, *iv.End)
			}
		}
	})
}

func TestNewStateStoreUsesXDGDataHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	st, err := store.NewStateStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "timetrack", "state.json"), st.Path())
}

func TestLoadMissingReturnsErrNoState(t *testing.T) {
	st, err := store.NewStateStore(t.TempDir())
	require.NoError(t, err)

	_, err = st.Load()
	require.ErrorIs(t, err, store.ErrNoState)
}

func TestLoadCorruptFile(t *testing.T) {
	st, err := store.NewStateStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(st.Path(), []byte("{not json"), 0o644))

	_, err = st.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNoState))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewStateStore(dir)
	require.NoError(t, err)
	require.NoError(t, st.Save(tracker.Snapshot{Version: tracker.SnapshotVersion}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestDeleteIsIdempotent(t *testing.T) {
	st, err := store.NewStateStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, st.Save(tracker.Snapshot{Version: tracker.SnapshotVersion}))

	require.NoError(t, st.Delete())
	require.NoError(t, st.Delete())
	_, err = st.Load()
	require.ErrorIs(t, err, store.ErrNoState)
}

func TestWatchSignalsOnSave(t *testing.T) {
	st, err := store.NewStateStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed, err := store.Watch(ctx, st.Path())
	require.NoError(t, err)

	require.NoError(t, st.Save(tracker.Snapshot{Version: tracker.SnapshotVersion}))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal after Save")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewStateStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed, err := store.Watch(ctx, st.Path())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-changed:
		t.Fatal("unexpected signal for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	st, err := store.NewStateStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changed, err := store.Watch(ctx, st.Path())
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-changed:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

// TestNewStateStoreUnwritableDir verifies that store creation fails when the
// data directory cannot be created.
func TestNewStateStoreUnwritableDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission checks are ineffective")
	}

	tmp := t.TempDir()
	if err := os.Chmod(tmp, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	// Restore permissions so TempDir cleanup can remove it.
	t.Cleanup(func() { os.Chmod(tmp, 0o755) })

	_, err := store.NewStateStore(filepath.Join(tmp, "timetrack"))
	require.Error(t, err)
}
