package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalStoreContract(t *testing.T) {
	s := NewIntervalStore()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	require.NoError(t, s.Append(Interval{ID: "a", Start: start, End: &end, ActivityID: "work"}))
	require.NoError(t, s.Append(Interval{ID: "b", Start: end, ActivityID: "work"}))
	require.NoError(t, s.Append(Interval{ID: "c", Start: end, ActivityID: "food"}))
	require.ErrorIs(t, s.Append(Interval{ID: "a", Start: start}), ErrDuplicateID)

	assert.Equal(t, 3, s.Len())
	assert.Len(t, s.ForActivity("work"), 2)
	assert.Len(t, s.ForActivity("food"), 1)
	assert.Empty(t, s.ForActivity("sleep"))
	assert.Len(t, s.All(), 3)

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, end, *got.End)

	require.NoError(t, s.Remove("a"))
	require.ErrorIs(t, s.Remove("a"), ErrNotFound)
	_, err = s.Get("a")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestIntervalStoreReturnsDetachedCopies(t *testing.T) {
	s := NewIntervalStore()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, s.Append(Interval{ID: "a", Start: start, End: &end}))

	// Mutating the caller's value after Append must not reach the store.
	end = end.Add(time.Hour)
	got, _ := s.Get("a")
	*got.End = start
	again, _ := s.Get("a")
	assert.Equal(t, start.Add(time.Hour), *again.End)
}

func TestRegistryContract(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Activity{ID: "b", Name: "Work"}))
	require.NoError(t, r.Register(Activity{ID: "a", Name: "Food"}))
	require.ErrorIs(t, r.Register(Activity{ID: "a", Name: "Dup"}), ErrDuplicateID)

	assert.Equal(t, 2, r.Len())
	list := r.List()
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	require.NoError(t, r.SetActive("a", true))
	got, err := r.Get("a")
	require.NoError(t, err)
	assert.True(t, got.Active)

	require.ErrorIs(t, r.SetActive("missing", true), ErrNotFound)
	_, err = r.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestActiveIndexRebuild(t *testing.T) {
	s := NewIntervalStore()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, s.Append(Interval{ID: "closed", Start: start, End: &end, ActivityID: "work"}))
	require.NoError(t, s.Append(Interval{ID: "open", Start: end, ActivityID: "work"}))
	require.NoError(t, s.Append(Interval{ID: "orphan", Start: end}))

	x := newActiveIndex()
	require.NoError(t, x.rebuild(s))
	got, ok := x.get("work")
	require.True(t, ok)
	assert.Equal(t, "open", got)
	assert.Len(t, x.open, 1)

	require.NoError(t, s.Append(Interval{ID: "open-2", Start: end, ActivityID: "work"}))
	err := x.rebuild(s)
	require.ErrorIs(t, err, ErrInvalidState)
}
