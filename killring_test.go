package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKillRingKillAndYank(t *testing.T) {
	r := NewKillRing(3)
	r.Kill("abc", true, false)
	require.Equal(t, "abc", r.Yank())
}

func TestKillRingConsecutiveKillsConcatenate(t *testing.T) {
	r := NewKillRing(3)
	r.Kill("foo", true, false)
	r.Kill("bar", true, true)
	require.Equal(t, 1, r.Len())
	require.Equal(t, "foobar", r.Yank())
}

func TestKillRingBackwardKillPrepends(t *testing.T) {
	r := NewKillRing(3)
	r.Kill("bar", false, false)
	r.Kill("foo", false, true)
	require.Equal(t, "foobar", r.Yank())
}

func TestKillRingYankPopRotates(t *testing.T) {
	r := NewKillRing(3)
	r.Kill("one", true, false)
	r.Kill("two", true, false)
	r.Kill("three", true, false)

	require.Equal(t, "three", r.Yank())
	text, ok := r.YankPop()
	require.True(t, ok)
	require.Equal(t, "two", text)
	text, ok = r.YankPop()
	require.True(t, ok)
	require.Equal(t, "one", text)
	// wraps around
	text, ok = r.YankPop()
	require.True(t, ok)
	require.Equal(t, "three", text)
}

func TestKillRingYankPopRequiresYankFirst(t *testing.T) {
	r := NewKillRing(3)
	r.Kill("one", true, false)
	r.NotYanking()
	_, ok := r.YankPop()
	require.False(t, ok)
}

func TestKillRingBoundedEvictsOldest(t *testing.T) {
	r := NewKillRing(2)
	r.Kill("one", true, false)
	r.Kill("two", true, false)
	r.Kill("three", true, false)
	require.Equal(t, 2, r.Len())
	require.Equal(t, "three", r.Yank())
	text, _ := r.YankPop()
	require.Equal(t, "two", text)
}

func TestKillRingCopyNeverConcatenates(t *testing.T) {
	r := NewKillRing(3)
	r.Copy("a")
	r.Copy("b")
	require.Equal(t, 2, r.Len())
}
