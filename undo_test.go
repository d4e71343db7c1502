package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUndoStackBasic(t *testing.T) {
	initial := Snapshot{Bytes: []byte(""), Mark: -1}
	u := NewUndoStack(initial)

	u.RecordEdit(Snapshot{Bytes: []byte("a"), Mark: -1})
	u.RecordEdit(Snapshot{Bytes: []byte("ab"), Mark: -1})

	snap, ok := u.Undo()
	require.True(t, ok)
	require.Equal(t, "a", string(snap.Bytes))

	snap, ok = u.Undo()
	require.True(t, ok)
	require.Equal(t, "", string(snap.Bytes))

	_, ok = u.Undo()
	require.False(t, ok)
}

func TestUndoStackRedo(t *testing.T) {
	u := NewUndoStack(Snapshot{Bytes: []byte(""), Mark: -1})
	u.RecordEdit(Snapshot{Bytes: []byte("a"), Mark: -1})
	u.RecordEdit(Snapshot{Bytes: []byte("ab"), Mark: -1})

	u.Undo()
	u.Undo()
	snap, ok := u.Redo()
	require.True(t, ok)
	require.Equal(t, "a", string(snap.Bytes))

	snap, ok = u.Redo()
	require.True(t, ok)
	require.Equal(t, "ab", string(snap.Bytes))

	_, ok = u.Redo()
	require.False(t, ok)
}

func TestUndoStackEditClearsRedoTail(t *testing.T) {
	u := NewUndoStack(Snapshot{Bytes: []byte(""), Mark: -1})
	u.RecordEdit(Snapshot{Bytes: []byte("a"), Mark: -1})
	u.RecordEdit(Snapshot{Bytes: []byte("ab"), Mark: -1})

	u.Undo()
	u.RecordEdit(Snapshot{Bytes: []byte("ac"), Mark: -1})

	_, ok := u.Redo()
	require.False(t, ok, "redo tail must be discarded by an intervening edit")
	require.Equal(t, 3, u.Len())
}

func TestUndoStackRedoOnlyAfterUndoOrRedo(t *testing.T) {
	u := NewUndoStack(Snapshot{Bytes: []byte(""), Mark: -1})
	u.RecordEdit(Snapshot{Bytes: []byte("a"), Mark: -1})
	// An edit after the Undo discards the redo tail; Redo must refuse.
	u.Undo()
	u.RecordEdit(Snapshot{Bytes: []byte("b"), Mark: -1})
	_, ok := u.Redo()
	require.False(t, ok)
}
