package lineedit

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// runUntilDone drives an Editor through the same step loop ReadLine uses,
// without toggling the real terminal's raw mode or bracketed-paste escapes
// (those are side effects on a real tty, irrelevant to dispatch correctness
// and unsafe to exercise without a pty).
func runUntilDone(t *testing.T, e *Editor, prompt string) (string, error) {
	t.Helper()
	ctx := context.Background()
	e.modal.SwitchTo(ModePrompt, func(s *ModeState) {
		s.Ctx.Buf.Restore(Snapshot{Mark: -1})
	})
	e.repaintPrompt(prompt)

	for {
		outcome, err := e.step(ctx, prompt)
		if err != nil {
			return "", err
		}
		switch outcome {
		case OutcomeDone:
			line := string(e.modal.modes[ModePrompt].Ctx.Buf.Bytes())
			e.history.Add(line)
			return line, nil
		case OutcomeAbort:
			return "", errAborted
		}
	}
}

func TestE2ETypeAndAcceptLine(t *testing.T) {
	e, err := New(
		WithInput(strings.NewReader("select 1\r")),
		WithOutput(io.Discard),
		WithSize(80, 24),
	)
	require.NoError(t, err)

	line, err := runUntilDone(t, e, "> ")
	require.NoError(t, err)
	require.Equal(t, "select 1", line)
}

func TestE2EMultilineContinuesUntilInputFinished(t *testing.T) {
	finished := func(text string) bool {
		return strings.HasSuffix(text, ";")
	}
	e, err := New(
		WithInput(strings.NewReader("select 1\rselect 2;\r")),
		WithOutput(io.Discard),
		WithSize(80, 24),
		WithInputFinished(finished),
	)
	require.NoError(t, err)

	line, err := runUntilDone(t, e, "> ")
	require.NoError(t, err)
	require.Equal(t, "select 1\nselect 2;", line)
}

func TestE2EUndoRestoresPriorInsert(t *testing.T) {
	e, err := New(
		WithInput(strings.NewReader("abc\x1f\r")),
		WithOutput(io.Discard),
		WithSize(80, 24),
	)
	require.NoError(t, err)

	line, err := runUntilDone(t, e, "> ")
	require.NoError(t, err)
	require.Equal(t, "ab", line)
}

func TestE2EHistorySearchAcceptsMatchedEntry(t *testing.T) {
	h := NewMemoryHistory(0)
	h.Add("alpha")
	h.Add("select beta")
	h.Add("gamma")

	e, err := New(
		WithInput(strings.NewReader("\x12s\r\r")),
		WithOutput(io.Discard),
		WithSize(80, 24),
		WithHistory(h),
	)
	require.NoError(t, err)

	line, err := runUntilDone(t, e, "> ")
	require.NoError(t, err)
	require.Equal(t, "select beta", line)
}

func TestE2ECompletionInsertsSoleCandidate(t *testing.T) {
	completer := func(text []rune, wordStart, wordEnd int) []string {
		word := string(text[wordStart:wordEnd])
		if word == "se" {
			return []string{"select"}
		}
		return nil
	}
	e, err := New(
		WithInput(strings.NewReader("se\t\r")),
		WithOutput(io.Discard),
		WithSize(80, 24),
		WithCompleter(completer),
	)
	require.NoError(t, err)

	line, err := runUntilDone(t, e, "> ")
	require.NoError(t, err)
	require.Equal(t, "select", line)
}

func TestE2ERepeatedTabListsCandidatesWhenNoCommonPrefixProgress(t *testing.T) {
	completer := func(text []rune, wordStart, wordEnd int) []string {
		word := string(text[wordStart:wordEnd])
		if word == "se" {
			return []string{"select", "session"}
		}
		return nil
	}
	out := &strings.Builder{}
	e, err := New(
		WithInput(strings.NewReader("se\t\t")),
		WithOutput(out),
		WithSize(80, 24),
		WithCompleter(completer),
	)
	require.NoError(t, err)

	ctx := context.Background()
	e.modal.SwitchTo(ModePrompt, func(s *ModeState) {
		s.Ctx.Buf.Restore(Snapshot{Mark: -1})
	})
	e.repaintPrompt("> ")

	for i := 0; i < 2; i++ { // consume "s" and "e"
		_, err := e.step(ctx, "> ")
		require.NoError(t, err)
	}

	_, err = e.step(ctx, "> ") // first Tab: "se" has no further common prefix, beeps
	require.NoError(t, err)
	out.Reset()

	_, err = e.step(ctx, "> ") // second, repeated Tab: lists candidates
	require.NoError(t, err)

	require.True(t, strings.Contains(out.String(), "select"))
	require.True(t, strings.Contains(out.String(), "session"))
}

func TestE2EBracketedPasteInsertsAsSingleEdit(t *testing.T) {
	paste := "\x1b[200~line1\r\nline2\x1b[201~"
	e, err := New(
		WithInput(strings.NewReader(paste+"\r")),
		WithOutput(io.Discard),
		WithSize(80, 24),
	)
	require.NoError(t, err)

	line, err := runUntilDone(t, e, "> ")
	require.NoError(t, err)
	require.Equal(t, "line1\nline2", line)

	mode := e.modal.modes[ModePrompt]
	require.Equal(t, 2, mode.Ctx.Undo.Len(), "construction snapshot plus the whole paste as one undo step")
}

// blockingHintProvider's Hint call only returns once the test releases it,
// letting this test observe the hint landing strictly after the keystroke's
// own synchronous repaint, through the background OnHintReady callback
// rather than the immediate post-dispatch repaint.
type blockingHintProvider struct {
	release chan struct{}
	hint    string
}

func (p *blockingHintProvider) Complete([]rune, int, int) []NamedCompletion { return nil }
func (p *blockingHintProvider) Hint(ctx context.Context, line string) string {
	<-p.release
	return p.hint
}

func TestE2EHintWorkerRepaintsOnceHintArrives(t *testing.T) {
	provider := &blockingHintProvider{release: make(chan struct{}), hint: "ect"}
	out := &strings.Builder{}
	e, err := New(
		WithInput(strings.NewReader("s")),
		WithOutput(out),
		WithSize(80, 24),
		WithCompletionProvider(provider),
	)
	require.NoError(t, err)

	ctx := context.Background()
	e.modal.SwitchTo(ModePrompt, func(s *ModeState) {
		s.Ctx.Buf.Restore(Snapshot{Mark: -1})
	})
	e.repaintPrompt("> ")

	_, err = e.step(ctx, "> ")
	require.NoError(t, err)

	require.Equal(t, "", e.hints.Current(), "the hint is still in flight")
	written := out.Len()

	close(provider.release)
	require.Eventually(t, func() bool {
		return e.hints.Current() == "ect"
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return out.Len() > written
	}, time.Second, time.Millisecond, "the hint landing must trigger its own repaint")
}

func TestE2EAbortOnCtrlG(t *testing.T) {
	e, err := New(
		WithInput(strings.NewReader("abc\x07")),
		WithOutput(io.Discard),
		WithSize(80, 24),
	)
	require.NoError(t, err)

	_, err = runUntilDone(t, e, "> ")
	require.ErrorIs(t, err, errAborted)
}
