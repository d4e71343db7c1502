package lineedit

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	yaml "go.yaml.in/yaml/v3"
)

// Options bundles the configuration knobs the editor reads from. A single
// Options value is shared (by reference) across all mode states for the
// lifetime of a session; there is no process-wide singleton.
type Options struct {
	// BeepDuration is how long a single bell flash is shown for.
	BeepDuration time.Duration `yaml:"beep_duration"`
	// BeepBlink, when true, makes a beep cycle BeepColors through the paint
	// callback given to Beeper.Ring; when false, a plain BEL byte is written.
	BeepBlink bool `yaml:"beep_blink"`
	// BeepMaxDuration caps the total time a train of beeps may animate for.
	BeepMaxDuration time.Duration `yaml:"beep_maxduration"`
	// BeepColors lists the SGR color escapes cycled through while animating.
	BeepColors []string `yaml:"beep_colors"`
	// BeepUseCurrent is loaded from configuration but no editor code reads
	// it; a blinking beep always cycles BeepColors.
	BeepUseCurrent bool `yaml:"beep_use_current"`

	// BackspaceAlign enables column-aligned backspace over leading indentation.
	BackspaceAlign bool `yaml:"backspace_align"`
	// BackspaceAdjust additionally eats trailing indentation to preserve
	// the relative column of text after the cursor. Only legal with BackspaceAlign.
	BackspaceAdjust bool `yaml:"backspace_adjust"`

	// AutoIndent is the default indent width (spaces) used by indent/outdent.
	AutoIndent int `yaml:"auto_indent"`
	// AutoIndentBracketedPaste enables indentation stripping for bracketed pastes.
	AutoIndentBracketedPaste bool `yaml:"auto_indent_bracketed_paste"`
	// AutoIndentTmpOff suppresses newline auto-indent. The editor sets it
	// when the paste heuristic fires and clears it on the next non-space
	// insertion that does not look like a paste; exposed so callers can
	// observe/force it in tests.
	AutoIndentTmpOff bool `yaml:"-"`
	// AutoIndentTimeThreshold is the max gap between two non-space insertions
	// that is treated as "this looks like a paste".
	AutoIndentTimeThreshold time.Duration `yaml:"auto_indent_time_threshold"`

	// AutoRefreshTimeDelay is loaded from configuration but no editor code
	// reads it; every accepted action repaints at once, with no coalescing.
	AutoRefreshTimeDelay time.Duration `yaml:"auto_refresh_time_delay"`

	// HintTabCompletes is loaded from configuration but no editor code reads
	// it; Tab always runs completion and never accepts a displayed hint.
	HintTabCompletes bool `yaml:"hint_tab_completes"`
	// HintsEnabled toggles the background hint worker entirely.
	HintsEnabled bool `yaml:"hints_enabled"`

	// RegionAnimationDuration is loaded from configuration but no editor
	// code reads it; copying a region shows no flash.
	RegionAnimationDuration time.Duration `yaml:"region_animation_duration"`

	// KillRingMax bounds the number of kill-ring entries retained.
	KillRingMax int `yaml:"kill_ring_max"`

	// ConfirmExit is loaded from configuration but no editor code reads it;
	// a single interrupt, or EOF on an empty line, aborts the line.
	ConfirmExit bool `yaml:"confirm_exit"`

	// TabWidth is the display width of a tab stop used when expanding pasted tabs.
	TabWidth int `yaml:"tabwidth"`

	// now, when non-nil, replaces time.Now for paste-heuristic timing tests.
	now func() time.Time
}

// DefaultOptions returns the Options values the editor uses absent any
// explicit configuration, mirroring the defaults named in the external
// interface surface.
func DefaultOptions() *Options {
	return &Options{
		BeepDuration:            100 * time.Millisecond,
		BeepMaxDuration:         2 * time.Second,
		BeepColors:              []string{fgRed, fgYellow},
		BackspaceAlign:          true,
		BackspaceAdjust:         true,
		AutoIndent:              4,
		AutoIndentBracketedPaste: true,
		AutoIndentTimeThreshold: 30 * time.Millisecond,
		AutoRefreshTimeDelay:    8 * time.Millisecond,
		HintTabCompletes:        true,
		HintsEnabled:            true,
		RegionAnimationDuration: 120 * time.Millisecond,
		KillRingMax:             killRingMax,
		TabWidth:                8,
	}
}

func (o *Options) clock() time.Time {
	if o.now != nil {
		return o.now()
	}
	return time.Now()
}

// LoadOptionsYAML reads Options from a YAML document, starting from
// DefaultOptions and overriding only the fields present in the document.
func LoadOptionsYAML(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading options file %q", path)
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, errors.Wrapf(err, "parsing options file %q", path)
	}
	return opts, nil
}

// EditorOption configures an Editor at construction time, following the
// functional-options pattern petermattis-prompt used for Prompt.
type EditorOption interface {
	apply(e *Editor)
}

type optionFunc func(e *Editor)

func (f optionFunc) apply(e *Editor) { f(e) }

// WithTTY configures the editor to read from and write to the given tty
// rather than os.Stdin/os.Stdout.
func WithTTY(tty *os.File) EditorOption {
	return optionFunc(func(e *Editor) {
		e.fd = int(tty.Fd())
		e.term.setIO(tty, tty)
	})
}

// WithInput configures the input reader. Primarily useful in tests.
func WithInput(r io.Reader) EditorOption {
	return optionFunc(func(e *Editor) {
		e.term.setReader(r)
	})
}

// WithOutput configures the output writer. Primarily useful in tests.
func WithOutput(w io.Writer) EditorOption {
	return optionFunc(func(e *Editor) {
		e.term.setWriter(w)
	})
}

// WithSize sets the initial terminal width/height, bypassing the ioctl-based
// query. Primarily useful in tests run without a controlling tty.
func WithSize(width, height int) EditorOption {
	return optionFunc(func(e *Editor) {
		e.term.width, e.term.height = width, height
	})
}

// WithOptions installs a fully constructed Options record.
func WithOptions(opts *Options) EditorOption {
	return optionFunc(func(e *Editor) {
		e.opts = opts
	})
}

// WithCompleter installs a simple word-boundary completer, wrapped to
// satisfy the richer CompletionProvider interface (see completion.go).
func WithCompleter(fn func(text []rune, wordStart, wordEnd int) []string) EditorOption {
	return optionFunc(func(e *Editor) {
		e.completer = simpleCompleter(fn)
	})
}

// WithCompletionProvider installs a full CompletionProvider.
func WithCompletionProvider(p CompletionProvider) EditorOption {
	return optionFunc(func(e *Editor) {
		e.completer = p
	})
}

// WithHistory installs a HistoryProvider other than the built-in in-memory one.
func WithHistory(h HistoryProvider) EditorOption {
	return optionFunc(func(e *Editor) {
		e.history = h
	})
}

// WithInputFinished configures the callback invoked when Enter is pressed to
// decide whether the input is complete or whether a literal newline should
// be inserted instead.
func WithInputFinished(fn func(text string) bool) EditorOption {
	return optionFunc(func(e *Editor) {
		e.inputFinished = fn
	})
}

// WithKeymap layers additional key bindings on top of the default keymap.
// Later calls have higher precedence, matching the merge semantics of
// NewKeymap.
func WithKeymap(layer KeymapLayer) EditorOption {
	return optionFunc(func(e *Editor) {
		e.keymapLayers = append(e.keymapLayers, layer)
	})
}
