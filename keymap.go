package lineedit

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// wildcardKey is the sentinel used internally for the private-use "matches
// anything not otherwise enumerated" child of a trie node. It can never be
// produced by decoding real terminal input (parseKey only ever yields
// non-negative values), which is what lets normalization safely reject a
// literal key spec that collides with it.
const wildcardKey rune = -2

type leafKind int

const (
	leafNone leafKind = iota
	leafAction
	leafAlias
	leafIgnore
)

// trieNode is one node of the keymap trie. A node is a pure prefix node
// (kind == leafNone) while it has outgoing children only, or a leaf once a
// binding has been installed directly on it; a node cannot be both a
// genuine leaf and a prefix for a longer sequence at the same time — adding
// a longer sequence through an existing leaf, or a leaf on an existing
// prefix, is a conflicting definition unless override is set.
type trieNode struct {
	children map[rune]*trieNode
	wildcard *trieNode

	kind leafKind
	// action holds the action name for leafAction; aliasSeq holds the
	// normalized target sequence for leafAlias.
	action   KeyAction
	aliasSeq []rune
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func cloneSubtree(n *trieNode) *trieNode {
	if n == nil {
		return nil
	}
	cp := &trieNode{
		children: make(map[rune]*trieNode, len(n.children)),
		kind:     n.kind,
		action:   n.action,
		aliasSeq: append([]rune(nil), n.aliasSeq...),
	}
	for r, c := range n.children {
		cp.children[r] = cloneSubtree(c)
	}
	cp.wildcard = cloneSubtree(n.wildcard)
	return cp
}

// Binding is one keymap leaf value: exactly one of Action, Alias, or Ignore
// applies, mirroring the external "key -> action | alias-string | null"
// surface as a tagged enum rather than an untyped value (Design Notes §9).
type Binding struct {
	action  KeyAction
	alias   string
	ignore  bool
	isAlias bool
}

// Act constructs a Binding that invokes the named action.
func Act(name KeyAction) Binding { return Binding{action: name} }

// Redirect constructs a Binding that redirects to another key spec.
func Redirect(targetKeySpec string) Binding { return Binding{isAlias: true, alias: targetKeySpec} }

// Ignore constructs a Binding that silently drops the input.
func Ignore() Binding { return Binding{ignore: true} }

// KeymapLayer is one layer of key bindings, as passed to NewKeymap. Layers
// are merged lowest-index to highest-index precedence.
type KeymapLayer map[string]Binding

// Keymap is a built, read-only trie ready for decoding. It is built once
// per session; wildcard fixup is a one-time post-pass at construction.
type Keymap struct {
	root *trieNode
}

// namedKeys maps the bracketed key names accepted in a key spec (e.g.
// "<Up>") to their decoded rune values, extending the literal/^X/\C-X/\M-X
// grammar so arrow and function keys can be bound at all.
var namedKeys = map[string]rune{
	"up":        keyUp,
	"down":      keyDown,
	"left":      keyLeft,
	"right":     keyRight,
	"home":      keyHome,
	"end":       keyEnd,
	"pageup":    keyPageUp,
	"pagedown":  keyPageDown,
	"delete":    keyDelete,
	"backspace": keyBackspace,
	"enter":     keyEnter,
	"tab":       keyTab,
	"space":     ' ',
}

// normalizeToken converts a single whitespace-delimited key-spec token into
// its decoded key rune, per the grammar in spec §4.4: literal characters,
// "^X", "\C-X", "\M-X", and "*" for the wildcard, extended with "<Name>" for
// keys with no printable representation.
func normalizeToken(tok string) (rune, error) {
	if tok == "*" {
		return wildcardKey, nil
	}

	var mods rune
	for {
		switch {
		case strings.HasPrefix(tok, "\\C-"):
			mods |= keyCtrl
			tok = tok[3:]
		case strings.HasPrefix(tok, "\\M-"):
			mods |= keyAlt
			tok = tok[3:]
		case strings.HasPrefix(tok, "\\S-"):
			mods |= keyShift
			tok = tok[3:]
		case strings.HasPrefix(tok, "^") && len(tok) > 1:
			mods |= keyCtrl
			tok = tok[1:]
		default:
			goto base
		}
	}
base:
	var base rune
	var named bool
	if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") && len(tok) > 2 {
		name := strings.ToLower(tok[1 : len(tok)-1])
		r, ok := namedKeys[name]
		if !ok {
			return 0, errors.Errorf("unknown named key %q", tok)
		}
		base = r
		named = true
	} else {
		runes := []rune(tok)
		if len(runes) != 1 {
			return 0, errors.Errorf("invalid key token %q", tok)
		}
		base = runes[0]
	}

	// A named key (arrows, Home, Tab, ...) already denotes a key with no
	// ASCII control-code equivalent; \C- on one simply ORs in the modifier
	// bit, matching how the decoder reports e.g. Ctrl-Left (keyLeft|keyCtrl)
	// rather than deriving a control character from its rune value.
	if (mods&keyShift) != 0 {
		if !named {
			return 0, errors.Errorf("\\S- only applies to named keys, got %q", tok)
		}
		mods &^= keyShift
		base |= keyShift
	}

	if (mods&keyCtrl) != 0 && named {
		mods &^= keyCtrl
		base |= keyCtrl
	} else if (mods & keyCtrl) != 0 {
		u := unicode.ToUpper(base)
		if u < 'A' || u > 'Z' {
			if base != '@' && base != '_' && base != '?' && base != ' ' {
				return 0, errors.Errorf("invalid control key %q", tok)
			}
		}
		switch base {
		case '?':
			base = keyBackspace
			mods &^= keyCtrl
		case ' ', '@':
			base = 0
			mods &^= keyCtrl
		default:
			base = (u - 64) & 0x1f
			mods &^= keyCtrl
		}
	}

	key := base | mods
	if key == wildcardKey {
		return 0, errors.Errorf("key spec %q collides with the wildcard sentinel", tok)
	}
	return key, nil
}

// normalizeKeySpec converts a key-spec string into the sequence of key runes
// the decoder will see. Whitespace-separated tokens (e.g. "\\C-x \\C-s") form
// a multi-key sequence; a spec with no separating space is a single key,
// which may itself be whitespace ("\r", "\n", "\\C- ").
func normalizeKeySpec(spec string) ([]rune, error) {
	if spec == "" {
		return nil, errors.Errorf("empty key spec")
	}
	fields := strings.Fields(spec)
	if len(fields) <= 1 {
		fields = []string{spec}
	}
	seq := make([]rune, 0, len(fields))
	for _, f := range fields {
		r, err := normalizeToken(f)
		if err != nil {
			return nil, errors.Wrapf(err, "key spec %q", spec)
		}
		seq = append(seq, r)
	}
	return seq, nil
}

// insertBinding installs a direct binding at the end of seq below root, applying
// the conflicting-definition rule: attaching a leaf under an existing
// prefix, or a longer sequence through an existing leaf, requires override.
func insertBinding(root *trieNode, seq []rune, kind leafKind, action KeyAction, aliasSeq []rune, override bool) error {
	node := root
	for i, r := range seq {
		last := i == len(seq)-1

		if r == wildcardKey {
			if node.wildcard == nil {
				node.wildcard = newTrieNode()
			}
			if !last && node.wildcard.kind != leafNone {
				if !override {
					return errors.Errorf("conflicting definition at wildcard prefix of %v", seq)
				}
				node.wildcard.kind = leafNone
			}
			node = node.wildcard
			continue
		}

		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		if !last && child.kind != leafNone {
			if !override {
				return errors.Errorf("conflicting definition: %v is a prefix of a shorter binding", seq[:i+1])
			}
			child.kind = leafNone
		}
		node = child
	}

	if node.kind != leafNone && !override {
		return errors.Errorf("conflicting definition for key sequence %v", seq)
	}
	if len(node.children) > 0 && !override {
		return errors.Errorf("conflicting definition: %v is a prefix of a longer binding", seq)
	}
	if override {
		node.children = make(map[rune]*trieNode)
		node.wildcard = nil
	}
	node.kind = kind
	node.action = action
	node.aliasSeq = aliasSeq
	return nil
}

// buildLayerTrie builds a standalone trie for one layer, validating that the
// layer's own alias chains do not cycle.
func buildLayerTrie(layer KeymapLayer) (*trieNode, error) {
	root := newTrieNode()
	targets := make(map[string][]rune)

	for spec, b := range layer {
		seq, err := normalizeKeySpec(spec)
		if err != nil {
			return nil, err
		}
		switch {
		case b.ignore:
			if err := insertBinding(root, seq, leafIgnore, "", nil, false); err != nil {
				return nil, err
			}
		case b.isAlias:
			targetSeq, err := normalizeKeySpec(b.alias)
			if err != nil {
				return nil, errors.Wrapf(err, "alias target for %q", spec)
			}
			targets[spec] = targetSeq
			if err := insertBinding(root, seq, leafAlias, "", targetSeq, false); err != nil {
				return nil, err
			}
		default:
			if err := insertBinding(root, seq, leafAction, b.action, nil, false); err != nil {
				return nil, err
			}
		}
	}

	// Detect cycles strictly within this layer's own alias graph.
	for spec, targetSeq := range targets {
		seen := map[string]bool{spec: true}
		cur := string(targetSeq)
		for {
			next, isAlias := targets[cur]
			if !isAlias {
				break
			}
			if seen[cur] {
				return nil, errors.Errorf("redirection cycle involving %q", spec)
			}
			seen[cur] = true
			cur = string(next)
		}
	}

	return root, nil
}

// mergeInto deep-merges source into target, target (the higher-precedence
// side) winning any conflict. override, when true, lets a higher layer
// forcibly replace a lower layer's conflicting subtree instead of erroring.
func mergeInto(target, source *trieNode, override bool) error {
	if source.kind != leafNone {
		switch {
		case target.kind != leafNone:
			// target already defines this key; it wins, nothing to do.
		case len(target.children) > 0 || target.wildcard != nil:
			if !override {
				return errors.Errorf("merge conflict: source leaf collides with target prefix")
			}
			// override: target's longer bindings stay; the source leaf is dropped.
		default:
			target.kind, target.action, target.aliasSeq = source.kind, source.action, source.aliasSeq
		}
	}

	for r, schild := range source.children {
		tchild, ok := target.children[r]
		if !ok {
			target.children[r] = cloneSubtree(schild)
			continue
		}
		if tchild.kind != leafNone && len(schild.children) > 0 {
			if !override {
				return errors.Errorf("merge conflict: target leaf %q collides with source's longer binding", string(r))
			}
			continue // override: target's leaf replaces the source subtree
		}
		if err := mergeInto(tchild, schild, override); err != nil {
			return err
		}
	}

	if source.wildcard != nil {
		if target.wildcard == nil {
			target.wildcard = cloneSubtree(source.wildcard)
		} else if err := mergeInto(target.wildcard, source.wildcard, override); err != nil {
			return err
		}
	}
	return nil
}

// propagateWildcard performs the one-time wildcard fixup pass: for every
// node with a wildcard child, that child's (already fixed-up) subtree is
// cloned into every sibling subtree lacking a wildcard of its own, applied
// top-down so deep wildcards propagate correctly.
func propagateWildcard(node *trieNode) {
	if node.wildcard != nil {
		propagateWildcard(node.wildcard)
		for _, child := range node.children {
			if child.wildcard == nil {
				child.wildcard = cloneSubtree(node.wildcard)
			}
		}
	}
	for _, child := range node.children {
		propagateWildcard(child)
	}
}

// lookupSeq walks seq from root, returning the node reached, or nil if the
// sequence does not resolve to an existing leaf.
func lookupSeq(root *trieNode, seq []rune) *trieNode {
	node := root
	for _, r := range seq {
		child, ok := node.children[r]
		if !ok {
			if node.wildcard == nil {
				return nil
			}
			child = node.wildcard
		}
		node = child
	}
	if node.kind == leafNone {
		return nil
	}
	return node
}

// validateAliases walks every alias leaf in the final trie, confirming its
// target resolves (chasing alias chains, detecting cycles) to a concrete
// leaf; a target that resolves to nothing is a dangling alias.
func validateAliases(root *trieNode) error {
	var walk func(n *trieNode, path []rune) error
	walk = func(n *trieNode, path []rune) error {
		if n.kind == leafAlias {
			seen := map[string]bool{}
			cur := n
			curPath := n.aliasSeq
			for cur.kind == leafAlias {
				key := string(curPath)
				if seen[key] {
					return errors.Errorf("redirection cycle starting at %v", path)
				}
				seen[key] = true
				next := lookupSeq(root, curPath)
				if next == nil {
					return errors.Errorf("dangling alias target %v from %v", curPath, path)
				}
				cur = next
				curPath = cur.aliasSeq
			}
		}
		for r, c := range n.children {
			if err := walk(c, append(append([]rune(nil), path...), r)); err != nil {
				return err
			}
		}
		if n.wildcard != nil {
			if err := walk(n.wildcard, append(append([]rune(nil), path...), wildcardKey)); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, nil)
}

// NewKeymap builds a Keymap from a stack of layered maps; layers[0] has the
// lowest precedence, layers[len-1] the highest. override, when true, lets
// higher layers forcibly replace conflicting subtrees from lower layers
// instead of failing construction.
func NewKeymap(override bool, layers ...KeymapLayer) (*Keymap, error) {
	if len(layers) == 0 {
		return &Keymap{root: newTrieNode()}, nil
	}

	acc, err := buildLayerTrie(layers[0])
	if err != nil {
		return nil, errors.Wrap(err, "building base keymap layer")
	}

	for i := 1; i < len(layers); i++ {
		layerTrie, err := buildLayerTrie(layers[i])
		if err != nil {
			return nil, errors.Wrapf(err, "building keymap layer %d", i)
		}
		merged := layerTrie // higher precedence becomes the new target
		if err := mergeInto(merged, acc, override); err != nil {
			return nil, errors.Wrapf(err, "merging keymap layer %d", i)
		}
		acc = merged
	}

	propagateWildcard(acc)

	if err := validateAliases(acc); err != nil {
		return nil, errors.Wrap(err, "validating keymap aliases")
	}

	return &Keymap{root: acc}, nil
}
