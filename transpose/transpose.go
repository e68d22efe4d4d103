// Package transpose rewrites the chord tokens in note text from one key to
// another.
//
// Transposition works on positions in per-key chromatic scales rather
// than on pitch arithmetic: a root found at index i of the source key's
// scale becomes whatever sits at index i of the destination key's scale.
// Anything that cannot be resolved is left exactly as written, so a
// transposition never fails.
package transpose

import (
	"github.com/jsphweid/chordsheet/chord"
)

// Transposer is what screens, the CLI and the HTTP server depend on
type Transposer interface {
	Transpose(text, fromKey, toKey string) string
}

// Engine holds the generated scale tables. It is immutable after New and
// safe for concurrent use.
type Engine struct {
	scales map[string]Scale
}

func New() *Engine {
	return &Engine{scales: buildScales()}
}

var defaultEngine = New()

func Default() *Engine {
	return defaultEngine
}

// Transpose uses the default engine
func Transpose(text, fromKey, toKey string) string {
	return defaultEngine.Transpose(text, fromKey, toKey)
}

// Transpose rewrites every chord root in text from fromKey to toKey. It
// returns text unchanged when either key is empty or unknown, or when the
// keys are equal.
func (e *Engine) Transpose(text, fromKey, toKey string) string {
	if fromKey == "" || toKey == "" || fromKey == toKey {
		return text
	}
	from, ok := e.scales[fromKey]
	if !ok {
		return text
	}
	to, ok := e.scales[toKey]
	if !ok {
		return text
	}

	return chord.Replace(text, func(t chord.Token) string {
		if !t.HasRoot() {
			return t.Text()
		}
		i := resolve(t.Root, from)
		if i < 0 {
			return t.Text()
		}
		return chord.Open + spell(to[i], toKey) + t.Suffix + chord.Close
	})
}

// Scale returns the chromatic scale for key
func (e *Engine) Scale(key string) (Scale, bool) {
	s, ok := e.scales[key]
	return s, ok
}

func (e *Engine) IsKey(key string) bool {
	_, ok := e.scales[key]
	return ok
}

// PitchClass returns the root's pitch class, 0 for C through 11 for B
func (e *Engine) PitchClass(root string) (int, bool) {
	i := resolve(chord.NormalizeRoot(root), e.scales["C"])
	return i, i >= 0
}

// resolve finds root in scale, trying its sharp spelling and then every
// enharmonic partner. Natural notes have no partners.
func resolve(root string, scale Scale) int {
	if i := scale.IndexOf(root); i >= 0 {
		return i
	}

	normalized := root
	if sharp, ok := flatToSharp[root]; ok {
		normalized = sharp
		if i := scale.IndexOf(normalized); i >= 0 {
			return i
		}
	}

	for _, variation := range []string{enharmonic[root], enharmonic[normalized]} {
		if variation == "" {
			continue
		}
		if i := scale.IndexOf(variation); i >= 0 {
			return i
		}
	}
	return -1
}

func spell(note, toKey string) string {
	if !flatPreferred[toKey] {
		return note
	}
	if flat, ok := sharpToFlat[note]; ok {
		return flat
	}
	return note
}

var pickerKeys = sharpCycle

// Keys returns the 12 key names offered when choosing a key
func Keys() []string {
	res := make([]string, len(pickerKeys))
	copy(res, pickerKeys[:])
	return res
}

// IsKey reports whether key has a scale in the default engine. This is the
// 12 picker keys plus Db, Eb, Gb, Ab and Bb.
func IsKey(key string) bool {
	return defaultEngine.IsKey(key)
}

func PitchClass(root string) (int, bool) {
	return defaultEngine.PitchClass(root)
}
