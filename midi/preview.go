package midi

import (
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/transpose"
)

const middleC = 60

type Options struct {
	Channel  uint8
	Velocity uint8
	BPM      float64
	// Beats each chord lasts, in quarter notes
	Beats uint32
	// Base is the MIDI key of C in the octave chords are voiced from
	Base uint8
}

func DefaultOptions() Options {
	return Options{
		Channel:  0,
		Velocity: 96,
		BPM:      constants.DefaultBPM,
		Beats:    constants.TicksPerChord,
		Base:     middleC,
	}
}

// ChordKeys voices a chord as MIDI keys: the root, a third and a fifth
// picked from the suffix, and a seventh when the suffix asks for one.
func ChordKeys(pitchClass int, suffix string, base uint8) []uint8 {
	third, fifth := 4, 7
	switch {
	case strings.HasPrefix(suffix, "maj"):
	case strings.HasPrefix(suffix, "dim"), strings.HasPrefix(suffix, "°"):
		third, fifth = 3, 6
	case strings.HasPrefix(suffix, "aug"), strings.HasPrefix(suffix, "+"):
		fifth = 8
	case strings.HasPrefix(suffix, "sus2"):
		third = 2
	case strings.HasPrefix(suffix, "sus"):
		third = 5
	case strings.HasPrefix(suffix, "m"):
		third = 3
	}

	root := base + uint8(pitchClass)
	keys := []uint8{root, root + uint8(third), root + uint8(fifth)}

	switch {
	case strings.Contains(suffix, "maj7"):
		keys = append(keys, root+11)
	case strings.Contains(suffix, "7"):
		keys = append(keys, root+10)
	}
	return keys
}

// FromTokens builds a one-track file with a block chord per token.
// Tokens whose root cannot be resolved are skipped.
func FromTokens(tokens []chord.Token, opts Options) (*smf.SMF, error) {
	clock := smf.MetricTicks(960)
	s := smf.New()
	s.TimeFormat = clock

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("chords"))
	tr.Add(0, smf.MetaTempo(opts.BPM))

	length := clock.Ticks4th() * opts.Beats
	for _, t := range tokens {
		pc, ok := transpose.PitchClass(t.Root)
		if !ok {
			continue
		}
		keys := ChordKeys(pc, t.Suffix, opts.Base)
		for _, k := range keys {
			tr.Add(0, gomidi.NoteOn(opts.Channel, k, opts.Velocity))
		}
		for i, k := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = length
			}
			tr.Add(delta, gomidi.NoteOff(opts.Channel, k))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, errors.Wrap(err, "adding chord track")
	}
	return s, nil
}

// FromText builds a preview of every chord in text
func FromText(text string, opts Options) (*smf.SMF, error) {
	return FromTokens(chord.Tokens(text), opts)
}
