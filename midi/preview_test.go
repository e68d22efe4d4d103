package midi

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestChordKeys(t *testing.T) {
	cases := []struct {
		pc     int
		suffix string
		want   []uint8
	}{
		{0, "", []uint8{60, 64, 67}},
		{9, "m", []uint8{69, 72, 76}},
		{9, "m7", []uint8{69, 72, 76, 79}},
		{0, "maj7", []uint8{60, 64, 67, 71}},
		{7, "7", []uint8{67, 71, 74, 77}},
		{11, "dim", []uint8{71, 74, 77}},
		{0, "aug", []uint8{60, 64, 68}},
		{2, "sus4", []uint8{62, 67, 69}},
		{2, "sus2", []uint8{62, 64, 69}},
	}

	for _, c := range cases {
		name := fmt.Sprintf("pitch class %d suffix %q", c.pc, c.suffix)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, ChordKeys(c.pc, c.suffix, middleC))
		})
	}
}

func noteOns(t *testing.T, s *smf.SMF) []uint8 {
	t.Helper()
	var keys []uint8
	for _, track := range s.Tracks {
		for _, evt := range track {
			var ch, key, vel uint8
			if evt.Message.GetNoteOn(&ch, &key, &vel) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

func TestFromTextRoundTripsThroughBytes(t *testing.T) {
	s, err := FromText("<C> la <Am> <H> <G7>", DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	read, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// <H> is skipped
	assert.Equal(t, []uint8{60, 64, 67, 69, 72, 76, 67, 71, 74, 77}, noteOns(t, read))
}

func TestWriteAndReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.mid")
	s, err := FromText("<D>", DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, WriteMidiFile(path, s))

	read, err := ReadMidiFile(path)
	require.NoError(t, err)
	assert.Equal(t, []uint8{62, 66, 69}, noteOns(t, read))
	assert.Len(t, Describe(read), 3)
}

func TestReadMidiFileErrors(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}
