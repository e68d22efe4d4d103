package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chordsheet/errors"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Newf("parsing midi file panicked: %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

func Write(w io.Writer, s *smf.SMF) error {
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing midi")
	}
	return nil
}

func WriteMidiFile(path string, s *smf.SMF) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating midi file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing midi file")
		}
	}()
	return Write(f, s)
}

// Describe lists the note-on events of every track, one line per event
func Describe(s *smf.SMF) []string {
	var res []string
	for i, track := range s.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			var ch, key, vel uint8
			if evt.Message.GetNoteOn(&ch, &key, &vel) {
				res = append(res, fmt.Sprintf("track %d tick %d key %d", i, absTicks, key))
			}
		}
	}
	return res
}
