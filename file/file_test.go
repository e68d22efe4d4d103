package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/chordsheet/model"
)

func TestParseSheet(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     model.SheetInput
	}{
		{
			"songs/Asa Branca.txt", "Key: G\n<G>Quando olhei\n",
			model.SheetInput{Title: "Asa Branca", Key: "G", Notes: "<G>Quando olhei"},
		},
		{
			"wave.txt", "<D>maj7 vou te contar",
			model.SheetInput{Title: "wave", Key: "C", Notes: "<D>maj7 vou te contar"},
		},
		{
			"x.txt", "  KEY:Bb  \n<Bb>",
			model.SheetInput{Title: "x", Key: "Bb", Notes: "<Bb>"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParseSheet(c.name, c.contents, "C"))
		})
	}
}

func TestReadSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.txt")
	require.NoError(t, os.WriteFile(path, []byte("Key: E\n<E>"), 0o644))

	in, err := ReadSheet(path, "")
	require.NoError(t, err)
	assert.Equal(t, model.SheetInput{Title: "song", Key: "E", Notes: "<E>"}, in)

	_, err = ReadSheet(filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}
