package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
)

const keyPrefix = "key:"

// ParseSheet turns a text file into a sheet. The title is the file name
// without extension. A first line like "Key: G" sets the key and is not
// part of the notes; otherwise defaultKey is used.
func ParseSheet(name string, contents string, defaultKey string) model.SheetInput {
	title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	in := model.SheetInput{Title: title, Key: defaultKey, Notes: contents}

	first, rest, _ := strings.Cut(contents, "\n")
	trimmed := strings.TrimSpace(first)
	if strings.HasPrefix(strings.ToLower(trimmed), keyPrefix) {
		in.Key = strings.TrimSpace(trimmed[len(keyPrefix):])
		in.Notes = rest
	}
	in.Notes = strings.TrimRight(in.Notes, "\n")
	return in
}

func ReadSheet(path string, defaultKey string) (model.SheetInput, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.SheetInput{}, errors.Wrapf(err, "read %s", path)
	}
	return ParseSheet(path, string(b), defaultKey), nil
}
