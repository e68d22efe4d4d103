// Package sheet implements what the edit and view screens do with a stored
// chord sheet: change its key, preview it in another key and render it
// for reading.
package sheet

import (
	"context"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/transpose"
)

// Store is the subset of db.Store the service needs
type Store interface {
	Create(ctx context.Context, in model.SheetInput) (model.Sheet, error)
	Get(ctx context.Context, id int64) (model.Sheet, error)
	List(ctx context.Context) ([]model.Sheet, error)
	ListFavorites(ctx context.Context) ([]model.Sheet, error)
	Update(ctx context.Context, id int64, in model.SheetInput) (model.Sheet, error)
	SetFavorite(ctx context.Context, id int64, favorite bool) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

type Service struct {
	Store
	transposer transpose.Transposer
}

func NewService(store Store, transposer transpose.Transposer) *Service {
	return &Service{Store: store, transposer: transposer}
}

func (s *Service) Transposer() transpose.Transposer {
	return s.transposer
}

// ChangeKey stores newKey as the sheet's key. When transposeNotes is set
// and the sheet already had a key, the notes are rewritten into newKey
// first.
func (s *Service) ChangeKey(ctx context.Context, id int64, newKey string, transposeNotes bool) (model.Sheet, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.Sheet{}, err
	}

	in := current.Input()
	if transposeNotes && current.Key != "" {
		in.Notes = s.transposer.Transpose(current.Notes, current.Key, newKey)
	}
	in.Key = newKey

	return s.Update(ctx, id, in)
}

// Preview returns the sheet's notes in key without saving them
func (s *Service) Preview(ctx context.Context, id int64, key string) (model.PreviewResponse, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.PreviewResponse{}, err
	}
	if key == "" {
		key = current.Key
	}
	if !transpose.IsKey(key) {
		return model.PreviewResponse{}, errors.Wrapf(errors.ErrInvalidRequest, "unknown key %q", key)
	}

	notes := s.transposer.Transpose(current.Notes, current.Key, key)
	return model.PreviewResponse{
		Key:      key,
		Notes:    notes,
		Stripped: chord.Strip(notes),
	}, nil
}

// Render returns the sheet's notes with chord markers removed
func (s *Service) Render(ctx context.Context, id int64) (string, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return chord.Strip(current.Notes), nil
}

// Chords lists the chord tokens in a sheet
func (s *Service) Chords(ctx context.Context, id int64) ([]model.ChordToken, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DescribeTokens(current.Notes), nil
}

func DescribeTokens(notes string) []model.ChordToken {
	res := make([]model.ChordToken, 0)
	for _, t := range chord.Tokens(notes) {
		pc := -1
		if t.HasRoot() {
			if i, ok := transpose.PitchClass(t.Root); ok {
				pc = i
			}
		}
		res = append(res, model.ChordToken{
			Text:       t.Text(),
			Root:       t.Root,
			Suffix:     t.Suffix,
			Offset:     t.Start,
			PitchClass: pc,
		})
	}
	return res
}

// Report summarizes every stored sheet
func (s *Service) Report(ctx context.Context) (model.Report, error) {
	sheets, err := s.List(ctx)
	if err != nil {
		return model.Report{}, err
	}

	r := model.Report{SheetsByKey: make(map[string]int)}
	for _, sh := range sheets {
		r.NumSheets++
		if sh.Favorite {
			r.NumFavorites++
		}
		r.SheetsByKey[sh.Key]++
		for _, t := range DescribeTokens(sh.Notes) {
			r.NumChords++
			if t.PitchClass < 0 {
				r.NumUnresolved++
			}
		}
	}
	return r, nil
}
