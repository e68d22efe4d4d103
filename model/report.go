package model

type Report struct {
	NumSheets     int            `json:"num_sheets"`
	NumFavorites  int            `json:"num_favorites"`
	NumChords     int            `json:"num_chords"`
	NumUnresolved int            `json:"num_unresolved"`
	SheetsByKey   map[string]int `json:"sheets_by_key"`
}
