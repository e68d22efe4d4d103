package model

// ChordToken describes one chord annotation found in a sheet
type ChordToken struct {
	Text   string `json:"text"`
	Root   string `json:"root,omitempty"`
	Suffix string `json:"suffix,omitempty"`
	Offset int    `json:"offset"`
	// PitchClass is -1 when the root could not be resolved
	PitchClass int `json:"pitch_class"`
}
