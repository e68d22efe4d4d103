package constants

// EnvPrefix is prepended to every environment override, e.g.
// CHORDSHEET_DATABASE_PATH.
const EnvPrefix = "CHORDSHEET"

const ConfigName = "chordsheet"

const DefaultDBPath = "chordsheet.db"

const DefaultAddr = ":8080"

const DefaultBackupTable = "chordsheet-sheets"

const DefaultBackupRegion = "us-east-1"

// TicksPerChord is how long each chord sounds in a MIDI preview, in
// quarter notes.
const TicksPerChord = 1

const DefaultBPM = 90

// MaxImportFiles of 0 means no limit
const MaxImportFiles = 0
