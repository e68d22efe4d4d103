package transpose

// sharpCycle is the canonical 12-tone cycle every rotation is built from
var sharpCycle = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// flatCycle spells the same pitch classes with flats
var flatCycle = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var sharpToFlat = map[string]string{
	"C#": "Db",
	"D#": "Eb",
	"F#": "Gb",
	"G#": "Ab",
	"A#": "Bb",
}

var flatToSharp = invert(sharpToFlat)

// enharmonic maps each of the five two-spelling pitch classes to its
// partner. Applying it twice returns the original spelling.
var enharmonic = merge(sharpToFlat, flatToSharp)

// flatPreferred keys spell accidentals with flats on output. Cb has no
// rotation of its own, so it never reaches the output step.
var flatPreferred = map[string]bool{
	"F":  true,
	"Bb": true,
	"Eb": true,
	"Ab": true,
	"Db": true,
	"Gb": true,
	"Cb": true,
}

// Scale is the chromatic scale starting at one key
type Scale [12]string

func (s Scale) IndexOf(note string) int {
	for i, n := range s {
		if n == note {
			return i
		}
	}
	return -1
}

func rotate(cycle [12]string, offset int) Scale {
	var s Scale
	for i := range s {
		s[i] = cycle[(offset+i)%12]
	}
	return s
}

// buildScales returns one rotation per key name: sharp-spelled rotations
// for the naturals and sharps, flat-spelled rotations for the five flat
// names.
func buildScales() map[string]Scale {
	scales := make(map[string]Scale, 17)
	for offset, name := range sharpCycle {
		scales[name] = rotate(sharpCycle, offset)
	}
	for offset, name := range flatCycle {
		if _, ok := flatToSharp[name]; ok {
			scales[name] = rotate(flatCycle, offset)
		}
	}
	return scales
}

func invert(m map[string]string) map[string]string {
	res := make(map[string]string, len(m))
	for k, v := range m {
		res[v] = k
	}
	return res
}

func merge(a, b map[string]string) map[string]string {
	res := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		res[k] = v
	}
	for k, v := range b {
		res[k] = v
	}
	return res
}
