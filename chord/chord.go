// Package chord finds the chord annotations embedded in note text.
//
// A chord token is delimited by '<' and '>' and starts with a root note
// letter A-G, optionally followed by an accidental ('#', 'b' or '♭'). The
// rest of the token is an opaque suffix such as "m", "7" or "maj7/E".
package chord

import (
	"regexp"
	"strings"
)

const (
	Open  = "<"
	Close = ">"
)

var tokenPattern = regexp.MustCompile(`<([^<>]*)>`)

var rootPattern = regexp.MustCompile(`^[A-G](#|b|♭)?`)

var markerStripper = strings.NewReplacer(Open, "", Close, "")

type Token struct {
	// Start and End are byte offsets of the whole token, brackets included
	Start int
	End   int
	// Body is the raw text between the brackets
	Body string
	// Root is the note letter plus accidental with '♭' normalized to 'b'.
	// Empty when the token does not start with a note letter.
	Root   string
	Suffix string
}

func (t Token) HasRoot() bool {
	return t.Root != ""
}

// Text is the token as it appears in the note text
func (t Token) Text() string {
	return Open + t.Body + Close
}

// SplitRoot splits a token body into its normalized root and suffix.
// ok is false when the body does not start with a note letter.
func SplitRoot(body string) (root string, suffix string, ok bool) {
	raw := rootPattern.FindString(body)
	if raw == "" {
		return "", body, false
	}
	return NormalizeRoot(raw), body[len(raw):], true
}

// NormalizeRoot spells the flat sign as 'b'
func NormalizeRoot(root string) string {
	return strings.Replace(root, "♭", "b", 1)
}

// Tokens returns every chord token in text in order of appearance
func Tokens(text string) []Token {
	var res []Token
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		body := text[loc[2]:loc[3]]
		root, suffix, _ := SplitRoot(body)
		res = append(res, Token{
			Start:  loc[0],
			End:    loc[1],
			Body:   body,
			Root:   root,
			Suffix: suffix,
		})
	}
	return res
}

// Replace rebuilds text with every token substituted by fn(token). Text
// outside tokens is copied unchanged.
func Replace(text string, fn func(Token) string) string {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, t := range tokens {
		b.WriteString(text[prev:t.Start])
		b.WriteString(fn(t))
		prev = t.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// Strip removes every chord marker, leaving the chords inline with the
// lyrics. This is how a sheet is shown for reading.
func Strip(text string) string {
	return markerStripper.Replace(text)
}
