package chord

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRoot(t *testing.T) {
	cases := []struct {
		body   string
		root   string
		suffix string
		ok     bool
	}{
		{"C", "C", "", true},
		{"C#m7", "C#", "m7", true},
		{"Bbmaj7", "Bb", "maj7", true},
		{"E♭m", "Eb", "m", true},
		{"G/B", "G", "/B", true},
		{"H", "", "H", false},
		{"", "", "", false},
		{"c", "", "c", false},
	}

	for _, c := range cases {
		name := fmt.Sprintf("split %q", c.body)
		t.Run(name, func(t *testing.T) {
			root, suffix, ok := SplitRoot(c.body)
			assert := assert.New(t)
			assert.Equal(c.root, root)
			assert.Equal(c.suffix, suffix)
			assert.Equal(c.ok, ok)
		})
	}
}

func TestTokensFindsOffsetsAndRoots(t *testing.T) {
	text := "Intro: <D><D#>m <C> a <H>"
	tokens := Tokens(text)

	assert := assert.New(t)
	assert.Len(tokens, 4)

	assert.Equal("D", tokens[0].Root)
	assert.Equal("<D>", text[tokens[0].Start:tokens[0].End])

	// the suffix outside the brackets is plain text
	assert.Equal("D#", tokens[1].Root)
	assert.Equal("", tokens[1].Suffix)

	assert.Equal("<C>", tokens[2].Text())
	assert.False(tokens[3].HasRoot())
	assert.Equal("H", tokens[3].Body)
}

func TestTokensIgnoresUnclosedMarkers(t *testing.T) {
	tokens := Tokens("<<C> and <D")
	assert.Len(t, tokens, 1)
	assert.Equal(t, "C", tokens[0].Root)
	assert.Equal(t, 1, tokens[0].Start)
}

func TestTokenEndsAtInnerOpenMarker(t *testing.T) {
	// a token never contains '<', so "<C <D>" holds one token, "<D>"
	text := "<C <D>m"
	tokens := Tokens(text)
	assert.Len(t, tokens, 1)
	assert.Equal(t, "D", tokens[0].Root)
	assert.Equal(t, 3, tokens[0].Start)
}

func TestReplaceOnlyTouchesTokens(t *testing.T) {
	text := "Intro: <C> verse <Am7> end"
	res := Replace(text, func(tok Token) string {
		return Open + "X" + tok.Suffix + Close
	})
	assert.Equal(t, "Intro: <X> verse <Xm7> end", res)
}

func TestReplaceWithoutTokens(t *testing.T) {
	called := false
	res := Replace("no chords here", func(Token) string {
		called = true
		return ""
	})
	assert.Equal(t, "no chords here", res)
	assert.False(t, called)
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "DD#m C a C#", Strip("<D><D#>m <C> a <C#>"))
	assert.Equal(t, "", Strip(""))
}
