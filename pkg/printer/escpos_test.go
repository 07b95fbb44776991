package printer

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// printable drops ESC/POS control sequences used by Document so tests can
// look at the text lines.
func printable(b []byte) []string {
	var out bytes.Buffer
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case ESC, GS:
			if b[i] == ESC && i+1 < len(b) && b[i+1] == '@' {
				i++
				continue
			}
			i += 2 // command byte plus one argument
		default:
			out.WriteByte(b[i])
		}
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, 32, doc.Width())
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes())
}

func TestKeyValueIsFlushRight(t *testing.T) {
	lines := printable(NewDocument(32).KeyValue("Subtotal:", "100.00").Bytes())
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 32)
	assert.True(t, strings.HasPrefix(lines[0], "Subtotal:"))
	assert.True(t, strings.HasSuffix(lines[0], "100.00"))
}

func TestKeyValueCountsRunes(t *testing.T) {
	lines := printable(NewDocument(32).KeyValue("Café:", "৳ 10").Bytes())
	require.Len(t, lines, 1)
	assert.Equal(t, 32, utf8.RuneCountInString(lines[0]))
}

func TestItemLineWrapsLongNames(t *testing.T) {
	doc := NewDocument(32).ItemLine(2, "Chicken Tikka Masala with Garlic Naan and Raita", "1250.00")
	lines := printable(doc.Bytes())
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "2x Chicken"))
	assert.True(t, strings.HasSuffix(lines[0], "1250.00"))
	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 32, l)
	}
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "   "), "continuation lines are indented: %q", l)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, wrap("", 10))
	assert.Equal(t, []string{"plain rice"}, wrap("plain rice", 10))
	assert.Equal(t, []string{"plain", "rice"}, wrap("plain rice", 9))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrap("abcdefghij", 4))
}

func TestSeparatorAndCut(t *testing.T) {
	b := NewDocument(10).Separator('=').PartialCut().Bytes()
	assert.True(t, bytes.Contains(b, []byte("==========\n")))
	assert.True(t, bytes.HasSuffix(b, []byte{GS, 'V', 0x01}))
}
