// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sanitize turns arbitrary UTF-8 text into the printable 7-bit ASCII
// accepted by the cells.
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Replacement is written in place of characters that have no ASCII form.
const Replacement = '*'

var special = map[rune]string{
	'à': "a'", 'è': "e'", 'ì': "i'", 'ò': "o'", 'ù': "u'",
	'À': "A'", 'È': "E'", 'Ì': "I'", 'Ò': "O'", 'Ù': "U'",
	'…': "...",
	'‘': "'", '’': "'", '“': `"`, '”': `"`,
	'–': "-", '—': "-",
}

// ASCII returns s with links removed and every character mapped to printable
// ASCII.
//
// White space becomes a blank. Words starting with http:// or https:// are
// dropped. Grave-accented vowels keep their accent as a trailing apostrophe,
// the way Italian is typed on keyboards lacking them. Other letters lose their
// diacritics; whatever is left outside printable ASCII becomes Replacement.
func ASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if isLink(s[i:]) {
			j := strings.IndexByte(s[i:], ' ')
			if j < 0 {
				break
			}
			i += j
			continue
		}
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r >= 0x20 && r < 0x7F:
			b.WriteRune(r)
		default:
			b.WriteString(fold(r))
		}
	}
	return b.String()
}

func isLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// fold maps a non-ASCII rune to its closest ASCII form.
func fold(r rune) string {
	if v, ok := special[r]; ok {
		return v
	}
	if r < 0x80 {
		return string(Replacement)
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, string(r))
	if err != nil || out == "" {
		return string(Replacement)
	}
	for i := 0; i < len(out); i++ {
		if out[i] < 0x20 || out[i] >= 0x7F {
			return string(Replacement)
		}
	}
	return out
}
