// Package phoneme converts assessment phoneme codes into speakable text
// and splits stored breakdowns into displayable parts.
package phoneme

import (
	"strings"
	"unicode"
)

// Speakable text for the standard phoneme set. Keys are stress-stripped,
// lowercased phoneme codes.
var standard = map[string]string{
	"aa": "ah", "ae": "uh", "ah": "uh", "ax": "uh", "ao": "aw",
	"aw": "ow", "ay": "eye", "b": "b", "ch": "ch", "d": "d",
	"dh": "th", "eh": "eh", "er": "er", "ey": "ay", "f": "f",
	"g": "g", "hh": "h", "ih": "ih", "iy": "ee", "jh": "j",
	"k": "k", "l": "l", "m": "m", "n": "n", "ng": "ng",
	"ow": "oh", "oy": "oy", "p": "p", "r": "r", "s": "s",
	"sh": "sh", "t": "t", "th": "th", "uh": "oo", "uw": "oo",
	"v": "v", "w": "w", "y": "y", "z": "z", "zh": "zh", "axr": "er",
}

// Single letters left over after the standard mapping get an extended
// speakable form.
var singleLetter = map[string]string{
	"a": "ay", "b": "buh", "c": "cuh", "d": "duh", "e": "ee",
	"f": "fuh", "g": "guh", "h": "huh", "i": "eye", "j": "juh",
	"k": "kuh", "l": "luh", "m": "muh", "n": "nuh", "o": "oh",
	"p": "puh", "q": "koo", "r": "ruh", "s": "suh", "t": "tuh",
	"u": "oo", "v": "vuh", "w": "wuh", "x": "ex", "y": "yuh", "z": "zuh",
}

// Readable converts a phoneme code into speakable text. Stress digits
// are stripped (AH0 becomes AH) before lookup.
func Readable(code string) string {
	var b strings.Builder
	for _, r := range code {
		if unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	base := b.String()
	text, ok := standard[base]
	if !ok {
		text = base
	}
	if len(text) == 1 {
		if extended, ok := singleLetter[text]; ok {
			return extended
		}
	}
	return text
}

// Parts splits a stored breakdown string into displayable parts. Both
// space-separated phoneme codes ("HH AH L OW") and hyphenated syllables
// ("Teh-dy") are supported.
func Parts(breakdown string) []string {
	fields := strings.FieldsFunc(breakdown, func(r rune) bool {
		return r == ' ' || r == '-' || r == '·'
	})
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts = append(parts, f)
	}
	return parts
}

// ReadableParts maps each breakdown part through Readable.
func ReadableParts(breakdown string) []string {
	parts := Parts(breakdown)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = Readable(p)
	}
	return out
}
