package phoneme

import "testing"

func TestReadableStripsStressDigits(t *testing.T) {
	if got := Readable("AH0"); got != "uh" {
		t.Fatalf("Readable(AH0) = %q, want uh", got)
	}
	if got := Readable("IY1"); got != "ee" {
		t.Fatalf("Readable(IY1) = %q, want ee", got)
	}
}

func TestReadableMappings(t *testing.T) {
	cases := map[string]string{
		"AY":  "eye",
		"HH":  "h",
		"OW":  "oh",
		"AXR": "er",
		"B":   "buh", // single letter falls through to the extended map
		"Q":   "koo",
		"X":   "ex",
		"SH":  "sh",
	}
	for code, want := range cases {
		if got := Readable(code); got != want {
			t.Fatalf("Readable(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestReadableUnknownPassthrough(t *testing.T) {
	if got := Readable("blorp"); got != "blorp" {
		t.Fatalf("unknown multi-letter code must pass through, got %q", got)
	}
}

func TestParts(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"HH AH L OW", []string{"HH", "AH", "L", "OW"}},
		{"Teh-dy", []string{"Teh", "dy"}},
		{"  Ap - ple ", []string{"Ap", "ple"}},
		{"", nil},
	}
	for _, tc := range cases {
		got := Parts(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("Parts(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Parts(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestPrompts(t *testing.T) {
	if got := IntroPrompt("hello"); got != "Let's practice the word hello." {
		t.Fatalf("unexpected intro prompt: %q", got)
	}
	if got := SoundPrompt("eye"); got != "Let's practice the sound eye." {
		t.Fatalf("unexpected sound prompt: %q", got)
	}
	if got := WholeWordPrompt("apple"); got != "Now try saying the whole word: apple" {
		t.Fatalf("unexpected whole-word prompt: %q", got)
	}
}
