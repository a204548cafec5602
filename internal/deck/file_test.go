package deck

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDeckFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write deck file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeDeckFile(t, `# starter words
Hello|HH AH L OW

Teddy | T EH D IY
Ball
hello|dup of the first line
`)
	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	if words[0].Text != "Hello" || words[0].Breakdown != "HH AH L OW" {
		t.Fatalf("first word = %+v", words[0])
	}
	if words[1].Text != "Teddy" || words[1].Breakdown != "T EH D IY" {
		t.Fatalf("second word = %+v", words[1])
	}
	if words[2].Text != "Ball" || words[2].Breakdown != "" {
		t.Fatalf("third word = %+v", words[2])
	}
	if words[0].ID == "" || words[0].ID == words[1].ID {
		t.Fatalf("ids must be unique and non-empty")
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeDeckFile(t, "\n# only a comment\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected an error for an empty deck file")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
