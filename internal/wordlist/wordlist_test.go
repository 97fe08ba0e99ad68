package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromWords(t *testing.T) {
	t.Parallel()

	t.Run("keeps order of distinct words", func(t *testing.T) {
		t.Parallel()

		wl, err := FromWords([]string{"delta", "alpha", "charlie"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wl.WordCount() != 3 {
			t.Fatalf("expected 3 words, got %d", wl.WordCount())
		}
		want := []string{"delta", "alpha", "charlie"}
		for i, w := range want {
			if wl.Word(i) != w {
				t.Errorf("word %d: expected %q, got %q", i, w, wl.Word(i))
			}
		}
	})

	t.Run("removes exact duplicates", func(t *testing.T) {
		t.Parallel()

		wl, err := FromWords([]string{"alpha", "bravo", "alpha", "bravo", "alpha"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wl.WordCount() != 2 {
			t.Errorf("expected 2 words, got %d", wl.WordCount())
		}
	})

	t.Run("deduplication is case-sensitive", func(t *testing.T) {
		t.Parallel()

		wl, err := FromWords([]string{"Apple", "apple", "APPLE"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wl.WordCount() != 3 {
			t.Errorf("expected 3 words, got %d", wl.WordCount())
		}
	})

	t.Run("normalizes to NFC before deduplication", func(t *testing.T) {
		t.Parallel()

		composed := "caf\u00e9"
		decomposed := "cafe\u0301"
		wl, err := FromWords([]string{composed, decomposed})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wl.WordCount() != 1 {
			t.Fatalf("expected 1 word, got %d", wl.WordCount())
		}
		if wl.Word(0) != composed {
			t.Errorf("expected composed form %q, got %q", composed, wl.Word(0))
		}
	})

	t.Run("empty input returns ErrEmptyWordlist", func(t *testing.T) {
		t.Parallel()

		_, err := FromWords(nil)
		if !errors.Is(err, ErrEmptyWordlist) {
			t.Errorf("expected ErrEmptyWordlist, got %v", err)
		}
	})

	t.Run("empty word returns ErrInvalidWord", func(t *testing.T) {
		t.Parallel()

		_, err := FromWords([]string{"alpha", ""})
		if !errors.Is(err, ErrInvalidWord) {
			t.Errorf("expected ErrInvalidWord, got %v", err)
		}
	})

	t.Run("whitespace word returns ErrInvalidWord", func(t *testing.T) {
		t.Parallel()

		_, err := FromWords([]string{"two words"})
		if !errors.Is(err, ErrInvalidWord) {
			t.Errorf("expected ErrInvalidWord, got %v", err)
		}
	})
}

func TestWordsReturnsCopy(t *testing.T) {
	t.Parallel()

	wl, err := FromWords([]string{"alpha", "bravo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	words := wl.Words()
	words[0] = "mutated"

	if wl.Word(0) != "alpha" {
		t.Errorf("expected wordlist to be unchanged, got %q", wl.Word(0))
	}
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	a, _ := FromWords([]string{"alpha", "bravo"})
	b, _ := FromWords([]string{"alpha", "bravo", "alpha"})
	c, _ := FromWords([]string{"bravo", "alpha"})

	if a.Checksum() != b.Checksum() {
		t.Error("expected equal checksums for equal word sequences")
	}
	if a.Checksum() == c.Checksum() {
		t.Error("expected different checksums for different order")
	}
	if len(a.Checksum()) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a.Checksum()))
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("plain list with comments and blank lines", func(t *testing.T) {
		t.Parallel()

		input := "# comment\nalpha\n\n  bravo  \ncharlie\n"
		wl, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wl.WordCount() != 3 {
			t.Errorf("expected 3 words, got %d", wl.WordCount())
		}
		if wl.Word(1) != "bravo" {
			t.Errorf("expected trimmed 'bravo', got %q", wl.Word(1))
		}
	})

	t.Run("diceware list", func(t *testing.T) {
		t.Parallel()

		input := "11111\tabacus\n11112\tabdomen\n11113 abide\n"
		wl, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"abacus", "abdomen", "abide"}
		for i, w := range want {
			if wl.Word(i) != w {
				t.Errorf("word %d: expected %q, got %q", i, w, wl.Word(i))
			}
		}
	})

	t.Run("line with two words is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(strings.NewReader("alpha\nice cream\n"))
		if !errors.Is(err, ErrInvalidWord) {
			t.Errorf("expected ErrInvalidWord, got %v", err)
		}
	})

	t.Run("comments only returns ErrEmptyWordlist", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(strings.NewReader("# nothing here\n\n"))
		if !errors.Is(err, ErrEmptyWordlist) {
			t.Errorf("expected ErrEmptyWordlist, got %v", err)
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads words from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "words.txt")
		if err := os.WriteFile(path, []byte("alpha\nbravo\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		wl, err := LoadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wl.WordCount() != 2 {
			t.Errorf("expected 2 words, got %d", wl.WordCount())
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	wl := Default()
	if wl.WordCount() != 256 {
		t.Errorf("expected 256 built-in words, got %d", wl.WordCount())
	}
	if Default() != wl {
		t.Error("expected the built-in list to be parsed once")
	}
}
