package keywords

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultStopWords(t *testing.T) {
	all, err := DefaultStopWords()
	if err != nil {
		t.Fatalf("DefaultStopWords() error = %v", err)
	}
	for _, w := range []string{"the", "de", "también", "no", "on", "were"} {
		if !all.Contains(w) {
			t.Errorf("default stop words missing %q", w)
		}
	}
	if len(all) < 200 {
		t.Errorf("len(DefaultStopWords()) = %d, want at least 200", len(all))
	}

	en, err := DefaultStopWords("en")
	if err != nil {
		t.Fatalf("DefaultStopWords(en) error = %v", err)
	}
	if en.Contains("también") {
		t.Error("english stop words contain a spanish word")
	}
}

func TestLoadStopWords(t *testing.T) {
	doc := "fr:\n  - Le\n  - les\n  - des\nde:\n  - der\n"

	fr, err := LoadStopWords(strings.NewReader(doc), "fr")
	if err != nil {
		t.Fatalf("LoadStopWords() error = %v", err)
	}
	if len(fr) != 3 || !fr.Contains("le") {
		t.Errorf("LoadStopWords(fr) = %v", fr)
	}

	if _, err := LoadStopWords(strings.NewReader(doc), "it"); err == nil {
		t.Error("LoadStopWords(unknown locale) error = nil")
	}
	if _, err := LoadStopWords(strings.NewReader("- not\n- a map\n")); err == nil {
		t.Error("LoadStopWords(list) error = nil")
	}
}

func TestLoadStopWordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	if err := os.WriteFile(path, []byte("custom:\n  - pdf\n  - documento\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	extra, err := LoadStopWordsFile(path)
	if err != nil {
		t.Fatalf("LoadStopWordsFile() error = %v", err)
	}

	merged := NewStopWords("datos").Merge(extra)
	got := NewRanker(merged).Extract("pdf documento datos informe informe", 10)
	if len(got) != 1 || got[0] != "informe" {
		t.Errorf("Extract() with merged stop words = %v, want [informe]", got)
	}
}
