package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleLibrary = `
songs:
  - title: Diamond Tiara
    artist: CMC
    text: |
      Cutie Mark Crusaders, get out of my way
      Those ponies need to know the truth
  - title: Short
    text: "hello world"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestParse(t *testing.T) {
	lib, err := Parse([]byte(sampleLibrary))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(lib.Songs) != 2 {
		t.Fatalf("got %d songs, want 2", len(lib.Songs))
	}
	first := lib.Songs[0]
	if first.Name() != "CMC - Diamond Tiara" {
		t.Errorf("Name() = %q", first.Name())
	}
	want := "Cutie Mark Crusaders, get out of my way\nThose ponies need to know the truth\n"
	if first.Text != want {
		t.Errorf("Text = %q, want %q", first.Text, want)
	}
	if lib.Songs[1].Name() != "Short" {
		t.Errorf("Name() = %q", lib.Songs[1].Name())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no songs", "songs: []\n", ErrEmptyLibrary},
		{"missing key", "title: x\n", ErrEmptyLibrary},
		{"blank text", "songs:\n  - title: x\n    text: \"  \"\n", ErrEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte("songs: [")); err == nil {
		t.Error("expected a YAML syntax error")
	}
}

func TestLibrary_Song(t *testing.T) {
	lib, _ := Parse([]byte(sampleLibrary))

	s, err := lib.Song("short")
	if err != nil || s.Text != "hello world" {
		t.Errorf("Song(short) = %+v, %v", s, err)
	}

	s, err = lib.Song("")
	if err != nil || s.Title != "Diamond Tiara" {
		t.Errorf("Song(\"\") = %+v, %v; want first song", s, err)
	}

	_, err = lib.Song("missing")
	if !errors.Is(err, ErrSongNotFound) {
		t.Errorf("err = %v, want ErrSongNotFound", err)
	}

	titles := lib.Titles()
	if len(titles) != 2 || titles[0] != "Diamond Tiara" || titles[1] != "Short" {
		t.Errorf("Titles() = %v", titles)
	}
}

func TestLoadText(t *testing.T) {
	path := writeFile(t, "lyrics.txt", "Stop! Diamond Tiara\n")

	s, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText failed: %v", err)
	}
	if s.Title != "lyrics" || s.Text != "Stop! Diamond Tiara\n" {
		t.Errorf("LoadText = %+v", s)
	}

	empty := writeFile(t, "empty.txt", "\n\n")
	if _, err := LoadText(empty); !errors.Is(err, ErrEmptyText) {
		t.Errorf("err = %v, want ErrEmptyText", err)
	}

	if _, err := LoadText(filepath.Join(t.TempDir(), "nope.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}

func TestSource_Load(t *testing.T) {
	libPath := writeFile(t, "songs.yaml", sampleLibrary)
	textPath := writeFile(t, "plain.txt", "hello")

	s, err := Source{Path: libPath, Title: "Short"}.Load()
	if err != nil || s.Text != "hello world" {
		t.Errorf("library source = %+v, %v", s, err)
	}

	s, err = Source{Path: textPath}.Load()
	if err != nil || s.Text != "hello" {
		t.Errorf("text source = %+v, %v", s, err)
	}

	lib, err := Load(libPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lib.Path() != libPath {
		t.Errorf("Path() = %q", lib.Path())
	}
}

func TestIsLibraryFile(t *testing.T) {
	for path, want := range map[string]bool{
		"songs.yaml": true,
		"songs.YML":  true,
		"song.txt":   false,
		"song":       false,
	} {
		if got := IsLibraryFile(path); got != want {
			t.Errorf("IsLibraryFile(%q) = %v, want %v", path, got, want)
		}
	}
}
