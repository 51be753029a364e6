// Package library loads reference texts for typing sessions, either from a
// plain text file or from a YAML song library.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Errors returned by library operations.
var (
	ErrSongNotFound = errors.New("song not found")
	ErrEmptyLibrary = errors.New("library has no songs")
	ErrEmptyText    = errors.New("reference text is empty")
)

// Song is one reference text with optional metadata.
type Song struct {
	Title  string `yaml:"title"`
	Artist string `yaml:"artist"`
	Text   string `yaml:"text"`
}

// Name returns "Artist - Title", or just the title when no artist is set.
func (s Song) Name() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// Library is an ordered collection of songs.
type Library struct {
	Songs []Song `yaml:"songs"`

	path string
}

// Load reads a YAML library from path.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading library %s: %w", path, err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing library %s: %w", path, err)
	}
	lib.path = path
	return lib, nil
}

// Parse decodes a YAML library document.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, err
	}
	if len(lib.Songs) == 0 {
		return nil, ErrEmptyLibrary
	}
	for i, s := range lib.Songs {
		if strings.TrimSpace(s.Text) == "" {
			return nil, fmt.Errorf("song %d (%q): %w", i, s.Title, ErrEmptyText)
		}
	}
	return &lib, nil
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string { return l.path }

// Song returns the song whose title matches, ignoring case. An empty title
// selects the first song.
func (l *Library) Song(title string) (Song, error) {
	if title == "" {
		return l.Songs[0], nil
	}
	for _, s := range l.Songs {
		if strings.EqualFold(s.Title, title) {
			return s, nil
		}
	}
	return Song{}, fmt.Errorf("%q: %w", title, ErrSongNotFound)
}

// Titles returns the song titles in library order.
func (l *Library) Titles() []string {
	titles := make([]string, len(l.Songs))
	for i, s := range l.Songs {
		titles[i] = s.Title
	}
	return titles
}

// LoadText reads a plain text reference from path, titled by its file name.
func LoadText(path string) (Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Song{}, fmt.Errorf("reading reference %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Song{}, fmt.Errorf("%s: %w", path, ErrEmptyText)
	}
	base := filepath.Base(path)
	return Song{
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
		Text:  string(data),
	}, nil
}

// IsLibraryFile reports whether path names a YAML library.
func IsLibraryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Source identifies where a reference text comes from so it can be reloaded.
type Source struct {
	Path  string
	Title string
}

// Load reads the song the source points to.
func (s Source) Load() (Song, error) {
	if !IsLibraryFile(s.Path) {
		return LoadText(s.Path)
	}
	lib, err := Load(s.Path)
	if err != nil {
		return Song{}, err
	}
	return lib.Song(s.Title)
}
