package main

import (
	"errors"
	"testing"

	"github.com/dshills/typist/internal/config"
	"github.com/dshills/typist/internal/library"
)

func TestResolveSource(t *testing.T) {
	tests := []struct {
		name    string
		opts    cliOptions
		want    library.Source
		wantErr bool
	}{
		{"text file", cliOptions{args: []string{"a.txt"}}, library.Source{Path: "a.txt"}, false},
		{"library", cliOptions{library: "songs.yaml", song: "Yesterday"}, library.Source{Path: "songs.yaml", Title: "Yesterday"}, false},
		{"library first song", cliOptions{library: "songs.yaml"}, library.Source{Path: "songs.yaml"}, false},
		{"both", cliOptions{library: "songs.yaml", args: []string{"a.txt"}}, library.Source{}, true},
		{"song without library", cliOptions{song: "x", args: []string{"a.txt"}}, library.Source{}, true},
		{"two files", cliOptions{args: []string{"a.txt", "b.txt"}}, library.Source{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSource(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("source = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := resolveSource(cliOptions{}); !errors.Is(err, errNoSource) {
		t.Errorf("err = %v, want errNoSource", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	if err := applyOverrides(cfg, cliOptions{logLevel: "debug", precision: 2}); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Session.Precision != 2 {
		t.Errorf("cfg = %+v", cfg)
	}

	cfg = config.Default()
	if err := applyOverrides(cfg, cliOptions{precision: -1}); err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if cfg.Session.Precision != 5 || cfg.Logging.Level != "info" {
		t.Error("unset flags should keep config values")
	}

	var verr *config.ValidationError
	if err := applyOverrides(config.Default(), cliOptions{logLevel: "loud", precision: -1}); !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}
