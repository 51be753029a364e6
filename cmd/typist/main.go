// Package main is the entry point for typist.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/typist/internal/app"
	"github.com/dshills/typist/internal/config"
	"github.com/dshills/typist/internal/library"
	"github.com/dshills/typist/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errNoSource is returned when neither a text file nor a library is given.
var errNoSource = errors.New("no reference text given")

type cliOptions struct {
	configPath string
	library    string
	song       string
	logLevel   string
	precision  int
	list       bool
	args       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.list {
		return listSongs(opts.library)
	}

	source, err := resolveSource(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		return 2
	}

	cfg, err := config.Load(config.WithPath(opts.configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if err := applyOverrides(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := app.OpenLogFile(cfg.Logging.File, app.ParseLogLevel(cfg.Logging.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closer.Close()
	if p := cfg.Path(); p != "" {
		logger.Info("loaded config from %s", p)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		Source:  source,
		Config:  cfg,
		Logger:  logger,
		Backend: term,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.library, "library", "", "YAML song library")
	flag.StringVar(&opts.library, "l", "", "YAML song library (shorthand)")
	flag.StringVar(&opts.song, "song", "", "Song title in the library (default: first song)")
	flag.StringVar(&opts.song, "s", "", "Song title in the library (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&opts.precision, "precision", -1, "Mismatches the cursor estimate absorbs")
	flag.BoolVar(&opts.list, "list", false, "List the songs in the library and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "typist - type along with a reference text\n\n")
		fmt.Fprintf(os.Stderr, "Usage: typist [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  typist lyrics.txt                 Type a text file\n")
		fmt.Fprintf(os.Stderr, "  typist -l songs.yaml -s Yesterday Type a song from a library\n")
		fmt.Fprintf(os.Stderr, "  typist -l songs.yaml -list        List library songs\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("typist %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.args = flag.Args()
	return opts
}

// resolveSource picks the reference text from the library flags or the
// single positional argument.
func resolveSource(opts cliOptions) (library.Source, error) {
	switch {
	case opts.library != "" && len(opts.args) > 0:
		return library.Source{}, errors.New("give either a text file or -library, not both")
	case opts.library != "":
		return library.Source{Path: opts.library, Title: opts.song}, nil
	case opts.song != "":
		return library.Source{}, errors.New("-song requires -library")
	case len(opts.args) == 1:
		return library.Source{Path: opts.args[0]}, nil
	case len(opts.args) > 1:
		return library.Source{}, fmt.Errorf("expected one file, got %d", len(opts.args))
	default:
		return library.Source{}, errNoSource
	}
}

// applyOverrides layers command line flags over the loaded configuration.
func applyOverrides(cfg *config.Config, opts cliOptions) error {
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.precision >= 0 {
		cfg.Session.Precision = opts.precision
	}
	return cfg.Validate()
}

func listSongs(path string) int {
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: -list requires -library")
		return 2
	}
	lib, err := library.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, song := range lib.Songs {
		fmt.Println(song.Name())
	}
	return 0
}
