// Package app provides the typist application: it loads a reference text,
// runs a typing session over it and draws each frame to a terminal backend.
package app

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/typist/internal/config"
	"github.com/dshills/typist/internal/library"
	"github.com/dshills/typist/internal/reference"
	"github.com/dshills/typist/internal/renderer/backend"
	"github.com/dshills/typist/internal/renderer/view"
	"github.com/dshills/typist/internal/session"
	"github.com/dshills/typist/internal/watcher"
)

// Application owns the backend, the current session and the reference
// watcher. Only the event loop goroutine touches the session.
type Application struct {
	cfg     *config.Config
	logger  *Logger
	backend backend.Backend
	view    *view.View

	source  library.Source
	song    library.Song
	ref     *reference.Reference
	session *session.Session
	message string

	watcher *watcher.FileWatcher
	metrics *Metrics

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Source names the reference text to type.
	Source library.Source

	// Config holds the loaded settings. Defaults are used when nil.
	Config *config.Config

	// Logger receives diagnostics. Logging is disabled when nil.
	Logger *Logger

	// Backend draws frames and supplies key events.
	Backend backend.Backend
}

// New loads the reference text and prepares a session over it.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	colors := cfg.UI.Colors
	theme, err := view.NewTheme(colors.Correct, colors.Pending, colors.Status)
	if err != nil {
		return nil, &InitError{Component: "theme", Err: err}
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		backend: opts.Backend,
		view: view.New(theme,
			view.WithScrollOffset(cfg.UI.ScrollOffset),
			view.WithShowTyped(cfg.UI.ShowTyped),
		),
		source:  opts.Source,
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}

	song, err := opts.Source.Load()
	if err != nil {
		return nil, NewOperationError("load", opts.Source.Path, err)
	}
	app.start(song)

	return app, nil
}

// start replaces the current session with a fresh one over song.
func (app *Application) start(song library.Song) {
	app.song = song
	app.ref = reference.Normalize(song.Text)

	id := newSessionID()
	app.session = session.New(app.ref,
		session.WithID(id),
		session.WithPrecision(app.cfg.Session.Precision),
		session.WithLogger(app.logger.WithComponent("session").WithField("session", id)),
	)
	app.logger.Info("session started for %q (%d lines, %d runes)",
		song.Name(), app.ref.LineCount(), app.ref.Len())
}

// Session returns the current typing session.
func (app *Application) Session() *session.Session { return app.session }

// Song returns the reference being typed.
func (app *Application) Song() library.Song { return app.song }

// Metrics returns the run metrics.
func (app *Application) Metrics() *Metrics { return app.metrics }

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if app.cfg.Reference.Watch {
		app.startWatcher()
		if app.watcher != nil {
			defer app.watcher.Close()
		}
	}

	err := app.eventLoop()
	app.logger.Info("run finished: %s", app.metrics.Snapshot())
	return err
}

// startWatcher follows the reference file. Failure only disables reloads.
func (app *Application) startWatcher() {
	w, err := watcher.New(app.source.Path, app.cfg.Debounce())
	if err != nil {
		app.logger.Warn("not watching %s: %v", app.source.Path, err)
		return
	}
	app.watcher = w
	app.logger.Debug("watching %s", w.Path())
}

// eventLoop is the main application loop. It renders after every event
// that changes what is on screen.
func (app *Application) eventLoop() error {
	input := app.startInputPolling()

	var changes <-chan watcher.Event
	var watchErrs <-chan error
	if app.watcher != nil {
		changes = app.watcher.Events()
		watchErrs = app.watcher.Errors()
	}

	app.render()

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-input:
			if !ok {
				return nil
			}
			err := app.handleBackendEvent(ev)
			if errors.Is(err, ErrQuit) {
				app.Shutdown()
				return nil
			}
			if err != nil {
				app.logger.Error("%v", err)
			}
			app.render()

		case ev, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			app.logger.Debug("reference changed: %s", ev.Op)
			app.reload()
			app.render()

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			app.logger.Warn("watcher: %v", err)
		}
	}
}

// Shutdown stops the event loop.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
		// Wake the poller so it sees done.
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	})
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// State returns what the next frame will show.
func (app *Application) State() view.State {
	st := app.session.Stats()
	return view.State{
		Title:       app.song.Name(),
		Lines:       app.ref.Lines(),
		Line:        st.Line,
		Column:      st.Offset - app.ref.LineStart(st.Line),
		Typed:       app.session.TypedText(),
		Correctness: st.Correctness,
		Finished:    app.session.Finished(),
		Message:     app.message,
	}
}

func (app *Application) render() {
	st := app.State()
	if app.logger.Enabled(LogLevelDebug) {
		offset := app.session.PositionInSourceText()
		app.logger.Debug("reference up to cursor: %q", app.ref.SourcePrefix(offset))
	}
	start := time.Now()
	app.view.Render(app.backend, st)
	app.metrics.RecordRender(time.Since(start))
}
