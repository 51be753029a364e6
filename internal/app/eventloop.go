package app

import (
	"github.com/google/uuid"

	"github.com/dshills/typist/internal/renderer/backend"
	"github.com/dshills/typist/internal/session"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	default:
		// Resize and interrupt events only need a redraw.
		return nil
	}
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyCtrlR:
		app.restart()
		return nil
	}

	r, ok := InputRune(ev)
	if !ok {
		return nil
	}
	app.message = ""
	app.metrics.RecordKey(r == session.Backspace)
	if err := app.session.AddChar(r); err != nil {
		return NewOperationError("type", string(r), err)
	}
	return nil
}

// InputRune maps a key event to the rune fed to the session. Enter becomes
// a line feed, Tab a space and Backspace session.Backspace.
func InputRune(ev backend.Event) (rune, bool) {
	if ev.Type != backend.EventKey {
		return 0, false
	}
	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return 0, false
		}
		return ev.Rune, true
	case backend.KeyEnter:
		return '\n', true
	case backend.KeyTab:
		return ' ', true
	case backend.KeyBackspace:
		return session.Backspace, true
	default:
		return 0, false
	}
}

// restart discards the typed text and starts over on the same reference.
func (app *Application) restart() {
	app.logger.Info("restarting session %s", app.session.ID())
	app.start(app.song)
	app.metrics.RecordRestart()
	app.message = "restarted"
}

// reload rereads the reference after it changed on disk and replays the
// typed text into a new session, so progress survives edits.
func (app *Application) reload() {
	song, err := app.source.Load()
	if err != nil {
		app.logger.Warn("%v", NewOperationError("reload", app.source.Path, err))
		app.message = "reload failed"
		app.backend.Beep()
		return
	}
	if song.Text == app.song.Text {
		return
	}

	typed := app.session.TypedText()
	pending := app.session.PendingSpace()
	app.start(song)
	if err := app.session.AddString(typed); err != nil {
		app.logger.Error("%v", NewOperationError("replay", app.source.Path, err))
	}
	if pending {
		_ = app.session.AddChar(' ')
	}
	app.metrics.RecordReload()
	app.message = "reloaded"
}

// newSessionID returns a random session identifier.
func newSessionID() string {
	return uuid.NewString()
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so Shutdown posts an interrupt event to wake the
// poller before it exits.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()

			select {
			case <-app.done:
				return
			default:
			}

			if ev.Type == backend.EventNone {
				continue
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
