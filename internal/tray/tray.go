// Package tray shows resident-process state in the desktop system tray.
package tray

import (
	"context"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"
)

// stateGlyphs maps session states onto short tray title markers.
var stateGlyphs = map[string]string{
	"idle":       "mic",
	"recording":  "rec",
	"processing": "...",
	"error":      "err",
}

// Presenter owns the tray icon, status line, and menu for the resident
// process. Toggle and quit clicks are forwarded through the callbacks given
// to New.
type Presenter struct {
	logger   *slog.Logger
	onToggle func()
	onQuit   func()

	mu         sync.Mutex
	ready      bool
	pending    string
	statusItem *systray.MenuItem
}

// New builds a tray presenter. onToggle and onQuit run on the tray event
// goroutine and must not block.
func New(logger *slog.Logger, onToggle, onQuit func()) *Presenter {
	return &Presenter{logger: logger, onToggle: onToggle, onQuit: onQuit}
}

// Run enters the tray main loop and blocks until ctx is cancelled or the
// user quits from the menu. Must run on the process main goroutine on
// platforms that require it.
func (p *Presenter) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(p.onReady, p.onExit)
}

// SetStatus updates the tray status line and tooltip. Safe to call from any
// goroutine, including before the tray is ready.
func (p *Presenter) SetStatus(state string) {
	p.mu.Lock()
	if !p.ready {
		p.pending = state
		p.mu.Unlock()
		return
	}
	item := p.statusItem
	p.mu.Unlock()

	p.apply(item, state)
}

func (p *Presenter) onReady() {
	systray.SetTitle("voice-transcriber")
	systray.SetTooltip("Voice transcriber")

	statusItem := systray.AddMenuItem("Status: idle", "Current session state")
	statusItem.Disable()
	systray.AddSeparator()
	toggleItem := systray.AddMenuItem("Toggle recording", "Start or stop dictation")
	quitItem := systray.AddMenuItem("Quit", "Stop the resident process")

	p.mu.Lock()
	p.statusItem = statusItem
	p.ready = true
	pending := p.pending
	p.pending = ""
	p.mu.Unlock()

	if pending != "" {
		p.apply(statusItem, pending)
	}

	go func() {
		for {
			select {
			case _, ok := <-toggleItem.ClickedCh:
				if !ok {
					return
				}
				if p.onToggle != nil {
					p.onToggle()
				}
			case _, ok := <-quitItem.ClickedCh:
				if !ok {
					return
				}
				if p.onQuit != nil {
					p.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func (p *Presenter) onExit() {
	if p.logger != nil {
		p.logger.Debug("tray loop exited")
	}
}

func (p *Presenter) apply(item *systray.MenuItem, state string) {
	glyph, ok := stateGlyphs[state]
	if !ok {
		glyph = state
	}
	systray.SetTitle("voice-transcriber [" + glyph + "]")
	systray.SetTooltip("Voice transcriber: " + state)
	if item != nil {
		item.SetTitle("Status: " + state)
	}
}
