// Package hotkey binds a global keyboard shortcut to the session toggle.
package hotkey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	hook "github.com/robotn/gohook"
)

// debounceWindow suppresses key auto-repeat while the combo stays held.
const debounceWindow = 300 * time.Millisecond

// Manager owns the global hotkey registration for the resident process.
type Manager struct {
	keys   []string
	logger *slog.Logger

	lastFire atomic.Int64
}

// New parses combo and returns a manager ready to run. Combos are
// plus-separated key names such as "super+h" or "ctrl+shift+space".
func New(combo string, logger *slog.Logger) (*Manager, error) {
	keys, err := ParseCombo(combo)
	if err != nil {
		return nil, err
	}
	return &Manager{keys: keys, logger: logger}, nil
}

// ParseCombo normalizes a plus-separated combo into gohook key names.
func ParseCombo(combo string) ([]string, error) {
	parts := strings.Split(combo, "+")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		key := strings.ToLower(strings.TrimSpace(part))
		if key == "" {
			return nil, fmt.Errorf("hotkey %q has an empty key segment", combo)
		}
		keys = append(keys, normalizeKey(key))
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("hotkey %q has no keys", combo)
	}
	return keys, nil
}

// normalizeKey maps common aliases onto the names the hook library expects.
func normalizeKey(key string) string {
	switch key {
	case "super", "win", "meta", "cmd":
		return "command"
	case "control":
		return "ctrl"
	case "option":
		return "alt"
	case "return":
		return "enter"
	default:
		return key
	}
}

// Run installs the hotkey and blocks until ctx is cancelled. onToggle runs on
// the hook event goroutine and must not block.
func (m *Manager) Run(ctx context.Context, onToggle func()) error {
	hook.Register(hook.KeyDown, m.keys, func(hook.Event) {
		now := time.Now().UnixNano()
		last := m.lastFire.Load()
		if now-last < int64(debounceWindow) {
			return
		}
		if !m.lastFire.CompareAndSwap(last, now) {
			return
		}
		if m.logger != nil {
			m.logger.Debug("hotkey fired", "keys", strings.Join(m.keys, "+"))
		}
		onToggle()
	})

	events := hook.Start()
	defer hook.End()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-hook.Process(events)
	}()

	select {
	case <-ctx.Done():
		hook.End()
		<-done
		return ctx.Err()
	case <-done:
		return fmt.Errorf("hotkey event loop stopped unexpectedly")
	}
}

// Keys returns the normalized key names the manager listens for.
func (m *Manager) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}
