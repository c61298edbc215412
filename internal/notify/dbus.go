package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const (
	dbusService   = "org.freedesktop.Notifications"
	dbusPath      = "/org/freedesktop/Notifications"
	dbusInterface = "org.freedesktop.Notifications"
)

// desktopNotify sends a freedesktop notification over DBus via busctl and
// returns the server-assigned notification ID. Passing a previous ID in
// replaceID updates that notification in place.
func desktopNotify(ctx context.Context, appName string, replaceID uint32, summary string, timeoutMS int) (uint32, error) {
	args := []string{
		"--user", "call",
		dbusService, dbusPath, dbusInterface,
		"Notify", "susssasa{sv}i",
		appName,
		strconv.FormatUint(uint64(replaceID), 10),
		"", // icon
		summary,
		"", // body
		"0", // actions array length
		"0", // hints map length
		strconv.Itoa(timeoutMS),
	}

	out, err := exec.CommandContext(ctx, "busctl", args...).CombinedOutput()
	if err != nil {
		return 0, busctlError("notify", out, err)
	}

	// busctl prints the reply as "u <id>".
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) < 2 || fields[0] != "u" {
		return 0, fmt.Errorf("notify: unexpected busctl reply %q", strings.TrimSpace(string(out)))
	}
	id, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("notify: parse id %q: %w", fields[1], err)
	}
	return uint32(id), nil
}

// desktopDismiss asks the notification server to close an ID immediately.
func desktopDismiss(ctx context.Context, id uint32) error {
	args := []string{
		"--user", "call",
		dbusService, dbusPath, dbusInterface,
		"CloseNotification", "u",
		strconv.FormatUint(uint64(id), 10),
	}

	out, err := exec.CommandContext(ctx, "busctl", args...).CombinedOutput()
	if err != nil {
		return busctlError("dismiss", out, err)
	}
	return nil
}

func busctlError(op string, out []byte, err error) error {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return fmt.Errorf("%s via busctl: %w", op, err)
	}
	return fmt.Errorf("%s via busctl: %w (%s)", op, err, trimmed)
}
