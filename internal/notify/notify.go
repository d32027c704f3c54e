// Package notify sends desktop notifications through the platform's own
// tool: notify-send on Linux and osascript on macOS. Other platforms get a
// notifier that reports itself unsupported.
package notify

import (
	"fmt"
	"os/exec"
	"time"

	"dietstreak/internal/diet"
)

// Message is one notification.
type Message struct {
	Title string
	Body  string
	Sound bool
}

// Notifier delivers notifications.
type Notifier interface {
	Send(msg Message) error
	// IsSupported reports whether Send can reach the desktop.
	IsSupported() bool
}

// commandNotifier runs an external program per notification.
type commandNotifier struct {
	program string
	args    func(msg Message) []string
}

func (n *commandNotifier) Send(msg Message) error {
	cmd := exec.Command(n.program, n.args(msg)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", n.program, err, out)
	}
	return nil
}

func (n *commandNotifier) IsSupported() bool {
	_, err := exec.LookPath(n.program)
	return err == nil
}

type noopNotifier struct{}

func (noopNotifier) Send(Message) error { return nil }
func (noopNotifier) IsSupported() bool  { return false }

// New returns the platform notifier, or a no-op one when the platform tool
// is missing.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// Recorder keeps every message instead of displaying it.
type Recorder struct {
	Sent []Message
}

func (r *Recorder) Send(msg Message) error {
	r.Sent = append(r.Sent, msg)
	return nil
}

func (r *Recorder) IsSupported() bool { return true }

// MissedMeal builds the reminder for an item that was due at due.
func MissedMeal(item diet.DietItem, due, now time.Time, sound bool) Message {
	late := now.Sub(due).Truncate(time.Minute)
	return Message{
		Title: fmt.Sprintf("Missed %s", item.Type),
		Body:  fmt.Sprintf("%s was planned for %s (%s ago)", item.Name, item.Time, formatLate(late)),
		Sound: sound,
	}
}

func formatLate(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
