//go:build darwin

package notify

import (
	"fmt"
	"strings"
)

func newPlatformNotifier() Notifier {
	return &commandNotifier{
		program: "osascript",
		args: func(msg Message) []string {
			script := fmt.Sprintf(`display notification "%s" with title "%s"`,
				escapeAppleScript(msg.Body), escapeAppleScript(msg.Title))
			if msg.Sound {
				script += ` sound name "default"`
			}
			return []string{"-e", script}
		},
	}
}

// escapeAppleScript escapes backslashes and quotes for an AppleScript string.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
