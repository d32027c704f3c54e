//go:build linux

package notify

func newPlatformNotifier() Notifier {
	return &commandNotifier{
		program: "notify-send",
		args: func(msg Message) []string {
			args := []string{"--app-name=dietstreak"}
			// Whether a sound plays is up to the notification daemon.
			if msg.Sound {
				args = append(args, "--urgency=normal")
			}
			return append(args, msg.Title, msg.Body)
		},
	}
}
