package watcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Notify sends a desktop notification for the given alert. On macOS it uses
// osascript, on Linux it tries notify-send. If neither is available, it falls
// back to printing to stderr.
func Notify(alert Alert) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title "writewatch" subtitle %q`, alert.Message, alert.Title)
		if err := exec.Command("osascript", "-e", script).Run(); err == nil {
			return nil
		}
	case "linux":
		if _, err := exec.LookPath("notify-send"); err == nil {
			urgency := "normal"
			if alert.Level == "critical" {
				urgency = "critical"
			}
			cmd := exec.Command("notify-send", "-u", urgency, "writewatch: "+alert.Title, alert.Message)
			if err := cmd.Run(); err == nil {
				return nil
			}
		}
	}
	return notifyFallback(alert)
}

// notifyFallback prints the alert to stderr when no desktop notification
// system is available.
func notifyFallback(alert Alert) error {
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", alert.Level, alert.Title, alert.Message)
	return err
}
