package capture

import (
	"context"
	"fmt"
)

// Warning is one problem found by CheckRequirements. Warnings never block
// startup; sampling degrades through the chain instead.
type Warning struct {
	Tool    string
	Message string
	Hint    string
}

func (w Warning) String() string {
	if w.Hint == "" {
		return fmt.Sprintf("%s: %s", w.Tool, w.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Tool, w.Message, w.Hint)
}

const accessibilityScript = `tell application "System Events" to get name of first process`

var unixTools = []struct {
	name, purpose string
}{
	{"xdotool", "pointer location"},
	{"import", "screen grab (ImageMagick)"},
	{"convert", "pixel readout (ImageMagick)"},
}

// InstallHint is printed when unix capture tools are missing.
const InstallHint = "install with: sudo apt-get install xdotool imagemagick (Debian/Ubuntu) or sudo dnf install xdotool ImageMagick (Fedora)"

// CheckRequirements looks for the helper tools the platform chain relies on.
func CheckRequirements(ctx context.Context, goos string, r Runner) []Warning {
	var warnings []Warning
	switch {
	case goos == "darwin":
		if _, err := r.Run(ctx, "osascript", "-e", accessibilityScript); err != nil {
			warnings = append(warnings, Warning{
				Tool:    "osascript",
				Message: fmt.Sprintf("cannot query System Events: %v", err),
				Hint:    "grant Accessibility and Screen Recording access in System Settings > Privacy & Security",
			})
		}
	case IsUnix(goos):
		for _, tool := range unixTools {
			if _, err := r.LookPath(tool.name); err != nil {
				warnings = append(warnings, Warning{
					Tool:    tool.name,
					Message: "not found, needed for " + tool.purpose,
					Hint:    InstallHint,
				})
			}
		}
	}
	return warnings
}

// CheckDisplay fails on Linux/BSD when there is no graphical session.
func CheckDisplay(goos string, getenv func(string) string) error {
	if !IsUnix(goos) {
		return nil
	}
	if getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == "" {
		return ErrNoDisplay
	}
	return nil
}
