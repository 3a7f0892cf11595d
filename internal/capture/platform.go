package capture

import (
	"log/slog"
	"runtime"

	telem "github.com/timvw/cpick/internal/otel"
)

// Platforms lists the accepted values of the platform setting.
var Platforms = []string{"auto", "windows", "darwin", "linux", "fallback"}

// Options configures the strategies built by ForPlatform.
type Options struct {
	Runner  Runner // nil means ExecRunner{}
	TempDir string
	Display string
	Logger  *slog.Logger
	Metrics *telem.Metrics
}

// Resolve maps "auto" (or "") to the running OS.
func Resolve(platform string) string {
	if platform == "" || platform == "auto" {
		return runtime.GOOS
	}
	return platform
}

// IsUnix reports whether goos captures through X11 tooling.
func IsUnix(goos string) bool {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return true
	}
	return false
}

// ForPlatform builds the static chain for a platform name. Unknown
// platforms get a chain holding only Fallback.
func ForPlatform(platform string, opts Options) *Chain {
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	var members []PixelSampler
	switch goos := Resolve(platform); {
	case goos == "windows":
		members = append(members, &Windows{})
	case goos == "darwin":
		members = append(members, &Darwin{Runner: runner, TempDir: opts.TempDir})
	case IsUnix(goos):
		members = append(members,
			&ImageMagick{Runner: runner, TempDir: opts.TempDir},
			&X11{Display: opts.Display},
		)
	}
	members = append(members, Fallback{})
	return NewChain(opts.Logger, opts.Metrics, members...)
}
