package playtime

import (
	"fmt"
	"os"
)

// debugEnabled gates debugf output. Set through SetDebug; playtime is
// single-threaded so no synchronization is used.
var debugEnabled bool

// SetDebug enables or disables debug logging to stderr.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// Debug reports whether debug logging is enabled.
func Debug() bool {
	return debugEnabled
}

// debugf prints a debug line to stderr when debug logging is enabled.
func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[playtime] "+format+"\n", args...)
}

// warnf prints a warning to stderr regardless of the debug flag.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[playtime] warning: "+format+"\n", args...)
}

// safeCall runs a best-effort collaborator call. A panic inside it is logged
// and swallowed so audio trouble can never stall a round.
func safeCall(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			warnf("%s: %v", what, r)
		}
	}()
	fn()
}
